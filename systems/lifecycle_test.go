package systems

import (
	"math/rand"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/components"
	"github.com/pthm-cable/bloom/config"
	"github.com/pthm-cable/bloom/world"
)

func newTestLifecycle(maxClusters int) *Lifecycle {
	cfg := config.Default()
	return NewLifecycle(cfg.Clustering, maxClusters, rand.New(rand.NewSource(1)))
}

func spawnFree(t *testing.T, w *world.World, pos r3.Vec, size float64, c colorful.Color) components.ParticleID {
	t.Helper()
	id, err := w.SpawnParticle(world.ParticleSpec{Position: pos, Size: size, Color: c, Lifespan: 10})
	require.NoError(t, err)
	return id
}

func TestFormMergesPair(t *testing.T) {
	w := world.New()
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}
	a := spawnFree(t, w, r3.Vec{}, 0.5, red)
	b := spawnFree(t, w, r3.Vec{X: 0.5}, 0.5, blue)

	groups := NewClusterer(PairwiseIndex{}, 1.5).Groups(w.FreeParticles())
	require.Equal(t, [][]components.ParticleID{{a, b}}, groups)

	formed := newTestLifecycle(10).Form(w, groups)
	require.Len(t, formed, 1)

	c, ok := w.Cluster(formed[0])
	require.True(t, ok)
	assert.Equal(t, []components.ParticleID{a, b}, c.Members)
	assert.InDelta(t, 0.25, c.Position.X, 1e-12)
	assert.InDelta(t, 0.8, c.Size, 1e-12)
	assert.Equal(t, r3.Vec{}, c.Velocity)
	assert.Equal(t, 0.0, c.Age)
	assert.GreaterOrEqual(t, c.Lifespan, 15.0)
	assert.Less(t, c.Lifespan, 30.0)
	assert.Equal(t, []colorful.Color{red, blue}, c.Colors)
	assert.Len(t, c.Satellites, 2)
	for _, s := range c.Satellites {
		assert.LessOrEqual(t, r3.Norm(s.Offset), c.Size*0.8+1e-9)
		assert.GreaterOrEqual(t, s.Size, 0.2)
		assert.Less(t, s.Size, 0.5)
	}

	assert.Equal(t, 0, w.FreeCount())
	assert.Equal(t, 2, w.ClusteredCount())
	require.NoError(t, w.Verify())
}

func TestFormRespectsClusterCap(t *testing.T) {
	w := world.New()
	var groups [][]components.ParticleID
	for i := 0; i < 4; i++ {
		x := float64(i) * 100
		a := spawnFree(t, w, r3.Vec{X: x}, 0.5, colorful.Color{})
		b := spawnFree(t, w, r3.Vec{X: x + 0.5}, 0.5, colorful.Color{})
		groups = append(groups, []components.ParticleID{a, b})
	}

	formed := newTestLifecycle(3).Form(w, groups)
	assert.Len(t, formed, 3)
	assert.Equal(t, 3, w.ClusterCount())
	// The group that did not fit stays free
	assert.Equal(t, 2, w.FreeCount())
}

func TestSatellitesCapped(t *testing.T) {
	w := world.New()
	var group []components.ParticleID
	for i := 0; i < 14; i++ {
		group = append(group, spawnFree(t, w, r3.Vec{X: float64(i) * 0.1}, 0.5, colorful.Color{G: 1}))
	}
	formed := newTestLifecycle(10).Form(w, [][]components.ParticleID{group})
	require.Len(t, formed, 1)
	c, _ := w.Cluster(formed[0])
	assert.Len(t, c.Satellites, maxSatellites)
}

func TestCollapseOversize(t *testing.T) {
	w := world.New()
	var members []components.ParticleID
	for i := 0; i < 11; i++ {
		members = append(members, spawnFree(t, w, r3.Vec{X: float64(i)}, 0.5, colorful.Color{R: 1}))
	}
	cid, err := w.SpawnCluster(world.ClusterSpec{
		Position: r3.Vec{X: 5},
		Size:     4.4,
		Lifespan: 20,
		Colors:   []colorful.Color{{R: 1}},
	}, members)
	require.NoError(t, err)

	reqs := newTestLifecycle(10).Collapse(w)
	require.Len(t, reqs, 1)
	assert.Equal(t, cid, reqs[0].Cluster)
	assert.Equal(t, CollapseOversize, reqs[0].Reason)
	assert.Equal(t, 11, reqs[0].Members)
	assert.Equal(t, r3.Vec{X: 5}, reqs[0].Position)
	assert.Equal(t, 4.4, reqs[0].Size)

	assert.Equal(t, 0, w.ClusterCount())
	assert.Equal(t, 11, w.FreeCount())
	require.NoError(t, w.Verify())
}

func TestCollapseKeepsHealthyClusters(t *testing.T) {
	w := world.New()
	var members []components.ParticleID
	for i := 0; i < 10; i++ {
		members = append(members, spawnFree(t, w, r3.Vec{}, 0.5, colorful.Color{}))
	}
	// Ten members is the limit, not over it
	_, err := w.SpawnCluster(world.ClusterSpec{Size: 4, Lifespan: 20}, members)
	require.NoError(t, err)

	assert.Empty(t, newTestLifecycle(10).Collapse(w))
	assert.Equal(t, 1, w.ClusterCount())
}

func TestCollapseExpired(t *testing.T) {
	w := world.New()
	a := spawnFree(t, w, r3.Vec{}, 0.5, colorful.Color{})
	b := spawnFree(t, w, r3.Vec{}, 0.5, colorful.Color{})
	cid, err := w.SpawnCluster(world.ClusterSpec{Size: 0.8, Lifespan: 1}, []components.ParticleID{a, b})
	require.NoError(t, err)

	physics := NewPhysicsSystem(w.ECS(), testPhysics)
	lc := newTestLifecycle(10)

	physics.UpdateClusters(r3.Vec{}, 1)
	assert.Empty(t, lc.Collapse(w), "age equal to lifespan is not yet expired")

	physics.UpdateClusters(r3.Vec{}, 0.25)
	reqs := lc.Collapse(w)
	require.Len(t, reqs, 1)
	assert.Equal(t, cid, reqs[0].Cluster)
	assert.Equal(t, CollapseExpired, reqs[0].Reason)
}
