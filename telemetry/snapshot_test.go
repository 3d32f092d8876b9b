package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/components"
	"github.com/pthm-cable/bloom/world"
)

func TestSnapshotCapturesWorld(t *testing.T) {
	w := world.New()
	w.Elapsed = 12.5
	w.Gravity = r3.Vec{X: 0.4}

	a, err := w.SpawnParticle(world.ParticleSpec{Position: r3.Vec{X: 1}, Size: 0.5, Color: colorful.Color{R: 1}, Lifespan: 10})
	require.NoError(t, err)
	b, err := w.SpawnParticle(world.ParticleSpec{Position: r3.Vec{X: 1.5}, Size: 0.5, Color: colorful.Color{B: 1}, Lifespan: 10})
	require.NoError(t, err)
	_, err = w.SpawnParticle(world.ParticleSpec{Position: r3.Vec{Y: 4}, Size: 0.7, Lifespan: 10})
	require.NoError(t, err)
	cid, err := w.SpawnCluster(world.ClusterSpec{
		Position: r3.Vec{X: 1.25},
		Size:     0.8,
		Lifespan: 20,
		Colors:   []colorful.Color{{R: 1}, {B: 1}},
	}, []components.ParticleID{a, b})
	require.NoError(t, err)

	s := NewSnapshot(w, 42, 750)
	assert.Equal(t, SnapshotVersion, s.Version)
	assert.Equal(t, int64(42), s.RNGSeed)
	assert.Equal(t, 12.5, s.SimTime)
	assert.Equal(t, [3]float64{0.4, 0, 0}, s.Gravity)
	require.Len(t, s.Particles, 3)
	assert.Equal(t, uint64(cid), s.Particles[0].Cluster)
	assert.Equal(t, "#ff0000", s.Particles[0].Color)
	assert.Zero(t, s.Particles[2].Cluster)

	require.Len(t, s.Clusters, 1)
	assert.Equal(t, []uint64{uint64(a), uint64(b)}, s.Clusters[0].Members)
	assert.Equal(t, []string{"#ff0000", "#0000ff"}, s.Clusters[0].Colors)
}

func TestSnapshotSaveLoad(t *testing.T) {
	dir := t.TempDir()

	snapshot := &Snapshot{
		Version: SnapshotVersion,
		RNGSeed: 7,
		Tick:    1000,
		SimTime: 16.6,
		Particles: []ParticleState{
			{ID: 3, Position: [3]float64{1, 2, 3}, Size: 0.6, Color: "#4a90e2", Age: 1, Lifespan: 12},
		},
		Bookmark: &Bookmark{Type: BookmarkCollapseStorm, Tick: 1000, Description: "Test bookmark"},
	}

	path, err := SaveSnapshot(snapshot, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "snapshot_1000_collapse_storm.json"), path)

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99}`), 0644))
	_, err := LoadSnapshot(path)
	assert.Error(t, err)
}
