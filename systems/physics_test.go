package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/components"
	"github.com/pthm-cable/bloom/config"
	"github.com/pthm-cable/bloom/world"
)

var testPhysics = config.PhysicsConfig{
	ParticleDamping:     0.98,
	ClusterDamping:      0.95,
	ClusterGravityScale: 0.5,
}

func TestUpdateParticlesIntegrates(t *testing.T) {
	w := world.New()
	id, err := w.SpawnParticle(world.ParticleSpec{
		Velocity: r3.Vec{X: 1},
		Size:     0.5,
		Lifespan: 10,
	})
	require.NoError(t, err)

	s := NewPhysicsSystem(w.ECS(), testPhysics)
	s.UpdateParticles(r3.Vec{Y: 2}, 0.5)

	p, ok := w.Particle(id)
	require.True(t, ok)
	// v = (v0 + g*dt) * damping, p = v*dt
	assert.InDelta(t, 0.98, p.Velocity.X, 1e-12)
	assert.InDelta(t, 0.98, p.Velocity.Y, 1e-12)
	assert.InDelta(t, 0.49, p.Position.X, 1e-12)
	assert.InDelta(t, 0.49, p.Position.Y, 1e-12)
	assert.Equal(t, 0.5, p.Age)
}

func TestUpdateParticlesSkipsClustered(t *testing.T) {
	w := world.New()
	a, _ := w.SpawnParticle(world.ParticleSpec{Velocity: r3.Vec{X: 1}, Size: 0.5, Lifespan: 10})
	b, _ := w.SpawnParticle(world.ParticleSpec{Velocity: r3.Vec{X: 1}, Size: 0.5, Lifespan: 10})
	c, _ := w.SpawnParticle(world.ParticleSpec{Velocity: r3.Vec{X: 1}, Size: 0.5, Lifespan: 10})
	_, err := w.SpawnCluster(world.ClusterSpec{Size: 0.8, Lifespan: 20}, []components.ParticleID{a, b})
	require.NoError(t, err)

	s := NewPhysicsSystem(w.ECS(), testPhysics)
	assert.Equal(t, 1, s.UpdateParticles(r3.Vec{}, 0.5))

	pa, _ := w.Particle(a)
	assert.Equal(t, r3.Vec{}, pa.Position)
	assert.Equal(t, 0.0, pa.Age)

	pc, _ := w.Particle(c)
	assert.Greater(t, pc.Position.X, 0.0)
}

func TestUpdateClustersUsesScaledGravity(t *testing.T) {
	w := world.New()
	a, _ := w.SpawnParticle(world.ParticleSpec{Size: 0.5, Lifespan: 10})
	b, _ := w.SpawnParticle(world.ParticleSpec{Size: 0.5, Lifespan: 10})
	cid, err := w.SpawnCluster(world.ClusterSpec{Size: 0.8, Lifespan: 20}, []components.ParticleID{a, b})
	require.NoError(t, err)

	s := NewPhysicsSystem(w.ECS(), testPhysics)
	assert.Equal(t, 1, s.UpdateClusters(r3.Vec{X: 2}, 0.5))

	c, ok := w.Cluster(cid)
	require.True(t, ok)
	assert.InDelta(t, 0.475, c.Velocity.X, 1e-12)
	assert.InDelta(t, 0.2375, c.Position.X, 1e-12)
	assert.Equal(t, 0.5, c.Age)
}

func TestPhysicsZeroDtIsNoop(t *testing.T) {
	w := world.New()
	id, _ := w.SpawnParticle(world.ParticleSpec{Velocity: r3.Vec{X: 1}, Size: 0.5, Lifespan: 10})

	s := NewPhysicsSystem(w.ECS(), testPhysics)
	assert.Zero(t, s.UpdateParticles(r3.Vec{X: 5}, 0))
	assert.Zero(t, s.UpdateParticles(r3.Vec{X: 5}, -1))

	p, _ := w.Particle(id)
	assert.Equal(t, r3.Vec{X: 1}, p.Velocity)
	assert.Equal(t, r3.Vec{}, p.Position)
}

func TestPhysicsDampingDecaysVelocity(t *testing.T) {
	w := world.New()
	id, _ := w.SpawnParticle(world.ParticleSpec{Velocity: r3.Vec{Z: 1}, Size: 0.5, Lifespan: 1000})

	s := NewPhysicsSystem(w.ECS(), testPhysics)
	for i := 0; i < 100; i++ {
		s.UpdateParticles(r3.Vec{}, 0.25)
	}

	p, _ := w.Particle(id)
	assert.InDelta(t, math.Pow(0.98, 100), p.Velocity.Z, 1e-9)
}
