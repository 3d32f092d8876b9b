// Package systems contains ECS systems for the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/components"
	"github.com/pthm-cable/bloom/config"
)

// PhysicsSystem advances particle and cluster kinematics with semi-implicit Euler
// and per-frame exponential damping.
type PhysicsSystem struct {
	particles *ecs.Filter4[components.Position, components.Velocity, components.Lifetime, components.Particle]
	clusters  *ecs.Filter4[components.Position, components.Velocity, components.Lifetime, components.Cluster]

	particleDamping float64
	clusterDamping  float64
	clusterGravity  float64
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, cfg config.PhysicsConfig) *PhysicsSystem {
	return &PhysicsSystem{
		particles:       ecs.NewFilter4[components.Position, components.Velocity, components.Lifetime, components.Particle](w),
		clusters:        ecs.NewFilter4[components.Position, components.Velocity, components.Lifetime, components.Cluster](w),
		particleDamping: cfg.ParticleDamping,
		clusterDamping:  cfg.ClusterDamping,
		clusterGravity:  cfg.ClusterGravityScale,
	}
}

// UpdateParticles integrates free particles and returns how many moved.
// Clustered particles are frozen: they neither move nor age while owned by
// a cluster.
func (s *PhysicsSystem) UpdateParticles(gravity r3.Vec, dt float64) int {
	if dt <= 0 {
		return 0
	}
	n := 0
	query := s.particles.Query()
	for query.Next() {
		pos, vel, life, p := query.Get()
		if !p.Free() {
			continue
		}
		integrate(&pos.Vec, &vel.Vec, gravity, s.particleDamping, dt)
		life.Age += dt
		n++
	}
	return n
}

// UpdateClusters integrates clusters with a reduced share of the force field.
func (s *PhysicsSystem) UpdateClusters(gravity r3.Vec, dt float64) int {
	if dt <= 0 {
		return 0
	}
	n := 0
	g := r3.Scale(s.clusterGravity, gravity)
	query := s.clusters.Query()
	for query.Next() {
		pos, vel, life, _ := query.Get()
		integrate(&pos.Vec, &vel.Vec, g, s.clusterDamping, dt)
		life.Age += dt
		n++
	}
	return n
}

// integrate applies v ← (v + g·dt)·damping, then p ← p + v·dt.
func integrate(pos, vel *r3.Vec, gravity r3.Vec, damping, dt float64) {
	*vel = r3.Scale(damping, r3.Add(*vel, r3.Scale(dt, gravity)))
	*pos = r3.Add(*pos, r3.Scale(dt, *vel))
}
