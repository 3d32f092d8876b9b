// Package world owns the simulation state: particles, clusters, the force field and the clock.
//
// Entities live in an ark ECS world. World additionally keeps the insertion order of
// particles and clusters so that eviction is FIFO and every traversal is deterministic.
package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/components"
)

// Membership errors.
var (
	ErrUnknownParticle = errors.New("unknown particle")
	ErrAlreadyBound    = errors.New("particle already belongs to a cluster")
	ErrTooFewMembers   = errors.New("cluster needs at least two members")
	ErrUnknownCluster  = errors.New("unknown cluster")
	ErrNonFinite       = errors.New("non-finite value")
)

// ParticleSpec describes a particle to spawn.
type ParticleSpec struct {
	Position r3.Vec
	Velocity r3.Vec
	Size     float64
	Phase    float64
	Color    colorful.Color
	Lifespan float64
}

// ClusterSpec describes a cluster to spawn. Velocity starts at zero.
type ClusterSpec struct {
	Position   r3.Vec
	Size       float64
	Phase      float64
	Lifespan   float64
	Colors     []colorful.Color
	Satellites []components.Satellite
}

// ParticleView is a read-only copy of a particle's state.
type ParticleView struct {
	ID       components.ParticleID
	Position r3.Vec
	Velocity r3.Vec
	Size     float64
	Phase    float64
	Color    colorful.Color
	Age      float64
	Lifespan float64
	Cluster  components.ClusterID
}

// ClusterView is a read-only copy of a cluster's state.
type ClusterView struct {
	ID         components.ClusterID
	Position   r3.Vec
	Velocity   r3.Vec
	Size       float64
	Phase      float64
	Age        float64
	Lifespan   float64
	Colors     []colorful.Color
	Members    []components.ParticleID
	Satellites []components.Satellite
}

// World is the exclusively-owned simulation aggregate.
type World struct {
	ecs *ecs.World

	particleMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Body,
		components.Tint,
		components.Lifetime,
		components.Particle,
	]
	clusterMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Lifetime,
		components.Cluster,
	]

	particleMap *ecs.Map[components.Particle]
	clusterMap  *ecs.Map[components.Cluster]
	lifeMap     *ecs.Map[components.Lifetime]

	// Insertion order (oldest first)
	particles []ecs.Entity
	clusters  []ecs.Entity

	particleIndex map[components.ParticleID]ecs.Entity
	clusterIndex  map[components.ClusterID]ecs.Entity

	nextParticleID uint64
	nextClusterID  uint64
	nextSeq        uint64

	// Gravity is the uniform force field applied this frame.
	Gravity r3.Vec
	// Elapsed is the simulation clock in seconds.
	Elapsed float64
}

// New creates an empty world.
func New() *World {
	w := ecs.NewWorld()
	return &World{
		ecs: w,
		particleMapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Body,
			components.Tint,
			components.Lifetime,
			components.Particle,
		](w),
		clusterMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Lifetime,
			components.Cluster,
		](w),
		particleMap:   ecs.NewMap[components.Particle](w),
		clusterMap:    ecs.NewMap[components.Cluster](w),
		lifeMap:       ecs.NewMap[components.Lifetime](w),
		particleIndex: make(map[components.ParticleID]ecs.Entity),
		clusterIndex:  make(map[components.ClusterID]ecs.Entity),
	}
}

// ECS exposes the underlying entity world for system queries.
// Systems may mutate component values but must not add or remove entities.
func (w *World) ECS() *ecs.World {
	return w.ecs
}

// SpawnParticle adds a free particle and returns its id.
// Specs with non-finite position or velocity are dropped.
func (w *World) SpawnParticle(spec ParticleSpec) (components.ParticleID, error) {
	if !Finite(spec.Position) || !Finite(spec.Velocity) || math.IsNaN(spec.Size) || math.IsInf(spec.Size, 0) {
		return 0, ErrNonFinite
	}

	w.nextParticleID++
	w.nextSeq++
	id := components.ParticleID(w.nextParticleID)

	pos := components.Position{Vec: spec.Position}
	vel := components.Velocity{Vec: spec.Velocity}
	body := components.Body{Size: spec.Size, Phase: spec.Phase}
	tint := components.Tint{Color: spec.Color}
	life := components.Lifetime{Age: 0, Lifespan: spec.Lifespan}
	p := components.Particle{ID: id, Cluster: components.NoCluster, Seq: w.nextSeq}

	e := w.particleMapper.NewEntity(&pos, &vel, &body, &tint, &life, &p)
	w.particles = append(w.particles, e)
	w.particleIndex[id] = e
	return id, nil
}

// Particle returns a copy of the particle with the given id.
func (w *World) Particle(id components.ParticleID) (ParticleView, bool) {
	e, ok := w.particleIndex[id]
	if !ok {
		return ParticleView{}, false
	}
	return w.particleView(e), true
}

// Particles returns all live particles (free and clustered) in insertion order.
func (w *World) Particles() []ParticleView {
	out := make([]ParticleView, 0, len(w.particles))
	for _, e := range w.particles {
		out = append(out, w.particleView(e))
	}
	return out
}

// FreeParticles returns free particles in insertion order.
func (w *World) FreeParticles() []ParticleView {
	out := make([]ParticleView, 0, len(w.particles))
	for _, e := range w.particles {
		if w.particleMap.Get(e).Free() {
			out = append(out, w.particleView(e))
		}
	}
	return out
}

func (w *World) particleView(e ecs.Entity) ParticleView {
	pos, vel, body, tint, life, p := w.particleMapper.Get(e)
	return ParticleView{
		ID:       p.ID,
		Position: pos.Vec,
		Velocity: vel.Vec,
		Size:     body.Size,
		Phase:    body.Phase,
		Color:    tint.Color,
		Age:      life.Age,
		Lifespan: life.Lifespan,
		Cluster:  p.Cluster,
	}
}

// EnforceParticleCap removes the oldest-inserted particles until at most limit remain.
// Clustered particles count toward the cap and leave their cluster when evicted.
func (w *World) EnforceParticleCap(limit int) []components.ParticleID {
	if limit < 0 {
		limit = 0
	}
	var evicted []components.ParticleID
	for len(w.particles) > limit {
		e := w.particles[0]
		w.particles = w.particles[1:]
		evicted = append(evicted, w.destroyParticle(e))
	}
	return evicted
}

// PruneExpired removes every particle whose age has reached its lifespan.
func (w *World) PruneExpired() []components.ParticleID {
	var pruned []components.ParticleID
	kept := w.particles[:0]
	for _, e := range w.particles {
		if w.lifeMap.Get(e).Expired() {
			pruned = append(pruned, w.destroyParticle(e))
			continue
		}
		kept = append(kept, e)
	}
	w.particles = kept
	return pruned
}

// destroyParticle unbinds and removes the entity. The caller maintains w.particles.
func (w *World) destroyParticle(e ecs.Entity) components.ParticleID {
	p := w.particleMap.Get(e)
	id := p.ID
	if !p.Free() {
		if ce, ok := w.clusterIndex[p.Cluster]; ok {
			w.clusterMap.Get(ce).RemoveMember(id)
		}
	}
	delete(w.particleIndex, id)
	w.ecs.RemoveEntity(e)
	return id
}

// SpawnCluster creates a cluster and binds members to it in one step.
// Either every member is bound or, on error, nothing changes.
func (w *World) SpawnCluster(spec ClusterSpec, members []components.ParticleID) (components.ClusterID, error) {
	if len(members) < 2 {
		return 0, ErrTooFewMembers
	}
	if !Finite(spec.Position) {
		return 0, ErrNonFinite
	}

	entities := make([]ecs.Entity, len(members))
	seen := make(map[components.ParticleID]bool, len(members))
	for i, id := range members {
		e, ok := w.particleIndex[id]
		if !ok {
			return 0, fmt.Errorf("member %d: %w", id, ErrUnknownParticle)
		}
		if !w.particleMap.Get(e).Free() || seen[id] {
			return 0, fmt.Errorf("member %d: %w", id, ErrAlreadyBound)
		}
		seen[id] = true
		entities[i] = e
	}

	w.nextClusterID++
	w.nextSeq++
	cid := components.ClusterID(w.nextClusterID)

	pos := components.Position{Vec: spec.Position}
	vel := components.Velocity{}
	body := components.Body{Size: spec.Size, Phase: spec.Phase}
	life := components.Lifetime{Age: 0, Lifespan: spec.Lifespan}
	cl := components.Cluster{
		ID:         cid,
		Colors:     append([]colorful.Color(nil), spec.Colors...),
		Members:    append([]components.ParticleID(nil), members...),
		Satellites: spec.Satellites,
		Seq:        w.nextSeq,
	}

	e := w.clusterMapper.NewEntity(&pos, &vel, &body, &life, &cl)
	w.clusters = append(w.clusters, e)
	w.clusterIndex[cid] = e

	for _, pe := range entities {
		w.particleMap.Get(pe).Cluster = cid
	}
	return cid, nil
}

// Cluster returns a copy of the cluster with the given id.
func (w *World) Cluster(id components.ClusterID) (ClusterView, bool) {
	e, ok := w.clusterIndex[id]
	if !ok {
		return ClusterView{}, false
	}
	return w.clusterView(e), true
}

// Clusters returns all clusters in insertion order.
func (w *World) Clusters() []ClusterView {
	out := make([]ClusterView, 0, len(w.clusters))
	for _, e := range w.clusters {
		out = append(out, w.clusterView(e))
	}
	return out
}

func (w *World) clusterView(e ecs.Entity) ClusterView {
	pos, vel, body, life, cl := w.clusterMapper.Get(e)
	return ClusterView{
		ID:         cl.ID,
		Position:   pos.Vec,
		Velocity:   vel.Vec,
		Size:       body.Size,
		Phase:      body.Phase,
		Age:        life.Age,
		Lifespan:   life.Lifespan,
		Colors:     append([]colorful.Color(nil), cl.Colors...),
		Members:    append([]components.ParticleID(nil), cl.Members...),
		Satellites: cl.Satellites,
	}
}

// ReleaseCluster frees the remaining members, removes the cluster and returns its final state.
// Members keep their stored kinematic state.
func (w *World) ReleaseCluster(id components.ClusterID) (ClusterView, error) {
	e, ok := w.clusterIndex[id]
	if !ok {
		return ClusterView{}, fmt.Errorf("cluster %d: %w", id, ErrUnknownCluster)
	}
	view := w.clusterView(e)

	for _, m := range view.Members {
		if pe, ok := w.particleIndex[m]; ok {
			w.particleMap.Get(pe).Cluster = components.NoCluster
		}
	}

	for i, ce := range w.clusters {
		if ce == e {
			w.clusters = append(w.clusters[:i], w.clusters[i+1:]...)
			break
		}
	}
	delete(w.clusterIndex, id)
	w.ecs.RemoveEntity(e)
	return view, nil
}

// Clear removes every entity. Id counters keep running so ids are never reused.
func (w *World) Clear() {
	for _, e := range w.particles {
		w.ecs.RemoveEntity(e)
	}
	for _, e := range w.clusters {
		w.ecs.RemoveEntity(e)
	}
	w.particles = w.particles[:0]
	w.clusters = w.clusters[:0]
	clear(w.particleIndex)
	clear(w.clusterIndex)
	w.Gravity = r3.Vec{}
}

// ParticleCount returns the number of live particles, free and clustered.
func (w *World) ParticleCount() int {
	return len(w.particles)
}

// FreeCount returns the number of particles not owned by a cluster.
func (w *World) FreeCount() int {
	n := 0
	for _, e := range w.particles {
		if w.particleMap.Get(e).Free() {
			n++
		}
	}
	return n
}

// ClusteredCount returns the number of particles owned by a cluster.
func (w *World) ClusteredCount() int {
	return len(w.particles) - w.FreeCount()
}

// ClusterCount returns the number of live clusters.
func (w *World) ClusterCount() int {
	return len(w.clusters)
}

// Verify checks referential integrity between particles and clusters.
func (w *World) Verify() error {
	members := 0
	for _, ce := range w.clusters {
		cl := w.clusterMap.Get(ce)
		for _, m := range cl.Members {
			pe, ok := w.particleIndex[m]
			if !ok {
				return fmt.Errorf("cluster %d lists missing particle %d", cl.ID, m)
			}
			if got := w.particleMap.Get(pe).Cluster; got != cl.ID {
				return fmt.Errorf("cluster %d lists particle %d which points at %d", cl.ID, m, got)
			}
			members++
		}
	}
	for _, pe := range w.particles {
		p := w.particleMap.Get(pe)
		if p.Free() {
			continue
		}
		ce, ok := w.clusterIndex[p.Cluster]
		if !ok {
			return fmt.Errorf("particle %d points at missing cluster %d", p.ID, p.Cluster)
		}
		if !w.clusterMap.Get(ce).HasMember(p.ID) {
			return fmt.Errorf("particle %d not listed by cluster %d", p.ID, p.Cluster)
		}
	}
	if free := w.FreeCount(); free+members != len(w.particles) {
		return fmt.Errorf("free %d + members %d != live %d", free, members, len(w.particles))
	}
	return nil
}

// Finite reports whether every component of v is a finite number.
func Finite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
