package telemetry

import "slices"

// ParticleOrigin records how a particle was created.
type ParticleOrigin uint8

const (
	OriginBurst ParticleOrigin = iota
	OriginSplash
)

// RemovalCause records how a particle left the world.
type RemovalCause uint8

const (
	RemovedExpired RemovalCause = iota
	RemovedEvicted
	RemovedCleared
)

// LifetimeStats tracks per-particle statistics over its lifetime.
type LifetimeStats struct {
	Origin    ParticleOrigin
	BirthTime float64
	DeathTime float64
	Cause     RemovalCause

	// Number of clusters this particle has been a member of
	Clusterings int
}

// Lifetime returns how long the particle lived, in simulation seconds.
func (ls *LifetimeStats) Lifetime() float64 {
	return ls.DeathTime - ls.BirthTime
}

// LifetimeTracker manages per-particle lifetime statistics.
type LifetimeTracker struct {
	stats map[uint64]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint64]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new particle.
func (lt *LifetimeTracker) Register(id uint64, origin ParticleOrigin, birthTime float64) {
	lt.stats[id] = &LifetimeStats{Origin: origin, BirthTime: birthTime}
}

// Get returns the lifetime stats for a particle, or nil if not found.
func (lt *LifetimeTracker) Get(id uint64) *LifetimeStats {
	return lt.stats[id]
}

// RecordClustered notes that a particle joined a cluster.
func (lt *LifetimeTracker) RecordClustered(id uint64) {
	if s := lt.stats[id]; s != nil {
		s.Clusterings++
	}
}

// Remove stops tracking a particle and returns its final stats, or nil if unknown.
func (lt *LifetimeTracker) Remove(id uint64, deathTime float64, cause RemovalCause) *LifetimeStats {
	s := lt.stats[id]
	if s == nil {
		return nil
	}
	delete(lt.stats, id)
	s.DeathTime = deathTime
	s.Cause = cause
	return s
}

// IDs returns the tracked particle ids in ascending order.
func (lt *LifetimeTracker) IDs() []uint64 {
	ids := make([]uint64, 0, len(lt.stats))
	for id := range lt.stats {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Count returns the number of tracked particles.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// Clear drops all tracked particles.
func (lt *LifetimeTracker) Clear() {
	clear(lt.stats)
}
