// Package components defines ECS components for the simulation.
package components

import (
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

// ParticleID identifies a particle for the lifetime of the process. Zero is never assigned.
type ParticleID uint64

// ClusterID identifies a cluster for the lifetime of the process.
// NoCluster marks a free particle.
type ClusterID uint64

// NoCluster is the ClusterID of a particle that belongs to no cluster.
const NoCluster ClusterID = 0

// Particle holds particle identity and cluster membership.
type Particle struct {
	ID      ParticleID
	Cluster ClusterID
	Seq     uint64 // insertion sequence, used for FIFO eviction and stable ordering
}

// Free reports whether the particle is not owned by a cluster.
func (p *Particle) Free() bool {
	return p.Cluster == NoCluster
}

// Satellite is a decorative mini bubble orbiting inside a cluster body.
// Offsets are relative to the cluster position.
type Satellite struct {
	Offset r3.Vec
	Size   float64
	Color  colorful.Color
}

// Cluster holds the aggregate state of a group of merged particles.
type Cluster struct {
	ID         ClusterID
	Colors     []colorful.Color // member colors at formation, in member order
	Members    []ParticleID     // particles whose Cluster field points here
	Satellites []Satellite
	Seq        uint64
}

// HasMember reports whether id is a current member.
func (c *Cluster) HasMember(id ParticleID) bool {
	for _, m := range c.Members {
		if m == id {
			return true
		}
	}
	return false
}

// RemoveMember drops id from the member list, preserving order.
func (c *Cluster) RemoveMember(id ParticleID) bool {
	for i, m := range c.Members {
		if m == id {
			c.Members = append(c.Members[:i], c.Members[i+1:]...)
			return true
		}
	}
	return false
}
