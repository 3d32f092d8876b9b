// Package telemetry provides run statistics, bookmarks, event logs and snapshots.
package telemetry

import "gonum.org/v1/gonum/spatial/r3"

// EventType identifies telemetry events.
type EventType string

const (
	EventBurst            EventType = "burst"
	EventSplash           EventType = "splash"
	EventClusterFormed    EventType = "cluster_formed"
	EventClusterCollapsed EventType = "cluster_collapsed"
	EventEvicted          EventType = "evicted"
	EventPruned           EventType = "pruned"
	EventInputDropped     EventType = "input_dropped"
	EventGravityReset     EventType = "gravity_reset"
)

// Event represents a single telemetry event. Field meaning depends on Type:
// Count is particles spawned or removed, or cluster members; Value is the
// cluster age at collapse.
type Event struct {
	Tick    int32     `csv:"tick"`
	SimTime float64   `csv:"sim_time"`
	Type    EventType `csv:"type"`
	Cluster uint64    `csv:"cluster"`
	Count   int       `csv:"count"`
	Value   float64   `csv:"value"`
	X       float64   `csv:"x"`
	Y       float64   `csv:"y"`
	Z       float64   `csv:"z"`
	Detail  string    `csv:"detail"`
}

func (e Event) at(p r3.Vec) Event {
	e.X, e.Y, e.Z = p.X, p.Y, p.Z
	return e
}

// NewBurstEvent creates a tap burst event.
func NewBurstEvent(tick int32, t float64, at r3.Vec, spawned int) Event {
	return Event{Tick: tick, SimTime: t, Type: EventBurst, Count: spawned}.at(at)
}

// NewSplashEvent creates a collapse splash event.
func NewSplashEvent(tick int32, t float64, cluster uint64, at r3.Vec, spawned int) Event {
	return Event{Tick: tick, SimTime: t, Type: EventSplash, Cluster: cluster, Count: spawned}.at(at)
}

// NewClusterFormedEvent creates a cluster formation event.
func NewClusterFormedEvent(tick int32, t float64, cluster uint64, at r3.Vec, members int) Event {
	return Event{Tick: tick, SimTime: t, Type: EventClusterFormed, Cluster: cluster, Count: members}.at(at)
}

// NewClusterCollapsedEvent creates a cluster collapse event. reason is
// "expired" or "oversize".
func NewClusterCollapsedEvent(tick int32, t float64, cluster uint64, at r3.Vec, members int, age float64, reason string) Event {
	return Event{
		Tick:    tick,
		SimTime: t,
		Type:    EventClusterCollapsed,
		Cluster: cluster,
		Count:   members,
		Value:   age,
		Detail:  reason,
	}.at(at)
}

// NewEvictedEvent records particles removed by the population cap.
func NewEvictedEvent(tick int32, t float64, count int) Event {
	return Event{Tick: tick, SimTime: t, Type: EventEvicted, Count: count}
}

// NewPrunedEvent records particles removed at the end of their lifespan.
func NewPrunedEvent(tick int32, t float64, count int) Event {
	return Event{Tick: tick, SimTime: t, Type: EventPruned, Count: count}
}

// NewInputDroppedEvent records a rejected pointer sample.
func NewInputDroppedEvent(tick int32, t float64, reason string) Event {
	return Event{Tick: tick, SimTime: t, Type: EventInputDropped, Detail: reason}
}

// NewGravityResetEvent records the force field returning to zero.
func NewGravityResetEvent(tick int32, t float64) Event {
	return Event{Tick: tick, SimTime: t, Type: EventGravityReset}
}
