package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/components"
	"github.com/pthm-cable/bloom/systems"
	"github.com/pthm-cable/bloom/telemetry"
)

// burst emits particles for a tap at p.
func (g *Game) burst(p r3.Vec) {
	now := g.world.Elapsed
	out, err := g.emitter.Burst(g.world, p)
	if err != nil {
		slog.Warn("burst_failed", "error", err)
	}
	g.totals.Bursts++
	g.perfCollector.Count(telemetry.CounterEmitted, len(out.Spawned))
	g.registerSpawned(out.Spawned, telemetry.OriginBurst, now)
	g.recordEvent(telemetry.NewBurstEvent(g.tick, now, p, len(out.Spawned)))
	g.removed(out.Evicted, telemetry.RemovedEvicted)
}

// formClusters turns proximity groups into clusters.
func (g *Game) formClusters(groups [][]components.ParticleID) {
	if len(groups) == 0 {
		return
	}
	now := g.world.Elapsed
	for _, cid := range g.lifecycle.Form(g.world, groups) {
		c, ok := g.world.Cluster(cid)
		if !ok {
			continue
		}
		for _, m := range c.Members {
			g.lifetimeTracker.RecordClustered(uint64(m))
		}
		g.totals.ClustersFormed++
		g.perfCollector.Count(telemetry.CounterFormed, 1)
		g.recordEvent(telemetry.NewClusterFormedEvent(g.tick, now, uint64(cid), c.Position, len(c.Members)))
	}
}

// splash scatters particles for each collapsed cluster and enforces the cap.
func (g *Game) splash(requests []systems.SplashRequest) {
	now := g.world.Elapsed
	for _, req := range requests {
		g.totals.Collapses++
		g.perfCollector.Count(telemetry.CounterCollapsed, 1)
		g.recordEvent(telemetry.NewClusterCollapsedEvent(
			g.tick, now, uint64(req.Cluster), req.Position, req.Members, req.Age, string(req.Reason),
		))

		out, err := g.emitter.Splash(g.world, req)
		if err != nil {
			slog.Warn("splash_failed", "cluster", uint64(req.Cluster), "error", err)
		}
		g.totals.Splashes++
		g.perfCollector.Count(telemetry.CounterEmitted, len(out.Spawned))
		g.registerSpawned(out.Spawned, telemetry.OriginSplash, now)
		g.recordEvent(telemetry.NewSplashEvent(g.tick, now, uint64(req.Cluster), req.Position, len(out.Spawned)))
		g.removed(out.Evicted, telemetry.RemovedEvicted)
	}
}

// prune removes particles whose lifespan has run out.
func (g *Game) prune() {
	g.removed(g.world.PruneExpired(), telemetry.RemovedExpired)
}

// clearWorld empties the scene and resets the force field.
func (g *Game) clearWorld() {
	n := g.world.ParticleCount()
	g.world.Clear()
	g.gravity.Reset()
	now := g.world.Elapsed
	for _, id := range g.lifetimeTracker.IDs() {
		g.collector.RecordRemoval(g.lifetimeTracker.Remove(id, now, telemetry.RemovedCleared))
	}
	slog.Debug("scene_cleared", "tick", g.tick, "particles", n)
}

func (g *Game) registerSpawned(ids []components.ParticleID, origin telemetry.ParticleOrigin, now float64) {
	for _, id := range ids {
		g.lifetimeTracker.Register(uint64(id), origin, now)
	}
}

// removed records particles that left the world.
func (g *Game) removed(ids []components.ParticleID, cause telemetry.RemovalCause) {
	if len(ids) == 0 {
		return
	}
	now := g.world.Elapsed
	for _, id := range ids {
		g.collector.RecordRemoval(g.lifetimeTracker.Remove(uint64(id), now, cause))
	}

	switch cause {
	case telemetry.RemovedEvicted:
		slog.Debug("particles_evicted", "tick", g.tick, "count", len(ids))
		g.totals.Evicted += len(ids)
		g.perfCollector.Count(telemetry.CounterEvicted, len(ids))
		g.recordEvent(telemetry.NewEvictedEvent(g.tick, now, len(ids)))
	case telemetry.RemovedExpired:
		g.totals.Pruned += len(ids)
		g.perfCollector.Count(telemetry.CounterPruned, len(ids))
		g.recordEvent(telemetry.NewPrunedEvent(g.tick, now, len(ids)))
	}
}
