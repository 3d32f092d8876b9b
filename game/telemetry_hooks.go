package game

import (
	"log/slog"

	"github.com/pthm-cable/bloom/telemetry"
)

// recordEvent forwards an event to the window collector.
func (g *Game) recordEvent(ev telemetry.Event) {
	g.collector.Record(ev)
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	now := g.world.Elapsed
	if !g.collector.ShouldFlush(now) {
		return
	}

	stats, events := g.collector.Flush(g.tick, now, g.samplePopulation())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
		if err := g.outputManager.WriteEvents(events); err != nil {
			slog.Error("failed to write events", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// samplePopulation collects the distributions reported at window end.
func (g *Game) samplePopulation() telemetry.Population {
	pop := telemetry.Population{
		Free:      g.world.FreeCount(),
		Clustered: g.world.ClusteredCount(),
		Clusters:  g.world.ClusterCount(),
	}
	for _, p := range g.world.FreeParticles() {
		pop.ParticleSizes = append(pop.ParticleSizes, p.Size)
	}
	for _, c := range g.world.Clusters() {
		pop.ClusterMembers = append(pop.ClusterMembers, float64(len(c.Members)))
	}
	return pop
}

// saveSnapshot writes the world to the snapshot directory.
func (g *Game) saveSnapshot(bm *telemetry.Bookmark) {
	snap := telemetry.NewSnapshot(g.world, g.seed, g.tick)
	snap.Bookmark = bm
	path, err := telemetry.SaveSnapshot(snap, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// SaveSnapshot writes the current world to dir and returns the file path.
func (g *Game) SaveSnapshot(dir string) (string, error) {
	return telemetry.SaveSnapshot(telemetry.NewSnapshot(g.world, g.seed, g.tick), dir)
}
