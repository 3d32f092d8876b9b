package game

import "log/slog"

// LogWorldState logs a one-line summary of the scene.
func (g *Game) LogWorldState() {
	s := g.Stats()
	slog.Info("world",
		"tick", s.Tick,
		"elapsed", s.Elapsed,
		"free", s.Free,
		"clustered", s.Clustered,
		"clusters", s.Clusters,
		"gravity_x", s.Gravity.X,
		"gravity_y", s.Gravity.Y,
		"bursts", s.Totals.Bursts,
		"formed", s.Totals.ClustersFormed,
		"collapses", s.Totals.Collapses,
		"evicted", s.Totals.Evicted,
		"pruned", s.Totals.Pruned,
	)
}
