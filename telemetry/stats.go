package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	FreeParticles      int `csv:"free"`
	ClusteredParticles int `csv:"clustered"`
	Clusters           int `csv:"clusters"`

	// Emission during window
	Bursts          int `csv:"bursts"`
	BurstParticles  int `csv:"burst_particles"`
	Splashes        int `csv:"splashes"`
	SplashParticles int `csv:"splash_particles"`

	// Cluster lifecycle during window
	ClustersFormed    int     `csv:"clusters_formed"`
	CollapsedExpired  int     `csv:"collapsed_expired"`
	CollapsedOversize int     `csv:"collapsed_oversize"`
	CollapseAgeMean   float64 `csv:"collapse_age_mean"`

	// Removal and input during window
	Evicted       int `csv:"evicted"`
	Pruned        int `csv:"pruned"`
	InputsDropped int `csv:"inputs_dropped"`
	GravityResets int `csv:"gravity_resets"`

	// Free particle size distribution (sampled at window end)
	SizeMean float64 `csv:"size_mean"`
	SizeP10  float64 `csv:"size_p10"`
	SizeP50  float64 `csv:"size_p50"`
	SizeP90  float64 `csv:"size_p90"`

	// Cluster membership (sampled at window end)
	MembersMean float64 `csv:"members_mean"`
	MembersMax  float64 `csv:"members_max"`

	// Particles removed during window
	LifetimeMean      float64 `csv:"lifetime_mean"`
	ClusteredFraction float64 `csv:"clustered_fraction"` // Share that ever joined a cluster
}

// Collapses returns the total number of clusters that collapsed in the window.
func (s WindowStats) Collapses() int {
	return s.CollapsedExpired + s.CollapsedOversize
}

// Distribution returns the mean and the 10th, 50th and 90th percentiles of values.
// Percentiles use the empirical quantile. Returns zeros for an empty slice.
func Distribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// meanOrZero returns the mean of values, or 0 for an empty slice.
func meanOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"free", s.FreeParticles,
		"clustered", s.ClusteredParticles,
		"clusters", s.Clusters,
		"bursts", s.Bursts,
		"splashes", s.Splashes,
		"formed", s.ClustersFormed,
		"collapsed_expired", s.CollapsedExpired,
		"collapsed_oversize", s.CollapsedOversize,
		"evicted", s.Evicted,
		"pruned", s.Pruned,
		"inputs_dropped", s.InputsDropped,
		"size_p50", s.SizeP50,
		"members_mean", s.MembersMean,
		"lifetime_mean", s.LifetimeMean,
	)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("free", s.FreeParticles),
		slog.Int("clustered", s.ClusteredParticles),
		slog.Int("clusters", s.Clusters),
		slog.Int("collapses", s.Collapses()),
	)
}
