package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick int32
	windowStartTime float64

	// Event counters for current window
	bursts            int
	burstParticles    int
	splashes          int
	splashParticles   int
	clustersFormed    int
	collapsedExpired  int
	collapsedOversize int
	evicted           int
	pruned            int
	inputsDropped     int
	gravityResets     int

	collapseAges    []float64
	lifetimes       []float64
	clusteredDeaths int

	// Events since the last flush, for events.csv
	events []Event
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Record counts an event toward the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventBurst:
		c.bursts++
		c.burstParticles += ev.Count
	case EventSplash:
		c.splashes++
		c.splashParticles += ev.Count
	case EventClusterFormed:
		c.clustersFormed++
	case EventClusterCollapsed:
		if ev.Detail == "oversize" {
			c.collapsedOversize++
		} else {
			c.collapsedExpired++
		}
		c.collapseAges = append(c.collapseAges, ev.Value)
	case EventEvicted:
		c.evicted += ev.Count
	case EventPruned:
		c.pruned += ev.Count
	case EventInputDropped:
		c.inputsDropped++
	case EventGravityReset:
		c.gravityResets++
	}
	c.events = append(c.events, ev)
}

// RecordRemoval folds a removed particle's lifetime into the window.
func (c *Collector) RecordRemoval(ls *LifetimeStats) {
	if ls == nil {
		return
	}
	c.lifetimes = append(c.lifetimes, ls.Lifetime())
	if ls.Clusterings > 0 {
		c.clusteredDeaths++
	}
}

// ShouldFlush returns true once the window has covered its duration.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStartTime >= c.windowDurationSec
}

// Population is the world state sampled at window end.
type Population struct {
	Free      int
	Clustered int
	Clusters  int

	ParticleSizes  []float64 // Base sizes of free particles
	ClusterMembers []float64 // Member count per cluster
}

// Flush produces a WindowStats and the window's events, then resets for the next window.
func (c *Collector) Flush(currentTick int32, simTime float64, pop Population) (WindowStats, []Event) {
	sizeMean, sizeP10, sizeP50, sizeP90 := Distribution(pop.ParticleSizes)

	var membersMax float64
	for _, m := range pop.ClusterMembers {
		membersMax = max(membersMax, m)
	}

	var clusteredFraction float64
	if len(c.lifetimes) > 0 {
		clusteredFraction = float64(c.clusteredDeaths) / float64(len(c.lifetimes))
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      simTime,

		FreeParticles:      pop.Free,
		ClusteredParticles: pop.Clustered,
		Clusters:           pop.Clusters,

		Bursts:          c.bursts,
		BurstParticles:  c.burstParticles,
		Splashes:        c.splashes,
		SplashParticles: c.splashParticles,

		ClustersFormed:    c.clustersFormed,
		CollapsedExpired:  c.collapsedExpired,
		CollapsedOversize: c.collapsedOversize,
		CollapseAgeMean:   meanOrZero(c.collapseAges),

		Evicted:       c.evicted,
		Pruned:        c.pruned,
		InputsDropped: c.inputsDropped,
		GravityResets: c.gravityResets,

		SizeMean: sizeMean,
		SizeP10:  sizeP10,
		SizeP50:  sizeP50,
		SizeP90:  sizeP90,

		MembersMean: meanOrZero(pop.ClusterMembers),
		MembersMax:  membersMax,

		LifetimeMean:      meanOrZero(c.lifetimes),
		ClusteredFraction: clusteredFraction,
	}
	events := c.events

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowStartTime = simTime
	c.bursts = 0
	c.burstParticles = 0
	c.splashes = 0
	c.splashParticles = 0
	c.clustersFormed = 0
	c.collapsedExpired = 0
	c.collapsedOversize = 0
	c.evicted = 0
	c.pruned = 0
	c.inputsDropped = 0
	c.gravityResets = 0
	c.collapseAges = c.collapseAges[:0]
	c.lifetimes = c.lifetimes[:0]
	c.clusteredDeaths = 0
	c.events = nil

	return stats, events
}

// WindowDuration returns the window length in simulation seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
