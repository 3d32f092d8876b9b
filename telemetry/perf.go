package telemetry

import (
	"context"
	"log/slog"
	"time"
)

// Phase names for the simulation step.
// These match the system IDs in the systems registry.
const (
	PhaseInput     = "input"
	PhaseGravity   = "gravity"
	PhasePhysics   = "physics"
	PhaseProximity = "proximity"
	PhaseLifecycle = "lifecycle"
	PhaseEmission  = "emission"
	PhaseCleanup   = "cleanup"
	PhaseTelemetry = "telemetry"
)

const numPhases = 8

// Phases lists every phase in step order.
var Phases = []string{
	PhaseInput, PhaseGravity, PhasePhysics, PhaseProximity,
	PhaseLifecycle, PhaseEmission, PhaseCleanup, PhaseTelemetry,
}

func phaseSlot(phase string) int {
	for i, p := range Phases {
		if p == phase {
			return i
		}
	}
	return -1
}

// Counter identifies a unit of work done during a step.
type Counter int

const (
	CounterIntegrated Counter = iota // bodies moved by physics
	CounterCandidates                // free particles handed to the proximity pass
	CounterPairs                     // adjacent pairs found
	CounterFormed                    // clusters formed
	CounterCollapsed                 // clusters collapsed
	CounterEmitted                   // particles spawned by bursts and splashes
	CounterEvicted                   // particles evicted by the cap
	CounterPruned                    // particles removed at end of life
	NumCounters
)

var counterNames = [NumCounters]string{
	"integrated", "candidates", "pairs", "formed",
	"collapsed", "emitted", "evicted", "pruned",
}

func (c Counter) String() string {
	if c < 0 || c >= NumCounters {
		return "unknown"
	}
	return counterNames[c]
}

// stepSample is the timing and work of one step. Phase time is indexed
// like Phases; the physics phase runs twice per step and accumulates.
type stepSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
	work   [NumCounters]int
}

// PerfCollector keeps a ring of recent step samples.
type PerfCollector struct {
	ring    []stepSample
	next    int
	filled  int
	current stepSample

	stepStart  time.Time
	phaseStart time.Time
	phase      int

	lastFrame     time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize steps
// (60 when windowSize is not positive).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		ring:  make([]stepSample, windowSize),
		phase: -1,
	}
}

// StartTick begins a step. Work counted before it is discarded.
func (p *PerfCollector) StartTick() {
	p.stepStart = time.Now()
	p.current = stepSample{}
	p.phase = -1
}

// StartPhase closes the running phase and starts timing the named one.
// Unknown names stop phase timing until the next known phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phaseSlot(phase)
}

// Count adds n units of work to the running step.
func (p *PerfCollector) Count(c Counter, n int) {
	if c < 0 || c >= NumCounters || n <= 0 {
		return
	}
	p.current.work[c] += n
}

// EndTick closes the step and pushes it into the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current.total = now.Sub(p.stepStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
	p.phase = -1
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// RecordFrame marks the end of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds window averages.
type PerfStats struct {
	Ticks int

	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Keyed by phase name
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Mean work per step, indexed by Counter
	WorkAvg [NumCounters]float64

	// Proximity time per candidate particle
	ProximityPerCandidate time.Duration
	// Adjacent pairs per candidate particle
	PairDensity float64

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats averages the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, len(Phases)),
		PhasePct:      make(map[string]float64, len(Phases)),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phases [numPhases]time.Duration
	var work [NumCounters]int
	for i, smp := range p.ring[:p.filled] {
		total += smp.total
		if i == 0 || smp.total < s.MinTickDuration {
			s.MinTickDuration = smp.total
		}
		s.MaxTickDuration = max(s.MaxTickDuration, smp.total)
		for k, d := range smp.phases {
			phases[k] += d
		}
		for k, n := range smp.work {
			work[k] += n
		}
	}

	n := time.Duration(p.filled)
	s.Ticks = p.filled
	s.AvgTickDuration = total / n
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	for k, name := range Phases {
		if phases[k] == 0 {
			continue
		}
		avg := phases[k] / n
		s.PhaseAvg[name] = avg
		if s.AvgTickDuration > 0 {
			s.PhasePct[name] = float64(avg) / float64(s.AvgTickDuration) * 100
		}
	}
	for k, sum := range work {
		s.WorkAvg[k] = float64(sum) / float64(p.filled)
	}
	if candidates := work[CounterCandidates]; candidates > 0 {
		s.ProximityPerCandidate = phases[phaseSlot(PhaseProximity)] / time.Duration(candidates)
		s.PairDensity = float64(work[CounterPairs]) / float64(candidates)
	}
	return s
}

// Work returns the mean of one counter per step.
func (s PerfStats) Work(c Counter) float64 {
	if c < 0 || c >= NumCounters {
		return 0
	}
	return s.WorkAvg[c]
}

func (s PerfStats) attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	for c := Counter(0); c < NumCounters; c++ {
		if s.WorkAvg[c] > 0 {
			attrs = append(attrs, slog.Float64(c.String()+"_per_tick", s.WorkAvg[c]))
		}
	}
	if s.ProximityPerCandidate > 0 {
		attrs = append(attrs, slog.Int64("proximity_ns_per_candidate", s.ProximityPerCandidate.Nanoseconds()))
	}
	return attrs
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.LogAttrs(context.Background(), slog.LevelInfo, "perf", s.attrs()...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	return slog.GroupValue(s.attrs()...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	PhysicsPct   float64 `csv:"physics_pct"`
	ProximityPct float64 `csv:"proximity_pct"`
	LifecyclePct float64 `csv:"lifecycle_pct"`
	EmissionPct  float64 `csv:"emission_pct"`
	OtherPct     float64 `csv:"other_pct"`
	Integrated   float64 `csv:"integrated_per_tick"`
	Candidates   float64 `csv:"candidates_per_tick"`
	Pairs        float64 `csv:"pairs_per_tick"`
	Emitted      float64 `csv:"emitted_per_tick"`
	Removed      float64 `csv:"removed_per_tick"`
	ProximityNS  int64   `csv:"proximity_ns_per_candidate"`
}

// ToCSV flattens the stats. Input, gravity, cleanup and telemetry time is
// folded into OtherPct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	row := PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		PhysicsPct:   s.PhasePct[PhasePhysics],
		ProximityPct: s.PhasePct[PhaseProximity],
		LifecyclePct: s.PhasePct[PhaseLifecycle],
		EmissionPct:  s.PhasePct[PhaseEmission],
		Integrated:   s.WorkAvg[CounterIntegrated],
		Candidates:   s.WorkAvg[CounterCandidates],
		Pairs:        s.WorkAvg[CounterPairs],
		Emitted:      s.WorkAvg[CounterEmitted],
		Removed:      s.WorkAvg[CounterEvicted] + s.WorkAvg[CounterPruned],
		ProximityNS:  s.ProximityPerCandidate.Nanoseconds(),
	}
	for _, phase := range []string{PhaseInput, PhaseGravity, PhaseCleanup, PhaseTelemetry} {
		row.OtherPct += s.PhasePct[phase]
	}
	return row
}
