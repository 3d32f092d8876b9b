package telemetry

import (
	"testing"
	"time"
)

// step records one tick with the given work counts and no phase timing.
func step(pc *PerfCollector, counts map[Counter]int) {
	pc.StartTick()
	for c, n := range counts {
		pc.Count(c, n)
	}
	pc.EndTick()
}

func TestPerfCollector_WorkAverages(t *testing.T) {
	pc := NewPerfCollector(10)
	step(pc, map[Counter]int{CounterCandidates: 40, CounterPairs: 10, CounterEmitted: 12})
	step(pc, map[Counter]int{CounterCandidates: 60, CounterPairs: 30})

	stats := pc.Stats()
	if stats.Ticks != 2 {
		t.Fatalf("Ticks = %d, want 2", stats.Ticks)
	}
	tests := []struct {
		counter Counter
		want    float64
	}{
		{CounterCandidates, 50},
		{CounterPairs, 20},
		{CounterEmitted, 6},
		{CounterPruned, 0},
	}
	for _, tt := range tests {
		if got := stats.Work(tt.counter); got != tt.want {
			t.Errorf("Work(%s) = %v, want %v", tt.counter, got, tt.want)
		}
	}
	if stats.PairDensity != 0.4 {
		t.Errorf("PairDensity = %v, want 0.4", stats.PairDensity)
	}
}

func TestPerfCollector_CountOutsideStep(t *testing.T) {
	pc := NewPerfCollector(4)
	pc.Count(CounterEmitted, 100) // dropped by the next StartTick
	pc.StartTick()
	pc.Count(CounterEmitted, 3)
	pc.Count(CounterEmitted, -5)
	pc.Count(NumCounters, 7)
	pc.EndTick()

	if got := pc.Stats().Work(CounterEmitted); got != 3 {
		t.Errorf("emitted per tick = %v, want 3", got)
	}
}

func TestPerfCollector_WindowForgetsOldSteps(t *testing.T) {
	pc := NewPerfCollector(2)
	step(pc, map[Counter]int{CounterPruned: 90})
	step(pc, map[Counter]int{CounterPruned: 2})
	step(pc, map[Counter]int{CounterPruned: 4})

	stats := pc.Stats()
	if stats.Ticks != 2 {
		t.Errorf("Ticks = %d, want window size 2", stats.Ticks)
	}
	if got := stats.Work(CounterPruned); got != 3 {
		t.Errorf("pruned per tick = %v, want 3", got)
	}
}

func TestPerfCollector_PhaseAccumulates(t *testing.T) {
	pc := NewPerfCollector(10)
	for i := 0; i < 3; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePhysics)
		time.Sleep(200 * time.Microsecond)
		pc.StartPhase(PhaseProximity)
		pc.Count(CounterCandidates, 20)
		time.Sleep(100 * time.Microsecond)
		// Physics runs a second time after clusters form
		pc.StartPhase(PhasePhysics)
		time.Sleep(200 * time.Microsecond)
		pc.StartPhase("not-a-phase")
		time.Sleep(50 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhaseAvg[PhasePhysics] < 400*time.Microsecond {
		t.Errorf("physics avg = %v, want both passes summed (>= 400µs)", stats.PhaseAvg[PhasePhysics])
	}
	if stats.PhasePct[PhasePhysics] <= stats.PhasePct[PhaseProximity] {
		t.Errorf("physics %.1f%% should exceed proximity %.1f%%",
			stats.PhasePct[PhasePhysics], stats.PhasePct[PhaseProximity])
	}
	if _, ok := stats.PhaseAvg["not-a-phase"]; ok {
		t.Error("unknown phase should not be reported")
	}
	if _, ok := stats.PhaseAvg[PhaseEmission]; ok {
		t.Error("phase that never ran should not be reported")
	}
	if stats.ProximityPerCandidate < 5*time.Microsecond {
		t.Errorf("ProximityPerCandidate = %v, want >= 5µs (100µs over 20 candidates)", stats.ProximityPerCandidate)
	}
	if stats.MinTickDuration > stats.AvgTickDuration || stats.AvgTickDuration > stats.MaxTickDuration {
		t.Errorf("min/avg/max out of order: %v %v %v",
			stats.MinTickDuration, stats.AvgTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.Ticks != 0 || stats.AvgTickDuration != 0 || stats.PairDensity != 0 {
		t.Errorf("empty collector should report zeros, got %+v", stats)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("phase maps should be non-nil")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.RecordFrame()
	if pc.Stats().FPS != 0 {
		t.Error("a single frame has no duration")
	}
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("FrameDuration = %v, want >= 15ms", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("FPS = %v, want (0, 70]", stats.FPS)
	}
}

func TestCounterString(t *testing.T) {
	if CounterPairs.String() != "pairs" || CounterPruned.String() != "pruned" {
		t.Errorf("got %q and %q", CounterPairs, CounterPruned)
	}
	if Counter(-1).String() != "unknown" || NumCounters.String() != "unknown" {
		t.Error("out of range counters should be unknown")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		PhasePct: map[string]float64{
			PhasePhysics:   40,
			PhaseProximity: 35,
			PhaseEmission:  5,
			PhaseInput:     2,
			PhaseTelemetry: 3,
		},
		ProximityPerCandidate: 900 * time.Nanosecond,
	}
	stats.WorkAvg[CounterPairs] = 12.5
	stats.WorkAvg[CounterEvicted] = 1
	stats.WorkAvg[CounterPruned] = 2.5

	row := stats.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgTickUS != 250 {
		t.Errorf("unexpected header fields: %+v", row)
	}
	if row.PhysicsPct != 40 || row.ProximityPct != 35 || row.EmissionPct != 5 || row.LifecyclePct != 0 {
		t.Errorf("phase percentages not mapped: %+v", row)
	}
	if row.OtherPct != 5 {
		t.Errorf("OtherPct = %v, want 5", row.OtherPct)
	}
	if row.Pairs != 12.5 || row.Removed != 3.5 || row.ProximityNS != 900 {
		t.Errorf("work columns not mapped: %+v", row)
	}
}
