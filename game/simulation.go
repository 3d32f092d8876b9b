package game

import (
	"math"

	"github.com/pthm-cable/bloom/telemetry"
)

// Step advances the scene by dt seconds. A non-positive or non-finite dt
// is ignored.
func (g *Game) Step(dt float64) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}

	perf := g.perfCollector
	perf.StartTick()

	perf.StartPhase(telemetry.PhaseInput)
	g.drainInput()
	g.tick++
	g.world.Elapsed += dt
	now := g.world.Elapsed

	perf.StartPhase(telemetry.PhaseGravity)
	if g.gravity.Advance(now) {
		g.totals.GravityResets++
		g.recordEvent(telemetry.NewGravityResetEvent(g.tick, now))
	}
	g.world.Gravity = g.gravity.Force()

	perf.StartPhase(telemetry.PhasePhysics)
	perf.Count(telemetry.CounterIntegrated, g.physics.UpdateParticles(g.world.Gravity, dt))

	perf.StartPhase(telemetry.PhaseProximity)
	free := g.world.FreeParticles()
	groups := g.clusterer.Groups(free)
	perf.Count(telemetry.CounterCandidates, len(free))
	perf.Count(telemetry.CounterPairs, g.clusterer.Pairs())

	perf.StartPhase(telemetry.PhaseLifecycle)
	g.formClusters(groups)

	// Newly formed clusters integrate this frame too
	perf.StartPhase(telemetry.PhasePhysics)
	perf.Count(telemetry.CounterIntegrated, g.physics.UpdateClusters(g.world.Gravity, dt))

	perf.StartPhase(telemetry.PhaseLifecycle)
	requests := g.lifecycle.Collapse(g.world)

	perf.StartPhase(telemetry.PhaseEmission)
	g.splash(requests)

	perf.StartPhase(telemetry.PhaseCleanup)
	g.prune()

	perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	perf.EndTick()
}
