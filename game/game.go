// Package game wires the world and systems into a steppable bubble scene.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/config"
	"github.com/pthm-cable/bloom/systems"
	"github.com/pthm-cable/bloom/telemetry"
	"github.com/pthm-cable/bloom/world"
)

// Totals are running counters since the game was created.
type Totals struct {
	Bursts         int
	Splashes       int
	ClustersFormed int
	Collapses      int
	Evicted        int
	Pruned         int
	InputsDropped  int
	GravityResets  int
}

// Stats is a point-in-time summary of the scene.
type Stats struct {
	Tick          int32
	Elapsed       float64
	Free          int
	Clustered     int
	Clusters      int
	Gravity       r3.Vec
	GravityActive bool
	Totals        Totals
}

// Game holds the complete scene state.
// Step, Snapshot and Stats must be called from a single goroutine; the
// pointer methods may be called from any goroutine.
type Game struct {
	cfg   *config.Config
	world *world.World
	rng   *rand.Rand
	seed  int64

	// Systems
	gravity   *systems.GravityField
	physics   *systems.PhysicsSystem
	clusterer *systems.Clusterer
	lifecycle *systems.Lifecycle
	emitter   *systems.Emitter
	pulse     systems.Pulse
	registry  *systems.SystemRegistry

	// Queued pointer input, double buffered
	inputMu sync.Mutex
	input   []inputEvent
	spare   []inputEvent

	// State
	tick   int32
	paused bool
	totals Totals

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	lifetimeTracker  *telemetry.LifetimeTracker
	logStats         bool
	snapshotDir      string
	statsCallback    func(telemetry.WindowStats)
}

// NewGame creates a game from an explicit config.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	index, err := systems.NewAdjacencyIndex(cfg.Clustering)
	if err != nil {
		return nil, fmt.Errorf("adjacency index: %w", err)
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	w := world.New()
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:   cfg,
		world: w,
		rng:   rng,
		seed:  opts.Seed,

		gravity:   systems.NewGravityField(cfg.Gesture),
		physics:   systems.NewPhysicsSystem(w.ECS(), cfg.Physics),
		clusterer: systems.NewClusterer(index, cfg.Clustering.ProximityMultiplier),
		lifecycle: systems.NewLifecycle(cfg.Clustering, cfg.Simulation.MaxClusters, rng),
		emitter:   systems.NewEmitter(cfg, rng),
		pulse:     systems.NewPulse(cfg.Pulse),
		registry:  systems.NewSystemRegistry(),

		collector:        telemetry.NewCollector(statsWindow),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		outputManager:    om,
		bookmarkDetector: telemetry.NewBookmarkDetector(10, cfg.Simulation.MaxClusters),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
	}

	slog.Debug("game_created",
		"seed", opts.Seed,
		"index", cfg.Clustering.Index,
		"max_particles", cfg.Simulation.MaxParticles,
		"max_clusters", cfg.Simulation.MaxClusters,
	)
	return g, nil
}

// SetStatsCallback registers a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Stats returns a summary of the current scene.
func (g *Game) Stats() Stats {
	return Stats{
		Tick:          g.tick,
		Elapsed:       g.world.Elapsed,
		Free:          g.world.FreeCount(),
		Clustered:     g.world.ClusteredCount(),
		Clusters:      g.world.ClusterCount(),
		Gravity:       g.gravity.Force(),
		GravityActive: g.gravity.Active(),
		Totals:        g.totals,
	}
}

// Tick returns the number of steps taken.
func (g *Game) Tick() int32 {
	return g.tick
}

// Elapsed returns the simulation clock in seconds.
func (g *Game) Elapsed() float64 {
	return g.world.Elapsed
}

// Paused reports whether the interactive loop should skip stepping.
func (g *Game) Paused() bool {
	return g.paused
}

// TogglePause flips the paused flag used by the interactive loop.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// Config returns the game's configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Registry returns system metadata for display.
func (g *Game) Registry() *systems.SystemRegistry {
	return g.registry
}

// PerfStats returns timing statistics over the perf window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// RecordFrame records a rendered frame for FPS measurement.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// SetForceScale changes how strongly swipes push the scene.
func (g *Game) SetForceScale(scale float64) {
	g.cfg.Gesture.ForceScale = scale
	g.gravity.SetForceScale(scale)
}

// Verify checks the world's referential integrity.
func (g *Game) Verify() error {
	return g.world.Verify()
}

// Unload flushes and closes telemetry output.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
