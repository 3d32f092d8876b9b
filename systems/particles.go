package systems

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/components"
	"github.com/pthm-cable/bloom/config"
	"github.com/pthm-cable/bloom/world"
)

// Emission is the outcome of one emitter call.
type Emission struct {
	Spawned []components.ParticleID
	Evicted []components.ParticleID
}

// Emitter creates particles for taps and cluster collapses, then trims the
// population back to the cap by evicting the oldest particles.
type Emitter struct {
	burst        config.BurstConfig
	splash       config.SplashConfig
	palette      []colorful.Color
	fallback     colorful.Color
	maxParticles int
	rng          *rand.Rand
}

// NewEmitter creates an emitter from the loaded config.
func NewEmitter(cfg *config.Config, rng *rand.Rand) *Emitter {
	return &Emitter{
		burst:        cfg.Burst,
		splash:       cfg.Splash,
		palette:      cfg.Derived.Palette,
		fallback:     cfg.Derived.DefaultClusterColor,
		maxParticles: cfg.Simulation.MaxParticles,
		rng:          rng,
	}
}

// Burst spawns a handful of palette-colored particles around a tap point.
func (e *Emitter) Burst(w *world.World, at r3.Vec) (Emission, error) {
	if !world.Finite(at) {
		return Emission{}, fmt.Errorf("burst at %v: %w", at, world.ErrNonFinite)
	}

	n := e.burst.CountMin
	if e.burst.CountMax > e.burst.CountMin {
		n += e.rng.Intn(e.burst.CountMax - e.burst.CountMin)
	}

	var out Emission
	for i := 0; i < n; i++ {
		spec := world.ParticleSpec{
			Position: r3.Add(at, r3.Vec{
				X: symmetric(e.rng, e.burst.Jitter),
				Y: symmetric(e.rng, e.burst.Jitter),
				Z: symmetric(e.rng, e.burst.Jitter),
			}),
			Velocity: r3.Vec{
				X: symmetric(e.rng, e.burst.Speed),
				Y: symmetric(e.rng, e.burst.Speed),
				Z: symmetric(e.rng, e.burst.Speed),
			},
			Size:     uniform(e.rng, e.burst.SizeMin, e.burst.SizeMax),
			Phase:    e.rng.Float64() * 2 * math.Pi,
			Color:    e.paletteColor(),
			Lifespan: uniform(e.rng, e.burst.LifespanMin, e.burst.LifespanMax),
		}
		id, err := w.SpawnParticle(spec)
		if err != nil {
			return out, err
		}
		out.Spawned = append(out.Spawned, id)
	}

	out.Evicted = w.EnforceParticleCap(e.maxParticles)
	slog.Debug("burst", "x", at.X, "y", at.Y, "spawned", len(out.Spawned), "evicted", len(out.Evicted))
	return out, nil
}

// SplashCount returns how many particles a collapse of the given size scatters.
func (e *Emitter) SplashCount(size float64) int {
	return int(math.Floor(size*e.splash.CountPerSize)) + e.splash.CountBase
}

// Splash scatters particles outward from a collapsed cluster, tinted with
// the cluster's member colors.
func (e *Emitter) Splash(w *world.World, req SplashRequest) (Emission, error) {
	if !world.Finite(req.Position) {
		return Emission{}, fmt.Errorf("splash at %v: %w", req.Position, world.ErrNonFinite)
	}

	n := e.SplashCount(req.Size)
	var out Emission
	for i := 0; i < n; i++ {
		radius := e.rng.Float64() * req.Size * e.splash.RadiusScale
		offset := sphericalOffset(e.rng, radius)
		size := uniform(e.rng, e.splash.SizeMin, e.splash.SizeMax)
		speed := uniform(e.rng, e.splash.SpeedMin, e.splash.SpeedMax)

		var vel r3.Vec
		if radius > 0 {
			vel = r3.Scale(speed/radius, offset)
		}

		spec := world.ParticleSpec{
			Position: r3.Add(req.Position, r3.Scale(e.splash.OffsetScale, offset)),
			Velocity: vel,
			Size:     size,
			Phase:    e.rng.Float64() * 2 * math.Pi,
			Color:    e.splashColor(req.Colors),
			Lifespan: uniform(e.rng, e.splash.LifespanMin, e.splash.LifespanMax),
		}
		id, err := w.SpawnParticle(spec)
		if err != nil {
			return out, err
		}
		out.Spawned = append(out.Spawned, id)
	}

	out.Evicted = w.EnforceParticleCap(e.maxParticles)
	slog.Debug("splash",
		"cluster", uint64(req.Cluster),
		"spawned", len(out.Spawned),
		"evicted", len(out.Evicted),
	)
	return out, nil
}

func (e *Emitter) paletteColor() colorful.Color {
	if len(e.palette) == 0 {
		return e.fallback
	}
	return e.palette[e.rng.Intn(len(e.palette))]
}

func (e *Emitter) splashColor(colors []colorful.Color) colorful.Color {
	if len(colors) == 0 {
		return e.fallback
	}
	return colors[e.rng.Intn(len(colors))]
}
