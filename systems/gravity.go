package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/config"
)

// ResetTimer is a pending gravity reset. It only fires if Generation still matches
// the field's gesture generation when Due is reached.
type ResetTimer struct {
	Due        float64 // simulation time in seconds
	Generation uint64
}

// GravityField turns pointer gestures into a transient uniform force.
type GravityField struct {
	forceScale float64
	threshold  float64
	resetDelay float64

	force      r3.Vec
	active     bool // a swipe has set the force during the current or last gesture
	pressed    bool
	last       r3.Vec
	generation uint64
	pending    *ResetTimer
}

// NewGravityField creates a gravity field controller from gesture config.
func NewGravityField(cfg config.GestureConfig) *GravityField {
	return &GravityField{
		forceScale: cfg.ForceScale,
		threshold:  cfg.Threshold,
		resetDelay: cfg.ResetDelay,
	}
}

// PointerDown starts a gesture at p. The caller emits the burst for the tap.
// Starting a gesture bumps the generation, so a reset still pending from the
// previous gesture is discarded when it comes due.
func (g *GravityField) PointerDown(p r3.Vec) {
	g.pressed = true
	g.last = p
	g.generation++
}

// PointerMove samples the pointer while pressed. A displacement above the threshold
// on either axis sets the force to (scale·dx, -scale·dy, 0).
func (g *GravityField) PointerMove(p r3.Vec) {
	if !g.pressed {
		return
	}
	dx := p.X - g.last.X
	dy := p.Y - g.last.Y
	if math.Abs(dx) > g.threshold || math.Abs(dy) > g.threshold {
		g.active = true
		g.force = r3.Vec{X: dx * g.forceScale, Y: -dy * g.forceScale}
	}
	g.last = p
}

// PointerUp ends the gesture. If a swipe set the force, a reset is scheduled
// resetDelay seconds after now.
func (g *GravityField) PointerUp(now float64) {
	g.pressed = false
	if !g.active {
		return
	}
	g.pending = &ResetTimer{Due: now + g.resetDelay, Generation: g.generation}
}

// Advance fires the pending reset once now reaches its due time.
// It reports whether the force was cleared.
func (g *GravityField) Advance(now float64) bool {
	if g.pending == nil || now < g.pending.Due {
		return false
	}
	t := g.pending
	g.pending = nil
	if t.Generation != g.generation {
		return false
	}
	g.force = r3.Vec{}
	g.active = false
	return true
}

// SetForceScale changes the swipe-to-force multiplier for subsequent moves.
func (g *GravityField) SetForceScale(scale float64) {
	g.forceScale = scale
}

// Force returns the current force vector.
func (g *GravityField) Force() r3.Vec {
	return g.force
}

// Active reports whether a swipe force is in effect.
func (g *GravityField) Active() bool {
	return g.active
}

// Pressed reports whether a gesture is in progress.
func (g *GravityField) Pressed() bool {
	return g.pressed
}

// Pending returns the scheduled reset, if any.
func (g *GravityField) Pending() (ResetTimer, bool) {
	if g.pending == nil {
		return ResetTimer{}, false
	}
	return *g.pending, true
}

// Reset clears the force and any pending timer.
func (g *GravityField) Reset() {
	g.force = r3.Vec{}
	g.active = false
	g.pressed = false
	g.generation++
	g.pending = nil
}
