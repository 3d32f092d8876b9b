package game

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/telemetry"
	"github.com/pthm-cable/bloom/world"
)

type inputKind uint8

const (
	inputDown inputKind = iota
	inputMove
	inputUp
	inputClear
	inputDropped
)

// inputEvent is a pointer sample queued for the next Step.
type inputEvent struct {
	kind inputKind
	pos  r3.Vec
}

// PointerDown starts a gesture at p on the working plane and emits a burst there.
// Safe to call from any goroutine; takes effect at the start of the next Step.
func (g *Game) PointerDown(p r3.Vec) error {
	return g.enqueuePoint(inputDown, p)
}

// PointerMove samples the pointer while a gesture is in progress.
// Safe to call from any goroutine.
func (g *Game) PointerMove(p r3.Vec) error {
	return g.enqueuePoint(inputMove, p)
}

// PointerUp ends the current gesture. Safe to call from any goroutine.
func (g *Game) PointerUp() {
	g.enqueue(inputEvent{kind: inputUp})
}

// Clear removes every particle and cluster and zeroes the force field at the
// start of the next Step.
func (g *Game) Clear() {
	g.enqueue(inputEvent{kind: inputClear})
}

func (g *Game) enqueuePoint(kind inputKind, p r3.Vec) error {
	if !world.Finite(p) {
		g.enqueue(inputEvent{kind: inputDropped})
		return fmt.Errorf("pointer at %v: %w", p, world.ErrNonFinite)
	}
	g.enqueue(inputEvent{kind: kind, pos: p})
	return nil
}

func (g *Game) enqueue(ev inputEvent) {
	g.inputMu.Lock()
	g.input = append(g.input, ev)
	g.inputMu.Unlock()
}

// drainInput applies every queued pointer event in arrival order.
func (g *Game) drainInput() {
	g.inputMu.Lock()
	pending := g.input
	g.input = g.spare[:0]
	g.inputMu.Unlock()

	now := g.world.Elapsed
	for _, ev := range pending {
		switch ev.kind {
		case inputDown:
			if _, ok := g.gravity.Pending(); ok {
				slog.Debug("gesture_reset_cancelled", "tick", g.tick)
			}
			g.gravity.PointerDown(ev.pos)
			g.burst(ev.pos)
		case inputMove:
			g.gravity.PointerMove(ev.pos)
		case inputUp:
			g.gravity.PointerUp(now)
		case inputClear:
			g.clearWorld()
		case inputDropped:
			slog.Debug("input_dropped", "tick", g.tick, "reason", "non-finite")
			g.totals.InputsDropped++
			g.recordEvent(telemetry.NewInputDroppedEvent(g.tick, now, "non-finite"))
		}
	}
	g.spare = pending[:0]
}
