package ui

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/camera"
)

// PointerSink receives pointer samples on the working plane.
type PointerSink interface {
	PointerDown(p r3.Vec) error
	PointerMove(p r3.Vec) error
	PointerUp()
}

// Pointer turns left-mouse gestures into working-plane pointer samples.
type Pointer struct {
	cam  *camera.Camera
	down bool
	last rl.Vector2
}

// NewPointer creates a pointer that unprojects through cam.
func NewPointer(cam *camera.Camera) *Pointer {
	return &Pointer{cam: cam}
}

// Update polls the mouse once per rendered frame. Presses that start on a UI
// panel are ignored; a gesture already in progress keeps tracking over panels.
func (p *Pointer) Update(sink PointerSink, overUI bool) {
	mouse := rl.GetMousePosition()

	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overUI:
		if pos, ok := p.unproject(mouse); ok {
			if err := sink.PointerDown(pos); err != nil {
				slog.Debug("pointer_rejected", "error", err)
				return
			}
			p.down = true
			p.last = mouse
		}
	case p.down && rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		p.down = false
		sink.PointerUp()
	case p.down && mouse != p.last:
		if pos, ok := p.unproject(mouse); ok {
			if err := sink.PointerMove(pos); err != nil {
				slog.Debug("pointer_rejected", "error", err)
			}
		}
		p.last = mouse
	}
}

func (p *Pointer) unproject(m rl.Vector2) (r3.Vec, bool) {
	return p.cam.Unproject(float64(m.X), float64(m.Y))
}
