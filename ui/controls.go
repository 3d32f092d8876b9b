package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the controls panel displays.
type ControlsState struct {
	Paused     bool
	ForceScale float64
	MaxForce   float64 // Upper bound of the force slider
}

// ControlsAction reports what the user changed this frame.
type ControlsAction struct {
	TogglePause bool
	Clear       bool
	ForceScale  float64
	ScaleMoved  bool
}

// ControlsPanel renders the raygui buttons and sliders on the right edge.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewControlsPanel creates a controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Contains reports whether a screen point lies on the panel, so pointer
// input there is not forwarded to the scene.
func (c *ControlsPanel) Contains(p rl.Vector2) bool {
	bounds := rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height)}
	return rl.CheckCollisionPointRec(p, bounds)
}

// Draw renders the panel and returns the user's actions.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) ControlsAction {
	r := c.renderer
	padding := r.Theme.Padding
	inner := float32(c.width - padding*2)
	lineHeight := r.Theme.LineHeight

	c.height = padding*2 + 30 + 8 + lineHeight + 24 + 8 + lineHeight + int32(len(overlays.All()))*28
	r.DrawPanel(c.x, c.y, c.width, c.height)

	action := ControlsAction{ForceScale: state.ForceScale}
	x := float32(c.x + padding)
	y := float32(c.y + padding)
	half := (inner - 10) / 2

	pauseLabel := "Pause"
	if state.Paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 30}, pauseLabel) {
		action.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 30}, "Clear") {
		action.Clear = true
	}
	y += 38

	rl.DrawText(fmt.Sprintf("Swipe force: %.1f", state.ForceScale), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += float32(lineHeight)
	scale := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: inner, Height: 20},
		"", "",
		float32(state.ForceScale), 0, float32(state.MaxForce),
	)
	if float64(scale) != state.ForceScale {
		action.ForceScale = float64(scale)
		action.ScaleMoved = true
	}
	y += 32

	r.DrawSectionHeader(int32(x), int32(y), "Overlays")
	y += float32(lineHeight)
	for _, desc := range overlays.All() {
		label := fmt.Sprintf("[%s] %s", onOff(overlays.IsEnabled(desc.ID)), desc.Name)
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: 24}, label) {
			overlays.Toggle(desc.ID)
		}
		y += 28
	}

	return action
}

func onOff(on bool) string {
	if on {
		return "x"
	}
	return " "
}
