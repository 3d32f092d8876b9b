package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// BackgroundRenderer fills the screen with a vertical gradient that darkens
// from the base color towards black.
type BackgroundRenderer struct {
	top    rl.Color
	bottom rl.Color
}

// NewBackgroundRenderer creates a background from a base color.
func NewBackgroundRenderer(base colorful.Color) *BackgroundRenderer {
	return &BackgroundRenderer{
		top:    toRL(base, 1),
		bottom: toRL(base.BlendLab(colorful.Color{}, 0.7), 1),
	}
}

// Draw renders the gradient across the full screen.
func (b *BackgroundRenderer) Draw(screenW, screenH int32) {
	rl.DrawRectangleGradientV(0, 0, screenW, screenH, b.top, b.bottom)
}
