package systems

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/bloom/components"
)

// BlendColors averages the RGB components of colors.
// An empty list yields fallback.
func BlendColors(colors []colorful.Color, fallback colorful.Color) colorful.Color {
	if len(colors) == 0 {
		return fallback
	}
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}

// Opacity returns the display alpha for an entity, scaled by mult.
func Opacity(life components.Lifetime, fade, mult float64) float64 {
	return clamp01(life.Opacity(fade) * mult)
}
