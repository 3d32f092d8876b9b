// Package renderer draws game frames with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

// toRL converts a color and an opacity in [0, 1] to a raylib color.
func toRL(c colorful.Color, opacity float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	opacity = math.Max(0, math.Min(1, opacity))
	return rl.Color{R: r, G: g, B: b, A: uint8(math.Round(opacity * 255))}
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
