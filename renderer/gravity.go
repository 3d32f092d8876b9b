package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

var gravityColor = rl.Color{R: 255, G: 220, B: 120, A: 200}

// drawGravity draws the force field as an arrow from the origin on the working plane.
func drawGravity(force r3.Vec) {
	if r3.Norm2(force) == 0 {
		return
	}
	tip := vec3(force)
	shaft := vec3(r3.Scale(0.8, force))
	rl.DrawCylinderEx(rl.Vector3{}, shaft, 0.05, 0.05, 8, gravityColor)
	rl.DrawCylinderEx(shaft, tip, 0.15, 0, 8, gravityColor)
	rl.DrawSphere(rl.Vector3{}, 0.08, gravityColor)
}
