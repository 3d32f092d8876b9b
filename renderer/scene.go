package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/camera"
	"github.com/pthm-cable/bloom/game"
)

// DrawOptions selects optional scene layers.
type DrawOptions struct {
	Satellites bool // Mini bubbles inside clusters
	Gravity    bool // Force field arrow
	Outlines   bool // Wireframe around cluster bodies
}

// SceneRenderer draws particles and clusters as translucent spheres.
type SceneRenderer struct {
	camera  rl.Camera3D
	eye     r3.Vec
	rings   int32
	slices  int32
	bubbles []bubble
}

// NewSceneRenderer creates a renderer that views the scene through cam.
func NewSceneRenderer(cam *camera.Camera) *SceneRenderer {
	s := &SceneRenderer{rings: 12, slices: 16}
	s.SyncCamera(cam)
	return s
}

// SyncCamera copies the simulation camera into the raylib camera.
func (s *SceneRenderer) SyncCamera(cam *camera.Camera) {
	s.eye = cam.Position
	s.camera = rl.Camera3D{
		Position:   vec3(cam.Position),
		Target:     rl.Vector3{},
		Up:         vec3(cam.Up()),
		Fovy:       float32(cam.FOV),
		Projection: rl.CameraPerspective,
	}
}

// Draw renders one frame. Must be called between rl.BeginDrawing and rl.EndDrawing.
func (s *SceneRenderer) Draw(f game.Frame, opts DrawOptions) {
	s.bubbles = collectBubbles(s.bubbles, f, s.eye, opts.Satellites)

	rl.BeginMode3D(s.camera)
	if opts.Gravity && f.GravityActive {
		drawGravity(f.Gravity)
	}
	for _, b := range s.bubbles {
		rl.DrawSphereEx(b.center, b.radius, s.rings, s.slices, b.color)
		if opts.Outlines && b.cluster {
			rl.DrawSphereWires(b.center, b.radius*1.01, s.rings/2, s.slices/2, rl.Fade(rl.White, 0.2))
		}
	}
	rl.EndMode3D()
}
