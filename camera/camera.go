// Package camera provides the perspective camera that maps between screen
// pixels and the simulation's working plane.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/config"
)

// Camera is a perspective camera looking at the world origin with +Y up.
// Pointer input is projected onto the z=0 plane.
type Camera struct {
	// Position is the eye in world coordinates
	Position r3.Vec

	// FOV is the vertical field of view in degrees
	FOV float64

	// Viewport dimensions (screen size in pixels)
	ViewportW, ViewportH float64

	forward, right, up r3.Vec
}

// New creates a camera on the +Z axis at the configured distance.
func New(cfg config.CameraConfig, viewportW, viewportH float64) *Camera {
	c := &Camera{
		Position:  r3.Vec{Z: cfg.PositionZ},
		FOV:       cfg.FOV,
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
	c.updateBasis()
	return c
}

// Resize updates the viewport after a window size change.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

func (c *Camera) updateBasis() {
	c.forward = r3.Unit(r3.Scale(-1, c.Position))
	c.right = r3.Unit(r3.Cross(c.forward, r3.Vec{Y: 1}))
	c.up = r3.Cross(c.right, c.forward)
}

func (c *Camera) tanHalf() float64 {
	return math.Tan(c.FOV * math.Pi / 360)
}

func (c *Camera) aspect() float64 {
	if c.ViewportH == 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// Ray returns the unit direction of the pick ray through a screen pixel.
func (c *Camera) Ray(sx, sy float64) r3.Vec {
	ndcX := 2*sx/c.ViewportW - 1
	ndcY := 1 - 2*sy/c.ViewportH
	th := c.tanHalf()

	dir := r3.Add(c.forward, r3.Add(
		r3.Scale(ndcX*th*c.aspect(), c.right),
		r3.Scale(ndcY*th, c.up),
	))
	return r3.Unit(dir)
}

// Unproject intersects the pick ray through a screen pixel with the z=0 plane.
// It reports false when the ray is parallel to or points away from the plane,
// or the viewport is empty.
func (c *Camera) Unproject(sx, sy float64) (r3.Vec, bool) {
	if c.ViewportW <= 0 || c.ViewportH <= 0 {
		return r3.Vec{}, false
	}
	dir := c.Ray(sx, sy)
	if math.Abs(dir.Z) < 1e-12 {
		return r3.Vec{}, false
	}
	t := -c.Position.Z / dir.Z
	if t <= 0 {
		return r3.Vec{}, false
	}
	p := r3.Add(c.Position, r3.Scale(t, dir))
	p.Z = 0
	return p, true
}

// Project maps a world point to screen pixels.
// It reports false for points at or behind the eye.
func (c *Camera) Project(p r3.Vec) (sx, sy float64, ok bool) {
	rel := r3.Sub(p, c.Position)
	depth := r3.Dot(rel, c.forward)
	if depth <= 0 {
		return 0, 0, false
	}
	th := c.tanHalf()
	x := r3.Dot(rel, c.right) / (depth * th * c.aspect())
	y := r3.Dot(rel, c.up) / (depth * th)

	sx = (x + 1) / 2 * c.ViewportW
	sy = (1 - y) / 2 * c.ViewportH
	return sx, sy, true
}

// VisibleHalfExtent returns the half width and half height of the z=0 plane
// that fits in the viewport.
func (c *Camera) VisibleHalfExtent() (halfW, halfH float64) {
	halfH = math.Abs(c.Position.Z) * c.tanHalf()
	return halfH * c.aspect(), halfH
}

// Up returns the camera's up vector in world coordinates.
func (c *Camera) Up() r3.Vec {
	return c.up
}

// Right returns the camera's right vector in world coordinates.
func (c *Camera) Right() r3.Vec {
	return c.right
}
