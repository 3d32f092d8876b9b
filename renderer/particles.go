package renderer

import (
	"cmp"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/game"
)

// bubble is one translucent sphere queued for drawing.
type bubble struct {
	center  rl.Vector3
	radius  float32
	color   rl.Color
	depth   float64 // Squared distance to the eye
	cluster bool
}

// collectBubbles flattens a frame into spheres ordered far to near so alpha
// blending composes correctly.
func collectBubbles(dst []bubble, f game.Frame, eye r3.Vec, satellites bool) []bubble {
	dst = dst[:0]
	add := func(pos r3.Vec, size, opacity float64, c rl.Color, cluster bool) {
		if opacity <= 0 || size <= 0 {
			return
		}
		dst = append(dst, bubble{
			center:  vec3(pos),
			radius:  float32(size),
			color:   c,
			depth:   r3.Norm2(r3.Sub(pos, eye)),
			cluster: cluster,
		})
	}

	for _, p := range f.Particles {
		add(p.Position, p.Size, p.Opacity, toRL(p.Color, p.Opacity), false)
	}
	for _, c := range f.Clusters {
		add(c.Position, c.Size, c.Opacity, toRL(c.BlendedColor, c.Opacity), true)
		if !satellites {
			continue
		}
		for _, mb := range c.MiniBubbles {
			add(mb.Position, mb.Size, mb.Opacity, toRL(mb.Color, mb.Opacity), false)
		}
	}

	slices.SortStableFunc(dst, func(a, b bubble) int {
		return cmp.Compare(b.depth, a.depth)
	})
	return dst
}
