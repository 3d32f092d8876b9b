package components

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Body holds the physical extent of a particle or cluster.
// Size is the base radius; pulsation never writes back into it.
type Body struct {
	Size  float64
	Phase float64 // [0, 2π), fixed at creation
}

// Pulsed returns the visual radius at elapsed time t.
func (b Body) Pulsed(t, frequency, amplitude float64) float64 {
	return b.Size * (1 + math.Sin(t*frequency+b.Phase)*amplitude)
}

// Tint holds the particle's palette color.
type Tint struct {
	Color colorful.Color
}
