package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// uniform returns a value in [lo, hi). A degenerate range returns lo.
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// symmetric returns a value in [-extent, extent).
func symmetric(rng *rand.Rand, extent float64) float64 {
	return (rng.Float64() - 0.5) * 2 * extent
}

// sphericalOffset returns a vector of the given length in a random direction
// chosen from two uniform angles.
func sphericalOffset(rng *rand.Rand, radius float64) r3.Vec {
	a := rng.Float64() * 2 * math.Pi
	b := rng.Float64() * 2 * math.Pi
	return r3.Vec{
		X: radius * math.Sin(a) * math.Cos(b),
		Y: radius * math.Sin(a) * math.Sin(b),
		Z: radius * math.Cos(a),
	}
}

// clamp01 clamps v to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
