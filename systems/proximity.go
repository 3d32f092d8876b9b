package systems

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/config"
)

// Point is a sphere submitted for adjacency testing.
type Point struct {
	Position r3.Vec
	Size     float64
}

// Pair is an adjacent pair of indices into the submitted points, with I < J.
type Pair struct {
	I, J int
}

// AdjacencyIndex finds every pair whose centers are closer than
// (size_i + size_j) * multiplier. Implementations must return pairs sorted by (I, J).
type AdjacencyIndex interface {
	Adjacent(points []Point, multiplier float64) []Pair
}

// NewAdjacencyIndex returns the index named by the clustering config.
func NewAdjacencyIndex(cfg config.ClusteringConfig) (AdjacencyIndex, error) {
	switch cfg.Index {
	case "", "pairwise":
		return PairwiseIndex{}, nil
	case "grid":
		return NewGridIndex(cfg.GridCellSize), nil
	default:
		return nil, fmt.Errorf("unknown adjacency index %q", cfg.Index)
	}
}

// adjacent reports whether a and b are within the proximity threshold.
func adjacent(a, b Point, multiplier float64) bool {
	limit := (a.Size + b.Size) * multiplier
	return r3.Norm2(r3.Sub(a.Position, b.Position)) < limit*limit
}

// PairwiseIndex tests every unordered pair. O(n²), fine at the default population cap.
type PairwiseIndex struct{}

// Adjacent implements AdjacencyIndex.
func (PairwiseIndex) Adjacent(points []Point, multiplier float64) []Pair {
	var pairs []Pair
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if adjacent(points[i], points[j], multiplier) {
				pairs = append(pairs, Pair{I: i, J: j})
			}
		}
	}
	return pairs
}

func sortPairs(pairs []Pair) {
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].I != pairs[b].I {
			return pairs[a].I < pairs[b].I
		}
		return pairs[a].J < pairs[b].J
	})
}
