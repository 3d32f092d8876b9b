package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/components"
	"github.com/pthm-cable/bloom/world"
)

func views(positions ...float64) []world.ParticleView {
	out := make([]world.ParticleView, len(positions))
	for i, x := range positions {
		out[i] = world.ParticleView{
			ID:       components.ParticleID(i + 1),
			Position: r3.Vec{X: x},
			Size:     0.5,
		}
	}
	return out
}

func TestClustererGroups(t *testing.T) {
	tests := []struct {
		name string
		free []world.ParticleView
		want [][]components.ParticleID
	}{
		{
			name: "pair merges",
			free: views(0, 0.5),
			want: [][]components.ParticleID{{1, 2}},
		},
		{
			name: "transitive chain",
			free: views(0, 1.4, 2.8),
			want: [][]components.ParticleID{{1, 2, 3}},
		},
		{
			name: "singletons excluded",
			free: views(0, 50, 100),
			want: nil,
		},
		{
			name: "ordered by oldest member",
			// 4 and 1 form the first group even though 2/3 are adjacent to each other first
			free: views(0, 20, 20.5, 0.5),
			want: [][]components.ParticleID{{1, 4}, {2, 3}},
		},
		{
			name: "single particle",
			free: views(0),
			want: nil,
		},
	}

	c := NewClusterer(PairwiseIndex{}, 1.5)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Groups(tt.free))
		})
	}
}

func TestClustererGridAgrees(t *testing.T) {
	free := views(0, 1.4, 2.8, 10, 10.2, 30)
	want := NewClusterer(PairwiseIndex{}, 1.5).Groups(free)
	got := NewClusterer(NewGridIndex(1), 1.5).Groups(free)
	assert.Equal(t, want, got)
}

func TestClustererRandomLayouts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pairwise := NewClusterer(PairwiseIndex{}, 1.5)

	for layout := 0; layout < 300; layout++ {
		n := 2 + rng.Intn(39)
		spread := 2 + rng.Float64()*20
		free := make([]world.ParticleView, n)
		points := make([]Point, n)
		for i := range free {
			free[i] = world.ParticleView{
				ID: components.ParticleID(i + 1),
				Position: r3.Vec{
					X: (rng.Float64() - 0.5) * spread,
					Y: (rng.Float64() - 0.5) * spread,
					Z: (rng.Float64() - 0.5) * spread / 4,
				},
				Size: 0.2 + rng.Float64()*1.5,
			}
			points[i] = Point{Position: free[i].Position, Size: free[i].Size}
		}

		groups := pairwise.Groups(free)
		adjacentPairs := PairwiseIndex{}.Adjacent(points, 1.5)
		assert.Equal(t, len(adjacentPairs), pairwise.Pairs(), "layout %d", layout)

		owner := make(map[components.ParticleID]int)
		for g, members := range groups {
			require.GreaterOrEqual(t, len(members), 2, "layout %d", layout)
			for _, id := range members {
				prev, seen := owner[id]
				require.False(t, seen, "layout %d: particle %d in groups %d and %d", layout, id, prev, g)
				owner[id] = g
			}
		}

		// Every adjacent pair shares a group, and each group is exactly one
		// component of the pair graph
		rootOf := unionFind(n, adjacentPairs)
		for _, pr := range adjacentPairs {
			a, b := free[pr.I].ID, free[pr.J].ID
			ga, okA := owner[a]
			gb, okB := owner[b]
			require.True(t, okA && okB, "layout %d: pair %v not grouped", layout, pr)
			require.Equal(t, ga, gb, "layout %d: pair %v split", layout, pr)
		}
		for _, members := range groups {
			root := rootOf[int(members[0])-1]
			for _, id := range members[1:] {
				require.Equal(t, root, rootOf[int(id)-1], "layout %d: group joins separate components", layout)
			}
		}

		for _, cell := range []float64{0.5, 2, 7} {
			got := NewClusterer(NewGridIndex(cell), 1.5).Groups(free)
			require.Equal(t, groups, got, "layout %d cell %v", layout, cell)
		}
	}
}

// unionFind returns the component root of every point index.
func unionFind(n int, pairs []Pair) []int {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for _, pr := range pairs {
		parent[find(pr.I)] = find(pr.J)
	}
	roots := make([]int, n)
	for i := range roots {
		roots[i] = find(i)
	}
	return roots
}
