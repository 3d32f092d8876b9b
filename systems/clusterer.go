package systems

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/pthm-cable/bloom/components"
	"github.com/pthm-cable/bloom/world"
)

// Clusterer partitions free particles into connected components of the
// proximity graph.
type Clusterer struct {
	index      AdjacencyIndex
	multiplier float64
	pairs      int
}

// NewClusterer creates a clusterer over the given adjacency index.
func NewClusterer(index AdjacencyIndex, multiplier float64) *Clusterer {
	return &Clusterer{index: index, multiplier: multiplier}
}

// Groups returns every connected component with at least two members.
// Components are ordered by their oldest member, and members within a
// component by insertion order. free must be in insertion order.
func (c *Clusterer) Groups(free []world.ParticleView) [][]components.ParticleID {
	c.pairs = 0
	if len(free) < 2 {
		return nil
	}

	points := make([]Point, len(free))
	for i, p := range free {
		points[i] = Point{Position: p.Position, Size: p.Size}
	}
	pairs := c.index.Adjacent(points, c.multiplier)
	c.pairs = len(pairs)
	if len(pairs) == 0 {
		return nil
	}

	g := simple.NewUndirectedGraph()
	for _, pr := range pairs {
		g.SetEdge(g.NewEdge(simple.Node(pr.I), simple.Node(pr.J)))
	}

	var groups [][]components.ParticleID
	var members []int
	bf := traverse.BreadthFirst{
		Visit: func(n graph.Node) {
			members = append(members, int(n.ID()))
		},
	}
	for i := range free {
		n := g.Node(int64(i))
		if n == nil || bf.Visited(n) {
			continue
		}
		members = members[:0]
		bf.Walk(g, n, nil)
		if len(members) < 2 {
			continue
		}
		sort.Ints(members)
		ids := make([]components.ParticleID, len(members))
		for k, m := range members {
			ids[k] = free[m].ID
		}
		groups = append(groups, ids)
	}
	return groups
}

// Pairs reports how many adjacent pairs the last Groups call found.
func (c *Clusterer) Pairs() int {
	return c.pairs
}
