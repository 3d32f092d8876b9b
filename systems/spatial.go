package systems

import "math"

// cellKey addresses one cell of the unbounded 3D grid.
type cellKey struct {
	X, Y, Z int
}

// GridIndex buckets points into uniform cubic cells so only nearby cells are compared.
// The world is unbounded, so cells are hashed rather than stored in a flat array.
type GridIndex struct {
	cellSize float64
	cells    map[cellKey][]int
}

// NewGridIndex creates a grid index with the given cell edge length.
func NewGridIndex(cellSize float64) *GridIndex {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &GridIndex{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
	}
}

// Clear removes all points and cells from the grid. Points drift through
// an unbounded world, so buckets are not kept between calls.
func (g *GridIndex) Clear() {
	clear(g.cells)
}

// Insert adds point index i at the given position.
func (g *GridIndex) Insert(i int, p Point) {
	k := g.key(p.Position.X, p.Position.Y, p.Position.Z)
	g.cells[k] = append(g.cells[k], i)
}

// Adjacent implements AdjacencyIndex.
func (g *GridIndex) Adjacent(points []Point, multiplier float64) []Pair {
	g.Clear()
	maxSize := 0.0
	for i, p := range points {
		g.Insert(i, p)
		if p.Size > maxSize {
			maxSize = p.Size
		}
	}

	var pairs []Pair
	for i, p := range points {
		// Widest threshold this point can have against any other
		radius := (p.Size + maxSize) * multiplier
		reach := int(math.Ceil(radius / g.cellSize))
		center := g.key(p.Position.X, p.Position.Y, p.Position.Z)

		for dx := -reach; dx <= reach; dx++ {
			for dy := -reach; dy <= reach; dy++ {
				for dz := -reach; dz <= reach; dz++ {
					k := cellKey{center.X + dx, center.Y + dy, center.Z + dz}
					for _, j := range g.cells[k] {
						if j <= i {
							continue
						}
						if adjacent(p, points[j], multiplier) {
							pairs = append(pairs, Pair{I: i, J: j})
						}
					}
				}
			}
		}
	}

	sortPairs(pairs)
	return pairs
}

// key returns the cell containing a world position.
func (g *GridIndex) key(x, y, z float64) cellKey {
	return cellKey{
		X: int(math.Floor(x / g.cellSize)),
		Y: int(math.Floor(y / g.cellSize)),
		Z: int(math.Floor(z / g.cellSize)),
	}
}
