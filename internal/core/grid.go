// Package core defines the grid domain model shared by the heuristic,
// constraint, and planner packages: the 2-D obstacle map, its 3-D rotation
// lattice, and the path types every component exchanges.
package core

// Loc2D is a 2-D cell id in [0, R*C), row-major: loc = row*C + col.
type Loc2D int

// Grid is an R x C rectangular obstacle map. It is immutable after
// construction and may be shared across any number of planner invocations.
type Grid struct {
	Rows, Cols int
	obstacle   []bool
}

// NewGrid creates an all-traversable R x C grid.
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		Rows:     rows,
		Cols:     cols,
		obstacle: make([]bool, rows*cols),
	}
}

// Size returns the base 2-D map size B = R*C.
func (g *Grid) Size() int { return g.Rows * g.Cols }

// Linearize converts a (row, col) pair to a Loc2D.
func (g *Grid) Linearize(row, col int) Loc2D { return Loc2D(row*g.Cols + col) }

// RowOf returns the row coordinate of a 2-D location.
func (g *Grid) RowOf(loc Loc2D) int { return int(loc) / g.Cols }

// ColOf returns the column coordinate of a 2-D location.
func (g *Grid) ColOf(loc Loc2D) int { return int(loc) % g.Cols }

// SetObstacle marks a cell as an obstacle (or clears it).
func (g *Grid) SetObstacle(loc Loc2D, obstacle bool) {
	g.obstacle[loc] = obstacle
}

// IsObstacle reports whether a 2-D location is blocked.
func (g *Grid) IsObstacle(loc Loc2D) bool {
	return g.obstacle[loc]
}

// InBounds reports whether a (row, col) pair lies on the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Neighbors2D returns the traversable 4-connected neighbors of loc.
func (g *Grid) Neighbors2D(loc Loc2D) []Loc2D {
	row, col := g.RowOf(loc), g.ColOf(loc)
	var out []Loc2D
	candidates := [4][2]int{
		{row - 1, col},
		{row + 1, col},
		{row, col - 1},
		{row, col + 1},
	}
	for _, c := range candidates {
		if !g.InBounds(c[0], c[1]) {
			continue
		}
		next := g.Linearize(c[0], c[1])
		if g.IsObstacle(next) {
			continue
		}
		out = append(out, next)
	}
	return out
}

// Manhattan returns the L1 distance between two 2-D locations.
func (g *Grid) Manhattan(a, b Loc2D) int {
	dr := g.RowOf(a) - g.RowOf(b)
	dc := g.ColOf(a) - g.ColOf(b)
	return absInt(dr) + absInt(dc)
}

// Degree returns the number of traversable 4-neighbors of loc.
func (g *Grid) Degree(loc Loc2D) int {
	return len(g.Neighbors2D(loc))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
