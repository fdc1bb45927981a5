package core

// RotationPhases is W, the number of rotation phases a heading cycles
// through. A full turn between the two translation-eligible extremes
// (z=0 for vertical, z=W-1 for horizontal) costs W-1 rotation steps.
const RotationPhases = 5

// Loc3D is a 3-D lattice location: loc3 = z*B + loc2, z in [0, RotationPhases).
type Loc3D int

// Encode3D builds the 3-D location for (row, col, z).
func (g *Grid) Encode3D(row, col, z int) Loc3D {
	return Loc3D(z*g.Size() + int(g.Linearize(row, col)))
}

// EncodeLoc3D builds the 3-D location for (loc2, z).
func (g *Grid) EncodeLoc3D(loc2 Loc2D, z int) Loc3D {
	return Loc3D(z*g.Size()) + Loc3D(loc2)
}

// Project strips the rotation layer, returning the 2-D cell a 3-D state
// occupies. All constraints, heuristics, and emitted paths are expressed
// in this projected space; only expansion happens in 3-D.
func (g *Grid) Project(loc3 Loc3D) Loc2D {
	return Loc2D(int(loc3) % g.Size())
}

// Decode3D splits a 3-D location back into (row, col, z).
func (g *Grid) Decode3D(loc3 Loc3D) (row, col, z int) {
	base := g.Size()
	z = int(loc3) / base
	loc2 := Loc2D(int(loc3) % base)
	return g.RowOf(loc2), g.ColOf(loc2), z
}

// ZOf returns just the rotation phase of a 3-D location.
func (g *Grid) ZOf(loc3 Loc3D) int {
	return int(loc3) / g.Size()
}

// Neighbors3D returns the 3-D neighbors of loc3 under the rotation-layer
// rule: rotation z->z±1 is available whenever the cell is traversable
// (clamped to [0, W-1]); vertical translation row±1 is only available at
// z=0; horizontal translation col±1 is only available at z=W-1. Waiting in
// place is not included here; the caller adds loc3 itself as the wait
// candidate.
func (g *Grid) Neighbors3D(loc3 Loc3D) []Loc3D {
	row, col, z := g.Decode3D(loc3)
	var out []Loc3D

	if !g.IsObstacle(g.Project(loc3)) {
		if z > 0 {
			out = append(out, g.Encode3D(row, col, z-1))
		}
		if z < RotationPhases-1 {
			out = append(out, g.Encode3D(row, col, z+1))
		}
	}

	if z == 0 {
		for _, dr := range [2]int{-1, 1} {
			nr := row + dr
			if !g.InBounds(nr, col) {
				continue
			}
			n2 := g.Linearize(nr, col)
			if g.IsObstacle(n2) {
				continue
			}
			out = append(out, g.EncodeLoc3D(n2, z))
		}
	}

	if z == RotationPhases-1 {
		for _, dc := range [2]int{-1, 1} {
			nc := col + dc
			if !g.InBounds(row, nc) {
				continue
			}
			n2 := g.Linearize(row, nc)
			if g.IsObstacle(n2) {
				continue
			}
			out = append(out, g.EncodeLoc3D(n2, z))
		}
	}

	return out
}
