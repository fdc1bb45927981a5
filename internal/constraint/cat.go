package constraint

import "github.com/elektrokombinacija/stfocal/internal/core"

// CAT (conflict avoidance table) indexes other agents' already-committed
// paths so the planner can count, for a proposed step, how many of them it
// would collide with. Used only as the focal list's secondary objective,
// never as a hard constraint.
//
// Adapted from the wider CBS corpus's segment/overlap conflict detection
// (continuous-time interval overlap over float timestamps) down to this
// planner's discrete integer timesteps, where two agents collide at a
// vertex only if they share the exact (loc, t), and swap only if their
// single-step moves are exact mirror images arriving at the same t.
type CAT struct {
	occupied map[vertexKey]int // (loc, t) -> number of other agents there at t
	arrived  map[edgeKey]int   // (from, to, t) -> number of other agents moving from->to, arriving at t
}

// BuildCAT indexes every path in otherPaths except the one belonging to
// the agent currently being planned for.
func BuildCAT(agent core.AgentID, otherPaths map[core.AgentID]core.Path) *CAT {
	cat := &CAT{
		occupied: make(map[vertexKey]int),
		arrived:  make(map[edgeKey]int),
	}
	for other, path := range otherPaths {
		if other == agent {
			continue
		}
		cat.index(path)
	}
	return cat
}

func (c *CAT) index(path core.Path) {
	for _, step := range path {
		c.occupied[vertexKey{loc: step.Loc, t: step.T}]++
	}
	for i := 1; i < len(path); i++ {
		from, to, t := path[i-1].Loc, path[i].Loc, path[i].T
		if from == to {
			continue // waiting is not an edge traversal
		}
		c.arrived[edgeKey{from: from, to: to, t: t}]++
	}
}

// CountConflicts returns the number of other agents whose committed path
// collides with the proposed move from->to arriving at timestep at: either
// occupying the destination at that time, or swapping across the same edge
// in the opposite direction.
func (c *CAT) CountConflicts(from, to core.Loc2D, at int) int {
	count := c.occupied[vertexKey{loc: to, t: at}]
	if from != to {
		count += c.arrived[edgeKey{from: to, to: from, t: at}]
	}
	return count
}
