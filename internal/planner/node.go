// Package planner implements the space-time focal-search single-agent
// planner: the search node arena, the dual open/focal priority queues, the
// weighted A* driver, and the plain travel-time probe.
package planner

import "github.com/elektrokombinacija/stfocal/internal/core"

// Node is a single space-time search state. Identity for the arena is
// (Loc3, Timestep); F = G + H.
type Node struct {
	Loc3         core.Loc3D
	G            int // elapsed timesteps from start
	H            int // 2-D lower bound on remaining cost from proj(Loc3) to goal
	Timestep     int
	Parent       *Node
	NumConflicts int  // accumulated CAT hits along the path
	WaitAtGoal   bool // true iff this and its parent both project onto the goal; cleared once the agent departs the goal
	IsGoal       bool // reserved for future goal-duplication optimizations; never set by this planner
	InOpenList   bool

	openIndex  int
	focalIndex int
}

// F returns the node's f-value, g+h.
func (n *Node) F() int { return n.G + n.H }

// Copy overwrites n's search payload with src's, preserving n's own queue
// handles (open/focal indices) since those belong to the queues, not the
// node's logical state. This is the "replace in place" half of the
// relaxation policy.
func (n *Node) Copy(src *Node) {
	n.Loc3 = src.Loc3
	n.G = src.G
	n.H = src.H
	n.Timestep = src.Timestep
	n.Parent = src.Parent
	n.NumConflicts = src.NumConflicts
	n.WaitAtGoal = src.WaitAtGoal
}

// stateKey identifies a node in the arena regardless of its g/h payload,
// enabling relaxation: a lookup finds a state with the same key no matter
// what g/h it currently carries.
type stateKey struct {
	loc3 core.Loc3D
	t    int
}

// Arena owns every state generated during one planning call, indexed by
// (Loc3, Timestep). All nodes are released together at call end; nothing
// here survives across calls.
type Arena struct {
	nodes map[stateKey]*Node
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{nodes: make(map[stateKey]*Node)}
}

// Find looks up the node for (loc3, t), if one has already been generated.
func (a *Arena) Find(loc3 core.Loc3D, t int) (*Node, bool) {
	n, ok := a.nodes[stateKey{loc3: loc3, t: t}]
	return n, ok
}

// Insert records a newly generated node under its (Loc3, Timestep) key. A
// key is present in the arena exactly once; callers must check Find first
// and relax in place rather than inserting a duplicate.
func (a *Arena) Insert(n *Node) {
	a.nodes[stateKey{loc3: n.Loc3, t: n.Timestep}] = n
}

// Len reports how many states the arena currently holds.
func (a *Arena) Len() int { return len(a.nodes) }
