// Package constraint implements the ConstraintTable contract the planner
// depends on: merged vertex/edge constraints from the (out of scope)
// high-level conflict resolver, plus the derived length bounds and holding
// time a single planning call needs. The high-level node type itself is an
// opaque external collaborator; Table only needs the flat Constraint list
// it would hand down.
package constraint

import (
	"github.com/elektrokombinacija/stfocal/internal/core"
)

// Constraint prohibits an agent from being at a vertex, or traversing an
// edge, at a given timestep. It mirrors the high-level conflict resolver's
// node constraints (adapted from the wider CBS corpus's Constraint/Conflict
// shape, with float seconds replaced by integer timesteps to match this
// planner's discrete space-time lattice).
type Constraint struct {
	Agent  core.AgentID
	Loc    core.Loc2D // vertex constraint target, or edge destination
	T      int
	IsEdge bool
	From   core.Loc2D // only meaningful when IsEdge
}

type vertexKey struct {
	loc core.Loc2D
	t   int
}

type edgeKey struct {
	from, to core.Loc2D
	t        int
}

// Table is the merged, per-call view of constraints and the conflict
// avoidance table a single FindSuboptimalPath invocation consults. It is
// built fresh per call for one agent; nothing in it survives across calls.
type Table struct {
	vertex map[vertexKey]struct{}
	edge   map[edgeKey]struct{}

	cat *CAT

	lengthMin int
	lengthMax int
	maxTstep  int
}

// NewTable creates an empty constraint table with the given length bounds.
// lengthMax must be clamped by the caller to a finite value; the planner
// panics rather than search forever if it's left at the sentinel infinity.
func NewTable(lengthMin, lengthMax int) *Table {
	return &Table{
		vertex:    make(map[vertexKey]struct{}),
		edge:      make(map[edgeKey]struct{}),
		lengthMin: lengthMin,
		lengthMax: lengthMax,
		maxTstep:  -1, // unset: nothing has told us yet how far the horizon of interest extends
	}
}

// InsertFromHLNode merges a flat list of high-level constraints into this
// table, keeping only those that apply to agent.
func (t *Table) InsertFromHLNode(constraints []Constraint, agent core.AgentID) {
	for _, c := range constraints {
		if c.Agent != agent {
			continue
		}
		if c.T > t.maxTstep {
			t.maxTstep = c.T
		}
		if c.IsEdge {
			t.edge[edgeKey{from: c.From, to: c.Loc, t: c.T}] = struct{}{}
			continue
		}
		t.vertex[vertexKey{loc: c.Loc, t: c.T}] = struct{}{}
	}
}

// InsertCAT builds the conflict avoidance table from other agents' already
// committed paths.
func (t *Table) InsertCAT(agent core.AgentID, otherPaths map[core.AgentID]core.Path) {
	t.cat = BuildCAT(agent, otherPaths)
	for other, path := range otherPaths {
		if other == agent || len(path) == 0 {
			continue
		}
		if last := path[len(path)-1].T; last > t.maxTstep {
			t.maxTstep = last
		}
	}
}

// Constrained reports whether a vertex is forbidden at timestep t.
func (t *Table) Constrained(loc core.Loc2D, at int) bool {
	_, ok := t.vertex[vertexKey{loc: loc, t: at}]
	return ok
}

// EdgeConstrained reports whether the move from->to arriving at timestep t
// is forbidden.
func (t *Table) EdgeConstrained(from, to core.Loc2D, at int) bool {
	_, ok := t.edge[edgeKey{from: from, to: to, t: at}]
	return ok
}

// NumConflictsForStep reads the conflict avoidance table for the move
// from->to arriving at timestep t, returning how many other agents' paths
// collide with it. Zero if InsertCAT was never called.
func (t *Table) NumConflictsForStep(from, to core.Loc2D, at int) int {
	if t.cat == nil {
		return 0
	}
	return t.cat.CountConflicts(from, to, at)
}

// LengthMin returns the minimum feasible path length (in timesteps).
func (t *Table) LengthMin() int { return t.lengthMin }

// LengthMax returns the maximum path length the search may consider.
func (t *Table) LengthMax() int { return t.lengthMax }

// MaxTimestep returns the latest timestep any constraint or committed other-
// agent path in this table applies to. One past this is the static
// timestep at which the search may start collapsing the wait tail. With
// nothing inserted yet, nothing bounds the horizon of interest, so it
// falls back to lengthMax: collapsing before that would mislabel the
// Timestep of states on an otherwise unconstrained path.
func (t *Table) MaxTimestep() int {
	if t.maxTstep < 0 {
		return t.lengthMax
	}
	return t.maxTstep
}

// HoldingTime returns the earliest timestep by which the agent may sit on
// goal indefinitely without violating a future vertex constraint there,
// never earlier than lengthMin.
func (t *Table) HoldingTime(goal core.Loc2D, lengthMin int) int {
	holding := lengthMin
	for key := range t.vertex {
		if key.loc != goal {
			continue
		}
		if key.t >= holding {
			holding = key.t + 1
		}
	}
	return holding
}
