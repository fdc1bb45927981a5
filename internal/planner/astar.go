package planner

import (
	"github.com/elektrokombinacija/stfocal/internal/core"
	"github.com/elektrokombinacija/stfocal/internal/heuristic"
)

// ConstraintTable is the contract the A* driver depends on. The
// high-level conflict resolver that builds and owns one is out of scope
// for this module; internal/constraint ships a reference implementation
// that satisfies this interface.
type ConstraintTable interface {
	Constrained(loc core.Loc2D, t int) bool
	EdgeConstrained(from, to core.Loc2D, t int) bool
	NumConflictsForStep(from, to core.Loc2D, t int) int
	LengthMin() int
	LengthMax() int
	MaxTimestep() int
	HoldingTime(goal core.Loc2D, lengthMin int) int
}

// Planner holds the read-only state shared across any number of planning
// calls: the grid and its per-goal heuristic cache.
type Planner struct {
	Grid       *core.Grid
	Heuristics *heuristic.Cache
}

// NewPlanner creates a planner over a fixed grid.
func NewPlanner(g *core.Grid) *Planner {
	return &Planner{
		Grid:       g,
		Heuristics: heuristic.NewCache(g),
	}
}

// assertInvariant panics on programmer errors rather than legitimate
// outcomes: a caller handing in an unclamped infinite length_max, a nil
// parent where the path reconstruction expects one, and similar internal
// integrity failures.
func assertInvariant(cond bool, msg string) {
	if !cond {
		panic("planner: invariant violated: " + msg)
	}
}

// FindSuboptimalPath runs weighted focal space-time A* for one agent.
// startZ fixes the agent's initial rotation phase: this implementation
// takes the caller's word for the agent's facing and does not default it
// to any particular orientation, so callers wanting the historical
// "always start level" behavior should pass startZ=0.
//
// Returns the emitted 2-D path and the f-value lower bound the caller uses
// for bound propagation. An empty path with f_lb=0 means the start cell is
// immediately constrained; an empty path with f_lb=min_f_val means no path
// was found within length_max. Neither is an error.
func (p *Planner) FindSuboptimalPath(
	agent core.AgentID,
	start, goal core.Loc2D,
	startZ int,
	ct ConstraintTable,
	lowerBound int,
	w float64,
) (core.Path, int) {
	assertInvariant(ct.LengthMax() < core.MaxTimestep, "ConstraintTable.LengthMax() must be clamped by the caller, not left at the sentinel infinity")

	if ct.Constrained(start, 0) {
		return nil, 0
	}

	holdingTime := ct.HoldingTime(goal, ct.LengthMin())
	if holdingTime > lowerBound {
		lowerBound = holdingTime
	}
	lengthMax := ct.LengthMax()
	staticTimestep := ct.MaxTimestep() + 1

	hTable := p.Heuristics.Get(goal)

	arena := NewArena()
	queues := NewQueues()

	startLoc3 := p.Grid.EncodeLoc3D(start, startZ)
	root := &Node{
		Loc3:     startLoc3,
		G:        0,
		H:        maxInt(lowerBound, hTable.Value(start)),
		Timestep: 0,
	}
	arena.Insert(root)
	queues.PushOpen(root)
	minFVal := root.F()
	queues.PushFocal(root)

	for queues.OpenLen() > 0 {
		refreshFocal(queues, &minFVal, w)
		curr := queues.PopFocal()

		if p.Grid.Project(curr.Loc3) == goal && !curr.WaitAtGoal && curr.Timestep >= holdingTime {
			return reconstructPath(curr, p.Grid), minFVal
		}

		if curr.Timestep >= lengthMax {
			continue
		}

		candidates := p.Grid.Neighbors3D(curr.Loc3)
		candidates = append(candidates, curr.Loc3) // waiting is always available

		for _, next3 := range candidates {
			nextTimestep := curr.Timestep + 1
			nextG := curr.G + 1

			if nextTimestep > staticTimestep {
				if next3 == curr.Loc3 {
					continue // no duplicate waits once the constrained tail is collapsed
				}
				nextTimestep--
			}

			c2 := p.Grid.Project(curr.Loc3)
			n2 := p.Grid.Project(next3)

			if ct.Constrained(n2, nextTimestep) || ct.EdgeConstrained(c2, n2, nextTimestep) {
				continue
			}

			nextH := maxInt(lowerBound-nextG, hTable.Value(n2))
			if nextG+nextH > lengthMax {
				continue
			}

			nextConflicts := curr.NumConflicts + ct.NumConflictsForStep(c2, n2, nextTimestep)
			// Computed per step: once both a state and its parent project
			// onto the goal, every further step that keeps projecting onto
			// the goal gets the same flag. Departing (n2 != goal) is what
			// clears it, not relaxation.
			waitAtGoal := n2 == goal && c2 == goal

			candidate := &Node{
				Loc3:         next3,
				G:            nextG,
				H:            nextH,
				Timestep:     nextTimestep,
				Parent:       curr,
				NumConflicts: nextConflicts,
				WaitAtGoal:   waitAtGoal,
			}
			relax(arena, queues, &minFVal, w, candidate)
		}
	}

	return nil, minFVal
}

// refreshFocal is the focal-maintenance sweep: whenever the open queue's
// minimum f has risen above the cached min_f_val, every open node newly
// admissible under the raised threshold joins focal.
func refreshFocal(queues *Queues, minFVal *int, w float64) {
	if queues.OpenLen() == 0 {
		return
	}
	top := queues.OpenTop()
	if top.F() <= *minFVal {
		return
	}
	newMin := top.F()
	oldThreshold := w * float64(*minFVal)
	newThreshold := w * float64(newMin)
	queues.ScanOpenAbove(func(n *Node) {
		f := float64(n.F())
		if f > oldThreshold && f <= newThreshold {
			queues.PushFocal(n)
		}
	})
	*minFVal = newMin
}

// relax applies the relaxation policy: insert a brand-new state, or
// replace an existing one in place when the candidate strictly dominates
// it in (f, NumConflicts) lexicographic order, re-entering it into the
// open/focal queues as needed.
func relax(arena *Arena, queues *Queues, minFVal *int, w float64, candidate *Node) {
	existing, found := arena.Find(candidate.Loc3, candidate.Timestep)
	if !found {
		arena.Insert(candidate)
		queues.PushOpen(candidate)
		if float64(candidate.F()) <= w*float64(*minFVal) {
			queues.PushFocal(candidate)
		}
		return
	}

	dominates := candidate.F() < existing.F() ||
		(candidate.F() == existing.F() && candidate.NumConflicts < existing.NumConflicts)
	if !dominates {
		return
	}

	if !existing.InOpenList {
		existing.Copy(candidate)
		queues.PushOpen(existing)
		if float64(existing.F()) <= w*float64(*minFVal) {
			queues.PushFocal(existing)
		}
		return
	}

	oldF := existing.F()
	candFocalAdmissible := float64(candidate.F()) <= w*float64(*minFVal)
	oldFocalAdmissible := float64(oldF) <= w*float64(*minFVal)
	addToFocal := candFocalAdmissible && !oldFocalAdmissible
	updateInFocal := candFocalAdmissible && oldFocalAdmissible
	updateOpen := oldF > candidate.F()

	existing.Copy(candidate)

	if updateOpen {
		queues.FixOpen(existing)
	}
	if addToFocal {
		queues.PushFocal(existing)
	}
	if updateInFocal {
		queues.FixFocal(existing)
	}
}

// reconstructPath walks goalNode's parent chain back to the start, emitting
// only the 2-D projection of each state.
func reconstructPath(goalNode *Node, g *core.Grid) core.Path {
	n := goalNode
	if n.IsGoal {
		assertInvariant(n.Parent != nil, "goal-duplicate node has no parent")
		n = n.Parent
	}

	var reversed core.Path
	for n != nil {
		reversed = append(reversed, core.TimedStep{Loc: g.Project(n.Loc3), T: n.Timestep})
		n = n.Parent
	}

	path := make(core.Path, len(reversed))
	for i, step := range reversed {
		path[len(reversed)-1-i] = step
	}
	return path
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
