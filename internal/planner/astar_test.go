package planner

import (
	"testing"

	"github.com/elektrokombinacija/stfocal/internal/constraint"
	"github.com/elektrokombinacija/stfocal/internal/core"
)

func emptyTable(lengthMin, lengthMax int) *constraint.Table {
	return constraint.NewTable(lengthMin, lengthMax)
}

func TestFindSuboptimalPath_StraightLineCostsRotationPlusTranslation(t *testing.T) {
	g := core.NewGrid(1, 5)
	start := g.Linearize(0, 0)
	goal := g.Linearize(0, 3)

	p := NewPlanner(g)
	path, _ := p.FindSuboptimalPath(0, start, goal, 0, emptyTable(0, 100), 0, 1.0)

	want := (core.RotationPhases - 1) + 3
	if got := path.Cost(); got != want {
		t.Fatalf("Cost() = %d, want %d (path=%v)", got, want, path)
	}
	if len(path) == 0 || path[len(path)-1].Loc != goal {
		t.Fatalf("path does not end at goal: %v", path)
	}
	if path[0].Loc != start {
		t.Fatalf("path does not start at start: %v", path)
	}
}

func TestFindSuboptimalPath_RequiredTurnCostsOneAxisChange(t *testing.T) {
	g := core.NewGrid(4, 4)
	start := g.Linearize(0, 0)
	goal := g.Linearize(3, 3)

	p := NewPlanner(g)
	path, _ := p.FindSuboptimalPath(0, start, goal, 0, emptyTable(0, 100), 0, 1.0)

	want := 6 + (core.RotationPhases - 1)
	if got := path.Cost(); got != want {
		t.Fatalf("Cost() = %d, want %d (path=%v)", got, want, path)
	}
}

func TestFindSuboptimalPath_VertexConstraintForcesWait(t *testing.T) {
	g := core.NewGrid(1, 2)
	start := g.Linearize(0, 0)
	goal := g.Linearize(0, 1)

	ct := emptyTable(0, 100)
	// The only way into goal without rotation cost would require horizontal
	// translation at z=W-1; constrain goal at every early timestep the
	// direct arrival would land on to force a wait.
	withoutWait := NewPlanner(g)
	direct, _ := withoutWait.FindSuboptimalPath(0, start, goal, core.RotationPhases-1, ct, 0, 1.0)
	directArrival := direct[len(direct)-1].T

	ct.InsertFromHLNode([]constraint.Constraint{
		{Agent: 0, Loc: goal, T: directArrival},
	}, 0)

	p := NewPlanner(g)
	path, _ := p.FindSuboptimalPath(0, start, goal, core.RotationPhases-1, ct, 0, 1.0)

	if len(path) == 0 {
		t.Fatalf("expected a feasible path once the agent waits out the constraint")
	}
	if arrival := path[len(path)-1].T; arrival <= directArrival {
		t.Fatalf("arrival timestep %d did not move past the constrained timestep %d", arrival, directArrival)
	}
	for i := 1; i < len(path); i++ {
		if ct.Constrained(path[i].Loc, path[i].T) {
			t.Fatalf("returned path violates vertex constraint at step %d: %v", i, path[i])
		}
	}
}

func TestFindSuboptimalPath_EdgeConstraintBlocksDirectSwap(t *testing.T) {
	g := core.NewGrid(4, 4)
	start := g.Linearize(0, 0)
	goal := g.Linearize(3, 3)

	ct := emptyTable(0, 100)
	planner := NewPlanner(g)
	direct, _ := planner.FindSuboptimalPath(0, start, goal, 0, ct, 0, 1.0)

	// Forbid the first edge of the unconstrained optimal path; the
	// replanned path must still reach the goal, just not via that edge.
	blockedFrom := direct[0].Loc
	blockedTo := direct[1].Loc
	blockedAt := direct[1].T
	ct.InsertFromHLNode([]constraint.Constraint{
		{Agent: 0, From: blockedFrom, Loc: blockedTo, T: blockedAt, IsEdge: true},
	}, 0)

	path, _ := planner.FindSuboptimalPath(0, start, goal, 0, ct, 0, 1.0)
	if len(path) == 0 {
		t.Fatalf("expected a detour around the blocked edge, got no path")
	}
	for i := 1; i < len(path); i++ {
		if ct.EdgeConstrained(path[i-1].Loc, path[i].Loc, path[i].T) {
			t.Fatalf("returned path uses the forbidden edge at step %d: %v -> %v", i, path[i-1], path[i])
		}
	}
}

func TestFindSuboptimalPath_HoldingTimeDelaysGoalAcceptance(t *testing.T) {
	g := core.NewGrid(1, 2)
	start := g.Linearize(0, 0)
	goal := g.Linearize(0, 1)

	ct := emptyTable(0, 200)
	ct.InsertFromHLNode([]constraint.Constraint{
		{Agent: 0, Loc: goal, T: 6},
	}, 0)
	if got := ct.HoldingTime(goal, 0); got != 7 {
		t.Fatalf("HoldingTime() = %d, want 7", got)
	}

	p := NewPlanner(g)
	path, _ := p.FindSuboptimalPath(0, start, goal, core.RotationPhases-1, ct, 0, 1.0)

	if len(path) == 0 {
		t.Fatalf("expected a feasible path honoring the holding time")
	}
	if arrival := path[len(path)-1].T; arrival < 7 {
		t.Fatalf("goal accepted before holding time elapsed: arrival=%d", arrival)
	}
	for i := 1; i < len(path); i++ {
		if ct.Constrained(path[i].Loc, path[i].T) {
			t.Fatalf("path violates a vertex constraint at step %d: %v", i, path[i])
		}
	}
}

func TestFindSuboptimalPath_InfeasibleWithinLengthMaxReturnsMinFVal(t *testing.T) {
	// A 1x3 corridor with the middle cell blocked: no route from one end
	// to the other within any finite length.
	g := core.NewGrid(1, 3)
	g.SetObstacle(g.Linearize(0, 1), true)
	start := g.Linearize(0, 0)
	goal := g.Linearize(0, 2)

	ct := emptyTable(0, 10)
	p := NewPlanner(g)
	path, minFVal := p.FindSuboptimalPath(0, start, goal, 0, ct, 0, 1.0)

	if path != nil {
		t.Fatalf("expected no path, got %v", path)
	}
	if minFVal <= 0 {
		t.Fatalf("minFVal = %d, want a positive f-value lower bound", minFVal)
	}
}

func TestFindSuboptimalPath_StartConstrainedShortcut(t *testing.T) {
	g := core.NewGrid(1, 2)
	start := g.Linearize(0, 0)
	goal := g.Linearize(0, 1)

	ct := emptyTable(0, 100)
	ct.InsertFromHLNode([]constraint.Constraint{
		{Agent: 0, Loc: start, T: 0},
	}, 0)

	p := NewPlanner(g)
	path, fLB := p.FindSuboptimalPath(0, start, goal, 0, ct, 0, 1.0)

	if path != nil {
		t.Fatalf("expected nil path when the start cell is constrained at t=0, got %v", path)
	}
	if fLB != 0 {
		t.Fatalf("f_lb = %d, want 0 for the start-constrained shortcut", fLB)
	}
}

func TestFindSuboptimalPath_Idempotent(t *testing.T) {
	g := core.NewGrid(5, 5)
	start := g.Linearize(0, 0)
	goal := g.Linearize(4, 4)

	ct := emptyTable(0, 200)
	ct.InsertFromHLNode([]constraint.Constraint{
		{Agent: 0, Loc: g.Linearize(2, 2), T: 4},
	}, 0)

	p := NewPlanner(g)
	path1, f1 := p.FindSuboptimalPath(0, start, goal, 0, ct, 0, 1.3)
	path2, f2 := p.FindSuboptimalPath(0, start, goal, 0, ct, 0, 1.3)

	if f1 != f2 {
		t.Fatalf("f_lb differs across identical calls: %d vs %d", f1, f2)
	}
	if len(path1) != len(path2) {
		t.Fatalf("path length differs across identical calls: %d vs %d", len(path1), len(path2))
	}
	for i := range path1 {
		if path1[i] != path2[i] {
			t.Fatalf("paths diverge at step %d: %v vs %v", i, path1[i], path2[i])
		}
	}
}

func TestFindSuboptimalPath_BoundedSuboptimal(t *testing.T) {
	g := core.NewGrid(6, 6)
	start := g.Linearize(0, 0)
	goal := g.Linearize(5, 5)

	w := 1.5
	ct := emptyTable(0, 200)
	p := NewPlanner(g)
	path, fLB := p.FindSuboptimalPath(0, start, goal, 0, ct, 0, w)

	if len(path) == 0 {
		t.Fatalf("expected a feasible path on an open grid")
	}
	if cost := float64(path.Cost()); cost > w*float64(fLB) {
		t.Fatalf("cost %v exceeds bound w*f_lb = %v*%v = %v", cost, w, fLB, w*float64(fLB))
	}
}

func TestFindSuboptimalPath_PathRespectsLatticeNeighborRule(t *testing.T) {
	g := core.NewGrid(5, 5)
	start := g.Linearize(0, 0)
	goal := g.Linearize(4, 4)

	ct := emptyTable(0, 200)
	p := NewPlanner(g)
	path, _ := p.FindSuboptimalPath(0, start, goal, 0, ct, 0, 1.0)

	if len(path) == 0 {
		t.Fatalf("expected a feasible path")
	}
	for i := 1; i < len(path); i++ {
		if path[i].T != path[i-1].T+1 {
			t.Fatalf("non-consecutive timesteps at step %d: %d -> %d", i, path[i-1].T, path[i].T)
		}
		dr := g.RowOf(path[i].Loc) - g.RowOf(path[i-1].Loc)
		dc := g.ColOf(path[i].Loc) - g.ColOf(path[i-1].Loc)
		if absStep(dr)+absStep(dc) > 1 {
			t.Fatalf("non-adjacent move at step %d: %v -> %v", i, path[i-1], path[i])
		}
	}
}

func absStep(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
