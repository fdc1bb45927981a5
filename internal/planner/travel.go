package planner

import (
	"container/heap"

	"github.com/elektrokombinacija/stfocal/internal/core"
)

// travelNode is a plain 2-D space-time state for the travel-time probe:
// no rotation layer, no focal list, no conflict avoidance table. It
// carries only what a single-objective shortest-path query needs.
type travelNode struct {
	loc      core.Loc2D
	g        int
	h        int
	timestep int
	index    int
}

func (n *travelNode) f() int { return n.g + n.h }

type travelHeap []*travelNode

func (h travelHeap) Len() int           { return len(h) }
func (h travelHeap) Less(i, j int) bool { return h[i].f() < h[j].f() }
func (h travelHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *travelHeap) Push(x any) {
	n := x.(*travelNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *travelHeap) Pop() any {
	old := *h
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	*h = old[:last]
	return n
}

type travelKey struct {
	loc core.Loc2D
	t   int
}

// TravelTime answers "can this agent reach end from start in at most
// upperBound steps?" via a plain, unweighted space-time A* with an
// on-the-fly Manhattan heuristic. It returns the first-found cost, or
// core.MaxTimestep if unreachable under upperBound. Used externally to
// establish holding-time candidates and per-agent reachability bounds; it
// never touches the 3-D rotation lattice, only the caller-visible 2-D
// constraint surface.
func TravelTime(g *core.Grid, start, end core.Loc2D, ct ConstraintTable, upperBound int) int {
	staticTimestep := ct.MaxTimestep() + 1

	open := &travelHeap{}
	heap.Init(open)
	visited := make(map[travelKey]*travelNode)

	root := &travelNode{loc: start, g: 0, h: g.Manhattan(start, end), timestep: 0}
	heap.Push(open, root)
	visited[travelKey{loc: start, t: 0}] = root

	for open.Len() > 0 {
		curr := heap.Pop(open).(*travelNode)
		if curr.loc == end {
			return curr.g
		}

		candidates := g.Neighbors2D(curr.loc)
		candidates = append(candidates, curr.loc)

		for _, next := range candidates {
			nextTimestep := curr.timestep + 1
			nextG := curr.g + 1

			if nextTimestep > staticTimestep {
				if next == curr.loc {
					continue
				}
				nextTimestep--
			}

			if ct.Constrained(next, nextTimestep) || ct.EdgeConstrained(curr.loc, next, nextTimestep) {
				continue
			}

			nextH := g.Manhattan(next, end)
			if nextG+nextH >= upperBound {
				continue
			}

			key := travelKey{loc: next, t: nextTimestep}
			if existing, ok := visited[key]; ok {
				if existing.g > nextG {
					existing.g = nextG
					existing.timestep = nextTimestep
					heap.Fix(open, existing.index)
				}
				continue
			}

			node := &travelNode{loc: next, g: nextG, h: nextH, timestep: nextTimestep}
			heap.Push(open, node)
			visited[key] = node
		}
	}

	return core.MaxTimestep
}
