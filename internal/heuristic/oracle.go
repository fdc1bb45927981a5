// Package heuristic computes the 2-D lower bound used to guide the
// space-time planner: a backward Dijkstra sweep from the goal over the
// grid's 4-connected neighbor relation.
package heuristic

import (
	"container/heap"

	"github.com/elektrokombinacija/stfocal/internal/core"
)

// Table is a precomputed per-cell lower bound on the cost to reach a
// fixed goal via translation-only movement. It is admissible with respect
// to translation but not with respect to rotation cost; the planner's
// weight w absorbs the gap.
type Table struct {
	Goal   core.Loc2D
	values []int
}

// Value returns h[loc], or core.MaxTimestep if loc cannot reach the goal.
func (t *Table) Value(loc core.Loc2D) int {
	return t.values[loc]
}

// dijkstraItem is a node in the backward sweep's priority queue.
type dijkstraItem struct {
	loc   core.Loc2D
	value int
	index int
}

type dijkstraHeap []*dijkstraItem

func (h dijkstraHeap) Len() int           { return len(h) }
func (h dijkstraHeap) Less(i, j int) bool { return h[i].value < h[j].value }
func (h dijkstraHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *dijkstraHeap) Push(x any) {
	it := x.(*dijkstraItem)
	it.index = len(*h)
	*h = append(*h, it)
}
func (h *dijkstraHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}

// Build runs a backward Dijkstra from goal over the grid's 4-connected
// graph with unit edge weights. Unreachable cells keep the sentinel
// core.MaxTimestep.
func Build(g *core.Grid, goal core.Loc2D) *Table {
	values := make([]int, g.Size())
	for i := range values {
		values[i] = core.MaxTimestep
	}
	values[goal] = 0

	h := &dijkstraHeap{}
	heap.Init(h)
	heap.Push(h, &dijkstraItem{loc: goal, value: 0})

	for h.Len() > 0 {
		curr := heap.Pop(h).(*dijkstraItem)
		if curr.value > values[curr.loc] {
			continue // stale entry, a shorter path to this cell was already settled
		}
		for _, next := range g.Neighbors2D(curr.loc) {
			candidate := curr.value + 1
			if candidate < values[next] {
				values[next] = candidate
				heap.Push(h, &dijkstraItem{loc: next, value: candidate})
			}
		}
	}

	return &Table{Goal: goal, values: values}
}
