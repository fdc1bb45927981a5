package planner

import "container/heap"

// openHeap orders nodes by f ascending, tie-broken by preferring higher g.
type openHeap []*Node

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].F() != h[j].F() {
		return h[i].F() < h[j].F()
	}
	return h[i].G > h[j].G
}
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].openIndex = i
	h[j].openIndex = j
}
func (h *openHeap) Push(x any) {
	n := x.(*Node)
	n.openIndex = len(*h)
	*h = append(*h, n)
}
func (h *openHeap) Pop() any {
	old := *h
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	*h = old[:last]
	return n
}

// focalHeap orders nodes by (NumConflicts, f, g) ascending: the focal
// list's secondary objective is minimizing collisions with other agents'
// committed paths.
type focalHeap []*Node

func (h focalHeap) Len() int { return len(h) }
func (h focalHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.NumConflicts != b.NumConflicts {
		return a.NumConflicts < b.NumConflicts
	}
	if a.F() != b.F() {
		return a.F() < b.F()
	}
	return a.G < b.G
}
func (h focalHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].focalIndex = i
	h[j].focalIndex = j
}
func (h *focalHeap) Push(x any) {
	n := x.(*Node)
	n.focalIndex = len(*h)
	*h = append(*h, n)
}
func (h *focalHeap) Pop() any {
	old := *h
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	*h = old[:last]
	return n
}

// Queues is the dual open/focal priority queue pair with cross-handles:
// every node in focal also sits in open, carrying both heap indices so
// either queue can decrease-key or remove it in O(log n).
type Queues struct {
	open  openHeap
	focal focalHeap
}

// NewQueues creates an empty queue pair.
func NewQueues() *Queues {
	return &Queues{}
}

// OpenLen reports the number of nodes in the open queue.
func (q *Queues) OpenLen() int { return q.open.Len() }

// OpenTop returns the open queue's minimum-f node without removing it.
func (q *Queues) OpenTop() *Node { return q.open[0] }

// PushOpen inserts n into the open queue.
func (q *Queues) PushOpen(n *Node) {
	heap.Push(&q.open, n)
	n.InOpenList = true
}

// RemoveOpen removes n from the open queue using its stored handle.
func (q *Queues) RemoveOpen(n *Node) {
	heap.Remove(&q.open, n.openIndex)
	n.InOpenList = false
}

// FixOpen re-establishes the open heap invariant after n's f-value changed
// in place (decrease-key).
func (q *Queues) FixOpen(n *Node) {
	heap.Fix(&q.open, n.openIndex)
}

// PushFocal inserts n into the focal queue.
func (q *Queues) PushFocal(n *Node) {
	heap.Push(&q.focal, n)
}

// FixFocal re-establishes the focal heap invariant after n's ordering key
// changed in place.
func (q *Queues) FixFocal(n *Node) {
	heap.Fix(&q.focal, n.focalIndex)
}

// PopFocal removes and returns the focal queue's top node, also removing it
// from the open queue. Every popped node leaves both queues together.
func (q *Queues) PopFocal() *Node {
	n := heap.Pop(&q.focal).(*Node)
	heap.Remove(&q.open, n.openIndex)
	n.InOpenList = false
	return n
}

// ScanOpenAbove walks every node currently in the open queue and invokes fn
// on it. Used by the focal-maintenance sweep to find nodes newly admissible
// under a raised min_f_val. Order is heap-internal, not sorted; callers
// must not assume anything beyond "every open node once".
func (q *Queues) ScanOpenAbove(fn func(*Node)) {
	for _, n := range q.open {
		fn(n)
	}
}
