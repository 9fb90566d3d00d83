// File: heaps.go
// Role: C5 — addressable event heaps. Two instances of the same structure
// are used: growEvents (per out-blossom) and expandEvents (per top-odd
// non-trivial blossom), each ordered by a float64 key (spec.md 4.5).
//
// Grounded on dijkstra.nodePQ's container/heap min-heap, but dijkstra's
// heap is a lazy-decrease-key queue (push a fresh *nodeItem, ignore a
// stale pop) which does not give callers a stable handle. C5 requires
// "each out-blossom holds at most one handle... insert-or-decrease", so
// this version tracks each item's live heap position and calls heap.Fix
// on decrease, the addressable variant of the same container/heap idiom.
package matching

import "container/heap"

// eventHeapItem is one entry: owner is the blossom id the event belongs
// to, key is its ordering value (smaller is more urgent).
type eventHeapItem struct {
	owner int
	key   float64
	index int // position in the heap slice; -1 once removed
}

type eventHeapSlice []*eventHeapItem

func (s eventHeapSlice) Len() int            { return len(s) }
func (s eventHeapSlice) Less(i, j int) bool  { return s[i].key < s[j].key }
func (s eventHeapSlice) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
	s[i].index = i
	s[j].index = j
}
func (s *eventHeapSlice) Push(x interface{}) {
	it := x.(*eventHeapItem)
	it.index = len(*s)
	*s = append(*s, it)
}
func (s *eventHeapSlice) Pop() interface{} {
	old := *s
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*s = old[:n-1]
	return it
}

// eventHeap is C5: an addressable min-heap keyed by owner blossom id.
type eventHeap struct {
	items eventHeapSlice
	byOwner map[int]*eventHeapItem
}

// newEventHeap allocates an empty event heap.
func newEventHeap() *eventHeap {
	return &eventHeap{byOwner: make(map[int]*eventHeapItem)}
}

// clear empties the heap. Called at the start of every search.
func (h *eventHeap) clear() {
	h.items = h.items[:0]
	h.byOwner = make(map[int]*eventHeapItem)
}

// has reports whether owner currently holds a handle in this heap.
func (h *eventHeap) has(owner int) bool {
	_, ok := h.byOwner[owner]
	return ok
}

// insertOrDecrease installs key for owner if owner has no handle yet, or
// lowers its existing handle's key if newKey is smaller. A request to
// raise an existing key is ignored (spec: grow/expand keys only decrease
// within a search).
func (h *eventHeap) insertOrDecrease(owner int, key float64) {
	if it, ok := h.byOwner[owner]; ok {
		if key < it.key {
			it.key = key
			heap.Fix(&h.items, it.index)
		}
		return
	}
	it := &eventHeapItem{owner: owner, key: key}
	heap.Push(&h.items, it)
	h.byOwner[owner] = it
}

// remove discards owner's handle, if any. Used when a blossom is
// dissolved or leaves tree/out state before its event fires.
func (h *eventHeap) remove(owner int) {
	it, ok := h.byOwner[owner]
	if !ok {
		return
	}
	heap.Remove(&h.items, it.index)
	delete(h.byOwner, owner)
}

// peekMin returns the minimum key and its owner without removing it.
func (h *eventHeap) peekMin() (owner int, key float64, ok bool) {
	if len(h.items) == 0 {
		return 0, 0, false
	}
	top := h.items[0]
	return top.owner, top.key, true
}

// extractMin removes and returns the minimum-key entry.
func (h *eventHeap) extractMin() (owner int, key float64, ok bool) {
	if len(h.items) == 0 {
		return 0, 0, false
	}
	it := heap.Pop(&h.items).(*eventHeapItem)
	delete(h.byOwner, it.owner)
	return it.owner, it.key, true
}
