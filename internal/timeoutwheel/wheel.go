// File: internal/timeoutwheel/wheel.go
// Author: momentics <momentics@gmail.com>
//
// Wheel maps client id to deadline and extracts everything due by a given
// instant in ascending deadline order. It is a container/heap priority
// queue keyed by (deadline, id), in the spirit of the scheduler the
// orchestrator's teacher kept as a timerQ heap.
//
// Extract snapshots everything due before yielding any of it, so deadlines
// re-inserted by the caller while iterating the result never reappear
// within the same call — callers otherwise couldn't defer a timeout safely
// while walking the expired set.
package timeoutwheel

import (
	"container/heap"
	"iter"
)

type entry struct {
	id       int64
	deadline int64
	index    int
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].deadline != h[j].deadline {
		return h[i].deadline < h[j].deadline
	}
	return h[i].id < h[j].id
}
func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Wheel is not safe for concurrent use; it is owned by a single reactor
// execution context as required by §5 of the design.
type Wheel struct {
	h     entryHeap
	index map[int64]*entry
}

// New returns an empty Wheel.
func New() *Wheel {
	return &Wheel{index: make(map[int64]*entry)}
}

// Insert adds id with deadline, replacing any existing entry for id.
func (w *Wheel) Insert(id int64, deadline int64) {
	if e, ok := w.index[id]; ok {
		e.deadline = deadline
		heap.Fix(&w.h, e.index)
		return
	}
	e := &entry{id: id, deadline: deadline}
	w.index[id] = e
	heap.Push(&w.h, e)
}

// Update is equivalent to Insert for a present id; it is a no-op if id is
// absent.
func (w *Wheel) Update(id int64, deadline int64) {
	if e, ok := w.index[id]; ok {
		e.deadline = deadline
		heap.Fix(&w.h, e.index)
	}
}

// Remove erases id's mapping if present.
func (w *Wheel) Remove(id int64) {
	e, ok := w.index[id]
	if !ok {
		return
	}
	heap.Remove(&w.h, e.index)
	delete(w.index, id)
}

// Len reports how many ids the wheel currently tracks.
func (w *Wheel) Len() int { return len(w.h) }

// Has reports whether id is currently tracked.
func (w *Wheel) Has(id int64) bool {
	_, ok := w.index[id]
	return ok
}

// Extract removes and returns, in nondecreasing deadline order, every id
// whose deadline is <= now. Re-inserting an id from within the returned
// sequence's consumer does not cause it to reappear in this call.
func (w *Wheel) Extract(now int64) iter.Seq[int64] {
	var due []int64
	for w.h.Len() > 0 && w.h[0].deadline <= now {
		e := heap.Pop(&w.h).(*entry)
		delete(w.index, e.id)
		due = append(due, e.id)
	}
	return func(yield func(int64) bool) {
		for _, id := range due {
			if !yield(id) {
				return
			}
		}
	}
}
