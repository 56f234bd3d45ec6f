package navigation

import (
	"github.com/gravitas-015/hexcore/hex"
)

// queue is an indexed binary min-heap over cells.
// The index map gives O(1) contains and O(log n) priority updates;
// pushing a cell that is already queued is defined as a priority
// update, never a second entry
type queue struct {
	entries []queueEntry
	index   map[hex.Axial]int // cell → heap slot
}

type queueEntry struct {
	cell     hex.Axial
	priority int
}

func newQueue(capHint int) *queue {
	return &queue{
		entries: make([]queueEntry, 0, capHint),
		index:   make(map[hex.Axial]int, capHint),
	}
}

func (q *queue) len() int {
	return len(q.entries)
}

func (q *queue) contains(c hex.Axial) bool {
	_, ok := q.index[c]
	return ok
}

// push enqueues c, or updates its priority if already queued
func (q *queue) push(c hex.Axial, priority int) {
	if i, ok := q.index[c]; ok {
		q.setPriority(i, priority)
		return
	}
	q.entries = append(q.entries, queueEntry{cell: c, priority: priority})
	i := len(q.entries) - 1
	q.index[c] = i
	q.siftUp(i)
}

// update changes the priority of a queued cell, sifting in whichever
// direction the change requires. No-op if the cell is not queued
func (q *queue) update(c hex.Axial, priority int) {
	if i, ok := q.index[c]; ok {
		q.setPriority(i, priority)
	}
}

// popMin removes and returns the cell with the smallest priority
func (q *queue) popMin() (hex.Axial, int) {
	top := q.entries[0]
	last := len(q.entries) - 1
	q.entries[0] = q.entries[last]
	q.index[q.entries[0].cell] = 0
	q.entries = q.entries[:last]
	delete(q.index, top.cell)
	if last > 0 {
		q.siftDown(0)
	}
	return top.cell, top.priority
}

// minPriority returns the smallest queued priority without removal
func (q *queue) minPriority() int {
	return q.entries[0].priority
}

func (q *queue) setPriority(i, priority int) {
	old := q.entries[i].priority
	q.entries[i].priority = priority
	if priority < old {
		q.siftUp(i)
	} else if priority > old {
		q.siftDown(i)
	}
}

func (q *queue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if q.entries[parent].priority <= q.entries[i].priority {
			break
		}
		q.swap(parent, i)
		i = parent
	}
}

func (q *queue) siftDown(i int) {
	n := len(q.entries)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && q.entries[right].priority < q.entries[left].priority {
			smallest = right
		}
		if q.entries[i].priority <= q.entries[smallest].priority {
			break
		}
		q.swap(i, smallest)
		i = smallest
	}
}

func (q *queue) swap(i, j int) {
	q.entries[i], q.entries[j] = q.entries[j], q.entries[i]
	q.index[q.entries[i].cell] = i
	q.index[q.entries[j].cell] = j
}
