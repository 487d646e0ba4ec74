package planner

import (
	"github.com/zyedidia/generic/heap"

	"github.com/pthm-cable/pathplan/world"
)

// frontierEntry is one open-set entry. A cell can have several live entries;
// only the first one popped counts.
type frontierEntry struct {
	cell world.Cell
	g    float64 // cost from start when the entry was pushed
	f    float64 // priority
}

// frontier is a min-heap on f with lazy deletion: improved cells are pushed
// again instead of being fixed in place, and stale entries are skipped on pop.
type frontier struct {
	open   *heap.Heap[frontierEntry]
	closed map[world.Cell]struct{}
}

func newFrontier() *frontier {
	return &frontier{
		open: heap.New(func(a, b frontierEntry) bool {
			return a.f < b.f
		}),
		closed: make(map[world.Cell]struct{}),
	}
}

func (fr *frontier) push(c world.Cell, g, f float64) {
	fr.open.Push(frontierEntry{cell: c, g: g, f: f})
}

// pop returns the next entry for a cell that has not been finalized yet and
// finalizes it. ok is false once the open set is exhausted.
func (fr *frontier) pop() (frontierEntry, bool) {
	for fr.open.Size() > 0 {
		e, _ := fr.open.Pop()
		if _, done := fr.closed[e.cell]; done {
			continue
		}
		fr.closed[e.cell] = struct{}{}
		return e, true
	}
	return frontierEntry{}, false
}

func (fr *frontier) isClosed(c world.Cell) bool {
	_, ok := fr.closed[c]
	return ok
}
