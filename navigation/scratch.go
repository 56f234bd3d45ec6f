package navigation

import (
	"github.com/gravitas-015/hexcore/hex"
)

// scratch is the per-search working state: g-costs, predecessors,
// closed membership and the set of cells the search consulted.
// Every search call allocates its own scratch, so searches never share
// mutable state and are safe to run concurrently on one map as long as
// the map itself is not mutated mid-search. All fields are
// write-before-read within a single call
type scratch struct {
	g      map[hex.Axial]int
	came   map[hex.Axial]hex.Axial
	closed map[hex.Axial]bool

	// touched records every cell whose tile state the search read,
	// so cached results can be invalidated precisely per cell
	touched map[hex.Axial]struct{}
}

func newScratch(capHint int) *scratch {
	return &scratch{
		g:       make(map[hex.Axial]int, capHint),
		came:    make(map[hex.Axial]hex.Axial, capHint),
		closed:  make(map[hex.Axial]bool, capHint),
		touched: make(map[hex.Axial]struct{}, capHint),
	}
}

func (s *scratch) touch(a hex.Axial) {
	s.touched[a] = struct{}{}
}

// reconstruct walks the predecessor chain from goal back to start and
// returns the path in start→goal order
func (s *scratch) reconstruct(start, goal hex.Axial) []hex.Axial {
	path := []hex.Axial{goal}
	cur := goal
	for cur != start {
		cur = s.came[cur]
		path = append(path, cur)
	}
	reversePath(path)
	return path
}
