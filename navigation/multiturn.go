package navigation

import (
	"github.com/gravitas-015/hexcore/hex"

	"github.com/lixenwraith/hexnav/grid"
)

// MultiTurnResult is a full-cost path partitioned into per-turn
// segments bounded by a movement budget. Derived data, read-only after
// construction; concatenating Segments reproduces CompletePath exactly
// and the per-turn costs sum to TotalCost
type MultiTurnResult struct {
	// Source is the point-search result the plan was derived from; a
	// failed source leaves the plan empty with zero turns
	Source Result

	TurnsRequired int
	CompletePath  []hex.Axial
	TurnEndpoints []hex.Axial
	Segments      [][]hex.Axial
	TurnCosts     []int
	TotalCost     int
	PerTurnBudget int
}

// planMultiTurn partitions path into turn segments. The budget resets
// at the start of every turn; whenever the next cell's entering cost
// would exceed what remains, the current turn closes and a new one
// opens. A single cell costing more than the whole budget still takes
// exactly one turn, never split mid-cell, and its turn's recorded cost
// exceeds the nominal budget; that overflow is reported, not hidden
func planMultiTurn(m *grid.Map, path []hex.Axial, perTurnBudget int, ctx *Context) *MultiTurnResult {
	out := &MultiTurnResult{
		CompletePath:  path,
		PerTurnBudget: perTurnBudget,
	}
	if len(path) == 0 || perTurnBudget <= 0 {
		return out
	}

	segment := []hex.Axial{path[0]}
	segCost := 0
	remaining := perTurnBudget

	closeTurn := func() {
		out.Segments = append(out.Segments, segment)
		out.TurnCosts = append(out.TurnCosts, segCost)
		out.TurnEndpoints = append(out.TurnEndpoints, segment[len(segment)-1])
	}

	for _, cell := range path[1:] {
		w := ctx.enterCost(m, cell)
		// remaining == perTurnBudget means a fresh turn, which accepts
		// any cell, over budget or not
		if w > remaining && remaining < perTurnBudget {
			closeTurn()
			segment = nil
			segCost = 0
			remaining = perTurnBudget
		}
		segment = append(segment, cell)
		segCost += w
		remaining -= w
		out.TotalCost += w
	}
	closeTurn()

	out.TurnsRequired = len(out.Segments)
	return out
}

// Segment returns the path slice walked on the given zero-based turn
func (r *MultiTurnResult) Segment(turn int) []hex.Axial {
	if turn < 0 || turn >= len(r.Segments) {
		return nil
	}
	return r.Segments[turn]
}

// TurnCost returns the movement spent on the given zero-based turn
func (r *MultiTurnResult) TurnCost(turn int) int {
	if turn < 0 || turn >= len(r.TurnCosts) {
		return 0
	}
	return r.TurnCosts[turn]
}

// RemainingAfter returns the portion of the path still unwalked after
// n completed turns, excluding the cell the unit stands on
func (r *MultiTurnResult) RemainingAfter(turns int) []hex.Axial {
	if turns <= 0 {
		return r.CompletePath
	}
	if turns >= len(r.Segments) {
		return nil
	}
	walked := 0
	for i := 0; i < turns; i++ {
		walked += len(r.Segments[i])
	}
	return r.CompletePath[walked:]
}

// Efficiency is the average fraction of the per-turn budget actually
// spent: total cost over turns times budget. Can exceed 1.0 when an
// over-budget single cell forced an overflowing turn
func (r *MultiTurnResult) Efficiency() float64 {
	if r.TurnsRequired == 0 || r.PerTurnBudget <= 0 {
		return 0
	}
	return float64(r.TotalCost) / float64(r.TurnsRequired*r.PerTurnBudget)
}
