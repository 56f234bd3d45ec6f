package navigation

import (
	"testing"

	"github.com/gravitas-015/hexcore/hex"

	"github.com/lixenwraith/hexnav/grid"
)

func lineMap(costs []int) (*grid.Map, []hex.Axial) {
	m := grid.NewMap()
	path := make([]hex.Axial, len(costs))
	for i, w := range costs {
		c := hex.Axial{Q: i, R: 0}
		tile := grid.NewTile("plains")
		tile.MoveCost = w
		m.Add(c, tile)
		path[i] = c
	}
	return m, path
}

func TestMultiTurnPartition(t *testing.T) {
	// Entering costs 2,2,1,3,2 against a budget of 4:
	// turn 0 walks 2+2, turn 1 walks 1+3, turn 2 walks 2
	m, path := lineMap([]int{1, 2, 2, 1, 3, 2})
	ctx := DefaultContext()

	r := planMultiTurn(m, path, 4, ctx)
	if r.TurnsRequired != 3 {
		t.Fatalf("turns = %d, want 3", r.TurnsRequired)
	}
	if r.TotalCost != 10 {
		t.Errorf("total cost = %d, want 10", r.TotalCost)
	}
	wantCosts := []int{4, 4, 2}
	for i, w := range wantCosts {
		if r.TurnCosts[i] != w {
			t.Errorf("turn %d cost = %d, want %d", i, r.TurnCosts[i], w)
		}
	}

	// Concatenating the segments reproduces the full path exactly
	var joined []hex.Axial
	for _, seg := range r.Segments {
		joined = append(joined, seg...)
	}
	if len(joined) != len(path) {
		t.Fatalf("segments join to %d cells, path has %d", len(joined), len(path))
	}
	for i := range path {
		if joined[i] != path[i] {
			t.Errorf("joined[%d] = %v, want %v", i, joined[i], path[i])
		}
	}

	for i, seg := range r.Segments {
		if r.TurnEndpoints[i] != seg[len(seg)-1] {
			t.Errorf("endpoint %d = %v, segment ends at %v", i, r.TurnEndpoints[i], seg[len(seg)-1])
		}
	}
}

func TestMultiTurnOversizedCell(t *testing.T) {
	// The cost-7 cell exceeds the whole budget; it still takes exactly
	// one turn, and that turn's recorded cost overflows the budget
	m, path := lineMap([]int{1, 2, 7, 1})
	r := planMultiTurn(m, path, 5, DefaultContext())

	if r.TurnsRequired != 3 {
		t.Fatalf("turns = %d, want 3", r.TurnsRequired)
	}
	if r.TurnCosts[1] != 7 {
		t.Errorf("oversized turn cost = %d, want 7", r.TurnCosts[1])
	}
	if len(r.Segments[1]) != 1 {
		t.Errorf("oversized turn spans %d cells, want 1", len(r.Segments[1]))
	}
}

func TestMultiTurnSingleTurn(t *testing.T) {
	m, path := lineMap([]int{1, 1, 1, 1})
	r := planMultiTurn(m, path, 10, DefaultContext())

	if r.TurnsRequired != 1 {
		t.Fatalf("turns = %d, want 1", r.TurnsRequired)
	}
	if r.TurnCosts[0] != 3 || r.TotalCost != 3 {
		t.Errorf("costs = %v total %d, want [3] total 3", r.TurnCosts, r.TotalCost)
	}
	if r.Efficiency() != 0.3 {
		t.Errorf("efficiency = %v, want 0.3", r.Efficiency())
	}
}

func TestMultiTurnRemainingAfter(t *testing.T) {
	m, path := lineMap([]int{1, 1, 1, 1, 1, 1})
	r := planMultiTurn(m, path, 2, DefaultContext())

	if r.TurnsRequired != 3 {
		t.Fatalf("turns = %d, want 3", r.TurnsRequired)
	}

	rem := r.RemainingAfter(1)
	// After one turn the unit stands on path[2]; the unwalked
	// remainder starts at the next cell
	if len(rem) == 0 || rem[0] != path[3] {
		t.Fatalf("remaining after 1 = %v", rem)
	}
	if rem[len(rem)-1] != path[len(path)-1] {
		t.Errorf("remainder does not end at the goal: %v", rem)
	}

	if got := r.RemainingAfter(0); len(got) != len(path) {
		t.Errorf("remaining after 0 = %d cells, want the whole path", len(got))
	}
	if got := r.RemainingAfter(3); len(got) > 1 {
		t.Errorf("remaining after all turns = %v, want at most the final cell", got)
	}
}

func TestMultiTurnEmptyInputs(t *testing.T) {
	m, path := lineMap([]int{1, 1})

	r := planMultiTurn(m, nil, 4, DefaultContext())
	if r.TurnsRequired != 0 || len(r.Segments) != 0 {
		t.Errorf("empty path plan = %+v", r)
	}

	r = planMultiTurn(m, path, 0, DefaultContext())
	if r.TurnsRequired != 0 {
		t.Errorf("zero budget plan has %d turns", r.TurnsRequired)
	}
}

func TestMultiTurnEfficiencyCanExceedOne(t *testing.T) {
	m, path := lineMap([]int{1, 6})
	r := planMultiTurn(m, path, 4, DefaultContext())

	if r.TurnsRequired != 1 || r.TotalCost != 6 {
		t.Fatalf("plan = %+v", r)
	}
	if r.Efficiency() <= 1 {
		t.Errorf("efficiency = %v, want > 1 for an overflowing turn", r.Efficiency())
	}
}
