package navigation

import (
	"time"

	"github.com/gravitas-015/hexcore/hex"
)

// Reason classifies a failed search. Empty on success
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonNullEndpoint    Reason = "null endpoint"
	ReasonNoPath          Reason = "no path exists"
	ReasonSearchLimit     Reason = "search limit exceeded"
	ReasonGoalUnreachable Reason = "goal unreachable from source"
)

// Result is the outcome of one point search. Immutable once returned;
// Path is empty when Success is false, never a partial path
type Result struct {
	Success       bool
	Path          []hex.Axial
	TotalCost     int
	NodesExplored int
	ComputeTime   time.Duration
	FailureReason Reason
}

func failure(reason Reason, explored int) Result {
	return Result{
		Success:       false,
		NodesExplored: explored,
		FailureReason: reason,
	}
}

// DistanceMap is the outcome of an all-targets search from one origin:
// the weighted distance and predecessor of every reached cell.
// The engine does not mutate it after return
type DistanceMap struct {
	Origin        hex.Axial
	Distance      map[hex.Axial]int
	CameFrom      map[hex.Axial]hex.Axial
	NodesExplored int
}

// Reached reports whether the all-targets search settled the cell
func (d *DistanceMap) Reached(a hex.Axial) bool {
	_, ok := d.Distance[a]
	return ok
}

// PathTo slices a single-destination path out of the map.
// Fails with ReasonGoalUnreachable when the search completed without
// reaching the goal
func (d *DistanceMap) PathTo(goal hex.Axial) Result {
	cost, ok := d.Distance[goal]
	if !ok {
		return failure(ReasonGoalUnreachable, d.NodesExplored)
	}
	path := []hex.Axial{goal}
	cur := goal
	for cur != d.Origin {
		prev, ok := d.CameFrom[cur]
		if !ok {
			return failure(ReasonGoalUnreachable, d.NodesExplored)
		}
		path = append(path, prev)
		cur = prev
	}
	reversePath(path)
	return Result{
		Success:       true,
		Path:          path,
		TotalCost:     cost,
		NodesExplored: d.NodesExplored,
	}
}

// DirectionField is a precomputed flow map toward one goal: for every
// reached cell, the neighbor that leads toward the goal and the total
// cost to get there. Built once, queried many times; immutable after
// construction. Rebuild it from scratch when the goal or terrain
// changes, it is never patched incrementally
type DirectionField struct {
	Goal          hex.Axial
	Flow          map[hex.Axial]hex.Axial
	CostToGoal    map[hex.Axial]int
	NodesExplored int
}

// Reached reports whether the field covers the cell
func (f *DirectionField) Reached(a hex.Axial) bool {
	_, ok := f.CostToGoal[a]
	return ok
}

// Next returns the stored flow direction from a cell, false at the
// goal or outside the field
func (f *DirectionField) Next(a hex.Axial) (hex.Axial, bool) {
	n, ok := f.Flow[a]
	return n, ok
}

// PathFrom walks the stored directions from start to the goal.
// Pure lookup, no search; O(path length)
func (f *DirectionField) PathFrom(start hex.Axial) Result {
	cost, ok := f.CostToGoal[start]
	if !ok {
		return failure(ReasonGoalUnreachable, 0)
	}
	path := []hex.Axial{start}
	cur := start
	for cur != f.Goal {
		next, ok := f.Flow[cur]
		if !ok {
			return failure(ReasonGoalUnreachable, 0)
		}
		path = append(path, next)
		cur = next
	}
	return Result{
		Success:   true,
		Path:      path,
		TotalCost: cost,
	}
}

func reversePath(p []hex.Axial) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}
