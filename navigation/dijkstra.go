package navigation

import (
	"github.com/gravitas-015/hexcore/hex"

	"github.com/lixenwraith/hexnav/grid"
)

// findAllPaths is the all-targets optimal search: the A* relaxation
// loop with a zero heuristic and no goal check, run to exhaustion.
// One full run beats N single-target searches when many destinations
// from one source are needed.
//
// When the context carries a movement budget, neighbors whose
// tentative cost exceeds it are simply not relaxed; the explored
// region shrinks but the algorithm is unchanged.
// The bool is false when the node ceiling was hit before exhaustion;
// the int is the expansion count either way
func findAllPaths(m *grid.Map, origin hex.Axial, ctx *Context, sc *scratch) (*DistanceMap, int, bool) {
	ceiling := ctx.nodeCeiling()
	budget := ctx.MaxMovementPoints

	open := newQueue(64)
	sc.g[origin] = 0
	sc.touch(origin)
	open.push(origin, 0)

	explored := 0
	for open.len() > 0 {
		cur, _ := open.popMin()
		explored++
		if ceiling > 0 && explored > ceiling {
			return nil, explored, false
		}
		sc.closed[cur] = true

		for _, n := range m.Neighbors(cur) {
			sc.touch(n)
			if sc.closed[n] || !ctx.canOccupy(m, n) {
				continue
			}
			tentative := sc.g[cur] + ctx.enterCost(m, n)
			if budget >= 0 && tentative > budget {
				continue
			}
			if old, seen := sc.g[n]; seen && tentative >= old {
				continue
			}
			sc.g[n] = tentative
			sc.came[n] = cur
			open.push(n, tentative)
		}
	}

	dm := &DistanceMap{
		Origin:        origin,
		Distance:      sc.g,
		CameFrom:      sc.came,
		NodesExplored: explored,
	}
	return dm, explored, true
}

// findPathDijkstra serves a single-target query by running the
// all-targets search to completion and slicing the goal out of the
// map. Deliberately less efficient per query than A*; it exists so the
// strategy contract is uniform
func findPathDijkstra(m *grid.Map, start, goal hex.Axial, ctx *Context, sc *scratch) Result {
	if start == goal {
		return Result{Success: true, Path: []hex.Axial{start}}
	}
	dm, explored, ok := findAllPaths(m, start, ctx, sc)
	if !ok {
		return failure(ReasonSearchLimit, explored)
	}
	r := dm.PathTo(goal)
	if r.Success {
		return r
	}
	// Goal exemption: an occupied or reserved goal is not entered
	// by the flood itself, but a goal adjacent to the flood is
	// still reachable by definition
	if best, cost, found := bestGoalApproach(m, goal, ctx, dm); found {
		path := dm.PathTo(best)
		if path.Success {
			path.Path = append(path.Path, goal)
			path.TotalCost = cost
			return path
		}
	}
	// Point-search contract: every strategy reports an unreachable
	// goal as NoPath. GoalUnreachable is reserved for the DistanceMap
	// API, where the caller asked about the whole map, not one pair
	return failure(ReasonNoPath, explored)
}

// bestGoalApproach finds the cheapest settled neighbor of a goal that
// the flood excluded for occupancy or reservation reasons only
func bestGoalApproach(m *grid.Map, goal hex.Axial, ctx *Context, dm *DistanceMap) (hex.Axial, int, bool) {
	if ctx.blocked(m, goal) {
		return hex.Axial{}, 0, false
	}
	bestCost := -1
	var best hex.Axial
	for _, n := range m.Neighbors(goal) {
		d, ok := dm.Distance[n]
		if !ok {
			continue
		}
		cost := d + ctx.enterCost(m, goal)
		if ctx.MaxMovementPoints >= 0 && cost > ctx.MaxMovementPoints {
			continue
		}
		if bestCost < 0 || cost < bestCost {
			bestCost = cost
			best = n
		}
	}
	return best, bestCost, bestCost >= 0
}
