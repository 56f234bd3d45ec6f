package navigation

import (
	"github.com/gravitas-015/hexcore/hex"

	"github.com/lixenwraith/hexnav/grid"
)

// buildDirectionField treats the goal as the search source and runs
// the all-targets relaxation backward: expanding cur and considering a
// candidate predecessor n, the cost charged is that of entering cur
// from n, so CostToGoal[n] is the true forward cost of walking from n
// to the goal. For every settled cell the neighbor it was relaxed from
// is stored as its flow direction.
//
// One field build costs a full Dijkstra; each agent path afterward is
// a pure O(path length) walk. That trade is right exactly when many
// agents share one destination, and wrong for single point queries,
// where it strictly loses to A*.
//
// Occupied cells remain part of the field, unlike the point-search
// strategies: agents following a shared field route around each other
// on their own. maxDistance, when >= 0, bounds the field to cells
// within that many hex rings of the goal
func buildDirectionField(m *grid.Map, goal hex.Axial, ctx *Context, maxDistance int) (*DirectionField, error) {
	if !m.Contains(goal) {
		return nil, ErrNullEndpoint
	}

	ceiling := ctx.nodeCeiling()
	budget := ctx.MaxMovementPoints

	field := &DirectionField{
		Goal:       goal,
		Flow:       make(map[hex.Axial]hex.Axial, 64),
		CostToGoal: make(map[hex.Axial]int, 64),
	}
	field.CostToGoal[goal] = 0

	open := newQueue(64)
	open.push(goal, 0)
	closed := make(map[hex.Axial]bool, 64)

	explored := 0
	for open.len() > 0 {
		cur, _ := open.popMin()
		explored++
		if ceiling > 0 && explored > ceiling {
			break
		}
		closed[cur] = true
		leaveCost := ctx.enterCost(m, cur)

		for _, n := range m.Neighbors(cur) {
			if closed[n] || !ctx.canFlow(m, n) {
				continue
			}
			if maxDistance >= 0 && hex.DistanceAxial(goal, n) > maxDistance {
				continue
			}
			tentative := field.CostToGoal[cur] + leaveCost
			if budget >= 0 && tentative > budget {
				continue
			}
			if old, seen := field.CostToGoal[n]; seen && tentative >= old {
				continue
			}
			field.CostToGoal[n] = tentative
			field.Flow[n] = cur
			open.push(n, tentative)
		}
	}

	field.NodesExplored = explored
	return field, nil
}

// findPathFlowField serves the point-search contract through a freshly
// built field: build toward the goal, then walk the stored directions
// from start. Exists so the strategy set is uniform; see
// buildDirectionField for when a field is actually the right tool
func findPathFlowField(m *grid.Map, start, goal hex.Axial, ctx *Context, sc *scratch) Result {
	if start == goal {
		return Result{Success: true, Path: []hex.Axial{start}}
	}
	field, err := buildDirectionField(m, goal, ctx, -1)
	if err != nil {
		return failure(ReasonNullEndpoint, 0)
	}
	for a := range field.CostToGoal {
		sc.touch(a)
	}
	r := field.PathFrom(start)
	r.NodesExplored = field.NodesExplored
	if !r.Success {
		r.FailureReason = ReasonNoPath
	}
	return r
}
