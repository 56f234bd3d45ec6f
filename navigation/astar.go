package navigation

import (
	"github.com/gravitas-015/hexcore/hex"

	"github.com/lixenwraith/hexnav/grid"
)

// findPathAStar is the optimal single-target search: open set ordered
// by g+h, closed set, hex-distance heuristic. Optimal whenever every
// entering cost is at least the unit step cost, which enterCost
// guarantees by clamping
func findPathAStar(m *grid.Map, start, goal hex.Axial, ctx *Context, sc *scratch) Result {
	if start == goal {
		return Result{Success: true, Path: []hex.Axial{start}}
	}

	ceiling := ctx.nodeCeiling()
	open := newQueue(64)
	sc.g[start] = 0
	sc.touch(start)
	open.push(start, heuristic(start, goal))

	explored := 0
	for open.len() > 0 {
		cur, _ := open.popMin()
		explored++
		if ceiling > 0 && explored > ceiling {
			return failure(ReasonSearchLimit, explored)
		}
		if cur == goal {
			return Result{
				Success:       true,
				Path:          sc.reconstruct(start, goal),
				TotalCost:     sc.g[goal],
				NodesExplored: explored,
			}
		}
		sc.closed[cur] = true

		for _, n := range m.Neighbors(cur) {
			sc.touch(n)
			if sc.closed[n] || !ctx.canTraverse(m, n, goal) {
				continue
			}
			tentative := sc.g[cur] + ctx.enterCost(m, n)
			if old, seen := sc.g[n]; seen && tentative >= old {
				continue
			}
			sc.g[n] = tentative
			sc.came[n] = cur
			open.push(n, tentative+heuristic(n, goal))
		}
	}
	return failure(ReasonNoPath, explored)
}
