package navigation

import (
	"github.com/gravitas-015/hexcore/hex"

	"github.com/lixenwraith/hexnav/grid"
)

// findPathGreedy is the approximate best-first search: priority is the
// heuristic alone, with no g term, and a dequeued cell is never
// reopened even if a cheaper path to it turns up later. Exactly those
// two choices make it fast and non-optimal. Actual path cost is still
// tracked and reported so callers can compare against the optimal
// strategies, but it never drives the search.
//
// Callers choosing this strategy accept potentially suboptimal paths
// in exchange for materially faster convergence; it suits many
// simultaneous low-priority agents
func findPathGreedy(m *grid.Map, start, goal hex.Axial, ctx *Context, sc *scratch) Result {
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
			if sc.closed[n] || open.contains(n) {
				continue
			}
			if !ctx.canTraverse(m, n, goal) {
				continue
			}
			sc.g[n] = sc.g[cur] + ctx.enterCost(m, n)
			sc.came[n] = cur
			open.push(n, heuristic(n, goal))
		}
	}
	return failure(ReasonNoPath, explored)
}
