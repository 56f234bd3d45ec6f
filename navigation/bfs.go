package navigation

import (
	"github.com/gravitas-015/hexcore/hex"

	"github.com/lixenwraith/hexnav/grid"
)

// findPathBFS is the unweighted breadth search: plain FIFO queue, every
// relaxation adds exactly one step regardless of terrain cost. Optimal
// in step count, not in weighted cost; the reported cost IS the step
// count. The right tool for reachability and closest-of-many queries
// where terrain cost is irrelevant
func findPathBFS(m *grid.Map, start, goal hex.Axial, ctx *Context, sc *scratch) Result {
	if start == goal {
		return Result{Success: true, Path: []hex.Axial{start}}
	}

	ceiling := ctx.nodeCeiling()
	fifo := []hex.Axial{start}
	sc.g[start] = 0
	sc.closed[start] = true
	sc.touch(start)

	explored := 0
	for len(fifo) > 0 {
		cur := fifo[0]
		fifo = fifo[1:]
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
		for _, n := range m.Neighbors(cur) {
			sc.touch(n)
			if sc.closed[n] || !ctx.canTraverse(m, n, goal) {
				continue
			}
			sc.closed[n] = true
			sc.g[n] = sc.g[cur] + 1
			sc.came[n] = cur
			fifo = append(fifo, n)
		}
	}
	return failure(ReasonNoPath, explored)
}

// floodWithinSteps collects every cell reachable from start in at most
// maxSteps unweighted steps, start included
func floodWithinSteps(m *grid.Map, start hex.Axial, maxSteps int, ctx *Context, sc *scratch) map[hex.Axial]struct{} {
	out := make(map[hex.Axial]struct{})
	if ctx.blocked(m, start) {
		return out
	}
	out[start] = struct{}{}
	sc.g[start] = 0
	sc.closed[start] = true
	fifo := []hex.Axial{start}

	for len(fifo) > 0 {
		cur := fifo[0]
		fifo = fifo[1:]
		if sc.g[cur] >= maxSteps {
			continue
		}
		for _, n := range m.Neighbors(cur) {
			if sc.closed[n] || !ctx.canOccupy(m, n) {
				continue
			}
			sc.closed[n] = true
			sc.g[n] = sc.g[cur] + 1
			out[n] = struct{}{}
			fifo = append(fifo, n)
		}
	}
	return out
}
