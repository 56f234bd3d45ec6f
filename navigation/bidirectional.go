package navigation

import (
	"github.com/gravitas-015/hexcore/hex"

	"github.com/lixenwraith/hexnav/grid"
)

// findPathBidirectional runs two A* frontiers at once: forward from
// start aiming at the goal, backward from goal aiming at the start.
// The backward frontier charges mirrored edge costs: stepping from cur
// to n in backward space corresponds to the forward edge n→cur, so the
// cost charged is that of the cell being left, which is the cell
// entered in forward space. That keeps g_b(x) equal to the true
// forward cost from x to the goal.
//
// Expansion alternates between frontiers. The search stops once the
// larger of the two frontiers' minimum f-values reaches the best known
// meeting cost: a cheaper undiscovered path would keep a node with
// f below that cost on BOTH open lists, so the bound is safe
func findPathBidirectional(m *grid.Map, start, goal hex.Axial, ctx *Context, sc *scratch) Result {
	if start == goal {
		return Result{Success: true, Path: []hex.Axial{start}}
	}

	ceiling := ctx.nodeCeiling()

	// Forward state lives in the shared scratch; backward keeps its own
	gB := make(map[hex.Axial]int, 64)
	cameB := make(map[hex.Axial]hex.Axial, 64) // cell → successor toward goal
	closedB := make(map[hex.Axial]bool, 64)

	openF := newQueue(64)
	openB := newQueue(64)
	sc.g[start] = 0
	gB[goal] = 0
	sc.touch(start)
	sc.touch(goal)
	openF.push(start, heuristic(start, goal))
	openB.push(goal, heuristic(goal, start))

	const unmet = -1
	bestCost := unmet
	var meet hex.Axial

	tryMeet := func(c hex.Axial) {
		gf, okF := sc.g[c]
		gb, okB := gB[c]
		if okF && okB && (bestCost == unmet || gf+gb < bestCost) {
			bestCost = gf + gb
			meet = c
		}
	}

	explored := 0
	forwardTurn := true
	for openF.len() > 0 && openB.len() > 0 {
		if bestCost != unmet {
			top := openF.minPriority()
			if b := openB.minPriority(); b > top {
				top = b
			}
			if top >= bestCost {
				break
			}
		}

		explored++
		if ceiling > 0 && explored > ceiling {
			return failure(ReasonSearchLimit, explored)
		}

		if forwardTurn {
			cur, _ := openF.popMin()
			sc.closed[cur] = true
			tryMeet(cur)
			for _, n := range m.Neighbors(cur) {
				sc.touch(n)
				if sc.closed[n] || !ctx.canTraverse(m, n, goal) {
					continue
				}
				tentative := sc.g[cur] + ctx.enterCost(m, n)
				if old, seen := sc.g[n]; !seen || tentative < old {
					sc.g[n] = tentative
					sc.came[n] = cur
					openF.push(n, tentative+heuristic(n, goal))
				}
				tryMeet(n)
			}
		} else {
			cur, _ := openB.popMin()
			closedB[cur] = true
			tryMeet(cur)
			leaveCost := ctx.enterCost(m, cur)
			for _, n := range m.Neighbors(cur) {
				sc.touch(n)
				if closedB[n] || !ctx.canTraverse(m, n, start) {
					continue
				}
				tentative := gB[cur] + leaveCost
				if old, seen := gB[n]; !seen || tentative < old {
					gB[n] = tentative
					cameB[n] = cur
					openB.push(n, tentative+heuristic(n, start))
				}
				tryMeet(n)
			}
		}
		forwardTurn = !forwardTurn
	}

	if bestCost == unmet {
		return failure(ReasonNoPath, explored)
	}

	// Forward half start→meet, then the backward chain meet→goal
	path := sc.reconstruct(start, meet)
	for cur := meet; cur != goal; {
		cur = cameB[cur]
		path = append(path, cur)
	}
	return Result{
		Success:       true,
		Path:          path,
		TotalCost:     bestCost,
		NodesExplored: explored,
	}
}
