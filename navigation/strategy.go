package navigation

import (
	"fmt"

	"github.com/gravitas-015/hexcore/hex"

	"github.com/lixenwraith/hexnav/grid"
)

// Strategy selects one of the seven search algorithms. A closed set of
// tagged values behind one call contract, dispatched per call; there
// is no polymorphic algorithm object to race over
type Strategy uint8

const (
	// StrategyAStar is the optimal single-target search
	StrategyAStar Strategy = iota
	// StrategyDijkstra is the all-targets optimal search; single
	// targets are sliced out of a full run
	StrategyDijkstra
	// StrategyBFS is the unweighted breadth search; cost = step count
	StrategyBFS
	// StrategyGreedy is heuristic-only best-first: fast, approximate
	StrategyGreedy
	// StrategyBidirectional meets two optimal frontiers in the middle
	StrategyBidirectional
	// StrategyFlowField builds a direction field toward the goal and
	// walks it
	StrategyFlowField
	// StrategyJPS jumps straight hex lines between forced turns
	StrategyJPS

	strategyCount
)

var strategyNames = [strategyCount]string{
	"astar", "dijkstra", "bfs", "greedy", "bidirectional", "flowfield", "jps",
}

func (s Strategy) String() string {
	if s < strategyCount {
		return strategyNames[s]
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// Valid reports whether s names a known strategy
func (s Strategy) Valid() bool {
	return s < strategyCount
}

// ParseStrategy resolves a strategy by name, as used by tool flags
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// Strategies lists all strategy values in dispatch order
func Strategies() []Strategy {
	out := make([]Strategy, strategyCount)
	for i := range out {
		out[i] = Strategy(i)
	}
	return out
}

// dispatch runs the chosen strategy's point search. All strategies
// share the contract: fresh scratch in, immutable Result out, failures
// reported with a reason, never a partial path
func dispatch(s Strategy, m *grid.Map, start, goal hex.Axial, ctx *Context, sc *scratch) Result {
	switch s {
	case StrategyAStar:
		return findPathAStar(m, start, goal, ctx, sc)
	case StrategyDijkstra:
		return findPathDijkstra(m, start, goal, ctx, sc)
	case StrategyBFS:
		return findPathBFS(m, start, goal, ctx, sc)
	case StrategyGreedy:
		return findPathGreedy(m, start, goal, ctx, sc)
	case StrategyBidirectional:
		return findPathBidirectional(m, start, goal, ctx, sc)
	case StrategyFlowField:
		return findPathFlowField(m, start, goal, ctx, sc)
	case StrategyJPS:
		return findPathJPS(m, start, goal, ctx, sc)
	default:
		return failure(ReasonNoPath, 0)
	}
}

// supportsAllTargets reports whether a strategy can serve all-targets
// mode. Requesting it with any other strategy is a configuration
// error, rejected at the manager, never executed nonsensically
func supportsAllTargets(s Strategy) bool {
	return s == StrategyDijkstra
}
