package navigation

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gravitas-015/hexcore/hex"
	"golang.org/x/sync/singleflight"

	"github.com/lixenwraith/hexnav/grid"
	"github.com/lixenwraith/hexnav/parameter"
)

// Configuration misuse surfaces as errors; search outcomes surface as
// Results with a FailureReason. The two never mix
var (
	ErrNullEndpoint = errors.New("navigation: null endpoint")
	ErrUnsupported  = errors.New("navigation: operation not supported by strategy")
	ErrSearchLimit  = errors.New("navigation: search limit exceeded")
)

// Manager orchestrates strategy dispatch, caching and statistics over
// one map. Construct explicitly and pass it where it is needed; there
// is deliberately no package-level instance.
//
// The manager does not retry failed searches. Callers decide whether
// to relax the context, switch strategy, or surface the failure
type Manager struct {
	world *grid.Map
	algo  atomic.Int32

	cache *resultCache
	group singleflight.Group
	stats searchStats
}

// NewManager creates a manager with the default A* strategy and
// parameter-default cache bounds
func NewManager(world *grid.Map) *Manager {
	return NewManagerWithCache(world, parameter.NavCacheTTL, parameter.NavCacheMaxEntries)
}

// NewManagerWithCache creates a manager with explicit cache TTL and
// capacity
func NewManagerWithCache(world *grid.Map, ttl time.Duration, capacity int) *Manager {
	m := &Manager{
		world: world,
		cache: newResultCache(ttl, capacity),
	}
	m.algo.Store(int32(StrategyAStar))
	return m
}

// World returns the map this manager searches
func (mgr *Manager) World() *grid.Map {
	return mgr.world
}

// SetAlgorithm swaps the active strategy
func (mgr *Manager) SetAlgorithm(s Strategy) error {
	if !s.Valid() {
		return fmt.Errorf("set algorithm: unknown strategy %d", uint8(s))
	}
	mgr.algo.Store(int32(s))
	return nil
}

// Algorithm returns the active strategy. Each call reads it exactly
// once, so a concurrent SetAlgorithm affects subsequent calls, never a
// search already in flight
func (mgr *Manager) Algorithm() Strategy {
	return Strategy(mgr.algo.Load())
}

// FindPath runs the active strategy from start to goal, serving
// repeats from the cache. Concurrent identical queries are coalesced
// into one computation. Absent endpoints yield a NullEndpoint result,
// not an error
func (mgr *Manager) FindPath(start, goal hex.Axial, ctx *Context) (Result, error) {
	if ctx == nil {
		ctx = DefaultContext()
	}
	began := time.Now()

	if !mgr.world.Contains(start) || !mgr.world.Contains(goal) {
		r := failure(ReasonNullEndpoint, 0)
		mgr.stats.recordMiss(r)
		return r, nil
	}

	algo := mgr.Algorithm()
	key := cacheKey{algo: algo, start: start, goal: goal, ctxFp: ctx.Fingerprint()}
	if r, ok := mgr.cache.get(key); ok {
		mgr.stats.recordHit()
		r.ComputeTime = time.Since(began)
		return r, nil
	}

	v, _, shared := mgr.group.Do(sfKey(key), func() (interface{}, error) {
		sc := newScratch(64)
		t := time.Now()
		r := dispatch(algo, mgr.world, start, goal, ctx, sc)
		r.ComputeTime = time.Since(t)
		mgr.cache.put(key, r, sc.touched)
		return r, nil
	})
	r := v.(Result)
	if shared {
		mgr.stats.recordCoalesced(r)
	} else {
		mgr.stats.recordMiss(r)
	}
	return r, nil
}

// FindAllPathsFrom runs all-targets mode: the full distance and
// predecessor map from one origin, bounded by the context movement
// budget when set. Strategies that cannot produce a distance map are
// rejected here rather than executed nonsensically
func (mgr *Manager) FindAllPathsFrom(origin hex.Axial, ctx *Context) (*DistanceMap, error) {
	if ctx == nil {
		ctx = DefaultContext()
	}
	if algo := mgr.Algorithm(); !supportsAllTargets(algo) {
		return nil, fmt.Errorf("all-targets mode with strategy %s: %w", algo, ErrUnsupported)
	}
	if !mgr.world.Contains(origin) {
		return nil, fmt.Errorf("all paths from %v: %w", origin, ErrNullEndpoint)
	}
	dm, explored, ok := findAllPaths(mgr.world, origin, ctx, newScratch(64))
	if !ok {
		return nil, fmt.Errorf("all paths from %v after %d nodes: %w", origin, explored, ErrSearchLimit)
	}
	return dm, nil
}

// FindPathsToMultipleGoals resolves one start against many goals
// concurrently. Per-search scratch isolation makes the fan-out safe as
// long as the map is not mutated while it runs
func (mgr *Manager) FindPathsToMultipleGoals(start hex.Axial, goals []hex.Axial, ctx *Context) (map[hex.Axial]Result, error) {
	results, err := mgr.findPathsParallel(start, goals, ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[hex.Axial]Result, len(goals))
	for i, goal := range goals {
		out[goal] = results[i]
	}
	return out, nil
}

// GetReachableCells returns every cell whose cheapest path cost from
// start is within the movement budget, start included
func (mgr *Manager) GetReachableCells(start hex.Axial, budget int, ctx *Context) (map[hex.Axial]struct{}, error) {
	if ctx == nil {
		ctx = DefaultContext()
	}
	if !mgr.world.Contains(start) {
		return nil, fmt.Errorf("reachable cells from %v: %w", start, ErrNullEndpoint)
	}
	bounded := ctx.Clone()
	bounded.MaxMovementPoints = budget
	dm, explored, ok := findAllPaths(mgr.world, start, bounded, newScratch(64))
	if !ok {
		return nil, fmt.Errorf("reachable cells from %v after %d nodes: %w", start, explored, ErrSearchLimit)
	}
	out := make(map[hex.Axial]struct{}, len(dm.Distance))
	for a := range dm.Distance {
		out[a] = struct{}{}
	}
	return out, nil
}

// GetCellsWithinSteps returns every cell within the given unweighted
// step count of start, start included. Terrain cost is irrelevant here
func (mgr *Manager) GetCellsWithinSteps(start hex.Axial, steps int, ctx *Context) (map[hex.Axial]struct{}, error) {
	if ctx == nil {
		ctx = DefaultContext()
	}
	if !mgr.world.Contains(start) {
		return nil, fmt.Errorf("cells within steps of %v: %w", start, ErrNullEndpoint)
	}
	return floodWithinSteps(mgr.world, start, steps, ctx, newScratch(64)), nil
}

// GenerateDirectionField precomputes a flow map toward goal for
// many-agents-one-destination movement. maxDistance < 0 means
// unbounded. Fields are rebuilt, never patched; generate a new one
// after terrain changes
func (mgr *Manager) GenerateDirectionField(goal hex.Axial, ctx *Context, maxDistance int) (*DirectionField, error) {
	if ctx == nil {
		ctx = DefaultContext()
	}
	field, err := buildDirectionField(mgr.world, goal, ctx, maxDistance)
	if err != nil {
		return nil, fmt.Errorf("direction field toward %v: %w", goal, err)
	}
	return field, nil
}

// FindMultiTurnPath plans start→goal across turns bounded by a
// per-turn movement budget. The underlying search outcome rides along
// in Source; a failed search yields zero turns, never a partial plan
func (mgr *Manager) FindMultiTurnPath(start, goal hex.Axial, perTurnBudget int, ctx *Context) (*MultiTurnResult, error) {
	if ctx == nil {
		ctx = DefaultContext()
	}
	if perTurnBudget <= 0 {
		return nil, fmt.Errorf("multi-turn path: budget %d must be positive", perTurnBudget)
	}
	r, err := mgr.FindPath(start, goal, ctx)
	if err != nil {
		return nil, err
	}
	if !r.Success {
		return &MultiTurnResult{Source: r, PerTurnBudget: perTurnBudget}, nil
	}
	plan := planMultiTurn(mgr.world, r.Path, perTurnBudget, ctx)
	plan.Source = r
	return plan, nil
}

// InvalidateCache evicts every cached result whose search consulted
// the given cell. Call it on any terrain or occupancy change
func (mgr *Manager) InvalidateCache(a hex.Axial) {
	mgr.cache.invalidateCell(a)
}

// ClearCache drops all cached results
func (mgr *Manager) ClearCache() {
	mgr.cache.clear()
}

// CacheSize returns the number of cached results
func (mgr *Manager) CacheSize() int {
	return mgr.cache.size()
}

// Statistics returns a snapshot of the running counters
func (mgr *Manager) Statistics() Statistics {
	return mgr.stats.snapshot()
}

// ResetStatistics zeroes the running counters
func (mgr *Manager) ResetStatistics() {
	mgr.stats.reset()
}

func sfKey(k cacheKey) string {
	return fmt.Sprintf("%d|%d,%d|%d,%d|%x", k.algo, k.start.Q, k.start.R, k.goal.Q, k.goal.R, k.ctxFp)
}
