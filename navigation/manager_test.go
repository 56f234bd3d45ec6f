package navigation

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gravitas-015/hexcore/hex"

	"github.com/lixenwraith/hexnav/grid"
)

func TestManagerFindPathAndCacheHit(t *testing.T) {
	mgr := NewManager(grid.NewRect(5, 5))
	start, goal := at(0, 0), at(4, 0)

	first, err := mgr.FindPath(start, goal, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Success || first.TotalCost != 4 {
		t.Fatalf("first query = %+v", first)
	}

	second, err := mgr.FindPath(start, goal, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Success || second.TotalCost != first.TotalCost {
		t.Fatalf("cached query = %+v", second)
	}
	if len(second.Path) != len(first.Path) {
		t.Errorf("cached path length %d, original %d", len(second.Path), len(first.Path))
	}

	st := mgr.Statistics()
	if st.TotalQueries != 2 || st.CacheHits != 1 || st.CacheMisses != 1 {
		t.Errorf("stats = %+v", st)
	}
	if st.HitRate() != 0.5 {
		t.Errorf("hit rate = %v, want 0.5", st.HitRate())
	}
}

func TestManagerContextChangesMissCache(t *testing.T) {
	mgr := NewManager(grid.NewRect(5, 5))
	start, goal := at(0, 0), at(4, 0)

	if _, err := mgr.FindPath(start, goal, DefaultContext()); err != nil {
		t.Fatal(err)
	}
	ctx := DefaultContext()
	ctx.DynamicObstacles = map[hex.Axial]struct{}{at(2, 0): {}}
	r, err := mgr.FindPath(start, goal, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Success || r.TotalCost != 5 {
		t.Fatalf("obstacle query = %+v, want detour cost 5", r)
	}
	if st := mgr.Statistics(); st.CacheHits != 0 || st.CacheMisses != 2 {
		t.Errorf("stats = %+v, want two misses", st)
	}
}

func TestManagerNullEndpoints(t *testing.T) {
	mgr := NewManager(grid.NewRect(3, 3))

	r, err := mgr.FindPath(at(0, 0), hex.Axial{Q: 50, R: 50}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Success || r.FailureReason != ReasonNullEndpoint {
		t.Errorf("off-map goal = %+v", r)
	}

	r, err = mgr.FindPath(hex.Axial{Q: -9, R: -9}, at(0, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Success || r.FailureReason != ReasonNullEndpoint {
		t.Errorf("off-map start = %+v", r)
	}

	if st := mgr.Statistics(); st.FailedQueries != 2 {
		t.Errorf("failed queries = %d, want 2", st.FailedQueries)
	}
}

func TestManagerInvalidateCache(t *testing.T) {
	mgr := NewManager(grid.NewRect(5, 5))
	start, goal := at(0, 0), at(4, 0)

	if _, err := mgr.FindPath(start, goal, nil); err != nil {
		t.Fatal(err)
	}
	if mgr.CacheSize() != 1 {
		t.Fatalf("cache size = %d, want 1", mgr.CacheSize())
	}

	// A cell the search never consulted leaves the entry alone
	mgr.InvalidateCache(at(0, 4))
	if mgr.CacheSize() != 1 {
		t.Errorf("unrelated invalidation evicted the entry")
	}

	// A cell on the path evicts it
	mgr.InvalidateCache(at(2, 0))
	if mgr.CacheSize() != 0 {
		t.Errorf("cache size after invalidation = %d, want 0", mgr.CacheSize())
	}

	// The recompute sees the new world state
	mgr.World().TileAt(at(2, 0)).Walkable = false
	r, err := mgr.FindPath(start, goal, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Success || r.TotalCost != 5 {
		t.Errorf("post-invalidation query = %+v, want detour cost 5", r)
	}
}

func TestManagerCacheOverflowClears(t *testing.T) {
	mgr := NewManagerWithCache(grid.NewRect(6, 6), time.Minute, 3)

	goals := []hex.Axial{at(1, 0), at(2, 0), at(3, 0), at(4, 0)}
	for _, g := range goals {
		if _, err := mgr.FindPath(at(0, 0), g, nil); err != nil {
			t.Fatal(err)
		}
	}
	// The fourth insert tripped the wholesale clear first
	if got := mgr.CacheSize(); got != 1 {
		t.Errorf("cache size = %d, want 1 after overflow clear", got)
	}
}

func TestManagerCacheTTL(t *testing.T) {
	mgr := NewManagerWithCache(grid.NewRect(4, 4), time.Nanosecond, 64)
	start, goal := at(0, 0), at(3, 0)

	if _, err := mgr.FindPath(start, goal, nil); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, err := mgr.FindPath(start, goal, nil); err != nil {
		t.Fatal(err)
	}
	if st := mgr.Statistics(); st.CacheHits != 0 || st.CacheMisses != 2 {
		t.Errorf("stats = %+v, want expired entry to miss", st)
	}
}

func TestManagerClearCache(t *testing.T) {
	mgr := NewManager(grid.NewRect(4, 4))
	if _, err := mgr.FindPath(at(0, 0), at(3, 0), nil); err != nil {
		t.Fatal(err)
	}
	mgr.ClearCache()
	if mgr.CacheSize() != 0 {
		t.Errorf("cache size = %d after clear", mgr.CacheSize())
	}
}

func TestManagerSetAlgorithm(t *testing.T) {
	mgr := NewManager(grid.NewHexagon(3))

	if mgr.Algorithm() != StrategyAStar {
		t.Errorf("default algorithm = %s, want astar", mgr.Algorithm())
	}
	if err := mgr.SetAlgorithm(StrategyBFS); err != nil {
		t.Fatal(err)
	}
	if mgr.Algorithm() != StrategyBFS {
		t.Errorf("algorithm = %s, want bfs", mgr.Algorithm())
	}
	if err := mgr.SetAlgorithm(Strategy(200)); err == nil {
		t.Error("invalid strategy accepted")
	}
}

func TestManagerAlgorithmIsPartOfCacheKey(t *testing.T) {
	// Weighted map: astar and bfs disagree on cost, so a cached astar
	// result must not serve a bfs query
	m := grid.NewRect(4, 1)
	m.TileAt(at(2, 0)).MoveCost = 9
	mgr := NewManager(m)
	start, goal := at(0, 0), at(3, 0)

	ar, err := mgr.FindPath(start, goal, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := mgr.SetAlgorithm(StrategyBFS); err != nil {
		t.Fatal(err)
	}
	br, err := mgr.FindPath(start, goal, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ar.TotalCost != 11 || br.TotalCost != 3 {
		t.Errorf("astar cost %d, bfs cost %d; want 11 and 3", ar.TotalCost, br.TotalCost)
	}
}

func TestFindAllPathsFromRequiresDijkstra(t *testing.T) {
	mgr := NewManager(grid.NewHexagon(3))

	if _, err := mgr.FindAllPathsFrom(hex.Axial{}, nil); !errors.Is(err, ErrUnsupported) {
		t.Errorf("astar all-targets err = %v, want ErrUnsupported", err)
	}

	if err := mgr.SetAlgorithm(StrategyDijkstra); err != nil {
		t.Fatal(err)
	}
	dm, err := mgr.FindAllPathsFrom(hex.Axial{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(dm.Distance) != mgr.World().Len() {
		t.Errorf("distance map covers %d of %d cells", len(dm.Distance), mgr.World().Len())
	}

	if _, err := mgr.FindAllPathsFrom(hex.Axial{Q: 40, R: 0}, nil); !errors.Is(err, ErrNullEndpoint) {
		t.Errorf("off-map origin err = %v, want ErrNullEndpoint", err)
	}

	ctx := DefaultContext()
	ctx.MaxSearchNodes = 1
	if _, err := mgr.FindAllPathsFrom(hex.Axial{}, ctx); !errors.Is(err, ErrSearchLimit) {
		t.Errorf("ceiling err = %v, want ErrSearchLimit", err)
	}
}

func TestFindPathsToMultipleGoals(t *testing.T) {
	mgr := NewManager(grid.NewRect(6, 6))
	start := at(0, 0)
	goals := []hex.Axial{at(5, 0), at(0, 5), at(5, 5), at(3, 3)}

	results, err := mgr.FindPathsToMultipleGoals(start, goals, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(goals) {
		t.Fatalf("results for %d of %d goals", len(results), len(goals))
	}
	for _, g := range goals {
		r, ok := results[g]
		if !ok {
			t.Fatalf("no result for goal %v", g)
		}
		single, err := mgr.FindPath(start, g, nil)
		if err != nil {
			t.Fatal(err)
		}
		if r.Success != single.Success || r.TotalCost != single.TotalCost {
			t.Errorf("goal %v: fan-out %+v, single %+v", g, r, single)
		}
	}
}

func TestGetReachableCells(t *testing.T) {
	mgr := NewManager(grid.NewHexagon(4))

	cells, err := mgr.GetReachableCells(hex.Axial{}, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 19 {
		t.Errorf("reachable cells = %d, want 19", len(cells))
	}

	if _, err := mgr.GetReachableCells(hex.Axial{Q: 30, R: 0}, 2, nil); !errors.Is(err, ErrNullEndpoint) {
		t.Errorf("off-map start err = %v", err)
	}
}

func TestGetCellsWithinSteps(t *testing.T) {
	mgr := NewManager(grid.NewHexagon(4))
	mgr.World().Each(func(_ hex.Axial, tile *grid.Tile) { tile.MoveCost = 5 })

	cells, err := mgr.GetCellsWithinSteps(hex.Axial{}, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 7 {
		t.Errorf("cells within one step = %d, want 7 regardless of weight", len(cells))
	}
}

func TestManagerGenerateDirectionField(t *testing.T) {
	mgr := NewManager(grid.NewHexagon(3))
	goal := hex.Axial{Q: 0, R: 0}

	field, err := mgr.GenerateDirectionField(goal, nil, -1)
	if err != nil {
		t.Fatal(err)
	}
	start := hex.Axial{Q: 3, R: 0}
	r := field.PathFrom(start)
	if !r.Success || len(r.Path) != 4 || r.TotalCost != 3 {
		t.Errorf("field path = %+v, want 4 cells cost 3", r)
	}

	if _, err := mgr.GenerateDirectionField(hex.Axial{Q: 40, R: 0}, nil, -1); !errors.Is(err, ErrNullEndpoint) {
		t.Errorf("off-map goal err = %v", err)
	}
}

func TestManagerFindMultiTurnPath(t *testing.T) {
	mgr := NewManager(grid.NewRect(7, 1))

	plan, err := mgr.FindMultiTurnPath(at(0, 0), at(6, 0), 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !plan.Source.Success {
		t.Fatalf("source search failed: %s", plan.Source.FailureReason)
	}
	if plan.TurnsRequired != 3 || plan.TotalCost != 6 {
		t.Errorf("plan turns %d cost %d, want 3/6", plan.TurnsRequired, plan.TotalCost)
	}

	if _, err := mgr.FindMultiTurnPath(at(0, 0), at(6, 0), 0, nil); err == nil {
		t.Error("zero budget accepted")
	}

	// A failed search produces an empty plan, not an error
	blocked := mgr.World()
	blocked.TileAt(at(3, 0)).Walkable = false
	mgr.ClearCache()
	plan, err = mgr.FindMultiTurnPath(at(0, 0), at(6, 0), 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Source.Success || plan.TurnsRequired != 0 {
		t.Errorf("unreachable plan = %+v", plan)
	}
}

func TestManagerResetStatistics(t *testing.T) {
	mgr := NewManager(grid.NewRect(4, 4))
	if _, err := mgr.FindPath(at(0, 0), at(3, 0), nil); err != nil {
		t.Fatal(err)
	}
	mgr.ResetStatistics()
	st := mgr.Statistics()
	if st.TotalQueries != 0 || st.CacheMisses != 0 || st.NodesExplored != 0 {
		t.Errorf("stats after reset = %+v", st)
	}
}

func TestFindPathAsync(t *testing.T) {
	mgr := NewManager(grid.NewRect(5, 5))
	start, goal := at(0, 0), at(4, 4)

	r := <-mgr.FindPathAsync(start, goal, nil)
	if !r.Success {
		t.Fatalf("async search failed: %s", r.FailureReason)
	}
	direct, err := mgr.FindPath(start, goal, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.TotalCost != direct.TotalCost {
		t.Errorf("async cost %d, sync %d", r.TotalCost, direct.TotalCost)
	}
}

func TestManagerCacheHitPathIsPrivate(t *testing.T) {
	mgr := NewManager(grid.NewHexagon(4))
	start := hex.Axial{Q: -3, R: 0}
	goal := hex.Axial{Q: 3, R: 0}

	first, err := mgr.FindPath(start, goal, nil)
	if err != nil || !first.Success {
		t.Fatalf("seed query: %v %+v", err, first)
	}

	hit, err := mgr.FindPath(start, goal, nil)
	if err != nil || !hit.Success {
		t.Fatalf("hit query: %v %+v", err, hit)
	}
	for i := range hit.Path {
		hit.Path[i] = hex.Axial{Q: 99, R: 99}
	}

	again, err := mgr.FindPath(start, goal, nil)
	if err != nil || !again.Success {
		t.Fatalf("post-mutation query: %v %+v", err, again)
	}
	if len(again.Path) != len(first.Path) {
		t.Fatalf("path length %d, want %d", len(again.Path), len(first.Path))
	}
	for i := range first.Path {
		if again.Path[i] != first.Path[i] {
			t.Errorf("path[%d] = %v after caller mutation, want %v",
				i, again.Path[i], first.Path[i])
		}
	}
}

func TestManagerCoalescesIdenticalQueries(t *testing.T) {
	mgr := NewManager(grid.NewHexagon(5))
	start := hex.Axial{Q: -5, R: 0}
	goal := hex.Axial{Q: 5, R: 0}
	ctx := DefaultContext()
	key := cacheKey{algo: mgr.Algorithm(), start: start, goal: goal, ctxFp: ctx.Fingerprint()}

	// Hold the flight slot open so every caller below arrives while a
	// computation is in progress and joins it instead of searching
	entered := make(chan struct{})
	release := make(chan struct{})
	go mgr.group.Do(sfKey(key), func() (interface{}, error) {
		close(entered)
		<-release
		return findPathAStar(mgr.world, start, goal, ctx, newScratch(32)), nil
	})
	<-entered

	const callers = 6
	var wg sync.WaitGroup
	results := make([]Result, callers)
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := mgr.FindPath(start, goal, ctx)
			if err != nil {
				t.Errorf("caller %d: %v", i, err)
			}
			results[i] = r
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	st := mgr.Statistics()
	if st.CoalescedCalls == 0 {
		t.Fatal("no calls coalesced")
	}
	if st.CacheMisses >= callers {
		t.Errorf("misses %d not below caller count %d", st.CacheMisses, callers)
	}
	for i, r := range results {
		if !r.Success || r.TotalCost != results[0].TotalCost {
			t.Errorf("caller %d got success=%v cost=%d, want cost %d",
				i, r.Success, r.TotalCost, results[0].TotalCost)
		}
	}
}

func TestManagerConcurrentQueries(t *testing.T) {
	mgr := NewManager(grid.NewHexagon(6))
	start := hex.Axial{Q: -6, R: 0}
	goals := []hex.Axial{
		{Q: 6, R: 0}, {Q: 0, R: 6}, {Q: 6, R: -6}, {Q: 0, R: -6}, {Q: -3, R: 6},
	}

	var wg sync.WaitGroup
	costs := make([][]int, 8)
	for w := 0; w < 8; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, g := range goals {
				r, err := mgr.FindPath(start, g, nil)
				if err != nil || !r.Success {
					t.Errorf("goal %v: %v %+v", g, err, r)
					return
				}
				costs[w] = append(costs[w], r.TotalCost)
			}
		}()
	}
	wg.Wait()

	for w := 1; w < 8; w++ {
		for i := range costs[0] {
			if costs[w][i] != costs[0][i] {
				t.Errorf("worker %d cost[%d] = %d, worker 0 got %d", w, i, costs[w][i], costs[0][i])
			}
		}
	}
}

func TestStrategyParseAndString(t *testing.T) {
	for _, s := range Strategies() {
		got, err := ParseStrategy(s.String())
		if err != nil {
			t.Fatalf("ParseStrategy(%q): %v", s.String(), err)
		}
		if got != s {
			t.Errorf("round trip %q = %v, want %v", s.String(), got, s)
		}
	}
	if _, err := ParseStrategy("teleport"); err == nil {
		t.Error("unknown strategy name parsed")
	}
	if Strategy(99).Valid() {
		t.Error("out-of-range strategy valid")
	}
}

func TestManagerAllStrategiesThroughDispatch(t *testing.T) {
	for _, s := range Strategies() {
		mgr := NewManager(grid.NewRect(5, 5))
		if err := mgr.SetAlgorithm(s); err != nil {
			t.Fatal(err)
		}
		r, err := mgr.FindPath(at(0, 0), at(4, 0), nil)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if !r.Success || len(r.Path) != 5 {
			t.Errorf("%s result = %+v", s, r)
		}
	}
}
