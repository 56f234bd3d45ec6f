// Strategy comparison bench: runs every search strategy over the same
// generated world and query set, then reports cost quality and node
// expansion side by side.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gravitas-015/hexcore/hex"

	"github.com/lixenwraith/hexnav/navigation"
	"github.com/lixenwraith/hexnav/terrain"
)

var (
	radius    = flag.Int("radius", 24, "World radius in hex rings")
	seed      = flag.Int64("seed", 1, "World seed")
	queries   = flag.Int("queries", 200, "Number of start/goal pairs")
	occupancy = flag.Float64("occupancy", 0.0, "Fraction of cells occupied")
)

type tally struct {
	solved    int
	totalCost int
	nodes     int
	elapsed   time.Duration
}

func main() {
	flag.Parse()

	cfg := terrain.DefaultConfig()
	cfg.Radius = *radius
	cfg.Seed = *seed
	cfg.OccupancyRate = *occupancy
	world := terrain.Generate(cfg)

	open := terrain.OpenCells(world)
	if len(open) < 2 {
		fmt.Fprintln(os.Stderr, "world has no open cells; try another seed")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	pairs := make([][2]hex.Axial, *queries)
	for i := range pairs {
		pairs[i] = [2]hex.Axial{
			open[rng.Intn(len(open))],
			open[rng.Intn(len(open))],
		}
	}

	fmt.Printf("world: radius=%d cells=%d open=%d queries=%d\n\n",
		*radius, world.Len(), len(open), *queries)
	fmt.Printf("%-14s %8s %12s %12s %12s %12s\n",
		"strategy", "solved", "total cost", "avg nodes", "avg time", "per query")

	// Fresh manager per strategy so the cache never crosses runs
	results := make(map[navigation.Strategy]tally)
	for _, s := range navigation.Strategies() {
		mgr := navigation.NewManager(world)
		if err := mgr.SetAlgorithm(s); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		var t tally
		began := time.Now()
		for _, p := range pairs {
			r, err := mgr.FindPath(p[0], p[1], nil)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if r.Success {
				t.solved++
				t.totalCost += r.TotalCost
			}
			t.nodes += r.NodesExplored
		}
		t.elapsed = time.Since(began)
		results[s] = t

		fmt.Printf("%-14s %8d %12d %12d %12v %12v\n",
			s, t.solved, t.totalCost,
			t.nodes / *queries,
			t.elapsed,
			t.elapsed/time.Duration(*queries))
	}

	// Cost quality relative to the optimal baseline
	base := results[navigation.StrategyAStar]
	if base.totalCost > 0 {
		fmt.Println()
		for _, s := range navigation.Strategies() {
			t := results[s]
			if t.solved != base.solved {
				fmt.Printf("%-14s solved %d of %d baseline pairs\n", s, t.solved, base.solved)
				continue
			}
			fmt.Printf("%-14s cost ratio %.3f\n", s, float64(t.totalCost)/float64(base.totalCost))
		}
	}
}
