// Procedural test-world generation: layered simplex noise drives
// terrain types and movement costs over a hex map. Fixture tooling for
// tests, benchmarks and the viewer; the engine itself never generates
// terrain.
package terrain

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/gravitas-015/hexcore/hex"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/lixenwraith/hexnav/grid"
)

// Terrain type keys as written into grid.Tile.Terrain; contexts map
// these to cost multipliers
const (
	TerrainPlains   = "plains"
	TerrainForest   = "forest"
	TerrainHills    = "hills"
	TerrainSwamp    = "swamp"
	TerrainMountain = "mountain"
)

// Config holds generation parameters
type Config struct {
	// Radius of the hexagonal world around the origin
	Radius int

	// Seed fixes the world layout; 0 picks a random seed
	Seed int64

	// MountainLevel is the elevation threshold above which cells are
	// impassable mountain (0.0-1.0)
	MountainLevel float64

	// SwampLevel is the moisture threshold above which low ground
	// becomes swamp
	SwampLevel float64

	// OccupancyRate scatters this fraction of walkable cells as
	// occupied, simulating other agents (0.0-1.0)
	OccupancyRate float64
}

// DefaultConfig returns a mid-sized varied world
func DefaultConfig() Config {
	return Config{
		Radius:        16,
		MountainLevel: 0.78,
		SwampLevel:    0.62,
	}
}

// Generate builds a hex world whose terrain and costs come from
// layered noise. Identical configs with the same seed produce
// identical worlds
func Generate(cfg Config) *grid.Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	elevNoise := opensimplex.NewNormalized(seed)
	wetNoise := opensimplex.NewNormalized(seed + 1)
	rng := rand.New(rand.NewSource(seed))

	m := grid.NewHexagon(cfg.Radius)
	m.Each(func(a hex.Axial, t *grid.Tile) {
		// Axial → cartesian for noise sampling
		x := float64(a.Q) + float64(a.R)*0.5
		y := float64(a.R) * math.Sqrt(3.0) / 2.0

		elev := octaveNoise(elevNoise, x, y, 4, 0.09, 0.5)
		wet := octaveNoise(wetNoise, x, y, 3, 0.07, 0.5)

		terrain, cost, walkable := classify(elev, wet, cfg)
		t.Terrain = terrain
		t.MoveCost = cost
		t.Walkable = walkable
	})

	if cfg.OccupancyRate > 0 {
		scatterOccupancy(m, cfg.OccupancyRate, rng)
	}
	return m
}

func classify(elev, wet float64, cfg Config) (terrain string, cost int, walkable bool) {
	switch {
	case elev >= cfg.MountainLevel:
		return TerrainMountain, 1, false
	case elev >= cfg.MountainLevel-0.18:
		return TerrainHills, 3, true
	case wet >= cfg.SwampLevel && elev < 0.4:
		return TerrainSwamp, 4, true
	case wet >= 0.5:
		return TerrainForest, 2, true
	default:
		return TerrainPlains, 1, true
	}
}

func scatterOccupancy(m *grid.Map, rate float64, rng *rand.Rand) {
	m.Each(func(a hex.Axial, t *grid.Tile) {
		if t.Walkable && rng.Float64() < rate {
			t.Occupied = true
		}
	})
}

// OpenCells returns every walkable, unoccupied cell in deterministic
// order (Q then R). Callers pick start and goal fixtures from it
func OpenCells(m *grid.Map) []hex.Axial {
	var cells []hex.Axial
	m.Each(func(a hex.Axial, t *grid.Tile) {
		if t.Walkable && !t.Occupied {
			cells = append(cells, a)
		}
	})
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Q != cells[j].Q {
			return cells[i].Q < cells[j].Q
		}
		return cells[i].R < cells[j].R
	})
	return cells
}

// octaveNoise layers noise at increasing frequency and decreasing
// amplitude for natural-looking variation, normalized back to 0..1
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxValue := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxValue
}
