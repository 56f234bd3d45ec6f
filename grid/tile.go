package grid

// Tile is the mutable traversal-state record for one hex cell.
// Gameplay code owns and mutates it; the engine only reads it.
// Search scratch (g/h costs, open/closed membership, predecessors)
// deliberately does not live here: every search call allocates its own
// arena so two searches over the same map never share mutable state.
type Tile struct {
	Walkable bool
	Occupied bool
	Reserved bool
	Explored bool

	// MoveCost is the base cost of entering this tile, before context
	// terrain multipliers. Must be >= 1 for weighted strategies
	MoveCost int

	// Terrain keys into Context.TerrainCostMultipliers
	Terrain string
}

// NewTile returns a walkable unit-cost tile of the given terrain
func NewTile(terrain string) *Tile {
	return &Tile{
		Walkable: true,
		MoveCost: 1,
		Terrain:  terrain,
	}
}
