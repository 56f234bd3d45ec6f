package navigation

import (
	"hash/fnv"
	"math"
	"sort"

	"github.com/gravitas-015/hexcore/hex"

	"github.com/lixenwraith/hexnav/grid"
	"github.com/lixenwraith/hexnav/parameter"
)

// Context parameterizes one search call: what counts as passable and
// how much entering each cell costs. Treated as immutable for the
// duration of the call; use Clone before mutating a context that has
// been handed to a search
type Context struct {
	// MaxMovementPoints bounds total path cost for budgeted queries
	// (reachability, distance maps). -1 means unbounded
	MaxMovementPoints int

	AllowMoveThroughAllies bool
	RequireExplored        bool
	AvoidEnemyZones        bool
	PreferHighGround       bool

	// TerrainCostMultipliers scales the base MoveCost of tiles by
	// terrain key. Missing keys multiply by 1
	TerrainCostMultipliers map[string]float64

	// MaxSearchNodes caps expansions per search, checked per dequeue.
	// 0 falls back to parameter.NavDefaultMaxSearchNodes; negative
	// disables the ceiling
	MaxSearchNodes int

	// DynamicObstacles are cells treated as blocked for this query only
	DynamicObstacles map[hex.Axial]struct{}

	// EnemyZones are penalized when AvoidEnemyZones is set
	EnemyZones map[hex.Axial]struct{}

	// HighGround cells are discounted when PreferHighGround is set
	HighGround map[hex.Axial]struct{}
}

// DefaultContext returns an unbounded context with the default node ceiling
func DefaultContext() *Context {
	return &Context{
		MaxMovementPoints: -1,
		MaxSearchNodes:    parameter.NavDefaultMaxSearchNodes,
	}
}

// Clone returns a deep copy
func (c *Context) Clone() *Context {
	out := *c
	if c.TerrainCostMultipliers != nil {
		out.TerrainCostMultipliers = make(map[string]float64, len(c.TerrainCostMultipliers))
		for k, v := range c.TerrainCostMultipliers {
			out.TerrainCostMultipliers[k] = v
		}
	}
	out.DynamicObstacles = cloneCellSet(c.DynamicObstacles)
	out.EnemyZones = cloneCellSet(c.EnemyZones)
	out.HighGround = cloneCellSet(c.HighGround)
	return &out
}

func cloneCellSet(s map[hex.Axial]struct{}) map[hex.Axial]struct{} {
	if s == nil {
		return nil
	}
	out := make(map[hex.Axial]struct{}, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// nodeCeiling resolves the effective expansion cap, <=0 meaning none
func (c *Context) nodeCeiling() int {
	if c.MaxSearchNodes == 0 {
		return parameter.NavDefaultMaxSearchNodes
	}
	return c.MaxSearchNodes
}

// blocked reports whether a cell is excluded from traversal outright:
// absent from the map, a dynamic obstacle, or not walkable.
// These checks apply to every cell including the goal
func (c *Context) blocked(m *grid.Map, a hex.Axial) bool {
	if _, ok := c.DynamicObstacles[a]; ok {
		return true
	}
	t := m.TileAt(a)
	return t == nil || !t.Walkable
}

// canTraverse reports whether a search may enter cell a on the way to
// goal. The goal itself is exempt from occupancy, reservation and
// exploration checks so a search can target an occupied cell
func (c *Context) canTraverse(m *grid.Map, a, goal hex.Axial) bool {
	if c.blocked(m, a) {
		return false
	}
	if a == goal {
		return true
	}
	return c.passesStateChecks(m.TileAt(a))
}

// canOccupy is canTraverse without a goal exemption, for flood-style
// queries that have no single goal
func (c *Context) canOccupy(m *grid.Map, a hex.Axial) bool {
	if c.blocked(m, a) {
		return false
	}
	return c.passesStateChecks(m.TileAt(a))
}

// canFlow is the direction-field predicate: occupied cells stay in the
// field so agents can route around each other independently
func (c *Context) canFlow(m *grid.Map, a hex.Axial) bool {
	if c.blocked(m, a) {
		return false
	}
	t := m.TileAt(a)
	if t.Reserved {
		return false
	}
	if c.RequireExplored && !t.Explored {
		return false
	}
	return true
}

func (c *Context) passesStateChecks(t *grid.Tile) bool {
	if t.Occupied && !c.AllowMoveThroughAllies {
		return false
	}
	if t.Reserved {
		return false
	}
	if c.RequireExplored && !t.Explored {
		return false
	}
	return true
}

// enterCost returns the effective cost of entering cell a, clamped to
// NavUnitStepCost so the distance heuristic stays admissible
func (c *Context) enterCost(m *grid.Map, a hex.Axial) int {
	t := m.TileAt(a)
	base := t.MoveCost
	if base < parameter.NavUnitStepCost {
		base = parameter.NavUnitStepCost
	}
	cost := float64(base)
	if len(c.TerrainCostMultipliers) > 0 && t.Terrain != "" {
		if mult, ok := c.TerrainCostMultipliers[t.Terrain]; ok {
			cost *= mult
		}
	}
	eff := int(math.Round(cost))
	if c.AvoidEnemyZones {
		if _, ok := c.EnemyZones[a]; ok {
			eff += parameter.NavEnemyZonePenalty
		}
	}
	if c.PreferHighGround {
		if _, ok := c.HighGround[a]; ok {
			eff -= parameter.NavHighGroundDiscount
		}
	}
	if eff < parameter.NavUnitStepCost {
		eff = parameter.NavUnitStepCost
	}
	return eff
}

// heuristic is hex distance scaled by the unit step cost, the
// cube-coordinate Manhattan form. Admissible because enterCost never
// returns less than NavUnitStepCost
func heuristic(a, b hex.Axial) int {
	return hex.DistanceAxial(a, b) * parameter.NavUnitStepCost
}

// Fingerprint hashes every context field that influences any
// strategy's output. Two contexts that differ in any such field must
// not collide; map and set fields are folded in sorted order so the
// hash is deterministic
func (c *Context) Fingerprint() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	writeInt := func(v int64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	writeBool := func(b bool) {
		if b {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}

	writeInt(int64(c.MaxMovementPoints))
	writeInt(int64(c.MaxSearchNodes))
	writeBool(c.AllowMoveThroughAllies)
	writeBool(c.RequireExplored)
	writeBool(c.AvoidEnemyZones)
	writeBool(c.PreferHighGround)

	keys := make([]string, 0, len(c.TerrainCostMultipliers))
	for k := range c.TerrainCostMultipliers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		writeInt(int64(math.Float64bits(c.TerrainCostMultipliers[k])))
	}

	hashCellSet(h.Write, writeInt, c.DynamicObstacles, 'D')
	hashCellSet(h.Write, writeInt, c.EnemyZones, 'E')
	hashCellSet(h.Write, writeInt, c.HighGround, 'H')

	return h.Sum64()
}

func hashCellSet(write func([]byte) (int, error), writeInt func(int64), s map[hex.Axial]struct{}, tag byte) {
	write([]byte{tag})
	cells := make([]hex.Axial, 0, len(s))
	for a := range s {
		cells = append(cells, a)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Q != cells[j].Q {
			return cells[i].Q < cells[j].Q
		}
		return cells[i].R < cells[j].R
	})
	for _, a := range cells {
		writeInt(int64(a.Q))
		writeInt(int64(a.R))
	}
}
