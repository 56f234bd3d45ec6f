package grid

import (
	"github.com/gravitas-015/hexcore/hex"
)

// Map is a sparse hex grid keyed by axial coordinate.
// Tiles are owned by the map; callers mutate traversal state through
// TileAt. The map itself carries no search state
type Map struct {
	tiles map[hex.Axial]*Tile
}

// NewMap creates an empty map
func NewMap() *Map {
	return &Map{tiles: make(map[hex.Axial]*Tile)}
}

// NewHexagon creates a hexagonal map of the given radius around the
// origin (radius 0 = single cell), all tiles walkable at unit cost
func NewHexagon(radius int) *Map {
	m := NewMap()
	for q := -radius; q <= radius; q++ {
		r1 := maxInt(-radius, -q-radius)
		r2 := minInt(radius, -q+radius)
		for r := r1; r <= r2; r++ {
			m.tiles[hex.Axial{Q: q, R: r}] = NewTile("")
		}
	}
	return m
}

// NewRect creates a width×height map using odd-r offset rows,
// all tiles walkable at unit cost
func NewRect(width, height int) *Map {
	m := NewMap()
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			m.tiles[OffsetToAxial(col, row)] = NewTile("")
		}
	}
	return m
}

// Add inserts a tile at the given coordinate, replacing any existing one
func (m *Map) Add(a hex.Axial, t *Tile) {
	m.tiles[a] = t
}

// Remove deletes the tile at the given coordinate
func (m *Map) Remove(a hex.Axial) {
	delete(m.tiles, a)
}

// Contains reports whether a cell exists at the given coordinate
func (m *Map) Contains(a hex.Axial) bool {
	_, ok := m.tiles[a]
	return ok
}

// TileAt returns the tile at the given coordinate, nil if absent
func (m *Map) TileAt(a hex.Axial) *Tile {
	return m.tiles[a]
}

// Len returns the number of cells in the map
func (m *Map) Len() int {
	return len(m.tiles)
}

// Neighbors returns the existing neighbors of a cell, at most six.
// Grid-edge neighbors are simply absent, mirroring a nulled reference
func (m *Map) Neighbors(a hex.Axial) []hex.Axial {
	out := make([]hex.Axial, 0, 6)
	for _, d := range hex.Directions {
		n := a.Add(d)
		if _, ok := m.tiles[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Each calls fn for every cell in the map. Iteration order is
// unspecified.
func (m *Map) Each(fn func(a hex.Axial, t *Tile)) {
	for a, t := range m.tiles {
		fn(a, t)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
