package grid

import (
	"github.com/gravitas-015/hexcore/hex"
)

// Odd-r offset layout: odd rows are shifted half a hex to the right.
// Offset coordinates are what rectangular worlds and screen layouts
// speak; axial is what the engine and hexcore speak.

// OffsetToAxial converts odd-r offset (col, row) to axial
func OffsetToAxial(col, row int) hex.Axial {
	q := col - (row-(row&1))/2
	return hex.Axial{Q: q, R: row}
}

// AxialToOffset converts axial to odd-r offset (col, row)
func AxialToOffset(a hex.Axial) (col, row int) {
	col = a.Q + (a.R-(a.R&1))/2
	return col, a.R
}

// Cube returns the cube coordinates of an axial cell.
// Cube coordinates always satisfy x+y+z = 0
func Cube(a hex.Axial) (x, y, z int) {
	return a.Q, -a.Q - a.R, a.R
}

// Ring returns the cells exactly dist steps from center on an
// unbounded grid. Ring(c, 0) is just the center
func Ring(center hex.Axial, dist int) []hex.Axial {
	if dist <= 0 {
		return []hex.Axial{center}
	}
	out := make([]hex.Axial, 0, 6*dist)
	seen := make(map[hex.Axial]bool, 6*dist)
	for side := 0; side < 6; side++ {
		for _, a := range hex.Edge(center, dist, side) {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	return out
}
