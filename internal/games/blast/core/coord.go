package core

import (
	"fmt"
	"sort"
)

// Coord is a grid cell. Row 0 is the top row and rows grow downward;
// columns grow to the right. Spawn rows above the board are negative.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns a new Coord offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Step returns the adjacent coordinate in direction d.
func (c Coord) Step(d Dir) Coord {
	dr, dc := d.Delta()
	return c.Add(dr, dc)
}

// Neighbors returns the four adjacent coordinates in NeighborOrder.
// Callers bound-check the result.
func (c Coord) Neighbors() [4]Coord {
	var out [4]Coord
	for i, d := range NeighborOrder {
		out[i] = c.Step(d)
	}
	return out
}

// SortCoords sorts coordinates in row-major order.
func SortCoords(cs []Coord) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Row != cs[j].Row {
			return cs[i].Row < cs[j].Row
		}
		return cs[i].Col < cs[j].Col
	})
}

// Dir is one of the four grid directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// NeighborOrder is the fixed visiting order for every neighborhood scan.
var NeighborOrder = [4]Dir{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the (row, col) offset for the direction.
func (d Dir) Delta() (int, int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// String returns the direction name.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}
