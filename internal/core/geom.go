// Package core provides the platform types shared by games and the TUI:
// screen cells, input frames and runtime config. It has no Bubble Tea
// dependency so game logic stays testable without a terminal.
package core

// Point is a screen cell position.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned screen area.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
