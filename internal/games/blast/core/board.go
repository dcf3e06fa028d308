package core

import (
	"fmt"
	"math"
)

// Defaults for world placement.
const (
	DefaultTileSize  = 0.4
	DefaultDepthBias = 0.01
)

// BoardConfig is the static description of a board. It must not be
// modified after it is passed to Engine.Initialize.
type BoardConfig struct {
	Rows int
	Cols int

	Center  Vec3 // world position of the grid center
	Forward Vec3 // grid plane normal, used for ray picking

	// Colors available to random cubes. Must not contain ColorRandom.
	Colors  []CubeColor
	Catalog *Catalog

	TileSize  float64 // zero means DefaultTileSize
	DepthBias float64 // per-row z offset, zero means DefaultDepthBias
}

// Validate checks that the config can drive an engine. All failures wrap
// ErrConfigMissing.
func (c *BoardConfig) Validate() error {
	if c == nil {
		return ErrConfigMissing
	}
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", ErrConfigMissing, c.Rows, c.Cols)
	}
	if len(c.Colors) == 0 {
		return fmt.Errorf("%w: no available colors", ErrConfigMissing)
	}
	for _, col := range c.Colors {
		if col == ColorRandom {
			return fmt.Errorf("%w: available colors contain %s", ErrConfigMissing, col)
		}
	}
	if c.Catalog == nil || c.Catalog.Len() == 0 {
		return fmt.Errorf("%w: empty asset catalog", ErrConfigMissing)
	}
	if c.TileSize < 0 {
		return fmt.Errorf("%w: negative tile size", ErrConfigMissing)
	}
	return nil
}

// InBounds reports whether c lies on the board.
func (c *BoardConfig) InBounds(p Coord) bool {
	return p.Row >= 0 && p.Row < c.Rows && p.Col >= 0 && p.Col < c.Cols
}

// CellCount returns rows * cols.
func (c *BoardConfig) CellCount() int {
	return c.Rows * c.Cols
}

func (c *BoardConfig) tileSize() float64 {
	if c.TileSize > 0 {
		return c.TileSize
	}
	return DefaultTileSize
}

func (c *BoardConfig) depthBias() float64 {
	if c.DepthBias > 0 {
		return c.DepthBias
	}
	return DefaultDepthBias
}

// TileWorldPosition returns the world position of a cell's center. Rows
// above the board (negative) extend the same lattice upward, which is where
// spawned tiles start.
func (c *BoardConfig) TileWorldPosition(p Coord) Vec3 {
	t := c.tileSize()
	x := float64(p.Col)*t + t/2 - float64(c.Cols)*t/2
	y := -float64(p.Row)*t + t/2 + float64(c.Rows)*t/2
	return Vec3{
		X: x + c.Center.X,
		Y: y + c.Center.Y,
		Z: c.Center.Z + float64(p.Row)*c.depthBias(),
	}
}

// topLeft is the world corner the inverse mapping measures from.
func (c *BoardConfig) topLeft() Vec3 {
	t := c.tileSize()
	return c.Center.Add(Vec3{
		X: -float64(c.Cols) * t / 2,
		Y: float64(c.Rows)*t/2 + t,
	})
}

// GridIndexFromWorld maps a world point on the grid plane back to a cell.
// ok is false when the point falls outside the board.
func (c *BoardConfig) GridIndexFromWorld(p Vec3) (Coord, bool) {
	t := c.tileSize()
	tl := c.topLeft()
	row := int(math.Floor(-(p.Y - tl.Y) / t))
	col := int(math.Floor((p.X - tl.X) / t))
	cell := C(row, col)
	return cell, c.InBounds(cell)
}

// CellFromWorld returns the fractional cell coordinates of a world point.
// Cell centers land on whole numbers, so a tile halfway through a fall
// reports a row between its source and target.
func (c *BoardConfig) CellFromWorld(p Vec3) (row, col float64) {
	t := c.tileSize()
	tl := c.topLeft()
	return -(p.Y-tl.Y)/t - 0.5, (p.X-tl.X)/t - 0.5
}

// GridIndexFromRay intersects r with the grid plane and maps the hit.
func (c *BoardConfig) GridIndexFromRay(r Ray) (Coord, bool) {
	normal := c.Forward
	if normal.LengthSq() == 0 {
		normal = Vec3{Z: 1}
	}
	hit, ok := r.IntersectPlane(c.Center, normal)
	if !ok {
		return Coord{}, false
	}
	return c.GridIndexFromWorld(hit)
}
