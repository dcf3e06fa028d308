// Package core implements the cube blast board simulation.
//
// The engine keeps an arena of tiles indexed by grid coordinate, finds
// connected groups of same-colored cubes, resolves taps into blasts that
// damage neighboring layered blocks, refills columns under gravity and
// reshuffles a dead board. It has no dependency on the terminal platform:
// callers drive it with Tick, feed tile arrivals back through
// OnTileArrived and consume the emitted intents.
package core

import (
	"fmt"
	"strings"
)

// BlockType discriminates the tile variants on the board.
type BlockType uint8

const (
	BlockCube    BlockType = iota // matchable, movable, colored
	BlockLayered                  // immovable, loses one layer per adjacent blast
)

// String returns the lowercase name used in level and asset files.
func (b BlockType) String() string {
	switch b {
	case BlockCube:
		return "cube"
	case BlockLayered:
		return "layered"
	default:
		return fmt.Sprintf("block(%d)", uint8(b))
	}
}

// Movable reports whether gravity may move tiles of this type.
func (b BlockType) Movable() bool {
	return b != BlockLayered
}

// ParseBlockType parses a block type name.
func ParseBlockType(s string) (BlockType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cube":
		return BlockCube, true
	case "layered", "layer", "box":
		return BlockLayered, true
	}
	return BlockCube, false
}

// CubeColor is the color of a cube tile. ColorRandom is a placeholder that
// is resolved against the board's available colors when the tile is created.
type CubeColor uint8

const (
	ColorRandom CubeColor = iota
	ColorBlue
	ColorGreen
	ColorPink
	ColorPurple
	ColorRed
	ColorYellow
)

// AllColors lists every concrete cube color in declaration order.
var AllColors = []CubeColor{ColorBlue, ColorGreen, ColorPink, ColorPurple, ColorRed, ColorYellow}

var colorNames = map[CubeColor]string{
	ColorRandom: "random",
	ColorBlue:   "blue",
	ColorGreen:  "green",
	ColorPink:   "pink",
	ColorPurple: "purple",
	ColorRed:    "red",
	ColorYellow: "yellow",
}

var colorChars = map[CubeColor]rune{
	ColorRandom: '?',
	ColorBlue:   'B',
	ColorGreen:  'G',
	ColorPink:   'P',
	ColorPurple: 'U',
	ColorRed:    'R',
	ColorYellow: 'Y',
}

// String returns the color name.
func (c CubeColor) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// Char returns the single uppercase letter for the color.
func (c CubeColor) Char() rune {
	if r, ok := colorChars[c]; ok {
		return r
	}
	return '!'
}

// ParseColor accepts a color name or its single letter, case-insensitive.
func ParseColor(s string) (CubeColor, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ColorRandom, false
	}
	for c, name := range colorNames {
		if s == name {
			return c, true
		}
	}
	if len(s) == 1 {
		r := rune(strings.ToUpper(s)[0])
		for c, ch := range colorChars {
			if ch == r {
				return c, true
			}
		}
	}
	return ColorRandom, false
}

// Tile is a single board piece. Block, Color, Title and Variant form its
// identity and only change through replacement. Coord, Touchable, Moving
// and Pos are runtime state.
type Tile struct {
	Block   BlockType
	Color   CubeColor // cubes only
	Title   string    // layered only, selects the asset family
	Variant int       // cube tier, or number of layers already lost

	Coord     Coord // target cell while moving
	Touchable bool
	Moving    bool
	Pos       Vec3 // world position, advanced by the Mover
}

// IsCube reports whether the tile is a cube.
func (t Tile) IsCube() bool {
	return t.Block == BlockCube
}

// Key returns the catalog key for the tile's current look.
func (t Tile) Key() AssetKey {
	switch t.Block {
	case BlockLayered:
		return LayeredKey(t.Title, t.Variant)
	default:
		return CubeKey(t.Color, t.Variant)
	}
}

// String returns a compact description such as "blue#2" or "box#1".
func (t Tile) String() string {
	switch t.Block {
	case BlockLayered:
		return fmt.Sprintf("%s#%d", t.Title, t.Variant)
	default:
		return fmt.Sprintf("%s#%d", t.Color, t.Variant)
	}
}

// TileSpec is one persisted layout cell.
type TileSpec struct {
	Block   BlockType
	Color   CubeColor
	Title   string
	Variant int
}

// Key returns the catalog key of the tile spec. Random cubes have no
// fixed key until their color is drawn.
func (s TileSpec) Key() AssetKey {
	if s.Block == BlockLayered {
		return LayeredKey(s.Title, s.Variant)
	}
	return CubeKey(s.Color, s.Variant)
}

// Layout maps coordinates to their initial tile. Cells without an entry
// are filled with random cubes at initialization.
type Layout map[Coord]TileSpec
