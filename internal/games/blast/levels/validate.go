package levels

import (
	"fmt"

	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks a level against the catalog it will be played with:
//   - size is positive
//   - every layout cell lies on the board
//   - every fixed tile has an asset
//   - every level color has variant 0 in the catalog
//   - moves and target score are not negative
func Validate(l *Level, cat *core.Catalog) error {
	if l.Rows <= 0 || l.Cols <= 0 {
		return ValidationError{
			Code:    "INVALID_SIZE",
			Message: fmt.Sprintf("board size %dx%d", l.Rows, l.Cols),
		}
	}
	if l.Moves < 0 || l.TargetScore < 0 {
		return ValidationError{
			Code:    "INVALID_GOAL",
			Message: fmt.Sprintf("moves %d, target score %d", l.Moves, l.TargetScore),
		}
	}

	for _, c := range l.Colors {
		if !cat.Has(core.CubeKey(c, 0)) {
			return ValidationError{
				Code:    "MISSING_ASSET",
				Message: fmt.Sprintf("color %s has no asset in pack %s", c, cat.ID()),
			}
		}
	}

	for _, c := range sortedCoords(l.Layout) {
		spec := l.Layout[c]
		if c.Row < 0 || c.Row >= l.Rows || c.Col < 0 || c.Col >= l.Cols {
			return ValidationError{
				Code:    "OUT_OF_BOUNDS",
				Message: fmt.Sprintf("tile at %s outside %dx%d board", c, l.Rows, l.Cols),
			}
		}
		if spec.Block == core.BlockCube && spec.Color == core.ColorRandom {
			continue
		}
		key := spec.Key()
		if !cat.Has(key) {
			return ValidationError{
				Code:    "MISSING_ASSET",
				Message: fmt.Sprintf("tile at %s: no asset %s in pack %s", c, key, cat.ID()),
			}
		}
	}
	return nil
}

func sortedCoords(layout core.Layout) []core.Coord {
	coords := make([]core.Coord, 0, len(layout))
	for c := range layout {
		coords = append(coords, c)
	}
	core.SortCoords(coords)
	return coords
}
