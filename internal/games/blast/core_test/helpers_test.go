package core_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
)

// testCatalog has four tiers per cube color and a "box" layered block with
// two variants, so a box survives one hit and breaks on the second.
func testCatalog() *core.Catalog {
	cat := core.NewCatalog("test")
	for _, c := range core.AllColors {
		for v := 0; v < 4; v++ {
			cat.Add(core.CubeKey(c, v), core.Asset{Glyph: c.Char()})
		}
	}
	cat.Add(core.LayeredKey("box", 0), core.Asset{Glyph: '#'})
	cat.Add(core.LayeredKey("box", 1), core.Asset{Glyph: '+'})
	return cat
}

func testConfig(rows, cols int, colors ...core.CubeColor) *core.BoardConfig {
	if len(colors) == 0 {
		colors = []core.CubeColor{core.ColorBlue, core.ColorGreen, core.ColorRed, core.ColorYellow}
	}
	return &core.BoardConfig{
		Rows:    rows,
		Cols:    cols,
		Forward: core.V(0, 0, 1),
		Colors:  colors,
		Catalog: testCatalog(),
	}
}

// parseLayout reads whitespace-separated tokens, one string per row:
//
//	B G P U R Y   cube of that color, optional tier digit (B2)
//	?             random cube
//	#  #1         box layered block, optional layers already lost
func parseLayout(t *testing.T, rows ...string) (core.Layout, int, int) {
	t.Helper()
	layout := make(core.Layout)
	cols := -1
	for r, line := range rows {
		tokens := strings.Fields(line)
		if cols == -1 {
			cols = len(tokens)
		}
		require.Len(t, tokens, cols, "row %d width", r)
		for c, tok := range tokens {
			spec := core.TileSpec{Block: core.BlockCube}
			variant := 0
			if len(tok) > 1 {
				v, err := strconv.Atoi(tok[1:])
				require.NoError(t, err, "token %q", tok)
				variant = v
			}
			switch tok[0] {
			case '#':
				spec = core.TileSpec{Block: core.BlockLayered, Title: "box"}
			case '?':
				spec.Color = core.ColorRandom
			default:
				color, ok := core.ParseColor(tok[:1])
				require.True(t, ok, "token %q", tok)
				spec.Color = color
			}
			spec.Variant = variant
			layout[core.C(r, c)] = spec
		}
	}
	return layout, len(rows), cols
}

// newEngine builds an engine over the layout and runs the first tick so
// that groups exist.
func newEngine(t *testing.T, colors []core.CubeColor, rows ...string) *core.Engine {
	t.Helper()
	layout, nr, nc := parseLayout(t, rows...)
	e := core.NewEngine(core.WithSeed(42))
	require.NoError(t, e.Initialize(testConfig(nr, nc, colors...), layout))
	e.Tick()
	return e
}

func uniformRows(rows, cols int, token string) []string {
	out := make([]string, rows)
	for r := range out {
		out[r] = strings.TrimSpace(strings.Repeat(token+" ", cols))
	}
	return out
}

func tileAt(t *testing.T, e *core.Engine, c core.Coord) core.Tile {
	t.Helper()
	tile, err := e.TileAt(c)
	require.NoError(t, err, "tile at %s", c)
	return tile
}

// settle runs the mover until every tile has landed, then ticks once so
// the arrivals are folded into a group rebuild.
func settle(t *testing.T, e *core.Engine) core.TickResult {
	t.Helper()
	m := core.NewMover(e, 0, 0)
	steps := m.Settle(1.0/60.0, 10_000)
	require.Less(t, steps, 10_000, "tiles never settled")
	return e.Tick()
}

func countIntents(res core.TickResult, kind core.IntentKind) int {
	n := 0
	for _, in := range res.Intents {
		if in.Kind == kind {
			n++
		}
	}
	return n
}
