package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
)

func TestGravityMovesAndSpawnsAboveBoard(t *testing.T) {
	e := newEngine(t, nil,
		"G",
		"B",
		"B",
		"R",
		"Y",
	)
	gTile := tileAt(t, e, core.C(0, 0))

	e.OnTap(core.C(1, 0))
	res := e.Tick()
	require.NotNil(t, res.Blast)
	grav := res.Blast.Gravity

	require.Len(t, grav.Moves, 1)
	assert.Equal(t, core.C(0, 0), grav.Moves[0].From)
	assert.Equal(t, core.C(2, 0), grav.Moves[0].To)

	assert.Equal(t, []core.Coord{core.C(0, 0), core.C(1, 0)}, grav.Spawned)
	assert.Equal(t, core.C(-4, 0), grav.Spawns[core.C(0, 0)])
	assert.Equal(t, core.C(-3, 0), grav.Spawns[core.C(1, 0)])

	moved := tileAt(t, e, core.C(2, 0))
	assert.Equal(t, gTile.Color, moved.Color)
	assert.True(t, moved.Moving)
	assert.False(t, moved.Touchable)

	cfg := e.Config()
	spawned := tileAt(t, e, core.C(0, 0))
	assert.Equal(t, cfg.TileWorldPosition(core.C(-4, 0)), spawned.Pos)

	settle(t, e)
	for row := 0; row < 5; row++ {
		tile := tileAt(t, e, core.C(row, 0))
		assert.False(t, tile.Moving)
		assert.True(t, tile.Touchable)
		assert.Equal(t, cfg.TileWorldPosition(core.C(row, 0)), tile.Pos)
	}
}

func TestGravityConservation(t *testing.T) {
	for _, seed := range []int64{3, 11, 512} {
		layout, _, _ := parseLayout(t, uniformRows(8, 8, "?")...)
		e := core.NewEngine(core.WithSeed(seed))
		require.NoError(t, e.Initialize(testConfig(8, 8), layout))
		e.Tick()

		matches := e.Matches().Matches()
		if len(matches) == 0 {
			continue
		}
		target := matches[0]

		clearedPerCol := make(map[int]int)
		for _, c := range target.Members {
			clearedPerCol[c.Col]++
		}

		e.OnTap(target.Members[0])
		res := e.Tick()
		require.NotNil(t, res.Blast, "seed %d", seed)

		for col, cleared := range clearedPerCol {
			assert.Equal(t, cleared, res.Blast.Gravity.Deficit[col], "seed %d col %d", seed, col)
		}
		// Every cell is occupied again once the batch is applied.
		assert.Equal(t, 64, e.TileCount())
		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				_, err := e.TileAt(core.C(row, col))
				require.NoError(t, err, "seed %d cell %d,%d", seed, row, col)
			}
		}
		for _, m := range res.Blast.Gravity.Moves {
			assert.Greater(t, m.To.Row, m.From.Row)
			assert.Equal(t, m.To.Col, m.From.Col)
		}
	}
}

func TestLayeredTileFloorsColumn(t *testing.T) {
	e := newEngine(t, nil,
		"Y",
		"#",
		"B",
		"B",
	)

	e.OnTap(core.C(2, 0))
	res := e.Tick()
	require.NotNil(t, res.Blast)

	assert.Empty(t, res.Blast.Gravity.Moves)
	assert.Empty(t, res.Blast.Gravity.Spawned)

	_, err := e.TileAt(core.C(2, 0))
	assert.ErrorIs(t, err, core.ErrCellEmpty)
	assert.Equal(t, core.BlockLayered, tileAt(t, e, core.C(1, 0)).Block)
	assert.Equal(t, core.ColorYellow, tileAt(t, e, core.C(0, 0)).Color)
}
