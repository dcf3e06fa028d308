package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
)

func TestBlastDamagesLayeredOnce(t *testing.T) {
	e := newEngine(t, nil,
		"B B G",
		"B # G",
		"R Y R",
	)

	e.OnTap(core.C(0, 0))
	res := e.Tick()
	require.NotNil(t, res.Blast)

	// The box touches two cleared cells but loses a single layer.
	assert.Equal(t, []core.Coord{core.C(1, 1)}, res.Blast.Damaged)
	assert.Empty(t, res.Blast.Destroyed)

	box := tileAt(t, e, core.C(1, 1))
	assert.Equal(t, core.BlockLayered, box.Block)
	assert.Equal(t, 1, box.Variant)
}

func TestBlastDestroysLayeredOnLastLayer(t *testing.T) {
	e := newEngine(t, nil,
		"B B G",
		"B #1 G",
		"R Y R",
	)

	e.OnTap(core.C(0, 1))
	res := e.Tick()
	require.NotNil(t, res.Blast)

	assert.Equal(t, []core.Coord{core.C(1, 1)}, res.Blast.Destroyed)
	assert.Empty(t, res.Blast.Damaged)
	assert.Equal(t, 1, e.Stats().LayeredDestroyed)
	assert.Equal(t, 1, res.Blast.Lowest[1], "column 1 falls to the box's row")
}

func TestDestroyedLayeredExtendsFallPastGaps(t *testing.T) {
	pink := []core.CubeColor{core.ColorPink}
	e := newEngine(t, pink,
		"Y P Y",
		"G # G",
		"R R R",
		"Y R Y",
	)

	// First blast leaves the box damaged with two empty cells beneath it.
	e.OnTap(core.C(2, 0))
	res := e.Tick()
	require.NotNil(t, res.Blast)
	assert.Equal(t, []core.Coord{core.C(1, 1)}, res.Blast.Damaged)
	assert.Equal(t, 0, res.Blast.Gravity.Deficit[1], "the box floors column 1")
	settle(t, e)

	_, err := e.TileAt(core.C(2, 1))
	assert.ErrorIs(t, err, core.ErrCellEmpty)
	_, err = e.TileAt(core.C(3, 1))
	assert.ErrorIs(t, err, core.ErrCellEmpty)

	// Spawned pinks joined the pink at (0,1); blasting them breaks the box.
	g, ok := e.Matches().GroupAt(core.C(0, 1))
	require.True(t, ok)
	require.Equal(t, 3, g.Size())

	e.OnTap(core.C(0, 1))
	res = e.Tick()
	require.NotNil(t, res.Blast)
	assert.Equal(t, []core.Coord{core.C(1, 1)}, res.Blast.Destroyed)
	assert.Equal(t, 3, res.Blast.Lowest[1])
	assert.Equal(t, 4, res.Blast.Gravity.Deficit[1])
	assert.Contains(t, res.Blast.Gravity.Spawned, core.C(3, 1))

	settle(t, e)
	for row := 0; row < 4; row++ {
		for col := 0; col < 3; col++ {
			_, err := e.TileAt(core.C(row, col))
			assert.NoError(t, err, "cell %d,%d", row, col)
		}
	}
}

func TestTapNoOps(t *testing.T) {
	tests := []struct {
		name string
		tap  core.Coord
	}{
		{"layered tile", core.C(0, 1)},
		{"outside board", core.C(5, 5)},
		{"negative row", core.C(-1, 0)},
		{"singleton", core.C(0, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, nil,
				"B # Y",
				"B B R",
				"G G R",
			)
			before := e.Hash()

			e.OnTap(tt.tap)
			res := e.Tick()

			assert.Nil(t, res.Blast)
			assert.Equal(t, before, e.Hash())
		})
	}
}

func TestTapOnMovingTileIsIgnored(t *testing.T) {
	e := newEngine(t, []core.CubeColor{core.ColorRed}, uniformRows(4, 4, "R")...)

	e.OnTap(core.C(0, 0))
	require.NotNil(t, e.Tick().Blast)
	require.Equal(t, 16, e.MovingCount())

	e.OnTap(core.C(3, 3))
	res := e.Tick()
	assert.Nil(t, res.Blast)
	assert.Equal(t, 16, e.TileCount())
}

func TestBlastIntents(t *testing.T) {
	e := newEngine(t, nil,
		"G R Y",
		"B B Y",
		"G R B",
	)

	e.OnTap(core.C(1, 0))
	res := e.Tick()
	require.NotNil(t, res.Blast)
	require.Len(t, res.Blast.Cleared, 2)

	// Two cubes destroyed, two spawned, two gravity moves.
	assert.Equal(t, 2, countIntents(res, core.IntentDestroy))
	assert.Equal(t, 2, countIntents(res, core.IntentCreate))
	assert.Equal(t, 2, countIntents(res, core.IntentMove))
	assert.Equal(t, 2, countIntents(res, core.IntentTouchable))

	for _, in := range res.Intents {
		switch in.Kind {
		case core.IntentCreate:
			assert.True(t, in.Tile.Moving)
			assert.False(t, in.Tile.Touchable)
			assert.Equal(t, 0, in.Tile.Coord.Row)
		case core.IntentTouchable:
			assert.False(t, in.Touchable)
		}
	}
}
