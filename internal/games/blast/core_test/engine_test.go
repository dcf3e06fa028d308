package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
)

func TestInitializeErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     func() *core.BoardConfig
		layout  core.Layout
		wantErr error
	}{
		{
			name:    "nil config",
			cfg:     func() *core.BoardConfig { return nil },
			wantErr: core.ErrConfigMissing,
		},
		{
			name:    "zero rows",
			cfg:     func() *core.BoardConfig { return testConfig(0, 4) },
			wantErr: core.ErrConfigMissing,
		},
		{
			name: "random in available colors",
			cfg: func() *core.BoardConfig {
				return testConfig(2, 2, core.ColorRed, core.ColorRandom)
			},
			wantErr: core.ErrConfigMissing,
		},
		{
			name: "no catalog",
			cfg: func() *core.BoardConfig {
				cfg := testConfig(2, 2)
				cfg.Catalog = nil
				return cfg
			},
			wantErr: core.ErrConfigMissing,
		},
		{
			name: "unknown layered block",
			cfg:  func() *core.BoardConfig { return testConfig(2, 2) },
			layout: core.Layout{
				core.C(1, 1): {Block: core.BlockLayered, Title: "crate"},
			},
			wantErr: core.ErrAssetNotFound,
		},
		{
			name: "cube tier without asset",
			cfg:  func() *core.BoardConfig { return testConfig(2, 2) },
			layout: core.Layout{
				core.C(0, 0): {Block: core.BlockCube, Color: core.ColorRed, Variant: 9},
			},
			wantErr: core.ErrAssetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := core.NewEngine(core.WithSeed(1))
			err := e.Initialize(tt.cfg(), tt.layout)
			require.ErrorIs(t, err, tt.wantErr)
			assert.False(t, e.Initialized())
			assert.Equal(t, core.TickResult{}, e.Tick())
		})
	}
}

func TestInitializeTwice(t *testing.T) {
	e := newEngine(t, nil, "B B", "G R")
	err := e.Initialize(testConfig(2, 2), nil)
	assert.ErrorIs(t, err, core.ErrAlreadyInitialized)
	assert.Equal(t, 4, e.TileCount())
}

func TestInitializeFillsMissingCells(t *testing.T) {
	e := core.NewEngine(core.WithSeed(9))
	layout := core.Layout{
		core.C(2, 2): {Block: core.BlockLayered, Title: "box"},
	}
	require.NoError(t, e.Initialize(testConfig(5, 5), layout))

	assert.Equal(t, 25, e.TileCount())
	assert.Equal(t, core.BlockLayered, tileAt(t, e, core.C(2, 2)).Block)
	e.EachTile(func(_ core.Handle, tile core.Tile) {
		if tile.IsCube() {
			assert.NotEqual(t, core.ColorRandom, tile.Color)
			assert.True(t, tile.Touchable)
		} else {
			assert.False(t, tile.Touchable)
		}
	})
}

func TestUninitializedEngine(t *testing.T) {
	e := core.NewEngine()

	assert.NotPanics(t, func() {
		e.OnTap(core.C(0, 0))
		e.OnTileArrived(core.Handle{})
	})
	assert.Equal(t, core.TickResult{}, e.Tick())
	assert.Nil(t, e.FindConnectedGroup(core.C(0, 0)))
	assert.Nil(t, e.RebuildAllGroups())
	assert.ErrorIs(t, e.Shuffle().Err, core.ErrConfigMissing)

	_, err := e.TileAt(core.C(0, 0))
	assert.ErrorIs(t, err, core.ErrConfigMissing)
	assert.Equal(t, "(uninitialized)\n", core.RenderASCII(e))
}

func TestTileAtErrors(t *testing.T) {
	e := newEngine(t, nil, "B B", "G R")

	_, err := e.TileAt(core.C(2, 0))
	assert.ErrorIs(t, err, core.ErrInvalidCoordinate)
	_, err = e.TileAt(core.C(0, -1))
	assert.ErrorIs(t, err, core.ErrInvalidCoordinate)

	tile, err := e.TileAt(core.C(1, 1))
	require.NoError(t, err)
	assert.Equal(t, core.ColorRed, tile.Color)
}

func TestSingleColorBoardFullCycle(t *testing.T) {
	red := []core.CubeColor{core.ColorRed}
	e := newEngine(t, red, uniformRows(10, 10, "R")...)

	e.OnTap(core.C(4, 4))
	res := e.Tick()
	require.NotNil(t, res.Blast)
	assert.Len(t, res.Blast.Cleared, 100)
	assert.Len(t, res.Blast.Gravity.Spawned, 100)
	assert.Empty(t, res.Blast.Gravity.Moves)
	assert.Equal(t, 100, e.MovingCount())
	assert.False(t, res.ShuffleScheduled, "nothing is scheduled while tiles fall")

	for col := 0; col < 10; col++ {
		assert.Equal(t, 10, res.Blast.Gravity.Deficit[col])
		assert.Equal(t, core.C(-12, col), res.Blast.Gravity.Spawns[core.C(0, col)])
		assert.Equal(t, core.C(-3, col), res.Blast.Gravity.Spawns[core.C(9, col)])
	}

	settle(t, e)
	ms := e.Matches()
	require.Len(t, ms.Groups(), 1)
	assert.Equal(t, 100, ms.Groups()[0].Size())
	assert.Equal(t, 3, ms.Groups()[0].Variant)

	stats := e.Stats()
	assert.Equal(t, 1, stats.Blasts)
	assert.Equal(t, 100, stats.TilesCleared)
	assert.Equal(t, 100, stats.Spawned)
	assert.Equal(t, 0, stats.Shuffles)
}

func TestOneIndexRebuildPerTick(t *testing.T) {
	e := newEngine(t, nil,
		"B B G R",
		"Y B G R",
		"Y Y R G",
	)

	before := e.IndexRebuilds()
	e.OnTap(core.C(0, 0))
	res := e.Tick()
	require.NotNil(t, res.Blast)
	require.True(t, res.Recomputed)
	assert.Equal(t, before+1, e.IndexRebuilds())

	before = e.IndexRebuilds()
	settle(t, e)
	assert.Equal(t, before+1, e.IndexRebuilds())
}

func TestArrivalMakesTilesTouchable(t *testing.T) {
	e := newEngine(t, nil,
		"G R Y",
		"B B Y",
		"G R B",
	)

	e.OnTap(core.C(1, 0))
	require.NotNil(t, e.Tick().Blast)
	require.Equal(t, 4, e.MovingCount())

	res := settle(t, e)
	n := 0
	for _, in := range res.Intents {
		if in.Kind == core.IntentTouchable {
			assert.True(t, in.Touchable)
			n++
		}
	}
	assert.Equal(t, 4, n)
	assert.True(t, res.Recomputed)
	assert.Equal(t, 0, e.MovingCount())
}

func TestLatestTapWins(t *testing.T) {
	e := newEngine(t, nil,
		"B B G",
		"R Y G",
	)

	e.OnTap(core.C(0, 0))
	e.OnTap(core.C(0, 2))
	res := e.Tick()
	require.NotNil(t, res.Blast)
	assert.Equal(t, core.ColorGreen, res.Blast.Group.Color)
	assert.Equal(t, 2, e.Stats().Taps)
}

func TestSameSeedSameBoard(t *testing.T) {
	play := func() (uint64, string) {
		layout, rows, cols := parseLayout(t, uniformRows(8, 8, "?")...)
		layout[core.C(4, 4)] = core.TileSpec{Block: core.BlockLayered, Title: "box"}
		e := core.NewEngine(core.WithSeed(1234))
		require.NoError(t, e.Initialize(testConfig(rows, cols), layout))
		e.Tick()
		for i := 0; i < 5; i++ {
			if m := e.Matches().Matches(); len(m) > 0 {
				e.OnTap(m[len(m)-1].Members[0])
			}
			e.Tick()
			settle(t, e)
			e.Tick()
		}
		return e.Hash(), core.RenderASCII(e)
	}

	h1, b1 := play()
	h2, b2 := play()
	assert.Equal(t, h1, h2)
	assert.Equal(t, b1, b2)
}

type recordingObserver struct {
	blasts   []core.BlastResult
	shuffles []core.ShuffleResult
	spawned  int
}

func (o *recordingObserver) OnBlast(r core.BlastResult)     { o.blasts = append(o.blasts, r) }
func (o *recordingObserver) OnShuffle(r core.ShuffleResult) { o.shuffles = append(o.shuffles, r) }
func (o *recordingObserver) OnSpawn(n int)                  { o.spawned += n }

func TestObserverEvents(t *testing.T) {
	obs := &recordingObserver{}
	layout, rows, cols := parseLayout(t,
		"B B G",
		"R Y G",
	)
	e := core.NewEngine(core.WithSeed(3), core.WithObserver(obs))
	require.NoError(t, e.Initialize(testConfig(rows, cols), layout))
	e.Tick()

	e.OnTap(core.C(0, 0))
	e.Tick()
	require.Len(t, obs.blasts, 1)
	assert.Equal(t, 2, obs.spawned)

	e.Shuffle()
	require.Len(t, obs.shuffles, 1)
	assert.Equal(t, 6, obs.shuffles[0].Cubes)
}

func TestRenderASCII(t *testing.T) {
	e := newEngine(t, nil,
		"B B",
		"R #",
	)

	want := "Tick: 1 | Tiles: 4 | Matches: 1 | Moving: 0\n" +
		"------\n" +
		"B0 B0\n" +
		"R0 #0\n"
	assert.Equal(t, want, core.RenderASCII(e))

	e.OnTap(core.C(0, 1))
	e.Tick()
	out := core.RenderASCII(e)
	assert.Contains(t, out, "Moving: 2")
	assert.Contains(t, out, "#1")
}
