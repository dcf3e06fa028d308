package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
)

func TestStoreHandles(t *testing.T) {
	s := core.NewStore(4)

	a := s.Create(core.Tile{Color: core.ColorRed})
	b := s.Create(core.Tile{Color: core.ColorBlue})
	require.Equal(t, 2, s.Len())
	assert.False(t, a.IsZero())
	assert.True(t, core.Handle{}.IsZero())
	assert.False(t, s.Valid(core.Handle{}))

	require.True(t, s.Destroy(a))
	assert.False(t, s.Valid(a))
	assert.False(t, s.Destroy(a), "double destroy")
	_, ok := s.Get(a)
	assert.False(t, ok)

	// The freed slot is reused with a new generation.
	c := s.Create(core.Tile{Color: core.ColorGreen})
	assert.NotEqual(t, a, c)
	assert.False(t, s.Valid(a))
	assert.True(t, s.Valid(c))

	tile, ok := s.Get(c)
	require.True(t, ok)
	assert.Equal(t, core.ColorGreen, tile.Color)

	assert.Equal(t, []core.Handle{c, b}, s.Handles())
}

func TestStoreGetReturnsLiveRecord(t *testing.T) {
	s := core.NewStore(1)
	h := s.Create(core.Tile{})

	tile, _ := s.Get(h)
	tile.Moving = true

	again, _ := s.Get(h)
	assert.True(t, again.Moving)
}

func TestCatalog(t *testing.T) {
	cat := testCatalog()

	a, err := cat.Lookup(core.CubeKey(core.ColorRed, 2))
	require.NoError(t, err)
	assert.Equal(t, 'R', a.Glyph)

	_, err = cat.Lookup(core.LayeredKey("box", 2))
	assert.ErrorIs(t, err, core.ErrAssetNotFound)

	assert.Equal(t, 4, cat.Variants(core.CubeKey(core.ColorYellow, 0)))
	assert.Equal(t, 2, cat.Variants(core.LayeredKey("box", 0)))
	assert.Equal(t, 0, cat.Variants(core.LayeredKey("crate", 0)))

	keys := cat.Keys()
	require.Len(t, keys, 6*4+2)
	assert.Equal(t, core.CubeKey(core.ColorBlue, 0), keys[0])
	assert.Equal(t, core.LayeredKey("box", 1), keys[len(keys)-1])

	var nilCat *core.Catalog
	assert.Equal(t, 0, nilCat.Len())
	assert.False(t, nilCat.Has(core.CubeKey(core.ColorRed, 0)))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want core.CubeColor
		ok   bool
	}{
		{"blue", core.ColorBlue, true},
		{"B", core.ColorBlue, true},
		{"Purple", core.ColorPurple, true},
		{"u", core.ColorPurple, true},
		{"p", core.ColorPink, true},
		{" yellow ", core.ColorYellow, true},
		{"?", core.ColorRandom, true},
		{"x", core.ColorRandom, false},
		{"", core.ColorRandom, false},
	}
	for _, tt := range tests {
		got, ok := core.ParseColor(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseBlockType(t *testing.T) {
	b, ok := core.ParseBlockType("Layered")
	assert.True(t, ok)
	assert.Equal(t, core.BlockLayered, b)

	b, ok = core.ParseBlockType("")
	assert.True(t, ok)
	assert.Equal(t, core.BlockCube, b)

	_, ok = core.ParseBlockType("lava")
	assert.False(t, ok)

	assert.False(t, core.BlockLayered.Movable())
	assert.True(t, core.BlockCube.Movable())
}

func TestCoordNeighborsOrder(t *testing.T) {
	c := core.C(3, 5)
	assert.Equal(t, [4]core.Coord{
		core.C(2, 5),
		core.C(4, 5),
		core.C(3, 4),
		core.C(3, 6),
	}, c.Neighbors())
	assert.Equal(t, "(3,5)", c.String())
}

func TestMoverAdvance(t *testing.T) {
	e := newEngine(t, nil,
		"G",
		"B",
		"B",
	)
	e.OnTap(core.C(1, 0))
	require.NotNil(t, e.Tick().Blast)

	m := core.NewMover(e, 2.0, 0)
	assert.Nil(t, m.Advance(0))

	// G falls two rows (0.8 units) at 2 units/s.
	var arrived []core.Handle
	for i := 0; i < 3; i++ {
		arrived = append(arrived, m.Advance(0.1)...)
	}
	g, ok := e.HandleAt(core.C(2, 0))
	require.True(t, ok)
	assert.NotContains(t, arrived, g)

	arrived = append(arrived, m.Advance(0.1)...)
	assert.Contains(t, arrived, g)

	tile, _ := e.Tile(g)
	assert.False(t, tile.Moving)
	assert.True(t, tile.Touchable)
}
