package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
)

func TestFindConnectedGroupBFSOrder(t *testing.T) {
	e := newEngine(t, nil,
		"B B G",
		"B G G",
		"R R R",
	)

	got := e.FindConnectedGroup(core.C(0, 0))
	assert.Equal(t, []core.Coord{core.C(0, 0), core.C(1, 0), core.C(0, 1)}, got)

	got = e.FindConnectedGroup(core.C(2, 1))
	assert.Equal(t, []core.Coord{core.C(2, 1), core.C(2, 0), core.C(2, 2)}, got)
}

func TestFindConnectedGroupDeterministic(t *testing.T) {
	e := newEngine(t, nil,
		"B B G B",
		"G B B B",
		"G G R B",
		"Y G R R",
	)

	first := e.FindConnectedGroup(core.C(0, 0))
	again := e.FindConnectedGroup(core.C(0, 0))
	assert.Equal(t, first, again)

	// Any member as seed yields the same set.
	for _, seed := range first {
		assert.ElementsMatch(t, first, e.FindConnectedGroup(seed), "seed %s", seed)
	}
	assert.Len(t, first, 7)
}

func TestFindConnectedGroupSkipsNonCubes(t *testing.T) {
	e := newEngine(t, nil,
		"B # B",
		"B B B",
	)

	assert.Nil(t, e.FindConnectedGroup(core.C(0, 1)), "layered seed")
	assert.Len(t, e.FindConnectedGroup(core.C(0, 0)), 5)
}

func TestRebuildAllGroupsPartitionsTouchableCubes(t *testing.T) {
	for _, seed := range []int64{1, 7, 99, 2024} {
		layout, _, _ := parseLayout(t, uniformRows(8, 8, "?")...)
		layout[core.C(3, 3)] = core.TileSpec{Block: core.BlockLayered, Title: "box"}
		e := core.NewEngine(core.WithSeed(seed))
		require.NoError(t, e.Initialize(testConfig(8, 8), layout))

		ms := e.RebuildAllGroups()
		seen := make(map[core.Coord]int)
		for _, g := range ms.Groups() {
			for _, m := range g.Members {
				seen[m]++
			}
		}

		cubes := 0
		e.EachTile(func(_ core.Handle, tile core.Tile) {
			if !tile.IsCube() {
				return
			}
			cubes++
			assert.Equal(t, 1, seen[tile.Coord], "seed %d cell %s", seed, tile.Coord)
		})
		assert.Equal(t, 63, cubes)
		assert.Len(t, seen, cubes, "seed %d", seed)
	}
}

func TestSingleColorBoardGetsTopTier(t *testing.T) {
	e := newEngine(t, []core.CubeColor{core.ColorRed}, uniformRows(10, 10, "R")...)

	ms := e.Matches()
	require.Len(t, ms.Groups(), 1)
	g := ms.Groups()[0]
	assert.Equal(t, 100, g.Size())
	assert.True(t, g.Qualifies)
	assert.Equal(t, 3, g.Variant)

	e.EachTile(func(_ core.Handle, tile core.Tile) {
		assert.Equal(t, 3, tile.Variant, "cell %s", tile.Coord)
	})
}

func TestIsolatedTileRevertsToBaseVariant(t *testing.T) {
	e := newEngine(t, nil,
		"B G B",
		"G R2 G",
		"B G G",
	)

	center := tileAt(t, e, core.C(1, 1))
	assert.Equal(t, 0, center.Variant)

	g, ok := e.Matches().GroupAt(core.C(1, 1))
	require.True(t, ok)
	assert.False(t, g.Qualifies)
}

func TestTapOnIsolatedTileDoesNotBlast(t *testing.T) {
	e := newEngine(t, nil,
		"B G B",
		"G R G",
		"B G G",
	)
	before := e.Hash()

	e.OnTap(core.C(1, 1))
	res := e.Tick()

	assert.Nil(t, res.Blast)
	assert.Equal(t, 9, e.TileCount())
	assert.Equal(t, before, e.Hash())
}

func TestGroupTiersFollowSize(t *testing.T) {
	e := newEngine(t, nil,
		"B B B Y G G",
		"R Y R Y R G",
		"R R R Y R G",
	)

	tests := []struct {
		cell    core.Coord
		size    int
		variant int
	}{
		{core.C(0, 0), 3, 1},
		{core.C(1, 0), 5, 2},
		{core.C(0, 3), 3, 1},
		{core.C(1, 4), 2, 0},
		{core.C(0, 4), 4, 1},
	}
	for _, tt := range tests {
		g, ok := e.Matches().GroupAt(tt.cell)
		require.True(t, ok, "cell %s", tt.cell)
		assert.Equal(t, tt.size, g.Size(), "cell %s", tt.cell)
		assert.Equal(t, tt.variant, g.Variant, "cell %s", tt.cell)
		assert.Equal(t, tt.variant, tileAt(t, e, tt.cell).Variant, "cell %s", tt.cell)
	}
}

func TestRulesVariantFor(t *testing.T) {
	rules := core.DefaultRules()
	tests := []struct {
		size int
		want int
	}{
		{1, 0}, {2, 0}, {3, 1}, {4, 1}, {5, 2}, {6, 2}, {7, 3}, {100, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rules.VariantFor(tt.size), "size %d", tt.size)
	}
	assert.Equal(t, 2, rules.MinMatch())
}

func TestRulesGuaranteedMatches(t *testing.T) {
	rules := core.DefaultRules()
	tests := []struct {
		cells int
		want  int
	}{
		{1, 1}, {10, 1}, {11, 2}, {20, 2}, {49, 3}, {64, 4}, {70, 4}, {100, 5}, {144, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rules.GuaranteedMatches(tt.cells), "cells %d", tt.cells)
	}
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, core.DefaultRules().Validate())

	bad := core.DefaultRules()
	bad.Tiers = []core.Tier{{MinSize: 3}, {MinSize: 2}}
	assert.Error(t, bad.Validate())

	bad = core.DefaultRules()
	bad.SpawnRowOffset = 0
	assert.Error(t, bad.Validate())

	bad = core.DefaultRules()
	bad.ShuffleTable = nil
	assert.Error(t, bad.Validate())
}
