package blast

import (
	"github.com/vovakirdan/cubeblast/internal/config"
	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
)

// rulesFromConfig maps the YAML rule section onto engine rules.
func rulesFromConfig(r config.BlastRules) core.Rules {
	out := core.Rules{SpawnRowOffset: r.SpawnRowOffset}
	for _, t := range r.MatchTiers {
		out.Tiers = append(out.Tiers, core.Tier{MinSize: t.MinSize, Variant: t.Variant})
	}
	for _, s := range r.ShuffleTable {
		out.ShuffleTable = append(out.ShuffleTable, core.ShuffleTier{Tiles: s.Tiles, Matches: s.Matches})
	}
	return out
}

// boardConfig builds the static board description for one board.
func boardConfig(b config.BlastBoard, rows, cols int, colors []core.CubeColor, cat *core.Catalog) *core.BoardConfig {
	return &core.BoardConfig{
		Rows:      rows,
		Cols:      cols,
		Center:    vec(b.Center),
		Forward:   vec(b.Forward),
		Colors:    colors,
		Catalog:   cat,
		TileSize:  b.TileSize,
		DepthBias: b.DepthBias,
	}
}

func vec(a [3]float64) core.Vec3 {
	return core.V(a[0], a[1], a[2])
}

// scoreBlast returns the points for one blast: a base per cleared cube, a
// tier bonus per cube and a bonus per layer knocked off a layered block.
func scoreBlast(s config.BlastScoring, r core.BlastResult) int {
	cubes := len(r.Cleared)
	layers := len(r.Damaged) + len(r.Destroyed)
	return cubes*s.PointsPerTile + cubes*r.Group.Variant*s.BonusPerTier + layers*s.LayerPoints
}

// limitColors keeps at most n colors. n <= 0 keeps them all.
func limitColors(colors []core.CubeColor, n int) []core.CubeColor {
	if n <= 0 || n >= len(colors) {
		return colors
	}
	return colors[:n]
}
