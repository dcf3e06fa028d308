package config

import (
	_ "embed"
)

//go:embed defaults/blast.yaml
var defaultBlastYAML []byte

// DefaultBlastConfig returns the built-in cube blast configuration. It is
// the last fallback when no YAML source can be read.
func DefaultBlastConfig() BlastConfig {
	return BlastConfig{
		Rules: BlastRules{
			MatchTiers: []TierConfig{
				{MinSize: 2, Variant: 0},
				{MinSize: 3, Variant: 1},
				{MinSize: 5, Variant: 2},
				{MinSize: 7, Variant: 3},
			},
			ShuffleTable: []ShuffleConfig{
				{Tiles: 10, Matches: 1},
				{Tiles: 20, Matches: 2},
				{Tiles: 50, Matches: 3},
				{Tiles: 70, Matches: 4},
				{Tiles: 100, Matches: 5},
			},
			SpawnRowOffset: -3,
		},
		Board: BlastBoard{
			TileSize:  0.4,
			DepthBias: 0.01,
			Forward:   [3]float64{0, 0, 1},
		},
		Motion: BlastMotion{
			Speed:           2.0,
			ArriveEpsilonSq: 0.001,
		},
		Scoring: BlastScoring{
			PointsPerTile: 10,
			BonusPerTier:  5,
			LayerPoints:   20,
		},
		Endless: BlastEndless{
			Rows:      10,
			Cols:      10,
			MinColors: 3,
			MaxColors: 6,
			Difficulty: DifficultyConfig{
				Enabled:      true,
				InitialLevel: 0.0,
				Progression: ProgressionConfig{
					Type:  ProgressionScore,
					MaxAt: 5000,
				},
			},
		},
		Presets: map[DifficultyPreset]PresetConfig{
			DifficultyEasy:   {MaxColors: 4, MovesBonus: 10, InitialLevel: 0.0},
			DifficultyNormal: {MaxColors: 0, MovesBonus: 0, InitialLevel: 0.3},
			DifficultyHard:   {MaxColors: 0, MovesBonus: -5, InitialLevel: 0.7},
		},
	}
}

// DefaultBlastYAML returns the embedded default YAML.
func DefaultBlastYAML() []byte {
	return defaultBlastYAML
}
