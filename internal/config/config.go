// Package config provides YAML-based configuration loading and difficulty
// management for cube blast.
package config

// BlastConfig contains all configuration for the cube blast game.
type BlastConfig struct {
	Rules   BlastRules   `yaml:"rules"`
	Board   BlastBoard   `yaml:"board"`
	Motion  BlastMotion  `yaml:"motion"`
	Scoring BlastScoring `yaml:"scoring"`
	Endless BlastEndless `yaml:"endless"`

	// Presets maps a difficulty name to its adjustments.
	Presets map[DifficultyPreset]PresetConfig `yaml:"presets"`

	// Preset is the adjustment picked by ApplyPreset. It is never read from
	// YAML.
	Preset PresetConfig `yaml:"-"`
}

// BlastRules defines group tiers, the shuffle table and spawn placement.
type BlastRules struct {
	MatchTiers     []TierConfig    `yaml:"match_tiers"`
	ShuffleTable   []ShuffleConfig `yaml:"shuffle_table"`
	SpawnRowOffset int             `yaml:"spawn_row_offset"`
}

// TierConfig maps a minimum group size to a cube variant.
type TierConfig struct {
	MinSize int `yaml:"min_size"`
	Variant int `yaml:"variant"`
}

// ShuffleConfig maps a board cell count to guaranteed matches.
type ShuffleConfig struct {
	Tiles   int `yaml:"tiles"`
	Matches int `yaml:"matches"`
}

// BlastBoard defines world placement of the grid.
type BlastBoard struct {
	TileSize  float64    `yaml:"tile_size"`
	DepthBias float64    `yaml:"depth_bias"`
	Center    [3]float64 `yaml:"center"`
	Forward   [3]float64 `yaml:"forward"`
}

// BlastMotion defines how fast falling tiles travel.
type BlastMotion struct {
	Speed           float64 `yaml:"speed"`             // world units per second
	ArriveEpsilonSq float64 `yaml:"arrive_epsilon_sq"` // squared arrival distance
}

// BlastScoring defines points awarded per blast.
type BlastScoring struct {
	PointsPerTile int `yaml:"points_per_tile"`
	BonusPerTier  int `yaml:"bonus_per_tier"` // per tile, multiplied by the group's tier
	LayerPoints   int `yaml:"layer_points"`   // per layer knocked off a layered block
}

// BlastEndless defines the random board of endless mode.
type BlastEndless struct {
	Rows       int              `yaml:"rows"`
	Cols       int              `yaml:"cols"`
	MinColors  int              `yaml:"min_colors"`
	MaxColors  int              `yaml:"max_colors"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PresetConfig adjusts a game for a difficulty preset.
type PresetConfig struct {
	MaxColors    int     `yaml:"max_colors"`    // caps the colors of every board, 0 keeps the level's
	MovesBonus   int     `yaml:"moves_bonus"`   // added to a level's move limit
	InitialLevel float64 `yaml:"initial_level"` // endless starting difficulty
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
