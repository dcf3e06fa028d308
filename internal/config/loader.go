package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrUnknownPreset is returned by ApplyPreset for a preset with no entry.
var ErrUnknownPreset = errors.New("unknown difficulty preset")

// Source names where LoadBlast found its configuration.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// LoadBlast loads cube blast configuration.
// Search order: customPath -> ~/.cubeblast/configs/blast.yaml -> ./configs/blast.yaml -> embedded default
//
// Files are decoded over DefaultBlastConfig, so a file only needs the keys
// it changes. A custom path that cannot be read or parsed is an error; the
// other locations are skipped silently.
func LoadBlast(customPath string) (BlastConfig, Source, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlastConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseBlast(data)
		if err != nil {
			return BlastConfig{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("blast.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseBlast(data); err == nil {
				return cfg, SourceUser, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "blast.yaml")); err == nil {
		if cfg, err := parseBlast(data); err == nil {
			return cfg, SourceLocal, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseBlast(defaultBlastYAML)
	if err != nil {
		return DefaultBlastConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

func parseBlast(data []byte) (BlastConfig, error) {
	cfg := DefaultBlastConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlastConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BlastConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cubeblast", "configs", filename)
}

// Validate rejects configurations the engine cannot run with.
func (c BlastConfig) Validate() error {
	r := c.Rules
	if len(r.MatchTiers) == 0 {
		return errors.New("rules.match_tiers is empty")
	}
	if r.MatchTiers[0].MinSize < 1 {
		return fmt.Errorf("rules.match_tiers[0].min_size must be >= 1, got %d", r.MatchTiers[0].MinSize)
	}
	for i := 1; i < len(r.MatchTiers); i++ {
		if r.MatchTiers[i].MinSize <= r.MatchTiers[i-1].MinSize {
			return fmt.Errorf("rules.match_tiers must ascend by min_size (index %d)", i)
		}
	}
	if len(r.ShuffleTable) == 0 {
		return errors.New("rules.shuffle_table is empty")
	}
	for i, st := range r.ShuffleTable {
		if st.Matches < 0 {
			return fmt.Errorf("rules.shuffle_table[%d].matches is negative", i)
		}
		if i > 0 && st.Tiles <= r.ShuffleTable[i-1].Tiles {
			return fmt.Errorf("rules.shuffle_table must ascend by tiles (index %d)", i)
		}
	}
	if r.SpawnRowOffset >= 0 {
		return fmt.Errorf("rules.spawn_row_offset must be negative, got %d", r.SpawnRowOffset)
	}
	if c.Board.TileSize <= 0 {
		return fmt.Errorf("board.tile_size must be positive, got %g", c.Board.TileSize)
	}
	if c.Motion.Speed <= 0 {
		return fmt.Errorf("motion.speed must be positive, got %g", c.Motion.Speed)
	}
	e := c.Endless
	if e.Rows <= 0 || e.Cols <= 0 {
		return fmt.Errorf("endless board size %dx%d is invalid", e.Rows, e.Cols)
	}
	if e.MinColors < 1 || e.MaxColors < e.MinColors {
		return fmt.Errorf("endless colors range [%d, %d] is invalid", e.MinColors, e.MaxColors)
	}
	return nil
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *BlastConfig, preset DifficultyPreset) error {
	if preset == "" {
		preset = DifficultyNormal
	}
	if IsFixedPreset(preset) {
		cfg.Endless.Difficulty.Enabled = false
		cfg.Preset = PresetConfig{InitialLevel: cfg.Endless.Difficulty.InitialLevel}
		return nil
	}

	p, ok := cfg.Presets[preset]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
	cfg.Preset = p
	cfg.Endless.Difficulty.Enabled = true
	cfg.Endless.Difficulty.InitialLevel = p.InitialLevel
	return nil
}
