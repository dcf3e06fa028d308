package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate points the user and local search locations at empty directories.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestEmbeddedMatchesBuiltin(t *testing.T) {
	var fromYAML BlastConfig
	require.NoError(t, yaml.Unmarshal(DefaultBlastYAML(), &fromYAML))
	assert.Equal(t, DefaultBlastConfig(), fromYAML)
}

func TestLoadBlastEmbedded(t *testing.T) {
	isolate(t)

	cfg, src, err := LoadBlast("")
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, src)
	assert.Equal(t, DefaultBlastConfig(), cfg)
}

func TestLoadBlastSearchOrder(t *testing.T) {
	home := isolate(t)

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "blast.yaml"),
		[]byte("scoring:\n  points_per_tile: 7\n"), 0o644))

	cfg, src, err := LoadBlast("")
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, src)
	assert.Equal(t, 7, cfg.Scoring.PointsPerTile)
	assert.Equal(t, 5, cfg.Scoring.BonusPerTier, "unset keys keep defaults")

	userDir := filepath.Join(home, ".cubeblast", "configs")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "blast.yaml"),
		[]byte("scoring:\n  points_per_tile: 3\n"), 0o644))

	cfg, src, err = LoadBlast("")
	require.NoError(t, err)
	assert.Equal(t, SourceUser, src)
	assert.Equal(t, 3, cfg.Scoring.PointsPerTile)
}

func TestLoadBlastSkipsInvalidLocal(t *testing.T) {
	isolate(t)

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "blast.yaml"),
		[]byte("rules:\n  spawn_row_offset: 2\n"), 0o644))

	_, src, err := LoadBlast("")
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, src)
}

func TestLoadBlastCustomPath(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("motion:\n  speed: 4.5\n"), 0o644))
	cfg, src, err := LoadBlast(good)
	require.NoError(t, err)
	assert.Equal(t, SourceCustom, src)
	assert.InDelta(t, 4.5, cfg.Motion.Speed, 1e-9)

	_, _, err = LoadBlast(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules: [oops"), 0o644))
	_, _, err = LoadBlast(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BlastConfig)
	}{
		{"no tiers", func(c *BlastConfig) { c.Rules.MatchTiers = nil }},
		{"zero min size", func(c *BlastConfig) { c.Rules.MatchTiers[0].MinSize = 0 }},
		{"tiers descending", func(c *BlastConfig) { c.Rules.MatchTiers[1].MinSize = 2 }},
		{"no shuffle table", func(c *BlastConfig) { c.Rules.ShuffleTable = nil }},
		{"shuffle descending", func(c *BlastConfig) { c.Rules.ShuffleTable[2].Tiles = 5 }},
		{"negative matches", func(c *BlastConfig) { c.Rules.ShuffleTable[0].Matches = -1 }},
		{"spawn on board", func(c *BlastConfig) { c.Rules.SpawnRowOffset = 0 }},
		{"zero tile size", func(c *BlastConfig) { c.Board.TileSize = 0 }},
		{"zero speed", func(c *BlastConfig) { c.Motion.Speed = 0 }},
		{"empty endless board", func(c *BlastConfig) { c.Endless.Rows = 0 }},
		{"color range", func(c *BlastConfig) { c.Endless.MaxColors = 1 }},
	}

	require.NoError(t, DefaultBlastConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBlastConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultBlastConfig()
	require.NoError(t, ApplyPreset(&cfg, DifficultyEasy))
	assert.Equal(t, 4, cfg.Preset.MaxColors)
	assert.Equal(t, 10, cfg.Preset.MovesBonus)
	assert.True(t, cfg.Endless.Difficulty.Enabled)

	cfg = DefaultBlastConfig()
	require.NoError(t, ApplyPreset(&cfg, DifficultyHard))
	assert.Equal(t, -5, cfg.Preset.MovesBonus)
	assert.InDelta(t, 0.7, cfg.Endless.Difficulty.InitialLevel, 1e-9)

	cfg = DefaultBlastConfig()
	require.NoError(t, ApplyPreset(&cfg, ""))
	assert.InDelta(t, 0.3, cfg.Endless.Difficulty.InitialLevel, 1e-9)

	cfg = DefaultBlastConfig()
	require.NoError(t, ApplyPreset(&cfg, DifficultyFixed))
	assert.False(t, cfg.Endless.Difficulty.Enabled)

	cfg = DefaultBlastConfig()
	assert.ErrorIs(t, ApplyPreset(&cfg, "nightmare"), ErrUnknownPreset)
}

func TestDifficultyManager(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 1000},
	})

	assert.InDelta(t, 0.0, dm.Level(0, 0), 1e-9)
	assert.InDelta(t, 0.5, dm.Level(500, 0), 1e-9)
	assert.InDelta(t, 1.0, dm.Level(5000, 0), 1e-9)

	assert.Equal(t, 3, dm.Colors(3, 6, 0, 0))
	assert.Equal(t, 5, dm.Colors(3, 6, 500, 0))
	assert.Equal(t, 6, dm.Colors(3, 6, 1000, 0))

	fixed := NewDifficultyManager(DifficultyConfig{Enabled: false, InitialLevel: 0.5})
	assert.False(t, fixed.IsEnabled())
	assert.InDelta(t, 0.5, fixed.Level(99999, 99999), 1e-9)

	byTime := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
	})
	assert.InDelta(t, 0.75, byTime.Level(0, 50), 1e-9)
}
