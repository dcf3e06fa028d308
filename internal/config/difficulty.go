package config

import "math"

// Progression types of the endless difficulty curve.
const (
	ProgressionScore = "score"
	ProgressionTime  = "time"
	ProgressionNone  = "none"
)

// DifficultyManager turns an endless run's score or age into a difficulty
// level and the board parameters that follow from it.
type DifficultyManager struct {
	cfg   DifficultyConfig
	start float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, start: unit(cfg.InitialLevel)}
}

// IsEnabled reports whether the level moves at all.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the difficulty in [0, 1]. It starts at the initial level
// and reaches 1 at Progression.MaxAt points or ticks.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.start
	}
	maxAt := math.Max(float64(d.cfg.Progression.MaxAt), 1)

	var progress float64
	switch d.cfg.Progression.Type {
	case ProgressionScore:
		progress = float64(score) / maxAt
	case ProgressionTime:
		progress = float64(ticks) / maxAt
	default:
		return d.start
	}
	return d.start + unit(progress)*(1-d.start)
}

// Colors returns how many cube colors a fresh board gets, interpolated
// between minColors and maxColors by the current level.
func (d *DifficultyManager) Colors(minColors, maxColors, score, ticks int) int {
	maxColors = max(maxColors, minColors)
	level := d.Level(score, ticks)
	return minColors + int(math.Round(level*float64(maxColors-minColors)))
}

// unit clamps v to [0, 1].
func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
