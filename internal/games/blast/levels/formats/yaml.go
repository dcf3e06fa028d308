// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string              `yaml:"id"`
	Name        string              `yaml:"name"`
	Size        YAMLSize            `yaml:"size"`
	AssetPack   string              `yaml:"asset_pack,omitempty"`
	Colors      []string            `yaml:"colors,omitempty"`
	Moves       int                 `yaml:"moves,omitempty"`
	TargetScore int                 `yaml:"target_score,omitempty"`
	Grid        []string            `yaml:"grid"`
	Legend      map[string]YAMLTile `yaml:"legend,omitempty"`
	Metadata    map[string]string   `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// YAMLTile is a legend entry.
type YAMLTile struct {
	Block   string `yaml:"block"`
	Color   string `yaml:"color,omitempty"`
	Title   string `yaml:"title,omitempty"`
	Variant int    `yaml:"variant,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID          string
	Name        string
	Rows        int
	Cols        int
	AssetPack   string
	Colors      []core.CubeColor
	Moves       int
	TargetScore int
	Layout      core.Layout
	Metadata    map[string]string
}

// ParseYAML parses a YAML level file.
//
// Grid rows hold whitespace-separated tokens, top row first:
//
//	.        empty in the file; the engine fills it with a random cube
//	?        random cube
//	b g p u r y
//	         fixed cube of that color, optionally followed by a tier (r2)
//	other    looked up in the legend
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Rows:        yl.Size.Rows,
		Cols:        yl.Size.Cols,
		AssetPack:   yl.AssetPack,
		Moves:       yl.Moves,
		TargetScore: yl.TargetScore,
		Layout:      make(core.Layout),
		Metadata:    yl.Metadata,
	}
	if level.Name == "" {
		level.Name = level.ID
	}

	for _, name := range yl.Colors {
		c, ok := core.ParseColor(name)
		if !ok || c == core.ColorRandom {
			return Level{}, fmt.Errorf("unknown color %q", name)
		}
		level.Colors = append(level.Colors, c)
	}

	legend := make(map[string]core.TileSpec, len(yl.Legend))
	for tok, entry := range yl.Legend {
		spec, err := entry.spec()
		if err != nil {
			return Level{}, fmt.Errorf("legend %q: %w", tok, err)
		}
		legend[tok] = spec
	}

	// An absent grid leaves every cell random.
	if len(yl.Grid) == 0 {
		return level, nil
	}
	if len(yl.Grid) != level.Rows {
		return Level{}, fmt.Errorf("grid has %d rows, size says %d", len(yl.Grid), level.Rows)
	}
	for row, line := range yl.Grid {
		tokens := strings.Fields(line)
		if len(tokens) != level.Cols {
			return Level{}, fmt.Errorf("grid row %d has %d cells, size says %d", row, len(tokens), level.Cols)
		}
		for col, tok := range tokens {
			spec, keep, err := parseToken(tok, legend)
			if err != nil {
				return Level{}, fmt.Errorf("grid cell %d,%d: %w", row, col, err)
			}
			if keep {
				level.Layout[core.C(row, col)] = spec
			}
		}
	}
	return level, nil
}

func parseToken(tok string, legend map[string]core.TileSpec) (core.TileSpec, bool, error) {
	if spec, ok := legend[tok]; ok {
		return spec, true, nil
	}
	switch tok {
	case ".":
		return core.TileSpec{}, false, nil
	case "?":
		return core.TileSpec{Block: core.BlockCube, Color: core.ColorRandom}, true, nil
	}

	color, ok := core.ParseColor(tok[:1])
	if !ok || color == core.ColorRandom {
		return core.TileSpec{}, false, fmt.Errorf("unknown token %q", tok)
	}
	variant := 0
	if len(tok) > 1 {
		v, err := strconv.Atoi(tok[1:])
		if err != nil || v < 0 {
			return core.TileSpec{}, false, fmt.Errorf("bad tier in token %q", tok)
		}
		variant = v
	}
	return core.TileSpec{Block: core.BlockCube, Color: color, Variant: variant}, true, nil
}

func (t YAMLTile) spec() (core.TileSpec, error) {
	block, ok := core.ParseBlockType(t.Block)
	if !ok {
		return core.TileSpec{}, fmt.Errorf("unknown block %q", t.Block)
	}
	spec := core.TileSpec{Block: block, Title: t.Title, Variant: t.Variant}
	switch block {
	case core.BlockLayered:
		if t.Title == "" {
			return core.TileSpec{}, fmt.Errorf("layered block needs a title")
		}
	case core.BlockCube:
		spec.Title = ""
		if t.Color != "" {
			c, ok := core.ParseColor(t.Color)
			if !ok {
				return core.TileSpec{}, fmt.Errorf("unknown color %q", t.Color)
			}
			spec.Color = c
		}
	}
	if t.Variant < 0 {
		return core.TileSpec{}, fmt.Errorf("negative variant %d", t.Variant)
	}
	return spec, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
