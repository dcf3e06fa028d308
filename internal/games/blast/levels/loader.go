// Package levels provides level loading functionality for cube blast.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
	"github.com/vovakirdan/cubeblast/internal/games/blast/levels/formats"
)

// ErrLevelNotFound is returned by LoadByID for an unknown id.
var ErrLevelNotFound = errors.New("level not found")

//go:embed data/*.yaml
var embedded embed.FS

// Level represents a complete level definition.
type Level struct {
	ID          string
	Name        string
	Rows        int
	Cols        int
	AssetPack   string
	Colors      []core.CubeColor // empty means every color of the asset pack
	Moves       int              // 0 means unlimited
	TargetScore int
	Layout      core.Layout
	Metadata    map[string]string
	FilePath    string
}

// CopyLayout returns a copy of the level layout that the caller may modify.
func (l *Level) CopyLayout() core.Layout {
	out := make(core.Layout, len(l.Layout))
	for c, spec := range l.Layout {
		out[c] = spec
	}
	return out
}

// LayeredCount returns how many layered blocks the level starts with.
func (l *Level) LayeredCount() int {
	n := 0
	for _, spec := range l.Layout {
		if spec.Block == core.BlockLayered {
			n++
		}
	}
	return n
}

type source struct {
	name string
	fsys fs.FS
}

// Loader handles loading levels from directories and the built-in set.
type Loader struct {
	sources []source
}

// NewLoader creates a new level loader. Levels in dirs override built-in
// levels with the same ID; earlier dirs win over later ones. Missing
// directories are ignored.
func NewLoader(dirs ...string) *Loader {
	l := &Loader{}
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if st, err := os.Stat(d); err == nil && st.IsDir() {
			l.sources = append(l.sources, source{name: d, fsys: os.DirFS(d)})
		}
	}
	if sub, err := fs.Sub(embedded, "data"); err == nil {
		l.sources = append(l.sources, source{name: "builtin", fsys: sub})
	}
	return l
}

// NewDirLoader loads only from root, without the built-in levels.
func NewDirLoader(root string) *Loader {
	return &Loader{sources: []source{{name: root, fsys: os.DirFS(root)}}}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	byID := make(map[string]Level)

	for _, src := range l.sources {
		err := fs.WalkDir(src.fsys, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
				return nil
			}

			level, err := loadFS(src, p)
			if err != nil {
				// Skip invalid files
				return nil
			}
			if _, seen := byID[level.ID]; !seen {
				byID[level.ID] = level
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("levels: walking %s: %w", src.name, err)
		}
	}

	levels := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		levels = append(levels, lvl)
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file from disk.
func LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", p, err)
	}
	return parse(data, p)
}

func loadFS(src source, p string) (Level, error) {
	data, err := fs.ReadFile(src.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", p, err)
	}
	return parse(data, path.Join(src.name, p))
}

func parse(data []byte, p string) (Level, error) {
	ext := strings.ToLower(path.Ext(p))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}
	if parsed.ID == "" {
		return Level{}, fmt.Errorf("levels: parsing %s: missing id", p)
	}

	return Level{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Rows:        parsed.Rows,
		Cols:        parsed.Cols,
		AssetPack:   parsed.AssetPack,
		Colors:      parsed.Colors,
		Moves:       parsed.Moves,
		TargetScore: parsed.TargetScore,
		Layout:      parsed.Layout,
		Metadata:    parsed.Metadata,
		FilePath:    p,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
