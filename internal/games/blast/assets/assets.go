// Package assets loads asset packs: YAML files that give every cube color
// tier and every layered block layer a glyph and tint. A pack becomes the
// core.Catalog a board is validated and damaged against.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
)

// DefaultPack is used when a level names no pack.
const DefaultPack = "classic"

// ErrPackNotFound is returned for an unknown pack id.
var ErrPackNotFound = errors.New("asset pack not found")

//go:embed packs/*.yaml
var embedded embed.FS

// Family is the glyph ladder of one cube color or layered title.
type Family struct {
	Tint   string   `yaml:"tint,omitempty"`
	Glyphs []string `yaml:"glyphs"`
}

// Pack is a parsed asset pack file.
type Pack struct {
	ID      string            `yaml:"id"`
	Name    string            `yaml:"name"`
	Cubes   map[string]Family `yaml:"cubes"`
	Layered map[string]Family `yaml:"layered"`
}

// Parse decodes and checks a pack file.
func Parse(data []byte) (*Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("assets: yaml unmarshal: %w", err)
	}
	if p.ID == "" {
		return nil, errors.New("assets: pack has no id")
	}
	if len(p.Cubes) == 0 {
		return nil, fmt.Errorf("assets: pack %s has no cubes", p.ID)
	}
	for name, fam := range p.Cubes {
		if c, ok := core.ParseColor(name); !ok || c == core.ColorRandom {
			return nil, fmt.Errorf("assets: pack %s: unknown cube color %q", p.ID, name)
		}
		if err := fam.check(); err != nil {
			return nil, fmt.Errorf("assets: pack %s cube %s: %w", p.ID, name, err)
		}
	}
	for title, fam := range p.Layered {
		if err := fam.check(); err != nil {
			return nil, fmt.Errorf("assets: pack %s layered %s: %w", p.ID, title, err)
		}
	}
	return &p, nil
}

func (f Family) check() error {
	if len(f.Glyphs) == 0 {
		return errors.New("no glyphs")
	}
	for i, g := range f.Glyphs {
		if utf8.RuneCountInString(g) != 1 {
			return fmt.Errorf("glyph %d %q must be a single character", i, g)
		}
	}
	return nil
}

// Catalog builds the engine catalog. Glyph i of a family becomes variant i.
func (p *Pack) Catalog() *core.Catalog {
	cat := core.NewCatalog(p.ID)
	for name, fam := range p.Cubes {
		color, _ := core.ParseColor(name)
		for v, g := range fam.Glyphs {
			r, _ := utf8.DecodeRuneInString(g)
			cat.Add(core.CubeKey(color, v), core.Asset{Glyph: r, Tint: fam.Tint})
		}
	}
	for title, fam := range p.Layered {
		for v, g := range fam.Glyphs {
			r, _ := utf8.DecodeRuneInString(g)
			cat.Add(core.LayeredKey(title, v), core.Asset{Glyph: r, Tint: fam.Tint})
		}
	}
	return cat
}

// Colors returns the cube colors the pack can draw, in declaration order.
func (p *Pack) Colors() []core.CubeColor {
	have := make(map[core.CubeColor]bool, len(p.Cubes))
	for name := range p.Cubes {
		if c, ok := core.ParseColor(name); ok {
			have[c] = true
		}
	}
	var out []core.CubeColor
	for _, c := range core.AllColors {
		if have[c] {
			out = append(out, c)
		}
	}
	return out
}

// Library resolves pack ids against the embedded packs and, optionally, a
// user directory whose files take precedence.
type Library struct {
	sources []fs.FS
}

// NewLibrary creates a library. dirs are searched in order before the
// embedded packs; missing directories are ignored.
func NewLibrary(dirs ...string) *Library {
	lib := &Library{}
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if st, err := os.Stat(d); err == nil && st.IsDir() {
			lib.sources = append(lib.sources, os.DirFS(d))
		}
	}
	sub, err := fs.Sub(embedded, "packs")
	if err == nil {
		lib.sources = append(lib.sources, sub)
	}
	return lib
}

// Pack returns the pack with the given id. An empty id means DefaultPack.
func (l *Library) Pack(id string) (*Pack, error) {
	if id == "" {
		id = DefaultPack
	}
	for _, src := range l.sources {
		for _, ext := range []string{".yaml", ".yml"} {
			data, err := fs.ReadFile(src, id+ext)
			if err != nil {
				continue
			}
			p, err := Parse(data)
			if err != nil {
				return nil, err
			}
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPackNotFound, id)
}

// Catalog is shorthand for Pack(id).Catalog().
func (l *Library) Catalog(id string) (*core.Catalog, error) {
	p, err := l.Pack(id)
	if err != nil {
		return nil, err
	}
	return p.Catalog(), nil
}

// IDs lists every pack id the library can resolve, sorted.
func (l *Library) IDs() []string {
	seen := make(map[string]bool)
	for _, src := range l.sources {
		entries, err := fs.ReadDir(src, ".")
		if err != nil {
			continue
		}
		for _, e := range entries {
			ext := path.Ext(e.Name())
			if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}
			seen[strings.TrimSuffix(e.Name(), ext)] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Load returns the catalog of an embedded pack.
func Load(id string) (*core.Catalog, error) {
	return NewLibrary().Catalog(id)
}
