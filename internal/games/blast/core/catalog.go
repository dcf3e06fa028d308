package core

import (
	"fmt"
	"sort"
)

// AssetKey identifies one visual in a catalog.
type AssetKey struct {
	Block   BlockType
	Color   CubeColor // cubes
	Title   string    // layered
	Variant int
}

// CubeKey returns the key for a cube of the given color and tier.
func CubeKey(color CubeColor, variant int) AssetKey {
	return AssetKey{Block: BlockCube, Color: color, Variant: variant}
}

// LayeredKey returns the key for a layered block after variant hits.
func LayeredKey(title string, variant int) AssetKey {
	return AssetKey{Block: BlockLayered, Title: title, Variant: variant}
}

func (k AssetKey) String() string {
	if k.Block == BlockLayered {
		return fmt.Sprintf("layered/%s/%d", k.Title, k.Variant)
	}
	return fmt.Sprintf("cube/%s/%d", k.Color, k.Variant)
}

// Asset is the renderer-facing handle for a tile look.
type Asset struct {
	Glyph rune
	Tint  string // free-form color name interpreted by the renderer
}

// Catalog maps asset keys to visuals. It is read-only once handed to an
// engine.
type Catalog struct {
	id      string
	entries map[AssetKey]Asset
}

// NewCatalog creates an empty catalog.
func NewCatalog(id string) *Catalog {
	return &Catalog{id: id, entries: make(map[AssetKey]Asset)}
}

// ID returns the asset pack identifier the catalog was built from.
func (c *Catalog) ID() string {
	return c.id
}

// Add registers an asset, replacing any previous entry for key.
func (c *Catalog) Add(key AssetKey, a Asset) {
	c.entries[key] = a
}

// Lookup returns the asset for key or an error wrapping ErrAssetNotFound.
func (c *Catalog) Lookup(key AssetKey) (Asset, error) {
	if c != nil {
		if a, ok := c.entries[key]; ok {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("%w: %s", ErrAssetNotFound, key)
}

// Has reports whether key has an entry.
func (c *Catalog) Has(key AssetKey) bool {
	_, err := c.Lookup(key)
	return err == nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Variants returns the number of consecutive variants starting at 0 for
// the family of key (color for cubes, title for layered blocks).
func (c *Catalog) Variants(key AssetKey) int {
	n := 0
	for {
		key.Variant = n
		if !c.Has(key) {
			return n
		}
		n++
	}
}

// Keys returns all keys in a stable order.
func (c *Catalog) Keys() []AssetKey {
	keys := make([]AssetKey, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Block != b.Block {
			return a.Block < b.Block
		}
		if a.Color != b.Color {
			return a.Color < b.Color
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.Variant < b.Variant
	})
	return keys
}
