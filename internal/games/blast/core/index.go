package core

// GridIndex maps board coordinates to tile handles. Cells are stored in
// row-major order: index = row*cols + col.
//
// The index is rebuilt from the store on the first lookup after it has been
// marked stale. Once rebuilt, Set and Remove keep it current for the rest of
// the tick.
type GridIndex struct {
	rows  int
	cols  int
	cells []Handle
	store *Store

	stale    bool
	rebuilds int
}

// NewGridIndex creates a stale index over store.
func NewGridIndex(rows, cols int, store *Store) *GridIndex {
	return &GridIndex{
		rows:  rows,
		cols:  cols,
		cells: make([]Handle, rows*cols),
		store: store,
		stale: true,
	}
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *GridIndex) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

func (g *GridIndex) offset(c Coord) int {
	return c.Row*g.cols + c.Col
}

// Invalidate marks the index for a full rebuild on next access.
func (g *GridIndex) Invalidate() {
	g.stale = true
}

// Rebuilds returns how many full rebuilds have happened.
func (g *GridIndex) Rebuilds() int {
	return g.rebuilds
}

func (g *GridIndex) ensure() {
	if !g.stale {
		return
	}
	clear(g.cells)
	g.store.Each(func(h Handle, t *Tile) {
		if g.InBounds(t.Coord) {
			g.cells[g.offset(t.Coord)] = h
		}
	})
	g.stale = false
	g.rebuilds++
}

// Get returns the handle at c. Out-of-bounds and empty cells return false.
func (g *GridIndex) Get(c Coord) (Handle, bool) {
	if !g.InBounds(c) {
		return Handle{}, false
	}
	g.ensure()
	h := g.cells[g.offset(c)]
	return h, !h.IsZero()
}

// Set places h at c. It is a no-op while the index is stale because the
// next rebuild reads the store anyway.
func (g *GridIndex) Set(c Coord, h Handle) {
	if g.stale || !g.InBounds(c) {
		return
	}
	g.cells[g.offset(c)] = h
}

// Remove clears c.
func (g *GridIndex) Remove(c Coord) {
	if g.stale || !g.InBounds(c) {
		return
	}
	g.cells[g.offset(c)] = Handle{}
}

// removeIf clears c only if it still holds h.
func (g *GridIndex) removeIf(c Coord, h Handle) {
	if g.stale || !g.InBounds(c) {
		return
	}
	if g.cells[g.offset(c)] == h {
		g.cells[g.offset(c)] = Handle{}
	}
}
