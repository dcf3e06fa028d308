package core

import (
	"errors"
	"sort"
)

// BlastResult describes one resolved tap.
type BlastResult struct {
	Origin  Coord
	Group   Group
	Cleared []Coord // cube cells removed

	Damaged   []Coord // layered tiles that lost a layer and survived
	Destroyed []Coord // layered tiles removed by their last hit

	// Lowest maps each affected column to the bottom-most row that gravity
	// must scan from.
	Lowest map[int]int

	Gravity GravityResult
}

// Columns returns the affected columns in ascending order.
func (r BlastResult) Columns() []int {
	cols := make([]int, 0, len(r.Lowest))
	for col := range r.Lowest {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

// blastable returns the qualifying group under c, if c holds a touchable
// cube.
func (e *Engine) blastable(c Coord) (Group, bool) {
	if _, ok := e.matchable(c); !ok {
		return Group{}, false
	}
	g, ok := e.matches.GroupAt(c)
	if !ok || !g.Qualifies {
		return Group{}, false
	}
	return g, true
}

// blast clears g, damages adjacent layered tiles and records the lowest
// affected row per column. Cleared cells leave the index immediately so
// that gravity sees them empty.
func (e *Engine) blast(origin Coord, g Group, buf *CommandBuffer) BlastResult {
	res := BlastResult{
		Origin: origin,
		Group:  g,
		Lowest: make(map[int]int),
	}

	for _, c := range g.Members {
		h, ok := e.index.Get(c)
		if !ok {
			continue
		}
		extendLowest(res.Lowest, c.Col, c.Row)
		buf.Destroy(h)
		e.index.Remove(c)
		res.Cleared = append(res.Cleared, c)
	}

	processed := make(map[Handle]bool)
	for _, c := range res.Cleared {
		for _, n := range c.Neighbors() {
			h, ok := e.index.Get(n)
			if !ok || processed[h] {
				continue
			}
			t, ok := e.store.Get(h)
			if !ok || t.Block != BlockLayered {
				continue
			}
			processed[h] = true
			e.damage(h, t, n, buf, &res)
		}
	}
	return res
}

// damage strips one layer from the layered tile h at c. A tile with no
// asset for its next layer is destroyed and the column's fall extends past
// the empty cells directly below it.
func (e *Engine) damage(h Handle, t *Tile, c Coord, buf *CommandBuffer, res *BlastResult) {
	next := *t
	next.Variant++
	_, err := e.cfg.Catalog.Lookup(next.Key())
	switch {
	case err == nil:
		buf.Replace(h, next)
		res.Damaged = append(res.Damaged, c)
		e.stats.LayersHit++
		return
	case !errors.Is(err, ErrAssetNotFound):
		e.logger.Error("layered damage lookup failed", "cell", c.String(), "error", err)
		return
	}

	buf.Destroy(h)
	e.index.Remove(c)
	res.Destroyed = append(res.Destroyed, c)
	e.stats.LayeredDestroyed++

	row := c.Row
	for below := C(row+1, c.Col); e.cfg.InBounds(below); below = C(below.Row+1, c.Col) {
		if _, occupied := e.index.Get(below); occupied {
			break
		}
		row = below.Row
	}
	extendLowest(res.Lowest, c.Col, row)
}

func extendLowest(lowest map[int]int, col, row int) {
	if cur, ok := lowest[col]; !ok || row > cur {
		lowest[col] = row
	}
}
