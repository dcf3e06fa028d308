package core

// Group is a maximal connected component of touchable cubes of one color.
type Group struct {
	ID        int
	Color     CubeColor
	Members   []Coord // BFS order from the seed cell
	Qualifies bool    // size reaches the minimum match size
	Variant   int     // tier variant for qualifying groups, 0 otherwise
}

// Size returns the number of members.
func (g Group) Size() int {
	return len(g.Members)
}

// Contains reports whether c is a member.
func (g Group) Contains(c Coord) bool {
	for _, m := range g.Members {
		if m == c {
			return true
		}
	}
	return false
}

// MatchSet is the result of a full group rebuild. Every touchable cube on
// the board belongs to exactly one group, singletons included.
type MatchSet struct {
	groups []Group
	byCell map[Coord]int
}

// Groups returns all groups in discovery order.
func (m *MatchSet) Groups() []Group {
	if m == nil {
		return nil
	}
	return m.groups
}

// Matches returns only the qualifying groups.
func (m *MatchSet) Matches() []Group {
	if m == nil {
		return nil
	}
	var out []Group
	for _, g := range m.groups {
		if g.Qualifies {
			out = append(out, g)
		}
	}
	return out
}

// MatchCount returns the number of qualifying groups.
func (m *MatchSet) MatchCount() int {
	n := 0
	for _, g := range m.Groups() {
		if g.Qualifies {
			n++
		}
	}
	return n
}

// GroupAt returns the group containing c.
func (m *MatchSet) GroupAt(c Coord) (Group, bool) {
	if m == nil {
		return Group{}, false
	}
	id, ok := m.byCell[c]
	if !ok {
		return Group{}, false
	}
	return m.groups[id], true
}

// matchable returns the tile at c if it can take part in a group.
func (e *Engine) matchable(c Coord) (*Tile, bool) {
	h, ok := e.index.Get(c)
	if !ok {
		return nil, false
	}
	t, ok := e.store.Get(h)
	if !ok || !t.IsCube() || !t.Touchable {
		return nil, false
	}
	return t, true
}

// FindConnectedGroup returns the cells reachable from start through
// touchable cubes of start's color, in breadth-first order. It returns nil
// when start itself is not a touchable cube.
func (e *Engine) FindConnectedGroup(start Coord) []Coord {
	if !e.initialized {
		return nil
	}
	return e.findConnectedGroup(start, nil)
}

// findConnectedGroup marks every member in claimed when it is non-nil.
func (e *Engine) findConnectedGroup(start Coord, claimed map[Coord]bool) []Coord {
	first, ok := e.matchable(start)
	if !ok {
		return nil
	}
	color := first.Color

	reached := map[Coord]bool{start: true}
	queue := []Coord{start}
	var members []Coord

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		members = append(members, c)
		if claimed != nil {
			claimed[c] = true
		}

		for _, n := range c.Neighbors() {
			if reached[n] || !e.cfg.InBounds(n) {
				continue
			}
			reached[n] = true
			t, ok := e.matchable(n)
			if !ok || t.Color != color {
				continue
			}
			queue = append(queue, n)
		}
	}
	return members
}

// collectGroups partitions all touchable cubes into groups, scanning seeds
// in row-major order.
func (e *Engine) collectGroups() *MatchSet {
	ms := &MatchSet{byCell: make(map[Coord]int)}
	claimed := make(map[Coord]bool)
	minMatch := e.rules.MinMatch()

	for row := 0; row < e.cfg.Rows; row++ {
		for col := 0; col < e.cfg.Cols; col++ {
			c := C(row, col)
			if claimed[c] {
				continue
			}
			t, ok := e.matchable(c)
			if !ok {
				continue
			}
			color := t.Color
			members := e.findConnectedGroup(c, claimed)
			g := Group{
				ID:        len(ms.groups),
				Color:     color,
				Members:   members,
				Qualifies: len(members) >= minMatch,
			}
			if g.Qualifies {
				g.Variant = e.rules.VariantFor(len(members))
			}
			for _, m := range members {
				ms.byCell[m] = g.ID
			}
			ms.groups = append(ms.groups, g)
		}
	}
	return ms
}

// RebuildAllGroups recomputes every group and brings each member's variant
// in line with its group: the tier variant for qualifying groups, 0 for the
// rest. Variant changes are applied as replacements.
func (e *Engine) RebuildAllGroups() *MatchSet {
	if !e.initialized {
		return nil
	}
	e.pending = append(e.pending, e.recompute()...)
	return e.matches
}

func (e *Engine) recompute() []Intent {
	ms := e.collectGroups()
	var buf CommandBuffer
	for _, g := range ms.groups {
		for _, c := range g.Members {
			h, _ := e.index.Get(c)
			t, ok := e.store.Get(h)
			if !ok || t.Variant == g.Variant {
				continue
			}
			key := CubeKey(t.Color, g.Variant)
			if !e.cfg.Catalog.Has(key) {
				e.logger.Debug("no asset for group tier", "key", key.String())
				continue
			}
			nt := *t
			nt.Variant = g.Variant
			buf.Replace(h, nt)
		}
	}
	e.matches = ms
	e.stats.Recomputes++
	return e.commit(&buf)
}
