package core

import "fmt"

// ShuffleResult describes one reshuffle.
type ShuffleResult struct {
	Cubes     int // cube tiles taking part
	Target    int // guaranteed matches requested by the shuffle table
	Created   int // guaranteed matches actually built
	Recolored int // tiles whose color changed
	Err       error
}

// Degraded reports whether fewer matches than requested were built.
func (r ShuffleResult) Degraded() bool {
	return r.Created < r.Target
}

// Shuffle reshuffles the board immediately and forces a group rebuild on
// the next tick. Until that rebuild Matches is empty and taps are no-ops.
// The engine normally schedules this itself when the board has no match and
// nothing is moving.
func (e *Engine) Shuffle() ShuffleResult {
	if !e.initialized {
		return ShuffleResult{Err: ErrConfigMissing}
	}
	res, intents := e.shuffle()
	e.pending = append(e.pending, intents...)
	e.updateRequests++
	return res
}

// shuffle permutes cube colors with Fisher-Yates and then recolors
// neighbors around random pool tiles until the shuffle table's number of
// matches exists or the pool runs out.
func (e *Engine) shuffle() (ShuffleResult, []Intent) {
	var coords []Coord
	colors := make(map[Coord]CubeColor)
	original := make(map[Coord]CubeColor)

	for row := 0; row < e.cfg.Rows; row++ {
		for col := 0; col < e.cfg.Cols; col++ {
			c := C(row, col)
			h, ok := e.index.Get(c)
			if !ok {
				continue
			}
			t, ok := e.store.Get(h)
			if !ok || !t.IsCube() {
				continue
			}
			coords = append(coords, c)
			original[c] = t.Color
		}
	}

	palette := make([]CubeColor, len(coords))
	for i, c := range coords {
		palette[i] = original[c]
	}
	e.rng.Shuffle(len(palette), func(i, j int) {
		palette[i], palette[j] = palette[j], palette[i]
	})
	for i, c := range coords {
		colors[c] = palette[i]
	}

	res := ShuffleResult{
		Cubes:  len(coords),
		Target: e.rules.GuaranteedMatches(e.cfg.CellCount()),
	}

	pool := newCoordPool(coords)
	need := e.rules.MinMatch() - 1
	for res.Created < res.Target && pool.Len() > 0 {
		pick := pool.RemoveAt(e.rng.Intn(pool.Len()))
		var mates []Coord
		for _, n := range pick.Neighbors() {
			if len(mates) >= need {
				break
			}
			if pool.Remove(n) {
				mates = append(mates, n)
			}
		}
		if len(mates) < need {
			continue
		}
		for _, m := range mates {
			colors[m] = colors[pick]
		}
		res.Created++
	}

	if res.Degraded() {
		res.Err = fmt.Errorf("%w: created %d of %d", ErrDegradedShuffle, res.Created, res.Target)
		e.stats.DegradedShuffles++
		e.logger.Warn("degraded shuffle", "created", res.Created, "target", res.Target, "cubes", res.Cubes)
	}

	var buf CommandBuffer
	for _, c := range coords {
		if colors[c] == original[c] {
			continue
		}
		h, _ := e.index.Get(c)
		t, ok := e.store.Get(h)
		if !ok {
			continue
		}
		nt := *t
		nt.Color = colors[c]
		nt.Variant = 0
		buf.Replace(h, nt)
		res.Recolored++
	}

	// The old groups no longer describe the board.
	e.matches = nil
	e.stats.Shuffles++
	e.lastShuffleBarren = res.Created == 0
	if e.observer != nil {
		e.observer.OnShuffle(res)
	}
	e.logger.Debug("shuffle", "cubes", res.Cubes, "created", res.Created, "recolored", res.Recolored)
	return res, e.commit(&buf)
}

// coordPool is an unordered set of coordinates with O(1) random removal.
type coordPool struct {
	items []Coord
	pos   map[Coord]int
}

func newCoordPool(coords []Coord) *coordPool {
	p := &coordPool{
		items: append([]Coord(nil), coords...),
		pos:   make(map[Coord]int, len(coords)),
	}
	for i, c := range p.items {
		p.pos[c] = i
	}
	return p
}

func (p *coordPool) Len() int {
	return len(p.items)
}

// RemoveAt removes and returns the item at index i.
func (p *coordPool) RemoveAt(i int) Coord {
	c := p.items[i]
	last := len(p.items) - 1
	p.items[i] = p.items[last]
	p.pos[p.items[i]] = i
	p.items = p.items[:last]
	delete(p.pos, c)
	return c
}

// Remove deletes c and reports whether it was present.
func (p *coordPool) Remove(c Coord) bool {
	i, ok := p.pos[c]
	if !ok {
		return false
	}
	p.RemoveAt(i)
	return true
}
