package core

import "fmt"

// Handle refers to a tile in a Store. A handle goes stale when its tile is
// destroyed, even if the slot is later reused.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle, which never refers to a tile.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

type slot struct {
	tile Tile
	gen  uint32
	live bool
}

// Store is a dense arena of tile records with generation-checked handles.
// Freed slots are reused last-in first-out, so handle assignment is
// deterministic for a given sequence of operations.
type Store struct {
	slots []slot
	free  []uint32
	live  int
}

// NewStore creates a store with room for capacity tiles.
func NewStore(capacity int) *Store {
	return &Store{slots: make([]slot, 0, capacity)}
}

// Create adds a tile and returns its handle.
func (s *Store) Create(t Tile) Handle {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slot{})
		idx = uint32(len(s.slots) - 1)
	}
	sl := &s.slots[idx]
	sl.gen++
	sl.tile = t
	sl.live = true
	s.live++
	return Handle{index: idx, gen: sl.gen}
}

// Destroy removes the tile. It reports false for stale handles.
func (s *Store) Destroy(h Handle) bool {
	if !s.Valid(h) {
		return false
	}
	sl := &s.slots[h.index]
	sl.live = false
	sl.tile = Tile{}
	s.free = append(s.free, h.index)
	s.live--
	return true
}

// Valid reports whether h refers to a live tile.
func (s *Store) Valid(h Handle) bool {
	if h.IsZero() || int(h.index) >= len(s.slots) {
		return false
	}
	sl := &s.slots[h.index]
	return sl.live && sl.gen == h.gen
}

// Get returns a pointer to the tile record. The pointer is invalidated by
// the next Create.
func (s *Store) Get(h Handle) (*Tile, bool) {
	if !s.Valid(h) {
		return nil, false
	}
	return &s.slots[h.index].tile, true
}

// Len returns the number of live tiles.
func (s *Store) Len() int {
	return s.live
}

// Each calls fn for every live tile in slot order. fn must not create or
// destroy tiles.
func (s *Store) Each(fn func(Handle, *Tile)) {
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.live {
			continue
		}
		fn(Handle{index: uint32(i), gen: sl.gen}, &sl.tile)
	}
}

// Handles returns the handles of all live tiles in slot order.
func (s *Store) Handles() []Handle {
	out := make([]Handle, 0, s.live)
	s.Each(func(h Handle, _ *Tile) {
		out = append(out, h)
	})
	return out
}
