package core

import (
	"errors"
	"fmt"
	"sort"
)

// Tier maps a minimum group size to the cube variant shown for it.
type Tier struct {
	MinSize int
	Variant int
}

// ShuffleTier maps a board size to the number of matches a shuffle must
// guarantee.
type ShuffleTier struct {
	Tiles   int
	Matches int
}

// Rules holds the tunable match and refill parameters.
type Rules struct {
	// Tiers in ascending MinSize order. The first tier's MinSize is the
	// minimum match size.
	Tiers []Tier

	// ShuffleTable in ascending Tiles order.
	ShuffleTable []ShuffleTier

	// SpawnRowOffset is the row the bottom-most spawned tile of a column
	// starts from. Further spawns stack above it.
	SpawnRowOffset int
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		Tiers: []Tier{
			{MinSize: 2, Variant: 0},
			{MinSize: 3, Variant: 1},
			{MinSize: 5, Variant: 2},
			{MinSize: 7, Variant: 3},
		},
		ShuffleTable: []ShuffleTier{
			{Tiles: 10, Matches: 1},
			{Tiles: 20, Matches: 2},
			{Tiles: 50, Matches: 3},
			{Tiles: 70, Matches: 4},
			{Tiles: 100, Matches: 5},
		},
		SpawnRowOffset: -3,
	}
}

// Validate checks ordering and ranges.
func (r Rules) Validate() error {
	if len(r.Tiers) == 0 {
		return errors.New("rules: no match tiers")
	}
	if r.Tiers[0].MinSize < 1 {
		return fmt.Errorf("rules: minimum match size %d < 1", r.Tiers[0].MinSize)
	}
	for i := 1; i < len(r.Tiers); i++ {
		if r.Tiers[i].MinSize <= r.Tiers[i-1].MinSize {
			return fmt.Errorf("rules: match tiers not ascending at %d", i)
		}
	}
	if len(r.ShuffleTable) == 0 {
		return errors.New("rules: empty shuffle table")
	}
	for i, st := range r.ShuffleTable {
		if st.Matches < 0 {
			return fmt.Errorf("rules: negative match count at shuffle tier %d", i)
		}
		if i > 0 && st.Tiles <= r.ShuffleTable[i-1].Tiles {
			return fmt.Errorf("rules: shuffle table not ascending at %d", i)
		}
	}
	if r.SpawnRowOffset >= 0 {
		return fmt.Errorf("rules: spawn row offset %d must be above the board", r.SpawnRowOffset)
	}
	return nil
}

// Sorted returns a copy with both tables in ascending order.
func (r Rules) Sorted() Rules {
	out := r
	out.Tiers = append([]Tier(nil), r.Tiers...)
	out.ShuffleTable = append([]ShuffleTier(nil), r.ShuffleTable...)
	sort.Slice(out.Tiers, func(i, j int) bool { return out.Tiers[i].MinSize < out.Tiers[j].MinSize })
	sort.Slice(out.ShuffleTable, func(i, j int) bool { return out.ShuffleTable[i].Tiles < out.ShuffleTable[j].Tiles })
	return out
}

// MinMatch returns the smallest group size that can be blasted.
func (r Rules) MinMatch() int {
	if len(r.Tiers) == 0 {
		return 2
	}
	return r.Tiers[0].MinSize
}

// VariantFor returns the variant of the highest tier whose MinSize does not
// exceed size, or 0 when none does.
func (r Rules) VariantFor(size int) int {
	variant := 0
	for _, t := range r.Tiers {
		if size >= t.MinSize {
			variant = t.Variant
		}
	}
	return variant
}

// GuaranteedMatches returns the shuffle target for a board of the given
// cell count: the entry with the smallest Tiles not below cells, or the
// last entry for boards larger than every threshold.
func (r Rules) GuaranteedMatches(cells int) int {
	if len(r.ShuffleTable) == 0 {
		return 0
	}
	for _, st := range r.ShuffleTable {
		if cells <= st.Tiles {
			return st.Matches
		}
	}
	return r.ShuffleTable[len(r.ShuffleTable)-1].Matches
}
