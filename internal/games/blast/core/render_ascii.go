package core

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// RenderASCII draws the board as text, one cell per two characters:
//
//	B3   blue cube, tier 3
//	b0   blue cube still falling (lowercase)
//	#1   layered block that lost one layer
//	..   empty cell
//
// Used for debugging, golden tests and the headless sim command.
func RenderASCII(e *Engine) string {
	if !e.initialized {
		return "(uninitialized)\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tick: %d | Tiles: %d | Matches: %d | Moving: %d\n",
		e.tick, e.store.Len(), e.matches.MatchCount(), e.MovingCount())
	sb.WriteString(strings.Repeat("-", e.cfg.Cols*3) + "\n")

	for row := 0; row < e.cfg.Rows; row++ {
		for col := 0; col < e.cfg.Cols; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cellToken(e, C(row, col)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellToken(e *Engine, c Coord) string {
	h, ok := e.index.Get(c)
	if !ok {
		return ".."
	}
	t, _ := e.store.Get(h)
	switch t.Block {
	case BlockLayered:
		return fmt.Sprintf("#%d", t.Variant%10)
	default:
		ch := t.Color.Char()
		if t.Moving {
			ch = ch - 'A' + 'a'
		}
		return fmt.Sprintf("%c%d", ch, t.Variant%10)
	}
}

// Hash returns an FNV-64a digest of the indexed board contents, including
// motion flags. Equal hashes mean equal boards for determinism checks.
func (e *Engine) Hash() uint64 {
	h := fnv.New64a()
	if !e.initialized {
		return h.Sum64()
	}
	var buf [8]byte
	write := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}
	for row := 0; row < e.cfg.Rows; row++ {
		for col := 0; col < e.cfg.Cols; col++ {
			hd, ok := e.index.Get(C(row, col))
			if !ok {
				write(-1)
				continue
			}
			t, _ := e.store.Get(hd)
			write(int(t.Block))
			write(int(t.Color))
			write(t.Variant)
			h.Write([]byte(t.Title))
			flags := 0
			if t.Touchable {
				flags |= 1
			}
			if t.Moving {
				flags |= 2
			}
			write(flags)
		}
	}
	return h.Sum64()
}
