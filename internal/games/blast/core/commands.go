package core

import "fmt"

// IntentKind discriminates Intent.
type IntentKind uint8

const (
	IntentCreate IntentKind = iota
	IntentDestroy
	IntentMove
	IntentTouchable
)

func (k IntentKind) String() string {
	switch k {
	case IntentCreate:
		return "CreateTile"
	case IntentDestroy:
		return "DestroyTile"
	case IntentMove:
		return "SetMoveTarget"
	case IntentTouchable:
		return "SetTouchable"
	default:
		return "Unknown"
	}
}

// Intent is a tile lifecycle instruction for the rendering side.
//
//	CreateTile:    Handle, Tile, Pos
//	DestroyTile:   Handle
//	SetMoveTarget: Handle, From, To
//	SetTouchable:  Handle, Touchable
type Intent struct {
	Kind      IntentKind
	Handle    Handle
	Tile      Tile
	Pos       Vec3
	From, To  Coord
	Touchable bool
}

func (i Intent) String() string {
	switch i.Kind {
	case IntentCreate:
		return fmt.Sprintf("%s %s %s at %s", i.Kind, i.Handle, i.Tile, i.Tile.Coord)
	case IntentMove:
		return fmt.Sprintf("%s %s %s->%s", i.Kind, i.Handle, i.From, i.To)
	case IntentTouchable:
		return fmt.Sprintf("%s %s %t", i.Kind, i.Handle, i.Touchable)
	default:
		return fmt.Sprintf("%s %s", i.Kind, i.Handle)
	}
}

type commandKind uint8

const (
	cmdCreate commandKind = iota
	cmdDestroy
	cmdMove
	cmdReplace
)

type command struct {
	kind     commandKind
	handle   Handle
	tile     Tile
	from, to Coord
}

// CommandBuffer records board mutations so that scans over the store are
// never invalidated mid-iteration. Playback applies everything in recording
// order and clears the buffer.
type CommandBuffer struct {
	cmds []command
}

// Create records a new tile. The tile's Coord is its target cell and Pos
// its starting world position.
func (b *CommandBuffer) Create(t Tile) {
	b.cmds = append(b.cmds, command{kind: cmdCreate, tile: t})
}

// Destroy records removal of h.
func (b *CommandBuffer) Destroy(h Handle) {
	b.cmds = append(b.cmds, command{kind: cmdDestroy, handle: h})
}

// Move records a gravity move of h. The tile becomes moving and not
// touchable.
func (b *CommandBuffer) Move(h Handle, from, to Coord) {
	b.cmds = append(b.cmds, command{kind: cmdMove, handle: h, from: from, to: to})
}

// Replace records a change of identity for h. Coordinate, position and
// motion state carry over from the current record.
func (b *CommandBuffer) Replace(h Handle, t Tile) {
	b.cmds = append(b.cmds, command{kind: cmdReplace, handle: h, tile: t})
}

// Len returns the number of pending commands.
func (b *CommandBuffer) Len() int {
	return len(b.cmds)
}

// Playback applies all commands to store and index and returns the
// resulting intents.
func (b *CommandBuffer) Playback(store *Store, index *GridIndex) []Intent {
	if len(b.cmds) == 0 {
		return nil
	}
	intents := make([]Intent, 0, len(b.cmds))
	for _, c := range b.cmds {
		switch c.kind {
		case cmdCreate:
			h := store.Create(c.tile)
			index.Set(c.tile.Coord, h)
			intents = append(intents, Intent{Kind: IntentCreate, Handle: h, Tile: c.tile, Pos: c.tile.Pos})

		case cmdDestroy:
			t, ok := store.Get(c.handle)
			if !ok {
				continue
			}
			index.removeIf(t.Coord, c.handle)
			store.Destroy(c.handle)
			intents = append(intents, Intent{Kind: IntentDestroy, Handle: c.handle})

		case cmdMove:
			t, ok := store.Get(c.handle)
			if !ok {
				continue
			}
			index.removeIf(c.from, c.handle)
			index.Set(c.to, c.handle)
			t.Coord = c.to
			t.Moving = true
			intents = append(intents, Intent{Kind: IntentMove, Handle: c.handle, From: c.from, To: c.to})
			if t.Touchable {
				t.Touchable = false
				intents = append(intents, Intent{Kind: IntentTouchable, Handle: c.handle, Touchable: false})
			}

		case cmdReplace:
			old, ok := store.Get(c.handle)
			if !ok {
				continue
			}
			nt := c.tile
			nt.Coord = old.Coord
			nt.Pos = old.Pos
			nt.Moving = old.Moving
			nt.Touchable = old.Touchable
			index.removeIf(old.Coord, c.handle)
			store.Destroy(c.handle)
			h := store.Create(nt)
			index.Set(nt.Coord, h)
			intents = append(intents,
				Intent{Kind: IntentDestroy, Handle: c.handle},
				Intent{Kind: IntentCreate, Handle: h, Tile: nt, Pos: nt.Pos},
			)
		}
	}
	b.cmds = b.cmds[:0]
	return intents
}
