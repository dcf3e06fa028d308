package core

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Observer receives engine events. Implementations must be cheap; they run
// inside Tick.
type Observer interface {
	OnBlast(BlastResult)
	OnShuffle(ShuffleResult)
	OnSpawn(n int)
}

// Stats are running counters for one engine.
type Stats struct {
	Ticks            uint64
	Taps             int
	Blasts           int
	TilesCleared     int
	LayersHit        int
	LayeredDestroyed int
	Spawned          int
	Recomputes       int
	Shuffles         int
	DegradedShuffles int
}

// TickResult is returned by Tick.
type TickResult struct {
	Tick    uint64
	Intents []Intent

	Blast   *BlastResult   // set when a tap was resolved into a blast
	Shuffle *ShuffleResult // set when a scheduled shuffle ran this tick

	Recomputed       bool // groups were rebuilt
	ShuffleScheduled bool // the board is dead and will shuffle next tick
	Stalled          bool // no match can be produced any more
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed seeds the engine's random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects a random source.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver registers an event observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithRules overrides DefaultRules.
func WithRules(r Rules) Option {
	return func(e *Engine) {
		e.rules = r.Sorted()
	}
}

// Engine owns one board: its tile store, grid index, group state and
// random source. An Engine is not safe for concurrent use; run one per
// board.
type Engine struct {
	cfg      *BoardConfig
	rules    Rules
	store    *Store
	index    *GridIndex
	matches  *MatchSet
	rng      *rand.Rand
	logger   *log.Logger
	observer Observer

	initialized       bool
	tick              uint64
	pendingTap        *Coord
	updateRequests    int
	needsRecompute    bool
	shuffleScheduled  bool
	lastShuffleBarren bool
	stalled           bool

	// intents produced between ticks, flushed by the next Tick
	pending []Intent

	stats Stats
}

// NewEngine creates an uninitialized engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rules:  DefaultRules(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Initialize places the initial layout. Cells missing from layout get a
// random cube. It fails without side effects when the engine is already
// initialized, the config is unusable or a layout cell has no asset.
func (e *Engine) Initialize(cfg *BoardConfig, layout Layout) error {
	if e.initialized {
		return ErrAlreadyInitialized
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := e.rules.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigMissing, err)
	}
	e.cfg = cfg

	tiles := make([]Tile, 0, cfg.CellCount())
	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			c := C(row, col)
			spec, ok := layout[c]
			if !ok {
				spec = TileSpec{Block: BlockCube, Color: ColorRandom}
			}
			t := e.tileFromSpec(spec, c)
			if _, err := cfg.Catalog.Lookup(t.Key()); err != nil {
				e.cfg = nil
				return fmt.Errorf("core: layout cell %s: %w", c, err)
			}
			tiles = append(tiles, t)
		}
	}

	e.store = NewStore(cfg.CellCount() * 2)
	e.index = NewGridIndex(cfg.Rows, cfg.Cols, e.store)
	var buf CommandBuffer
	for _, t := range tiles {
		buf.Create(t)
	}
	e.pending = append(e.pending, buf.Playback(e.store, e.index)...)
	e.index.Invalidate()

	e.initialized = true
	e.needsRecompute = true
	e.logger.Debug("board initialized", "rows", cfg.Rows, "cols", cfg.Cols, "tiles", e.store.Len())
	return nil
}

func (e *Engine) tileFromSpec(spec TileSpec, c Coord) Tile {
	t := Tile{
		Block:   spec.Block,
		Title:   spec.Title,
		Variant: spec.Variant,
		Coord:   c,
		Pos:     e.cfg.TileWorldPosition(c),
	}
	switch spec.Block {
	case BlockCube:
		t.Color = spec.Color
		if t.Color == ColorRandom {
			t.Color = e.randomColor()
		}
		t.Touchable = true
	case BlockLayered:
		t.Touchable = false
	}
	return t
}

func (e *Engine) randomColor() CubeColor {
	return e.cfg.Colors[e.rng.Intn(len(e.cfg.Colors))]
}

// OnTap queues a tap on cell c. Only the latest tap before a tick is
// resolved. Taps outside the board are ignored.
func (e *Engine) OnTap(c Coord) {
	if !e.initialized || !e.cfg.InBounds(c) {
		return
	}
	e.pendingTap = &c
	e.stats.Taps++
}

// TapWorld resolves a world point on the grid plane and queues a tap.
func (e *Engine) TapWorld(p Vec3) bool {
	if !e.initialized {
		return false
	}
	c, ok := e.cfg.GridIndexFromWorld(p)
	if ok {
		e.OnTap(c)
	}
	return ok
}

// TapRay resolves a pointer ray against the grid plane and queues a tap.
func (e *Engine) TapRay(r Ray) bool {
	if !e.initialized {
		return false
	}
	c, ok := e.cfg.GridIndexFromRay(r)
	if ok {
		e.OnTap(c)
	}
	return ok
}

// OnTileArrived is called by the mover when a tile reaches its target. The
// tile becomes touchable and groups are rebuilt on the next tick.
func (e *Engine) OnTileArrived(h Handle) {
	if !e.initialized {
		return
	}
	t, ok := e.store.Get(h)
	if !ok || !t.Moving {
		return
	}
	t.Moving = false
	t.Pos = e.cfg.TileWorldPosition(t.Coord)
	if t.IsCube() && !t.Touchable {
		t.Touchable = true
		e.pending = append(e.pending, Intent{Kind: IntentTouchable, Handle: h, Touchable: true})
	}
	e.updateRequests++
}

// Tick runs one orchestrator pass:
//
//  1. a shuffle scheduled last tick runs, and the tick ends there;
//  2. the pending tap blasts its group if that group qualifies;
//  3. arrival requests are drained;
//  4. groups are rebuilt if anything changed, and a dead board schedules a
//     shuffle for the next tick.
func (e *Engine) Tick() TickResult {
	if !e.initialized {
		return TickResult{}
	}
	e.tick++
	e.stats.Ticks++
	e.index.Invalidate()

	res := TickResult{Tick: e.tick, Intents: e.takePending()}

	if e.shuffleScheduled {
		e.shuffleScheduled = false
		sr, intents := e.shuffle()
		res.Shuffle = &sr
		res.Intents = append(res.Intents, intents...)
		e.updateRequests++
		res.Stalled = e.stalled
		return res
	}

	if e.pendingTap != nil {
		c := *e.pendingTap
		e.pendingTap = nil
		if g, ok := e.blastable(c); ok {
			var buf CommandBuffer
			br := e.blast(c, g, &buf)
			br.Gravity = e.applyGravity(br.Lowest, &buf)
			res.Intents = append(res.Intents, e.commit(&buf)...)
			res.Blast = &br
			e.needsRecompute = true
			e.stats.Blasts++
			e.stats.TilesCleared += len(br.Cleared)
			e.logger.Debug("blast", "cell", c.String(), "size", g.Size(), "color", g.Color.String())
			if e.observer != nil {
				e.observer.OnBlast(br)
				if n := len(br.Gravity.Spawned); n > 0 {
					e.observer.OnSpawn(n)
				}
			}
		}
	}

	if e.updateRequests > 0 {
		e.updateRequests = 0
		e.needsRecompute = true
	}

	if e.needsRecompute {
		e.needsRecompute = false
		res.Intents = append(res.Intents, e.recompute()...)
		res.Recomputed = true
		e.evaluateShuffle(&res)
	}

	res.Stalled = e.stalled
	return res
}

func (e *Engine) evaluateShuffle(res *TickResult) {
	if e.matches.MatchCount() > 0 {
		e.lastShuffleBarren = false
		e.stalled = false
		return
	}
	if e.anyMoving() {
		return
	}
	if e.lastShuffleBarren {
		if !e.stalled {
			e.logger.Warn("board stalled: shuffle cannot produce a match")
		}
		e.stalled = true
		return
	}
	e.shuffleScheduled = true
	res.ShuffleScheduled = true
	e.logger.Debug("shuffle scheduled", "tick", e.tick)
}

// commit plays buf back against the store and index.
func (e *Engine) commit(buf *CommandBuffer) []Intent {
	return buf.Playback(e.store, e.index)
}

func (e *Engine) takePending() []Intent {
	out := e.pending
	e.pending = nil
	return out
}

func (e *Engine) anyMoving() bool {
	moving := false
	e.store.Each(func(_ Handle, t *Tile) {
		if t.Moving {
			moving = true
		}
	})
	return moving
}

// Initialized reports whether Initialize succeeded.
func (e *Engine) Initialized() bool {
	return e.initialized
}

// Config returns the board config, or nil before initialization.
func (e *Engine) Config() *BoardConfig {
	return e.cfg
}

// Rules returns the active rules.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Matches returns the groups from the last rebuild.
func (e *Engine) Matches() *MatchSet {
	return e.matches
}

// Stats returns a copy of the running counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Stalled reports whether the board can no longer produce a match.
func (e *Engine) Stalled() bool {
	return e.stalled
}

// ShuffleScheduled reports whether the next tick will shuffle.
func (e *Engine) ShuffleScheduled() bool {
	return e.shuffleScheduled
}

// TileAt returns the tile at c.
func (e *Engine) TileAt(c Coord) (Tile, error) {
	if !e.initialized {
		return Tile{}, ErrConfigMissing
	}
	if !e.cfg.InBounds(c) {
		return Tile{}, fmt.Errorf("%w: %s", ErrInvalidCoordinate, c)
	}
	h, ok := e.index.Get(c)
	if !ok {
		return Tile{}, fmt.Errorf("%w: %s", ErrCellEmpty, c)
	}
	t, _ := e.store.Get(h)
	return *t, nil
}

// HandleAt returns the handle of the tile indexed at c.
func (e *Engine) HandleAt(c Coord) (Handle, bool) {
	if !e.initialized {
		return Handle{}, false
	}
	return e.index.Get(c)
}

// Tile returns a copy of the tile behind h.
func (e *Engine) Tile(h Handle) (Tile, bool) {
	if !e.initialized {
		return Tile{}, false
	}
	t, ok := e.store.Get(h)
	if !ok {
		return Tile{}, false
	}
	return *t, true
}

// EachTile calls fn with a copy of every live tile in store order.
func (e *Engine) EachTile(fn func(Handle, Tile)) {
	if !e.initialized {
		return
	}
	e.store.Each(func(h Handle, t *Tile) {
		fn(h, *t)
	})
}

// TileCount returns the number of live tiles.
func (e *Engine) TileCount() int {
	if !e.initialized {
		return 0
	}
	return e.store.Len()
}

// MovingCount returns the number of tiles still in motion.
func (e *Engine) MovingCount() int {
	n := 0
	e.EachTile(func(_ Handle, t Tile) {
		if t.Moving {
			n++
		}
	})
	return n
}

// IndexRebuilds returns how many times the grid index was rebuilt.
func (e *Engine) IndexRebuilds() int {
	if !e.initialized {
		return 0
	}
	return e.index.Rebuilds()
}
