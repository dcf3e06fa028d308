// Package blast is the cube blast game: a tap-to-blast match board played
// through campaign levels or as an endless run.
package blast

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cubeblast/internal/config"
	platformcore "github.com/vovakirdan/cubeblast/internal/core"
	"github.com/vovakirdan/cubeblast/internal/games/blast/assets"
	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
	"github.com/vovakirdan/cubeblast/internal/games/blast/levels"
	"github.com/vovakirdan/cubeblast/internal/registry"
)

// Registered game ids.
const (
	IDCampaign = "blast"
	IDEndless  = "blast_endless"

	// EndlessLevelID is reported as the level of endless runs.
	EndlessLevelID = "endless"
)

// ErrNoLevels is reported when the campaign finds no level files.
var ErrNoLevels = errors.New("no levels found")

// Mode selects between campaign and endless play.
type Mode int

const (
	ModeCampaign Mode = iota
	ModeEndless
)

const bannerTicks = 60

func init() {
	registry.Register(IDCampaign, func() registry.Game { return New(ModeCampaign) })
	registry.Register(IDEndless, func() registry.Game { return New(ModeEndless) })
}

// Game implements registry.Game on top of one engine at a time.
type Game struct {
	mode   Mode
	opts   Options
	cfg    config.BlastConfig
	diff   *config.DifficultyManager
	logger *log.Logger
	rng    *rand.Rand
	seed   int64

	library *assets.Library
	catalog *core.Catalog

	startLevel string // overrides Options.StartLevel when set
	allLevels  []levels.Level
	levelIndex int
	level      levels.Level

	engine *core.Engine
	mover  *core.Mover
	dt     float64

	screenW, screenH int
	cursor           core.Coord
	layout           boardLayout

	tick       uint64
	score      int
	levelScore int
	movesUsed  int
	movesLimit int
	colors     int // endless: colors on the current board
	boards     int // endless: boards played this run

	// counters of finished boards; the live engine adds its own
	totals core.Stats
	moves  int

	banner      string
	bannerUntil uint64
	reason      string
	gameOver    bool
	won         bool
	paused      bool
	err         error
}

// New creates a game in the given mode.
func New(mode Mode) *Game {
	return &Game{mode: mode}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Cube Blast Endless"
	}
	return "Cube Blast"
}

// Reset loads config, levels and assets and starts a new run.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.opts = currentOptions()
	g.logger = g.opts.Logger
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}

	g.seed = cfg.Seed
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(g.seed))

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = platformcore.DefaultConfig().TickRate
	}
	g.dt = 1 / float64(tickRate)
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH

	g.clearRun()
	g.err = g.load()
	if g.err != nil {
		g.logger.Error("cannot start game", "game", g.ID(), "err", g.err)
	}
}

func (g *Game) clearRun() {
	g.engine, g.mover = nil, nil
	g.tick, g.score, g.levelScore = 0, 0, 0
	g.movesUsed, g.movesLimit, g.moves = 0, 0, 0
	g.colors, g.boards = 0, 0
	g.totals = core.Stats{}
	g.banner, g.bannerUntil, g.reason = "", 0, ""
	g.gameOver, g.won, g.paused = false, false, false
	g.allLevels, g.levelIndex = nil, 0
}

func (g *Game) load() error {
	bc, src, err := config.LoadBlast(g.opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := config.ApplyPreset(&bc, g.opts.Difficulty); err != nil {
		return err
	}
	g.cfg = bc
	g.diff = config.NewDifficultyManager(bc.Endless.Difficulty)
	g.library = assets.NewLibrary(g.opts.AssetDirs...)
	g.logger.Debug("config loaded", "source", src, "preset", g.opts.Difficulty)

	if g.mode == ModeEndless {
		return g.newEndlessBoard()
	}

	all, err := levels.NewLoader(g.opts.LevelDirs...).LoadAll()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return ErrNoLevels
	}
	g.allLevels = all
	g.levelIndex = 0
	start := g.opts.StartLevel
	if g.startLevel != "" {
		start = g.startLevel
	}
	if start != "" {
		idx := -1
		for i, l := range all {
			if l.ID == start {
				idx = i
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: %s", levels.ErrLevelNotFound, start)
		}
		g.levelIndex = idx
	}
	return g.loadLevel()
}

// loadLevel starts the board of allLevels[levelIndex].
func (g *Game) loadLevel() error {
	lvl := g.allLevels[g.levelIndex]
	pack, err := g.library.Pack(lvl.AssetPack)
	if err != nil {
		return err
	}
	cat := pack.Catalog()
	if err := levels.Validate(&lvl, cat); err != nil {
		return fmt.Errorf("level %s: %w", lvl.ID, err)
	}

	colors := lvl.Colors
	if len(colors) == 0 {
		colors = pack.Colors()
	}
	colors = limitColors(colors, g.cfg.Preset.MaxColors)

	g.movesLimit = 0
	if lvl.Moves > 0 {
		g.movesLimit = max(lvl.Moves+g.cfg.Preset.MovesBonus, 1)
	}
	g.level = lvl
	return g.startBoard(lvl.Rows, lvl.Cols, colors, cat, lvl.CopyLayout())
}

// newEndlessBoard deals a random board whose color count follows the
// difficulty level reached so far.
func (g *Game) newEndlessBoard() error {
	pack, err := g.library.Pack(assets.DefaultPack)
	if err != nil {
		return err
	}
	e := g.cfg.Endless
	n := g.diff.Colors(e.MinColors, e.MaxColors, g.score, int(g.tick))
	colors := limitColors(limitColors(pack.Colors(), n), g.cfg.Preset.MaxColors)

	g.colors = len(colors)
	g.boards++
	g.level = levels.Level{ID: EndlessLevelID, Name: "Endless", Rows: e.Rows, Cols: e.Cols}
	return g.startBoard(e.Rows, e.Cols, colors, pack.Catalog(), nil)
}

func (g *Game) startBoard(rows, cols int, colors []core.CubeColor, cat *core.Catalog, layout core.Layout) error {
	opts := []core.Option{
		core.WithSeed(g.rng.Int63()),
		core.WithRules(rulesFromConfig(g.cfg.Rules)),
		core.WithLogger(g.logger.With("game", g.ID(), "level", g.level.ID)),
	}
	if g.opts.Observer != nil {
		if obs := g.opts.Observer(g.ID()); obs != nil {
			opts = append(opts, core.WithObserver(obs))
		}
	}

	engine := core.NewEngine(opts...)
	if err := engine.Initialize(boardConfig(g.cfg.Board, rows, cols, colors, cat), layout); err != nil {
		return err
	}
	// build the initial groups so the first tap can resolve
	engine.Tick()

	if g.engine != nil {
		g.addTotals(g.engine.Stats())
	}
	g.engine = engine
	g.mover = core.NewMover(engine, g.cfg.Motion.Speed, g.cfg.Motion.ArriveEpsilonSq)
	g.catalog = cat
	g.cursor = core.C(rows/2, cols/2)
	g.levelScore = 0
	g.movesUsed = 0
	g.layout = computeLayout(g.screenW, g.screenH, rows, cols)
	return nil
}

func (g *Game) addTotals(s core.Stats) {
	g.totals.Ticks += s.Ticks
	g.totals.Taps += s.Taps
	g.totals.Blasts += s.Blasts
	g.totals.TilesCleared += s.TilesCleared
	g.totals.LayersHit += s.LayersHit
	g.totals.LayeredDestroyed += s.LayeredDestroyed
	g.totals.Spawned += s.Spawned
	g.totals.Shuffles += s.Shuffles
	g.totals.DegradedShuffles += s.DegradedShuffles
}

// Step advances the game by one tick: input, engine tick, motion and the
// level outcome.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if in.Has(platformcore.ActionRestart) && (g.gameOver || g.err != nil) {
		g.restart()
		return platformcore.StepResult{State: g.State()}
	}
	if in.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.gameOver || g.paused || g.err != nil || g.engine == nil || g.layout.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	g.moveCursor(in)
	if g.canTap() {
		if in.Pointer != nil {
			g.tapPointer(*in.Pointer)
		}
		if in.Has(platformcore.ActionConfirm) {
			g.engine.OnTap(g.cursor)
		}
	}

	res := g.engine.Tick()
	if res.Blast != nil {
		g.onBlast(*res.Blast)
	}
	if res.Shuffle != nil {
		g.say("Shuffled!")
	}
	g.mover.Advance(g.dt)

	if err := g.checkOutcome(); err != nil {
		g.err = err
		g.logger.Error("cannot continue", "game", g.ID(), "err", err)
	}
	return platformcore.StepResult{State: g.State()}
}

// restart replays the current level, or starts a new endless run.
func (g *Game) restart() {
	if g.mode == ModeCampaign && len(g.allLevels) > 0 && g.err == nil {
		idx := g.levelIndex
		if g.won {
			idx = 0
		}
		all := g.allLevels
		g.clearRun()
		g.allLevels, g.levelIndex = all, idx
		g.err = g.loadLevel()
		return
	}
	g.clearRun()
	g.err = g.load()
}

func (g *Game) moveCursor(in platformcore.InputFrame) {
	cfg := g.engine.Config()
	row, col := g.cursor.Row, g.cursor.Col
	if in.Has(platformcore.ActionUp) {
		row--
	}
	if in.Has(platformcore.ActionDown) {
		row++
	}
	if in.Has(platformcore.ActionLeft) {
		col--
	}
	if in.Has(platformcore.ActionRight) {
		col++
	}
	g.cursor = core.C(platformcore.Clamp(row, 0, cfg.Rows-1), platformcore.Clamp(col, 0, cfg.Cols-1))
}

// tapPointer turns a clicked screen cell into a world point on the grid
// plane and lets the board resolve it.
func (g *Game) tapPointer(p platformcore.Point) {
	cfg := g.engine.Config()
	cell := g.layout.cellAt(p)
	if g.engine.TapWorld(cfg.TileWorldPosition(cell)) {
		g.cursor = cell
	}
}

func (g *Game) canTap() bool {
	return g.movesLimit == 0 || g.movesUsed < g.movesLimit
}

func (g *Game) onBlast(r core.BlastResult) {
	pts := scoreBlast(g.cfg.Scoring, r)
	g.score += pts
	g.levelScore += pts
	g.movesUsed++
	g.moves++
	if r.Group.Variant > 0 {
		g.say(fmt.Sprintf("%d cubes! +%d", r.Group.Size(), pts))
	}
}

func (g *Game) checkOutcome() error {
	if g.engine.MovingCount() > 0 {
		return nil
	}
	stalled := g.engine.Stalled()

	if g.mode == ModeEndless {
		if stalled {
			g.logger.Info("endless board stalled", "score", g.score, "boards", g.boards)
			g.say("No moves left, new board")
			return g.newEndlessBoard()
		}
		return nil
	}

	target := g.level.TargetScore
	outOfMoves := g.movesLimit > 0 && g.movesUsed >= g.movesLimit
	switch {
	case target > 0 && g.levelScore >= target:
		return g.levelCleared()
	case target == 0 && (outOfMoves || stalled):
		return g.levelCleared()
	case outOfMoves:
		g.lose("Out of moves")
	case stalled:
		g.lose("No moves left")
	}
	return nil
}

func (g *Game) levelCleared() error {
	g.logger.Info("level cleared", "level", g.level.ID, "score", g.levelScore, "moves", g.movesUsed)
	if g.levelIndex+1 >= len(g.allLevels) {
		g.won = true
		g.gameOver = true
		g.reason = "All levels cleared!"
		return nil
	}
	g.say(g.level.Name + " cleared!")
	g.levelIndex++
	return g.loadLevel()
}

func (g *Game) lose(reason string) {
	g.gameOver = true
	g.reason = reason
	g.logger.Info("level lost", "level", g.level.ID, "reason", reason, "score", g.levelScore)
}

func (g *Game) say(msg string) {
	g.banner = msg
	g.bannerUntil = g.tick + bannerTicks
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Summary implements registry.Reporter.
func (g *Game) Summary() registry.RunSummary {
	s := g.totals
	if g.engine != nil {
		live := g.engine.Stats()
		s.Ticks += live.Ticks
		s.Taps += live.Taps
		s.Blasts += live.Blasts
		s.Shuffles += live.Shuffles
	}
	return registry.RunSummary{
		LevelID:  g.level.ID,
		Seed:     g.seed,
		Ticks:    s.Ticks,
		Taps:     s.Taps,
		Blasts:   s.Blasts,
		Shuffles: s.Shuffles,
		Moves:    g.moves,
	}
}

// LevelIDs implements registry.LevelSelector. Endless has no levels.
func (g *Game) LevelIDs() []string {
	if g.mode == ModeEndless {
		return nil
	}
	all, err := Levels()
	if err != nil {
		return nil
	}
	ids := make([]string, len(all))
	for i, l := range all {
		ids[i] = l.ID
	}
	return ids
}

// SelectLevel implements registry.LevelSelector. It takes effect on the
// next Reset.
func (g *Game) SelectLevel(id string) {
	g.startLevel = id
}

// Resize implements registry.Resizer; the board keeps its state.
func (g *Game) Resize(width, height int) {
	g.screenW, g.screenH = width, height
	if g.engine != nil {
		cfg := g.engine.Config()
		g.layout = computeLayout(width, height, cfg.Rows, cfg.Cols)
	}
}

// Err returns the error that keeps the game from running, if any.
func (g *Game) Err() error {
	return g.err
}

// Engine exposes the live engine for debugging views.
func (g *Game) Engine() *core.Engine {
	return g.engine
}

// Levels lists the campaign levels visible with the current options.
func Levels() ([]levels.Level, error) {
	return levels.NewLoader(currentOptions().LevelDirs...).LoadAll()
}
