package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cubeblast/internal/core"
	blastcore "github.com/vovakirdan/cubeblast/internal/games/blast/core"
	"github.com/vovakirdan/cubeblast/internal/metrics"
	"github.com/vovakirdan/cubeblast/internal/registry"
	"github.com/vovakirdan/cubeblast/internal/storage"
)

// Env carries the services a running game reports to. Every field is
// optional.
type Env struct {
	Store   *storage.Store
	Metrics *metrics.Collector
	Logger  *log.Logger

	// ScreenshotDir defaults to ~/.cubeblast/screenshots.
	ScreenshotDir string
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

// Run outcomes as reported to metrics.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
	OutcomeQuit = "quit"
)

// engineHolder is implemented by games backed by a blast engine.
type engineHolder interface {
	Engine() *blastcore.Engine
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	env        Env
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper

	started   time.Time
	lastLevel string
	recorded  bool // the current run is already stored

	allowBack  bool // Back leaves the game when it is paused or over
	quitting   bool
	backToMenu bool
}

// NewModel creates a model for game. The game is reset by Init.
func NewModel(game registry.Game, env Env, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return Model{
		game:       game,
		env:        env,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		started:    time.Now(),
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.env.logger().Warn("cannot save screenshot", "err", err)
		} else {
			m.env.logger().Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	}

	if m.allowBack && m.inputFrame.Has(core.ActionBack) &&
		(m.gameState.GameOver || m.gameState.Paused) {
		m.abandon()
		m.backToMenu = true
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if wasOver && !m.gameState.GameOver {
		// restarted
		m.recorded = false
		m.started = time.Now()
	}
	m.trackProgress()

	if m.gameState.GameOver && !m.recorded {
		outcome := OutcomeLost
		if m.gameState.Won {
			outcome = OutcomeWon
		}
		m.recordRun(outcome)
	}
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) summary() registry.RunSummary {
	if r, ok := m.game.(registry.Reporter); ok {
		return r.Summary()
	}
	return registry.RunSummary{Seed: m.config.Seed}
}

// trackProgress saves the level of games with selectable levels whenever
// it changes.
func (m *Model) trackProgress() {
	if _, ok := m.game.(registry.LevelSelector); !ok {
		return
	}
	level := m.summary().LevelID
	if level == "" || level == m.lastLevel {
		return
	}
	m.lastLevel = level
	if m.env.Store == nil {
		return
	}
	if err := m.env.Store.SetProgress(m.game.ID(), level); err != nil {
		m.env.logger().Warn("cannot save progress", "game", m.game.ID(), "err", err)
	}
}

// abandon records a run that is left before it is over. Runs without a
// single tap are not recorded.
func (m *Model) abandon() {
	if m.recorded || m.summary().Taps == 0 {
		return
	}
	m.recordRun(OutcomeQuit)
}

// recordRun stores the score and the run once per run.
func (m *Model) recordRun(outcome string) {
	m.recorded = true
	gameID := m.game.ID()
	if m.env.Metrics != nil {
		m.env.Metrics.RunFinished(gameID, outcome)
	}
	if m.env.Store == nil {
		return
	}

	sum := m.summary()
	logger := m.env.logger().With("game", gameID, "outcome", outcome)
	if m.gameState.Score > 0 {
		if _, err := m.env.Store.SaveScore(gameID, sum.LevelID, m.gameState.Score); err != nil {
			logger.Warn("cannot save score", "err", err)
		}
	}
	id, err := m.env.Store.SaveRun(storage.Run{
		GameID:   gameID,
		LevelID:  sum.LevelID,
		Seed:     sum.Seed,
		Score:    m.gameState.Score,
		Won:      m.gameState.Won,
		Taps:     sum.Taps,
		Blasts:   sum.Blasts,
		Shuffles: sum.Shuffles,
		Moves:    sum.Moves,
		Duration: time.Since(m.started),
	})
	if err != nil {
		logger.Warn("cannot save run", "err", err)
		return
	}
	logger.Info("run recorded", "run", id, "score", m.gameState.Score, "level", sum.LevelID)
}

// saveScreenshot writes the screen, and the engine's board dump when there
// is one, to a text file.
func (m *Model) saveScreenshot() (string, error) {
	dir := m.env.ScreenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".cubeblast", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	var b strings.Builder
	b.WriteString(m.screen.String())
	if h, ok := m.game.(engineHolder); ok && h.Engine() != nil {
		b.WriteString("\n")
		b.WriteString(blastcore.RenderASCII(h.Engine()))
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(b.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting reports whether the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to leave the game.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the terminal until the user quits.
func Run(game registry.Game, env Env, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, env, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
