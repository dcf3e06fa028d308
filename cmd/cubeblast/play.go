package main

import (
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cubeblast/internal/core"
	"github.com/vovakirdan/cubeblast/internal/games/blast"
	"github.com/vovakirdan/cubeblast/internal/platform/tui"
	"github.com/vovakirdan/cubeblast/internal/registry"
)

var flagEndless bool

var playCmd = &cobra.Command{
	Use:   "play [level-id]",
	Short: "Play the campaign or an endless run",
	Long: `Start playing. Without a level id the campaign resumes at the level you
last reached, or starts at the first one.

Controls:
  Arrows/WASD   - Move the cursor
  Space/Enter   - Blast the group under the cursor
  Mouse click   - Blast the clicked group
  P             - Pause
  R             - Restart (after game over)
  Ctrl+S        - Save a screenshot
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Fewer colors, extra moves
  normal - Level defaults
  hard   - More colors in endless, no extra moves
  fixed  - Endless stays at its initial difficulty

Examples:
  cubeblast play
  cubeblast play 02-boxes
  cubeblast play --difficulty easy
  cubeblast play --endless --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play an endless run instead of the campaign")
}

// terminalConfig sizes the screen to the terminal, 80x24 when unknown.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) {
	logger, closeLog, err := terminalLogger()
	if err != nil {
		fail("opening log: %v", err)
	}
	defer closeLog()
	if err := configureGames(logger, nil); err != nil {
		fail("loading config: %v", err)
	}

	gameID := blast.IDCampaign
	if flagEndless {
		gameID = blast.IDEndless
	}
	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if sel, ok := game.(registry.LevelSelector); ok && !flagEndless {
		ids := sel.LevelIDs()
		level := ""
		switch {
		case len(args) == 1:
			level = args[0]
			if !slices.Contains(ids, level) {
				fail("unknown level %q, run 'cubeblast levels' to list them", level)
			}
		case store != nil:
			if saved, err := store.Progress(gameID); err == nil && slices.Contains(ids, saved) {
				level = saved
			}
		}
		if level != "" {
			sel.SelectLevel(level)
		}
	}

	env := tui.Env{Store: store, Logger: logger}
	if err := tui.Run(game, env, terminalConfig()); err != nil {
		fail("running game: %v", err)
	}
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game picker menu",
	Run:   runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := terminalLogger()
	if err != nil {
		fail("opening log: %v", err)
	}
	defer closeLog()
	if err := configureGames(logger, nil); err != nil {
		fail("loading config: %v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(tui.Env{Store: store, Logger: logger}, terminalConfig()); err != nil {
		fail("running menu: %v", err)
	}
}
