// cubeblast is a match-3 "cube blast" puzzle for the terminal.
//
// Usage:
//
//	cubeblast                   - Start the game picker menu
//	cubeblast play [level-id]   - Play the campaign, or endless with --endless
//	cubeblast levels            - List the campaign levels
//	cubeblast scores [level-id] - Show high scores and recent runs
//	cubeblast serve             - Start the SSH server for remote play
//	cubeblast sim <level-id>    - Play a level headless and print the result
//
// Global flags:
//
//	--fps <rate>         - Tick rate (default: 30)
//	--seed <value>       - RNG seed for reproducible boards
//	--db <path>          - Database path (default: ~/.cubeblast/cubeblast.db)
//	--config <path>      - Custom blast.yaml
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubeblast/internal/config"
	"github.com/vovakirdan/cubeblast/internal/games/blast"
	"github.com/vovakirdan/cubeblast/internal/metrics"
	"github.com/vovakirdan/cubeblast/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLogLevel   string
	flagLogFile    string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cubeblast",
	Short: "Cube Blast - tap groups of cubes in your terminal",
	Long: `Cube Blast is a match-3 puzzle for the terminal. Tap a group of two or
more touching cubes of one color to blast it; the cubes above fall and new
ones drop in. Bigger groups score tier bonuses, layered blocks next to a
blast lose a layer, and a board without moves is reshuffled.

Examples:
  cubeblast
  cubeblast play
  cubeblast play 03-crates --difficulty easy
  cubeblast play --endless
  cubeblast serve --ssh :2222 --metrics :9090
  cubeblast sim 01-warmup --taps 20 --seed 42 --ascii`,
	Run: runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to a custom blast.yaml")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs of terminal sessions to this file")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the CLI logger on w at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "cubeblast",
	})
	logger.SetLevel(level)
	return logger, nil
}

// terminalLogger keeps logs off the screen while the TUI owns it: they go
// to --log-file when set and are dropped otherwise. The returned func
// closes the file.
func terminalLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		logger, err := newLogger(io.Discard)
		return logger, func() {}, err
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// configureGames checks the config and the difficulty preset and hands
// them to the blast package before any game is created. collector may be
// nil.
func configureGames(logger *log.Logger, collector *metrics.Collector) error {
	bc, src, err := config.LoadBlast(flagConfig)
	if err != nil {
		return err
	}
	preset := config.DifficultyPreset(flagDifficulty)
	if err := config.ApplyPreset(&bc, preset); err != nil {
		return err
	}
	logger.Debug("config checked", "source", src, "preset", preset)

	opts := blast.Options{
		ConfigPath: flagConfig,
		Difficulty: preset,
		LevelDirs:  blast.DefaultLevelDirs(),
		AssetDirs:  blast.DefaultAssetDirs(),
		Logger:     logger,
	}
	if collector != nil {
		opts.Observer = collector.ForGame
	}
	blast.Configure(opts)
	return nil
}

// openStore opens the database, or warns and returns nil; the games run
// without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		if logger != nil {
			logger.Warn("could not open scores database", "err", err)
		}
		return nil
	}
	return store
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error "+format+"\n", args...)
	os.Exit(1)
}
