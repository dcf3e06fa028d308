package blast

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cubeblast/internal/config"
	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
)

// Options are read by every Reset. The CLI sets them once before the
// platform creates games; SSH sessions share them.
type Options struct {
	ConfigPath string
	Difficulty config.DifficultyPreset

	// StartLevel is the campaign level id to begin with. Empty starts at
	// the first level.
	StartLevel string

	LevelDirs []string // searched before the built-in levels
	AssetDirs []string // searched before the built-in asset packs

	Logger *log.Logger

	// Observer, when set, is asked for an engine observer for each board.
	Observer func(gameID string) core.Observer
}

var (
	optMu   sync.RWMutex
	options = Options{
		LevelDirs: DefaultLevelDirs(),
		AssetDirs: DefaultAssetDirs(),
	}
)

// Configure replaces all options at once.
func Configure(o Options) {
	optMu.Lock()
	defer optMu.Unlock()
	options = o
}

func update(fn func(*Options)) {
	optMu.Lock()
	defer optMu.Unlock()
	fn(&options)
}

// SetConfigPath sets a custom config file for LoadBlast.
func SetConfigPath(path string) {
	update(func(o *Options) { o.ConfigPath = path })
}

// SetDifficulty selects a difficulty preset.
func SetDifficulty(d config.DifficultyPreset) {
	update(func(o *Options) { o.Difficulty = d })
}

// SetStartLevel sets the campaign level to start from.
func SetStartLevel(id string) {
	update(func(o *Options) { o.StartLevel = id })
}

// GetStartLevel returns the configured start level.
func GetStartLevel() string {
	return currentOptions().StartLevel
}

// SetLevelDirs sets the user level directories.
func SetLevelDirs(dirs ...string) {
	update(func(o *Options) { o.LevelDirs = dirs })
}

// SetAssetDirs sets the user asset pack directories.
func SetAssetDirs(dirs ...string) {
	update(func(o *Options) { o.AssetDirs = dirs })
}

// SetLogger sets the logger handed to engines.
func SetLogger(l *log.Logger) {
	update(func(o *Options) { o.Logger = l })
}

// SetObserver sets the engine observer factory.
func SetObserver(f func(gameID string) core.Observer) {
	update(func(o *Options) { o.Observer = f })
}

func currentOptions() Options {
	optMu.RLock()
	defer optMu.RUnlock()
	o := options
	o.LevelDirs = append([]string(nil), options.LevelDirs...)
	o.AssetDirs = append([]string(nil), options.AssetDirs...)
	return o
}

// DefaultLevelDirs returns ~/.cubeblast/levels and ./levels.
func DefaultLevelDirs() []string {
	return userDirs("levels")
}

// DefaultAssetDirs returns ~/.cubeblast/assets and ./assets.
func DefaultAssetDirs() []string {
	return userDirs("assets")
}

func userDirs(name string) []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".cubeblast", name))
	}
	return append(dirs, name)
}
