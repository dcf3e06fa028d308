// Package registry holds the game factories. Game packages register
// themselves from init(), so the CLI and TUI find them by id without
// importing them directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/cubeblast/internal/core"
)

// Game is a fixed-tick game driven by the platform. Implementations hold
// pure logic; the platform maps input, keeps time and draws the Screen.
type Game interface {
	// ID is the stable identifier used by the CLI and score storage.
	ID() string
	Title() string

	// Reset starts a fresh run. It is called before the first Step and
	// again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the platform clears beforehand.
	Render(dst *core.Screen)

	State() core.GameState
}

// RunSummary describes a finished or abandoned run for run history.
type RunSummary struct {
	LevelID  string
	Seed     int64
	Ticks    uint64
	Taps     int
	Blasts   int
	Shuffles int
	Moves    int
}

// Reporter is implemented by games that can summarize the current run.
type Reporter interface {
	Summary() RunSummary
}

// Resizer is implemented by games that can follow a terminal resize
// without restarting.
type Resizer interface {
	Resize(width, height int)
}

// LevelSelector is implemented by games whose runs can start at a chosen
// level.
type LevelSelector interface {
	LevelIDs() []string
	SelectLevel(id string)
}

// GameInfo is the listing entry of a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a factory. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered game sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(factories))
	for id := range factories {
		out = append(out, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}
