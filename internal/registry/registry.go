// Package registry holds the game modes the platform can start. Modes
// register from init() in their own package, so the CLI, the SSH server and
// the web API discover them without importing each other.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/round"
)

// Game is a tick-driven simulation the platform can run. Implementations do
// no I/O of their own: the platform maps keys to actions, paces Step and
// draws the screen buffer.
type Game interface {
	// ID is the stable mode identifier used on the command line and as the
	// score key.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh session. It is called before the first Step and
	// again on restart after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into dst, which is cleared beforehand.
	Render(dst *core.Screen)

	// State reports score, pause and game over.
	State() core.GameState
}

// LevelSelector is implemented by modes that play an ordered level list and
// can start from any entry of it.
type LevelSelector interface {
	StartAt(levelID string)
}

// AudioAttacher is implemented by modes that emit sound cues and music
// changes.
type AudioAttacher interface {
	SetAudio(a round.Audio)
}

// Info describes a registered mode.
type Info struct {
	ID      string
	Title   string
	Summary string // one line for listings
	// Campaign modes play the level list and offer the level picker.
	Campaign bool
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	info    Info
	factory Factory
}

var (
	mu    sync.RWMutex
	modes = make(map[string]entry)
)

// Register adds a mode. An empty or duplicate ID panics: both are mistakes
// in an init() and should fail at startup.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: mode registered without an ID")
	}
	if _, exists := modes[info.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", info.ID))
	}
	modes[info.ID] = entry{info: info, factory: f}
}

// List returns every registered mode sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(modes))
	for _, e := range modes {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the description of mode id.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := modes[id]
	return e.info, ok
}

// Create instantiates mode id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := modes[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return e.factory(), nil
}
