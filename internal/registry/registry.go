// Package registry provides a global registry for game factories.
// Game modes register themselves in init() functions, so the front ends
// can list and start them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the interface every registered game implements.
// Games contain pure logic with no Bubble Tea dependency.
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier (e.g., "2048", "2048_endless").
	// Used for CLI commands and result storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new game with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Resize updates the screen size without restarting.
	Resize(w, h int)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState

	// Controls returns a one-line key help.
	Controls() string
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
