// Package registry maps game IDs to session factories.
// Sessions register themselves in init() so the CLI and the terminal
// front-end can start any of them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/arcade3d/internal/core"
)

// Game is a single simulation session. Implementations own all of their
// mutable state and never touch terminal or network APIs.
type Game interface {
	// ID is the stable identifier used by the CLI and the score store.
	ID() string

	// Title is the human-readable name.
	Title() string

	// Reset rebuilds the level and returns the session to the menu phase.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by dt seconds using one input sample.
	Step(in core.InputSnapshot, dt float64) core.StepResult

	// Render draws a top-down view into the pre-cleared screen.
	Render(dst *core.Screen)

	// State returns the current lifecycle state.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game session.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory under id.
// Panics if the id is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
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

// Create instantiates a new session by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
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
