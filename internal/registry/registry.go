// Package registry provides a global registry of grid scenarios.
// Scenarios register themselves in init() functions, allowing the CLI, the
// menu and the HTTP API to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/pathfind"
)

// Scenario builds a grid ready for editing or solving.
// Scenarios contain no UI code; the platform decides how to present them.
type Scenario interface {
	// ID returns a unique identifier (e.g., "detour", "maze").
	// Used for CLI arguments and run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Build creates a fresh grid. Fixed layouts ignore size; generated
	// layouts use it together with cfg.Seed.
	Build(cfg core.RuntimeConfig, size core.Size) (*pathfind.Grid, error)
}

// Info contains metadata about a registered scenario.
type Info struct {
	ID    string
	Title string
}

var (
	scenarios = make(map[string]Scenario)
	mu        sync.RWMutex
)

// Register adds a scenario to the registry.
// Panics if a scenario with the same ID is already registered.
func Register(s Scenario) {
	mu.Lock()
	defer mu.Unlock()

	id := s.ID()
	if _, exists := scenarios[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}
	scenarios[id] = s
}

// List returns information about all registered scenarios, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(scenarios))
	for id, s := range scenarios {
		result = append(result, Info{
			ID:    id,
			Title: s.Title(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the scenario registered under id.
func Get(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := scenarios[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scenario %q", id)
	}
	return s, nil
}

// Create builds a new grid from the scenario with the given ID.
func Create(id string, cfg core.RuntimeConfig, size core.Size) (*pathfind.Grid, error) {
	s, err := Get(id)
	if err != nil {
		return nil, err
	}

	g, err := s.Build(cfg, size)
	if err != nil {
		return nil, fmt.Errorf("registry: building %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := scenarios[id]
	return ok
}
