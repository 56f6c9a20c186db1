package layout

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/registry"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

var builtins []Layout

func init() {
	loaded, err := loadEmbedded(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	builtins = loaded

	for _, lay := range builtins {
		registry.Register(Scenario{Layout: lay})
	}
	registry.Register(emptyScenario{})
	registry.Register(scatterScenario{density: DefaultScatterDensity})
}

func loadEmbedded(fsys fs.FS, dir string) ([]Layout, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("layout: reading embedded layouts: %w", err)
	}

	var layouts []Layout
	for _, e := range entries {
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("layout: reading embedded %s: %w", e.Name(), err)
		}
		lay, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("layout: embedded %s: %w", e.Name(), err)
		}
		layouts = append(layouts, lay)
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].ID < layouts[j].ID
	})
	return layouts, nil
}

// Builtins returns the layouts compiled into the binary, sorted by ID.
func Builtins() []Layout {
	return append([]Layout(nil), builtins...)
}

// Builtin returns the embedded layout with the given ID.
func Builtin(id string) (Layout, bool) {
	for _, lay := range builtins {
		if lay.ID == id {
			return lay, true
		}
	}
	return Layout{}, false
}

// Scenario adapts a fixed layout to the scenario registry.
type Scenario struct {
	Layout Layout
}

// ID returns the layout ID.
func (s Scenario) ID() string { return s.Layout.ID }

// Title returns the layout's display name.
func (s Scenario) Title() string { return s.Layout.Title() }

// Build decodes the layout. The requested size is ignored.
func (s Scenario) Build(core.RuntimeConfig, core.Size) (*pathfind.Grid, error) {
	return s.Layout.Grid()
}
