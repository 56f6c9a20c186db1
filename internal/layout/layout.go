package layout

import (
	"fmt"

	"github.com/vovakirdan/gridpath/internal/pathfind"
)

// Layout is a named grid description.
type Layout struct {
	ID          string
	Name        string
	Description string
	Rows        []string
	Metadata    map[string]string
	FilePath    string // Empty for embedded and stored layouts
}

// FromGrid captures the current layout of g.
func FromGrid(id, name string, g *pathfind.Grid) Layout {
	return Layout{
		ID:   id,
		Name: name,
		Rows: Encode(g),
	}
}

// Grid decodes the layout into a fresh grid.
func (l Layout) Grid() (*pathfind.Grid, error) {
	g, err := Decode(l.Rows)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", l.ID, err)
	}
	return g, nil
}

// Size returns the grid dimensions described by the rows.
func (l Layout) Size() (w, h int) {
	if len(l.Rows) == 0 {
		return 0, 0
	}
	return len([]rune(l.Rows[0])), len(l.Rows)
}

// Title returns Name, falling back to ID.
func (l Layout) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}
