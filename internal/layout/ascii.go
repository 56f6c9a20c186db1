// Package layout reads and writes grid layouts.
//
// A layout is a list of equal-length text rows, one glyph per cell:
//
//	.  open
//	#  wall
//	S  spawn
//	T  target
//
// Layouts live in YAML files on disk, in the database, and embedded in the
// binary as built-in scenarios.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/gridpath/internal/pathfind"
)

// Glyphs used in layout rows.
const (
	GlyphOpen   = '.'
	GlyphWall   = '#'
	GlyphSpawn  = 'S'
	GlyphTarget = 'T'

	// GlyphPath marks path cells in solved output. Decode rejects it.
	GlyphPath = '*'
)

// ErrMalformed is returned for rows that cannot describe a grid.
var ErrMalformed = errors.New("layout: malformed rows")

// Decode builds a grid from layout rows. Spawn and target are optional but
// may appear at most once each.
func Decode(rows []string) (*pathfind.Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformed)
	}

	width := len([]rune(rows[0]))
	g, err := pathfind.NewGrid(width, len(rows))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var spawn, target *pathfind.Position
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrMalformed, y, len(runes), width)
		}
		for x, r := range runes {
			p := pathfind.P(x, y)
			switch r {
			case GlyphOpen:
			case GlyphWall:
				if err := g.SetWall(x, y, true); err != nil {
					return nil, err
				}
			case GlyphSpawn:
				if spawn != nil {
					return nil, fmt.Errorf("%w: second spawn at %v (first at %v)", ErrMalformed, p, *spawn)
				}
				spawn = &p
			case GlyphTarget:
				if target != nil {
					return nil, fmt.Errorf("%w: second target at %v (first at %v)", ErrMalformed, p, *target)
				}
				target = &p
			default:
				return nil, fmt.Errorf("%w: unknown glyph %q at %v", ErrMalformed, r, p)
			}
		}
	}

	if spawn != nil {
		if err := g.SetSpawn(spawn.X, spawn.Y); err != nil {
			return nil, err
		}
	}
	if target != nil {
		if err := g.SetTarget(target.X, target.Y); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Encode writes a grid as layout rows. Search state is not encoded.
func Encode(g *pathfind.Grid) []string {
	rows := make([]string, g.Height())
	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		sb.Reset()
		for x := 0; x < g.Width(); x++ {
			c, _ := g.CellAt(x, y)
			switch {
			case c.IsWall():
				sb.WriteRune(GlyphWall)
			case c.IsSpawn():
				sb.WriteRune(GlyphSpawn)
			case c.IsTarget():
				sb.WriteRune(GlyphTarget)
			default:
				sb.WriteRune(GlyphOpen)
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// EncodePath writes a grid as layout rows with the cells of path between
// its endpoints drawn as GlyphPath.
func EncodePath(g *pathfind.Grid, path []pathfind.Position) []string {
	rows := Encode(g)
	if len(path) < 3 {
		return rows
	}

	cells := make([][]rune, len(rows))
	for y, row := range rows {
		cells[y] = []rune(row)
	}
	for _, p := range path[1 : len(path)-1] {
		if g.InBounds(p) {
			cells[p.Y][p.X] = GlyphPath
		}
	}
	for y := range cells {
		rows[y] = string(cells[y])
	}
	return rows
}
