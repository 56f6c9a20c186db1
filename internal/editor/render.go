package editor

import (
	"fmt"
	"math"

	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/pathfind"
)

// Screen geometry. Each grid cell takes CellWidth columns; the grid sits
// inside a one-character border with the HUD below it.
const (
	CellWidth = 2
	HUDRows   = 3
	originX   = 1
	originY   = 1
)

type glyph struct {
	text  string
	color core.Color
}

var (
	glyphOpen    = glyph{"· ", core.ColorDarkGray}
	glyphWall    = glyph{"██", core.ColorGray}
	glyphSpawn   = glyph{"S ", core.ColorBrightGreen}
	glyphTarget  = glyph{"T ", core.ColorBrightRed}
	glyphClosed  = glyph{"░░", core.ColorBlue}
	glyphOpenSet = glyph{"▒▒", core.ColorCyan}
	glyphCurrent = glyph{"▓▓", core.ColorMagenta}
	glyphPath    = glyph{"••", core.ColorBrightYellow}
	glyphCursor  = glyph{"[]", core.ColorBrightWhite}
)

// CellAtScreen maps screen coordinates to the grid cell drawn there. Only
// the left and top borders are rejected: the right border column maps to
// x = width and the bottom border to y = height. Use Editor.ScreenCell to
// also reject positions past the grid.
func CellAtScreen(x, y int) (pathfind.Position, bool) {
	if x < originX || y < originY {
		return pathfind.Position{}, false
	}
	return pathfind.P((x-originX)/CellWidth, y-originY), true
}

// ScreenCell maps screen coordinates to a cell of the edited grid. Borders,
// the HUD and anything right of the grid are rejected.
func (e *Editor) ScreenCell(x, y int) (pathfind.Position, bool) {
	p, ok := CellAtScreen(x, y)
	if !ok || !e.grid.InBounds(p) {
		return pathfind.Position{}, false
	}
	return p, true
}

// Render draws the grid, search state and HUD.
func (e *Editor) Render(dst *core.Screen) {
	w, h := e.grid.Width(), e.grid.Height()
	dst.DrawBox(core.NewRect(0, 0, w*CellWidth+2, h+2), core.ColorGray)

	onPath := make(map[pathfind.Position]bool)
	if e.hasResult {
		for _, p := range e.result.Path {
			onPath[p] = true
		}
	}

	var current pathfind.Position
	hasCurrent := false
	if e.search != nil && e.mode == Searching {
		current, hasCurrent = e.search.Current()
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := pathfind.P(x, y)
			c, _ := e.grid.CellAt(x, y)
			gl := e.glyphFor(c, onPath[p], hasCurrent && p == current)
			if p == e.cursor && e.mode != Searching {
				gl = glyphCursor
			}
			dst.DrawTextColored(originX+x*CellWidth, originY+y, gl.text, gl.color)
		}
	}

	e.renderHUD(dst, h+2)
}

func (e *Editor) glyphFor(c *pathfind.Cell, onPath, current bool) glyph {
	switch {
	case c.IsSpawn():
		return glyphSpawn
	case c.IsTarget():
		return glyphTarget
	case c.IsWall():
		return glyphWall
	case onPath:
		return glyphPath
	case current:
		return glyphCurrent
	}

	if e.overlay && c.Opened() {
		return glyph{hCostLabel(c.HCost()), core.ColorWhite}
	}

	switch {
	case c.Closed():
		return glyphClosed
	case c.InOpenSet():
		return glyphOpenSet
	}
	return glyphOpen
}

// hCostLabel renders a heuristic as two columns, capped at 99.
func hCostLabel(h float64) string {
	return fmt.Sprintf("%2d", core.Min(int(math.Round(h)), 99))
}

func (e *Editor) renderHUD(dst *core.Screen, y int) {
	header := fmt.Sprintf("%s | %s | cursor %v", e.mode, e.layoutLabel(), e.cursor)
	dst.DrawTextColored(0, y, header, core.ColorBrightCyan)

	stats := fmt.Sprintf("walls %d", e.grid.WallCount())
	if e.search != nil {
		stats = fmt.Sprintf("%s | expanded %d | open %d", stats, e.search.Expanded(), e.search.OpenLen())
	}
	if e.hasResult {
		if e.result.Found() {
			stats = fmt.Sprintf("%s | path %d steps | cost %.2f", stats, e.result.Steps(), e.result.Cost)
		} else {
			stats += " | no path"
		}
	}
	dst.DrawTextColored(0, y+1, stats, core.ColorWhite)

	line := e.status
	if line == "" {
		line = e.hint()
	}
	dst.DrawTextColored(0, y+2, line, core.ColorYellow)
}

func (e *Editor) layoutLabel() string {
	if e.layoutID == "" {
		return "untitled"
	}
	return e.layoutID
}

func (e *Editor) hint() string {
	switch e.mode {
	case EditingWalls:
		return "space: wall  x: erase  1/2: spawn/target  enter: next"
	case PlacingSpawn:
		return "space: place spawn  enter: next"
	case PlacingTarget:
		return "space: place target  enter: next"
	case Ready:
		return "r/enter: run search  space: edit walls"
	case Searching:
		return "searching..."
	case Done:
		return "c: clear search  r: run again  C: clear grid"
	}
	return ""
}
