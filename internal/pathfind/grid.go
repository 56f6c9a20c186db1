package pathfind

import "fmt"

// Grid is a fixed-size rectangular container of cells.
// Cells are stored in row-major order: index = y*width + x.
// The grid is the sole owner of its cells; parent links are indices.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates an all-open grid with the given dimensions.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := &g.cells[g.index(x, y)]
			c.pos = P(x, y)
			c.resetSearch()
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// index converts a coordinate to a flat array index.
func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// InBounds returns true if the position is within the grid boundaries.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Grid) outOfBounds(x, y int) error {
	return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
}

// CellAt returns the cell at (x, y).
func (g *Grid) CellAt(x, y int) (*Cell, error) {
	if !g.InBounds(P(x, y)) {
		return nil, g.outOfBounds(x, y)
	}
	return &g.cells[g.index(x, y)], nil
}

// cell returns the cell at an in-bounds position without checking.
func (g *Grid) cell(p Position) *Cell {
	return &g.cells[g.index(p.X, p.Y)]
}

// NeighborsOf returns the traversable cells adjacent to p, in compass order
// starting north and turning clockwise. Walls and off-grid positions are
// omitted, so the result holds at most 8 cells.
func (g *Grid) NeighborsOf(p Position) []*Cell {
	out := make([]*Cell, 0, len(compass))
	for _, d := range compass {
		n := p.Add(d[0], d[1])
		if !g.InBounds(n) {
			continue
		}
		c := g.cell(n)
		if c.wall {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ParentOf returns the predecessor recorded for the cell at p by the last search.
func (g *Grid) ParentOf(p Position) (Position, bool) {
	if !g.InBounds(p) {
		return Position{}, false
	}
	c := g.cell(p)
	if c.parent == noParent {
		return Position{}, false
	}
	return g.cells[c.parent].pos, true
}

// ResetSearchState clears g/h costs, closed flags and parent links on every
// cell. Layout flags are preserved. Calling it repeatedly is harmless.
func (g *Grid) ResetSearchState() {
	for i := range g.cells {
		g.cells[i].resetSearch()
	}
}

// SetWall marks or clears a wall. Walls cannot be placed on spawn or target.
func (g *Grid) SetWall(x, y int, wall bool) error {
	c, err := g.CellAt(x, y)
	if err != nil {
		return err
	}
	if wall && (c.spawn || c.target) {
		return fmt.Errorf("%w: (%d,%d) holds an endpoint", ErrBlockedCell, x, y)
	}
	c.wall = wall
	return nil
}

// SetSpawn moves the spawn flag to (x, y).
func (g *Grid) SetSpawn(x, y int) error {
	c, err := g.CellAt(x, y)
	if err != nil {
		return err
	}
	if c.wall {
		return fmt.Errorf("%w: spawn on wall at (%d,%d)", ErrBlockedCell, x, y)
	}
	if c.target {
		return fmt.Errorf("%w: spawn on target at (%d,%d)", ErrBlockedCell, x, y)
	}
	g.ClearSpawn()
	c.spawn = true
	return nil
}

// SetTarget moves the target flag to (x, y).
func (g *Grid) SetTarget(x, y int) error {
	c, err := g.CellAt(x, y)
	if err != nil {
		return err
	}
	if c.wall {
		return fmt.Errorf("%w: target on wall at (%d,%d)", ErrBlockedCell, x, y)
	}
	if c.spawn {
		return fmt.Errorf("%w: target on spawn at (%d,%d)", ErrBlockedCell, x, y)
	}
	g.ClearTarget()
	c.target = true
	return nil
}

// ClearSpawn removes the spawn flag, if any.
func (g *Grid) ClearSpawn() {
	for i := range g.cells {
		g.cells[i].spawn = false
	}
}

// ClearTarget removes the target flag, if any.
func (g *Grid) ClearTarget() {
	for i := range g.cells {
		g.cells[i].target = false
	}
}

// Spawn returns the flagged spawn position.
func (g *Grid) Spawn() (Position, bool) {
	for i := range g.cells {
		if g.cells[i].spawn {
			return g.cells[i].pos, true
		}
	}
	return Position{}, false
}

// Target returns the flagged target position.
func (g *Grid) Target() (Position, bool) {
	for i := range g.cells {
		if g.cells[i].target {
			return g.cells[i].pos, true
		}
	}
	return Position{}, false
}

// Clear removes all walls and endpoints and resets search state.
func (g *Grid) Clear() {
	for i := range g.cells {
		c := &g.cells[i]
		c.wall = false
		c.spawn = false
		c.target = false
		c.resetSearch()
	}
}

// WallCount returns the number of wall cells.
func (g *Grid) WallCount() int {
	count := 0
	for i := range g.cells {
		if g.cells[i].wall {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the grid, search state included.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  cells,
	}
}
