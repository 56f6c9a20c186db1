// Package pathfind implements A* search over a bounded grid with 8-directional
// movement. It has no terminal or storage dependencies so the editor, the
// headless solver and the HTTP API can all drive the same engine.
package pathfind

import "fmt"

// Position is a cell coordinate on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Position struct {
	X int
	Y int
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns a new Position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Adjacent reports whether other is one of the 8 compass neighbours of p.
func (p Position) Adjacent(other Position) bool {
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

// Compass offsets in enumeration order: N, NE, E, SE, S, SW, W, NW.
// Neighbour order feeds open-set insertion order, so it must stay fixed.
var compass = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
