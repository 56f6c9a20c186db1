package pathfind

// noParent marks a cell without a predecessor.
const noParent = -1

// Cell is one addressable grid position. Flags describe the editable layout;
// the remaining fields are search bookkeeping and are only meaningful during
// or after a search run.
type Cell struct {
	pos      Position
	wall     bool
	spawn    bool
	target   bool
	gCost    float64
	hCost    float64
	closed   bool
	opened   bool
	parent   int // Index into Grid.cells, noParent when unset
	heapIdx  int // Position in the open-set heap, -1 when not queued
	inserted uint64
}

// Position returns the cell's coordinate.
func (c *Cell) Position() Position { return c.pos }

// IsWall reports whether the cell blocks movement.
func (c *Cell) IsWall() bool { return c.wall }

// IsSpawn reports whether the cell is the search start.
func (c *Cell) IsSpawn() bool { return c.spawn }

// IsTarget reports whether the cell is the search goal.
func (c *Cell) IsTarget() bool { return c.target }

// GCost returns the best known cost from spawn to this cell.
func (c *Cell) GCost() float64 { return c.gCost }

// HCost returns the heuristic estimate from this cell to the target.
func (c *Cell) HCost() float64 { return c.hCost }

// FCost returns GCost + HCost.
func (c *Cell) FCost() float64 { return c.gCost + c.hCost }

// Closed reports whether the cell's cost has been finalized.
func (c *Cell) Closed() bool { return c.closed }

// Opened reports whether the search has discovered the cell.
// Discovered cells that are not closed form the open set.
func (c *Cell) Opened() bool { return c.opened }

// HasParent reports whether the search recorded a predecessor for the cell.
// Resolve it with Grid.ParentOf.
func (c *Cell) HasParent() bool { return c.parent != noParent }

// InOpenSet reports whether the cell is waiting in the open set.
func (c *Cell) InOpenSet() bool { return c.opened && !c.closed && c.heapIdx >= 0 }

// resetSearch clears the search bookkeeping, leaving layout flags untouched.
func (c *Cell) resetSearch() {
	c.gCost = 0
	c.hCost = 0
	c.closed = false
	c.opened = false
	c.parent = noParent
	c.heapIdx = -1
	c.inserted = 0
}
