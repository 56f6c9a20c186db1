package pathfind

import (
	"context"
	"fmt"
)

// State is the search lifecycle: Ready → Running → one of the terminal states.
type State int

const (
	Ready State = iota
	Running
	PathFound
	NoPathExists
	InvalidEndpoints
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case PathFound:
		return "PathFound"
	case NoPathExists:
		return "NoPathExists"
	case InvalidEndpoints:
		return "InvalidEndpoints"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further steps will change the outcome.
func (s State) Terminal() bool {
	return s == PathFound || s == NoPathExists || s == InvalidEndpoints
}

// Search is one A* run over a grid. It can be driven to completion with Run
// or advanced one expansion at a time with Step, which lets an interactive
// host animate the search between frames.
//
// The search mutates the grid's per-cell bookkeeping as it goes. The grid
// must not be edited while a search is in flight.
type Search struct {
	grid     *Grid
	spawn    Position
	target   Position
	open     openSet
	state    State
	expanded int
	current  *Cell
	result   Result
}

// NewSearch validates the endpoints and prepares a search.
// On invalid endpoints the returned search is in the InvalidEndpoints state
// and the error wraps ErrInvalidEndpoints; no grid state is touched.
func NewSearch(g *Grid, spawn, target Position) (*Search, error) {
	s := &Search{grid: g, spawn: spawn, target: target, state: Ready}

	if err := s.validate(); err != nil {
		s.state = InvalidEndpoints
		return s, err
	}

	g.ResetSearchState()
	start := g.cell(spawn)
	start.gCost = 0
	start.hCost = Heuristic(spawn, target)
	s.open.insert(start)
	s.state = Running
	return s, nil
}

func (s *Search) validate() error {
	if s.grid == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidEndpoints)
	}
	if !s.grid.InBounds(s.spawn) {
		return fmt.Errorf("%w: spawn %v out of bounds", ErrInvalidEndpoints, s.spawn)
	}
	if !s.grid.InBounds(s.target) {
		return fmt.Errorf("%w: target %v out of bounds", ErrInvalidEndpoints, s.target)
	}
	if s.spawn == s.target {
		return fmt.Errorf("%w: spawn and target both at %v", ErrInvalidEndpoints, s.spawn)
	}
	if s.grid.cell(s.spawn).wall {
		return fmt.Errorf("%w: spawn %v is a wall", ErrInvalidEndpoints, s.spawn)
	}
	if s.grid.cell(s.target).wall {
		return fmt.Errorf("%w: target %v is a wall", ErrInvalidEndpoints, s.target)
	}
	return nil
}

// State returns the current lifecycle state.
func (s *Search) State() State { return s.state }

// Expanded returns the number of cells closed so far.
func (s *Search) Expanded() int { return s.expanded }

// OpenLen returns the number of cells waiting in the open set.
func (s *Search) OpenLen() int { return s.open.Len() }

// Current returns the cell expanded by the most recent step.
func (s *Search) Current() (Position, bool) {
	if s.current == nil {
		return Position{}, false
	}
	return s.current.pos, true
}

// Result returns the outcome. It is only meaningful once State is terminal.
func (s *Search) Result() Result { return s.result }

// Step performs one expansion and returns the resulting state.
// Calling Step on a finished search is a no-op.
func (s *Search) Step() State {
	if s.state != Running {
		return s.state
	}

	if s.open.Len() == 0 {
		s.finish(NoPathExists)
		return s.state
	}

	cur := s.open.popBest()
	s.current = cur
	if cur.pos == s.target {
		s.finish(PathFound)
		return s.state
	}

	cur.closed = true
	s.expanded++

	curIdx := s.grid.index(cur.pos.X, cur.pos.Y)
	for _, n := range s.grid.NeighborsOf(cur.pos) {
		if n.closed {
			continue
		}
		tentative := cur.gCost + MoveCost(cur.pos, n.pos)
		if !n.opened {
			n.gCost = tentative
			n.hCost = Heuristic(n.pos, s.target)
			n.parent = curIdx
			s.open.insert(n)
		} else if costLess(tentative, n.gCost) {
			n.gCost = tentative
			n.parent = curIdx
			s.open.improved(n)
		}
	}

	if s.open.Len() == 0 {
		s.finish(NoPathExists)
	}
	return s.state
}

// Run steps the search to completion. Cancellation is checked between
// expansions; a cancelled search keeps its state and can be resumed.
func (s *Search) Run(ctx context.Context) (Result, error) {
	if s.state == InvalidEndpoints {
		return Result{Outcome: NotFound}, fmt.Errorf("%w: search was not started", ErrInvalidEndpoints)
	}
	for s.state == Running {
		if err := ctx.Err(); err != nil {
			return Result{Outcome: NotFound, Expanded: s.expanded}, err
		}
		s.Step()
	}
	return s.result, nil
}

func (s *Search) finish(state State) {
	s.state = state
	s.result = Result{Outcome: NotFound, Expanded: s.expanded}
	if state == PathFound {
		s.result.Outcome = Found
		s.result.Path = s.reconstruct()
		s.result.Cost = s.grid.cell(s.target).gCost
	}
}

// reconstruct follows parent links from the target back to the spawn.
func (s *Search) reconstruct() []Position {
	var path []Position
	c := s.grid.cell(s.target)
	for {
		path = append(path, c.pos)
		if c.parent == noParent {
			break
		}
		c = &s.grid.cells[c.parent]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// FindPath runs a complete search from spawn to target.
// A missing path is reported through Result.Outcome, not as an error.
func FindPath(g *Grid, spawn, target Position) (Result, error) {
	s, err := NewSearch(g, spawn, target)
	if err != nil {
		return Result{Outcome: NotFound}, err
	}
	return s.Run(context.Background())
}

// FindGridPath runs a complete search between the grid's flagged endpoints.
func FindGridPath(g *Grid) (Result, error) {
	if g == nil {
		return Result{Outcome: NotFound}, fmt.Errorf("%w: nil grid", ErrInvalidEndpoints)
	}
	spawn, ok := g.Spawn()
	if !ok {
		return Result{Outcome: NotFound}, fmt.Errorf("%w: no spawn set", ErrInvalidEndpoints)
	}
	target, ok := g.Target()
	if !ok {
		return Result{Outcome: NotFound}, fmt.Errorf("%w: no target set", ErrInvalidEndpoints)
	}
	return FindPath(g, spawn, target)
}
