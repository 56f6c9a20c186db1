package editor

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/layout"
	"github.com/vovakirdan/gridpath/internal/pathfind"
)

// ErrFrozen is returned for layout edits outside the editing phases.
var ErrFrozen = errors.New("editor: layout is frozen")

// DraftSuffix marks the layout ID of runs on a grid that differs from the
// layout it was loaded from.
const DraftSuffix = "-draft"

// Finished describes a completed search, passed to OnFinish.
type Finished struct {
	LayoutID string // RecordID at the time of the search
	SourceID string // Layout the grid was loaded from
	Rows     []string
	Width    int
	Height   int
	Spawn    pathfind.Position
	Target   pathfind.Position
	Result   pathfind.Result
}

// Options configures a new editor.
type Options struct {
	LayoutID     string
	StepsPerTick int // Expansions per tick while searching; 0 solves in one tick
}

// Editor owns one grid and the search running over it.
type Editor struct {
	grid     *pathfind.Grid
	layoutID string
	baseline []string // Rows of the layout as loaded or last saved
	mode     Mode
	cursor   pathfind.Position

	search       *pathfind.Search
	result       pathfind.Result
	hasResult    bool
	stepsPerTick int

	overlay bool
	status  string

	// OnFinish is called once per completed search.
	OnFinish func(Finished)
}

// New creates an editor over g. A grid that already has both endpoints
// starts in Ready; anything else starts in EditingWalls.
func New(g *pathfind.Grid, opts Options) *Editor {
	e := &Editor{
		grid:         g,
		layoutID:     opts.LayoutID,
		baseline:     layout.Encode(g),
		stepsPerTick: core.Max(opts.StepsPerTick, 0),
	}
	e.mode = e.editPhaseDone()
	if spawn, ok := g.Spawn(); ok {
		e.cursor = spawn
	}
	return e
}

// editPhaseDone returns the mode to use after leaving an edit phase.
func (e *Editor) editPhaseDone() Mode {
	if e.bothEndpoints() {
		return Ready
	}
	return EditingWalls
}

func (e *Editor) bothEndpoints() bool {
	_, s := e.grid.Spawn()
	_, t := e.grid.Target()
	return s && t
}

// Grid returns the edited grid.
func (e *Editor) Grid() *pathfind.Grid { return e.grid }

// Mode returns the current phase.
func (e *Editor) Mode() Mode { return e.mode }

// Cursor returns the cursor position.
func (e *Editor) Cursor() pathfind.Position { return e.cursor }

// Status returns the last status message.
func (e *Editor) Status() string { return e.status }

// LayoutID returns the ID of the layout being edited.
func (e *Editor) LayoutID() string { return e.layoutID }

// Modified reports whether the grid differs from the layout as loaded or
// last saved.
func (e *Editor) Modified() bool {
	return !slices.Equal(layout.Encode(e.grid), e.baseline)
}

// RecordID returns the layout ID runs are recorded under. Runs on a
// modified grid never count toward the layout it was loaded from.
func (e *Editor) RecordID() string {
	if !e.Modified() {
		return e.layoutID
	}
	if e.layoutID == "" {
		return "untitled" + DraftSuffix
	}
	return e.layoutID + DraftSuffix
}

// MarkSaved records that the grid was saved as id. Later runs are recorded
// under id until the grid changes again.
func (e *Editor) MarkSaved(id string) {
	e.layoutID = id
	e.baseline = layout.Encode(e.grid)
}

// Overlay reports whether the cost overlay is shown.
func (e *Editor) Overlay() bool { return e.overlay }

// Search returns the in-flight or finished search, or nil.
func (e *Editor) Search() *pathfind.Search { return e.search }

// Result returns the last finished search result.
func (e *Editor) Result() (pathfind.Result, bool) { return e.result, e.hasResult }

// StepsPerTick returns the animation speed.
func (e *Editor) StepsPerTick() int { return e.stepsPerTick }

// SetStepsPerTick changes the animation speed. Negative values mean 0.
func (e *Editor) SetStepsPerTick(n int) { e.stepsPerTick = core.Max(n, 0) }

// Layout captures the current grid as a layout.
func (e *Editor) Layout(name string) layout.Layout {
	return layout.FromGrid(e.layoutID, name, e.grid)
}

// MoveCursor moves the cursor, clamped to the grid.
func (e *Editor) MoveCursor(dx, dy int) {
	e.SetCursor(e.cursor.Add(dx, dy))
}

// SetCursor places the cursor, clamped to the grid.
func (e *Editor) SetCursor(p pathfind.Position) {
	e.cursor = pathfind.P(
		core.Clamp(p.X, 0, e.grid.Width()-1),
		core.Clamp(p.Y, 0, e.grid.Height()-1),
	)
}

// edit applies fn to the layout. A Ready editor drops back to wall editing
// for the edit; Searching and Done stay frozen until the search is cleared.
// A failed edit leaves the mode unchanged.
func (e *Editor) edit(fn func() error) error {
	prev := e.mode
	if e.mode == Ready {
		e.mode = EditingWalls
	}
	if !e.mode.Editable() {
		return e.fail(fmt.Errorf("%w: clear the search first", ErrFrozen))
	}
	if err := fn(); err != nil {
		e.mode = prev
		return e.fail(err)
	}
	return nil
}

// SetWall sets or removes a wall at the cursor.
func (e *Editor) SetWall(wall bool) error {
	return e.edit(func() error {
		if err := e.grid.SetWall(e.cursor.X, e.cursor.Y, wall); err != nil {
			return err
		}
		e.status = ""
		return nil
	})
}

// ToggleWall flips the wall at the cursor.
func (e *Editor) ToggleWall() error {
	c, err := e.grid.CellAt(e.cursor.X, e.cursor.Y)
	if err != nil {
		return e.fail(err)
	}
	return e.SetWall(!c.IsWall())
}

// PlaceSpawn puts the spawn at the cursor. On success the editor moves on
// to target placement, or to Ready when the target is already set.
func (e *Editor) PlaceSpawn() error {
	return e.edit(func() error {
		if err := e.grid.SetSpawn(e.cursor.X, e.cursor.Y); err != nil {
			return err
		}
		e.status = fmt.Sprintf("spawn at %v", e.cursor)
		if _, ok := e.grid.Target(); ok {
			e.mode = Ready
		} else {
			e.mode = PlacingTarget
		}
		return nil
	})
}

// PlaceTarget puts the target at the cursor. On success the editor moves to
// Ready, or back to spawn placement when no spawn is set.
func (e *Editor) PlaceTarget() error {
	return e.edit(func() error {
		if err := e.grid.SetTarget(e.cursor.X, e.cursor.Y); err != nil {
			return err
		}
		e.status = fmt.Sprintf("target at %v", e.cursor)
		if _, ok := e.grid.Spawn(); ok {
			e.mode = Ready
		} else {
			e.mode = PlacingSpawn
		}
		return nil
	})
}

// Advance moves to the next phase if the current one is satisfied.
// It reports whether the mode changed.
func (e *Editor) Advance() bool {
	next := e.mode
	switch e.mode {
	case EditingWalls:
		// Skip placement phases that are already satisfied
		_, hasSpawn := e.grid.Spawn()
		switch {
		case e.bothEndpoints():
			next = Ready
		case hasSpawn:
			next = PlacingTarget
		default:
			next = PlacingSpawn
		}
	case PlacingSpawn:
		if _, ok := e.grid.Spawn(); ok {
			next = PlacingTarget
		} else {
			e.status = "place a spawn first"
		}
	case PlacingTarget:
		if _, ok := e.grid.Target(); ok {
			next = e.editPhaseDone()
			if next != Ready {
				next = PlacingSpawn
			}
		} else {
			e.status = "place a target first"
		}
	case Ready:
		return e.Run() == nil
	case Searching, Done:
	}

	changed := next != e.mode
	e.mode = next
	return changed
}

// Run starts a new search between the grid's endpoints.
// A finished search is cleared and restarted.
func (e *Editor) Run() error {
	if e.mode == Searching {
		return nil
	}
	if e.mode == Done {
		e.ClearSearch()
	}

	spawn, _ := e.grid.Spawn()
	target, _ := e.grid.Target()
	if !e.bothEndpoints() {
		return e.fail(fmt.Errorf("%w: spawn and target must both be placed", pathfind.ErrInvalidEndpoints))
	}

	s, err := pathfind.NewSearch(e.grid, spawn, target)
	if err != nil {
		return e.fail(err)
	}
	e.search = s
	e.hasResult = false
	e.mode = Searching
	e.status = ""
	if e.stepsPerTick == 0 {
		e.advanceSearch()
	}
	return nil
}

// advanceSearch runs up to one tick's worth of expansions.
func (e *Editor) advanceSearch() {
	if e.search == nil || e.mode != Searching {
		return
	}

	if e.stepsPerTick == 0 {
		if _, err := e.search.Run(context.Background()); err != nil {
			e.fail(err)
			return
		}
	} else {
		for i := 0; i < e.stepsPerTick && !e.search.State().Terminal(); i++ {
			e.search.Step()
		}
	}

	if e.search.State().Terminal() {
		e.finish()
	}
}

func (e *Editor) finish() {
	e.result = e.search.Result()
	e.hasResult = true
	e.mode = Done

	if e.result.Found() {
		e.status = fmt.Sprintf("path found: %d steps, cost %.2f", e.result.Steps(), e.result.Cost)
	} else {
		e.status = "no path exists"
	}

	if e.OnFinish != nil {
		spawn, _ := e.grid.Spawn()
		target, _ := e.grid.Target()
		e.OnFinish(Finished{
			LayoutID: e.RecordID(),
			SourceID: e.layoutID,
			Rows:     layout.Encode(e.grid),
			Width:    e.grid.Width(),
			Height:   e.grid.Height(),
			Spawn:    spawn,
			Target:   target,
			Result:   e.result,
		})
	}
}

// ClearSearch drops search results and keeps the layout.
func (e *Editor) ClearSearch() {
	e.grid.ResetSearchState()
	e.search = nil
	e.hasResult = false
	e.result = pathfind.Result{}
	e.mode = e.editPhaseDone()
	e.status = ""
}

// ClearGrid removes all walls and endpoints.
func (e *Editor) ClearGrid() {
	e.grid.Clear()
	e.search = nil
	e.hasResult = false
	e.result = pathfind.Result{}
	e.mode = EditingWalls
	e.status = "grid cleared"
}

// ToggleOverlay shows or hides the cost overlay.
func (e *Editor) ToggleOverlay() {
	e.overlay = !e.overlay
}

// paint applies the primary action for the current mode at the cursor.
func (e *Editor) paint() {
	switch e.mode {
	case PlacingSpawn:
		_ = e.PlaceSpawn()
	case PlacingTarget:
		_ = e.PlaceTarget()
	default:
		_ = e.ToggleWall()
	}
}

func (e *Editor) fail(err error) error {
	e.status = err.Error()
	return err
}

// Tick applies one frame of input and advances a running search.
func (e *Editor) Tick(in core.InputFrame) Signal {
	if in.Has(core.ActionQuit) {
		return SignalQuit
	}
	if in.Has(core.ActionBack) {
		return SignalBack
	}

	if in.Has(core.ActionUp) {
		e.MoveCursor(0, -1)
	}
	if in.Has(core.ActionDown) {
		e.MoveCursor(0, 1)
	}
	if in.Has(core.ActionLeft) {
		e.MoveCursor(-1, 0)
	}
	if in.Has(core.ActionRight) {
		e.MoveCursor(1, 0)
	}

	if in.Click {
		if p, ok := e.ScreenCell(in.ClickX, in.ClickY); ok {
			e.SetCursor(p)
			if in.ClickRM {
				_ = e.SetWall(false)
			} else if e.mode == PlacingSpawn || e.mode == PlacingTarget {
				e.paint()
			} else {
				_ = e.SetWall(true)
			}
		}
	}

	switch {
	case in.Has(core.ActionClearGrid):
		e.ClearGrid()
	case in.Has(core.ActionClearSearch):
		e.ClearSearch()
	case in.Has(core.ActionPlaceSpawn):
		_ = e.PlaceSpawn()
	case in.Has(core.ActionPlaceTarget):
		_ = e.PlaceTarget()
	case in.Has(core.ActionPaint):
		e.paint()
	case in.Has(core.ActionErase):
		_ = e.SetWall(false)
	case in.Has(core.ActionRun):
		_ = e.Run()
	case in.Has(core.ActionConfirm):
		e.Advance()
	}

	if in.Has(core.ActionOverlay) {
		e.ToggleOverlay()
	}

	e.advanceSearch()

	if in.Has(core.ActionSave) {
		return SignalSave
	}
	return SignalNone
}
