package core

// Action represents a semantic editor action, abstracted from physical key presses.
// The editor works with intents; the platform layer owns the key bindings.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W, K, Up arrow - move cursor up
	ActionDown               // S, J, Down arrow - move cursor down
	ActionLeft               // A, H, Left arrow - move cursor left
	ActionRight              // D, L, Right arrow - move cursor right
	ActionPaint              // Space - toggle wall / place endpoint at cursor
	ActionErase              // X, Backspace - remove wall at cursor
	ActionPlaceSpawn         // 1 - jump to spawn placement
	ActionPlaceTarget        // 2 - jump to target placement
	ActionConfirm            // Enter - advance to the next editing mode
	ActionRun                // R - start or restart the search
	ActionClearSearch        // C - drop search results, keep the layout
	ActionClearGrid          // Shift+C - reset to an empty grid
	ActionOverlay            // O - toggle cost overlay
	ActionSave               // Ctrl+S - persist the current layout
	ActionBack               // B, Escape - go back to menu
	ActionQuit               // Q, Ctrl+C - exit
)

var actionNames = map[Action]string{
	ActionNone:        "None",
	ActionUp:          "Up",
	ActionDown:        "Down",
	ActionLeft:        "Left",
	ActionRight:       "Right",
	ActionPaint:       "Paint",
	ActionErase:       "Erase",
	ActionPlaceSpawn:  "PlaceSpawn",
	ActionPlaceTarget: "PlaceTarget",
	ActionConfirm:     "Confirm",
	ActionRun:         "Run",
	ActionClearSearch: "ClearSearch",
	ActionClearGrid:   "ClearGrid",
	ActionOverlay:     "Overlay",
	ActionSave:        "Save",
	ActionBack:        "Back",
	ActionQuit:        "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame collects the actions triggered during one tick.
type InputFrame struct {
	Actions map[Action]bool

	// Click is set when a mouse press landed on the screen this frame.
	Click   bool
	ClickX  int
	ClickY  int
	ClickRM bool // right button; erases instead of painting
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetClick records a mouse press at screen coordinates.
func (f *InputFrame) SetClick(x, y int, right bool) {
	f.Click = true
	f.ClickX, f.ClickY = x, y
	f.ClickRM = right
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && !f.Click
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Click = false
	f.ClickRM = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Click, clone.ClickX, clone.ClickY, clone.ClickRM = f.Click, f.ClickX, f.ClickY, f.ClickRM
	return clone
}
