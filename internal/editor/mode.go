// Package editor implements the interactive grid editor: a state machine
// that separates layout editing from path search, drives a step-wise search
// for animation, and draws everything into a core.Screen.
package editor

// Mode is the editor phase. Layout edits are only accepted in the editing
// phases; the grid is frozen while a search runs or its result is shown.
type Mode int

const (
	EditingWalls Mode = iota
	PlacingSpawn
	PlacingTarget
	Ready
	Searching
	Done
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case EditingWalls:
		return "Editing walls"
	case PlacingSpawn:
		return "Placing spawn"
	case PlacingTarget:
		return "Placing target"
	case Ready:
		return "Ready"
	case Searching:
		return "Searching"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}

// Editable reports whether the layout may be changed in this mode.
func (m Mode) Editable() bool {
	return m == EditingWalls || m == PlacingSpawn || m == PlacingTarget
}

// Signal tells the host what to do after a tick.
type Signal int

const (
	SignalNone Signal = iota
	SignalBack
	SignalQuit
	SignalSave
)
