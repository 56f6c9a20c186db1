package pathfind

// Outcome tags a search result.
type Outcome int

const (
	// NotFound means the open set emptied before the target was reached.
	NotFound Outcome = iota
	// Found means Path holds a spawn-to-target route.
	Found
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Result is the outcome of one search run. It holds copies of positions and
// stays valid after later grid edits.
type Result struct {
	Outcome  Outcome
	Path     []Position // Spawn first, target last; nil when not found
	Cost     float64    // Sum of move costs along Path
	Expanded int        // Cells closed during the search
}

// Found reports whether a path was found.
func (r Result) Found() bool {
	return r.Outcome == Found
}

// Len returns the number of cells on the path, endpoints included.
func (r Result) Len() int {
	return len(r.Path)
}

// Steps returns the number of moves on the path.
func (r Result) Steps() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// Contains reports whether p lies on the path.
func (r Result) Contains(p Position) bool {
	for _, q := range r.Path {
		if q == p {
			return true
		}
	}
	return false
}
