package pathfind

import "errors"

// Sentinel errors. Returned values wrap these with coordinates or a reason;
// match them with errors.Is.
var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("pathfind: out of bounds")

	// ErrBlockedCell is returned when spawn/target is placed on a wall, when
	// spawn and target would coincide, or when a wall is placed on an endpoint.
	ErrBlockedCell = errors.New("pathfind: blocked cell")

	// ErrInvalidEndpoints is returned before any search work when spawn and
	// target are missing, out of bounds, walls, or equal.
	ErrInvalidEndpoints = errors.New("pathfind: invalid endpoints")

	// ErrInvalidSize is returned for grids with a non-positive dimension.
	ErrInvalidSize = errors.New("pathfind: invalid grid size")
)
