package core

// RuntimeConfig contains configuration passed to the editor at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Editor ticks per second (default 30)
	Seed     int64 // RNG seed for generated layouts
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Size is a grid size in cells.
type Size struct {
	W int
	H int
}

// FitGrid returns the largest grid that fits the screen, leaving room for
// the HUD. Each grid cell takes cellW columns.
func (c RuntimeConfig) FitGrid(cellW, hudRows int) Size {
	if cellW < 1 {
		cellW = 1
	}
	w := (c.ScreenW - 2) / cellW
	h := c.ScreenH - hudRows - 2
	return Size{W: Max(w, 1), H: Max(h, 1)}
}
