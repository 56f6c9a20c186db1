package layout

import (
	"math/rand"

	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/pathfind"
)

// DefaultScatterDensity is the wall probability of the scatter scenario.
const DefaultScatterDensity = 0.28

// Empty returns an open grid with spawn in the top-left corner and target in
// the bottom-right corner.
func Empty(size core.Size) (*pathfind.Grid, error) {
	g, err := pathfind.NewGrid(size.W, size.H)
	if err != nil {
		return nil, err
	}
	if err := placeCorners(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Scatter returns a grid with randomly placed walls. The same seed and size
// always produce the same grid. The corner endpoints are kept open, but a
// path between them is not guaranteed.
func Scatter(size core.Size, density float64, seed int64) (*pathfind.Grid, error) {
	g, err := pathfind.NewGrid(size.W, size.H)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	last := pathfind.P(size.W-1, size.H-1)
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			wall := rng.Float64() < density
			p := pathfind.P(x, y)
			if !wall || p == pathfind.P(0, 0) || p == last {
				continue
			}
			if err := g.SetWall(x, y, true); err != nil {
				return nil, err
			}
		}
	}

	if err := placeCorners(g); err != nil {
		return nil, err
	}
	return g, nil
}

// placeCorners puts spawn at (0,0) and target at the opposite corner.
// A 1x1 grid gets only a spawn.
func placeCorners(g *pathfind.Grid) error {
	if err := g.SetSpawn(0, 0); err != nil {
		return err
	}
	if g.Width() == 1 && g.Height() == 1 {
		return nil
	}
	return g.SetTarget(g.Width()-1, g.Height()-1)
}

type emptyScenario struct{}

func (emptyScenario) ID() string    { return "empty" }
func (emptyScenario) Title() string { return "Empty Canvas" }

func (emptyScenario) Build(_ core.RuntimeConfig, size core.Size) (*pathfind.Grid, error) {
	return Empty(size)
}

type scatterScenario struct {
	density float64
}

func (scatterScenario) ID() string    { return "scatter" }
func (scatterScenario) Title() string { return "Random Scatter" }

func (s scatterScenario) Build(cfg core.RuntimeConfig, size core.Size) (*pathfind.Grid, error) {
	return Scatter(size, s.density, cfg.Seed)
}
