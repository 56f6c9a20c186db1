package pathfind

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openCell(t *testing.T, g *Grid, x, y int, gCost, hCost float64) *Cell {
	t.Helper()
	c, err := g.CellAt(x, y)
	require.NoError(t, err)
	c.gCost = gCost
	c.hCost = hCost
	return c
}

// sumSteps adds step costs in order at run time, as the search does.
func sumSteps(steps ...float64) float64 {
	total := 0.0
	for _, s := range steps {
		total += s
	}
	return total
}

func TestOpenSetRoundingTieUsesH(t *testing.T) {
	g := mustGrid(t, 2, 1)

	// Both f values are 3+3√2; the float sums differ in the last bit.
	higherH := openCell(t, g, 0, 0, sumSteps(1, 1, Sqrt2, Sqrt2), MoveCost(P(0, 0), P(1, 1)))
	lowerH := openCell(t, g, 1, 0, sumSteps(Sqrt2, Sqrt2, 1, Sqrt2), MoveCost(P(0, 0), P(1, 0)))
	require.Less(t, higherH.FCost(), lowerH.FCost())
	require.InDelta(t, higherH.FCost(), lowerH.FCost(), 1e-12)

	var o openSet
	o.insert(higherH)
	o.insert(lowerH)

	assert.Equal(t, P(1, 0), o.popBest().Position(), "equal f: lower h first")
	assert.Equal(t, P(0, 0), o.popBest().Position())
}

func TestOpenSetTieBreakOrder(t *testing.T) {
	g := mustGrid(t, 4, 1)
	first := openCell(t, g, 0, 0, 2, 2)
	second := openCell(t, g, 1, 0, 2, 2)
	lowerH := openCell(t, g, 2, 0, 3, 1)
	lowerF := openCell(t, g, 3, 0, 1, 2)

	var o openSet
	for _, c := range []*Cell{first, second, lowerH, lowerF} {
		o.insert(c)
	}

	var order []Position
	for o.Len() > 0 {
		order = append(order, o.popBest().Position())
	}
	assert.Equal(t, []Position{P(3, 0), P(2, 0), P(0, 0), P(1, 0)}, order)
}

// Every pop must be the best open cell under (f, h, insertion) with
// rounding-level f and h differences treated as ties.
func TestSearchPopsFollowTieBreak(t *testing.T) {
	for size := 4; size <= 20; size += 4 {
		t.Run(fmt.Sprintf("%dx%d", size, size), func(t *testing.T) {
			g := mustGrid(t, size, size)
			s, err := NewSearch(g, P(0, size/2), P(size-1, 0))
			require.NoError(t, err)

			for !s.State().Terminal() {
				type entry struct {
					pos      Position
					f, h     float64
					inserted uint64
				}
				snapshot := make([]entry, 0, s.open.Len())
				for _, c := range s.open.items {
					snapshot = append(snapshot, entry{c.pos, c.FCost(), c.hCost, c.inserted})
				}

				s.Step()
				popped, ok := s.Current()
				require.True(t, ok)

				var best entry
				for _, e := range snapshot {
					if e.pos == popped {
						best = e
					}
				}
				for _, e := range snapshot {
					if e.pos == popped {
						continue
					}
					if math.Abs(e.f-best.f) > 1e-9 {
						assert.Greater(t, e.f, best.f, "%v popped before lower f %v", popped, e.pos)
						continue
					}
					if math.Abs(e.h-best.h) > 1e-9 {
						assert.Greater(t, e.h, best.h, "%v popped before lower h %v", popped, e.pos)
						continue
					}
					assert.Greater(t, e.inserted, best.inserted, "%v popped before earlier %v", popped, e.pos)
				}
			}
		})
	}
}
