package pathfind

import (
	"container/heap"
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridWithWalls(t *testing.T, w, h int, walls ...Position) *Grid {
	t.Helper()
	g := mustGrid(t, w, h)
	for _, p := range walls {
		require.NoError(t, g.SetWall(p.X, p.Y, true))
	}
	return g
}

// assertWalkable checks the path is a chain of adjacent open cells from
// spawn to target.
func assertWalkable(t *testing.T, g *Grid, res Result, spawn, target Position) {
	t.Helper()
	require.True(t, res.Found())
	require.NotEmpty(t, res.Path)
	assert.Equal(t, spawn, res.Path[0])
	assert.Equal(t, target, res.Path[len(res.Path)-1])

	total := 0.0
	for i, p := range res.Path {
		c, err := g.CellAt(p.X, p.Y)
		require.NoError(t, err)
		assert.False(t, c.IsWall(), "path crosses wall at %v", p)
		if i > 0 {
			assert.True(t, res.Path[i-1].Adjacent(p), "%v and %v not adjacent", res.Path[i-1], p)
			total += MoveCost(res.Path[i-1], p)
		}
	}
	assert.InDelta(t, total, res.Cost, 1e-9)
}

func TestScenarioOpenDiagonal(t *testing.T) {
	g := mustGrid(t, 5, 5)

	res, err := FindPath(g, P(0, 0), P(4, 4))
	require.NoError(t, err)

	assertWalkable(t, g, res, P(0, 0), P(4, 4))
	assert.Equal(t, 5, res.Len())
	assert.Equal(t, 4, res.Steps())
	assert.InDelta(t, 4*math.Sqrt2, res.Cost, 1e-9)
}

func TestScenarioWallSplit(t *testing.T) {
	g := gridWithWalls(t, 3, 3, P(1, 0), P(1, 1), P(1, 2))

	res, err := FindPath(g, P(0, 1), P(2, 1))
	require.NoError(t, err)

	assert.False(t, res.Found())
	assert.Equal(t, NotFound, res.Outcome)
	assert.Nil(t, res.Path)
}

func TestScenarioDetour(t *testing.T) {
	g := gridWithWalls(t, 3, 3, P(1, 0), P(1, 1))

	res, err := FindPath(g, P(0, 0), P(2, 0))
	require.NoError(t, err)

	assertWalkable(t, g, res, P(0, 0), P(2, 0))
	assert.True(t, res.Contains(P(1, 2)), "detour must pass the gap at (1,2)")
	assert.Equal(t, 4, res.Steps())
	assert.InDelta(t, 2+2*math.Sqrt2, res.Cost, 1e-9)
}

func TestEnclosedTargetNotFound(t *testing.T) {
	// Ring of walls around (5,5)
	var ring []Position
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx != 0 || dy != 0 {
				ring = append(ring, P(5+dx, 5+dy))
			}
		}
	}
	g := gridWithWalls(t, 8, 8, ring...)

	res, err := FindPath(g, P(0, 0), P(5, 5))
	require.NoError(t, err)
	assert.False(t, res.Found())
	// Every reachable cell outside the ring was closed
	assert.Equal(t, 8*8-9, res.Expanded)
}

func TestNoWallCostEqualsOctile(t *testing.T) {
	g := mustGrid(t, 12, 9)
	pairs := [][2]Position{
		{P(0, 0), P(11, 8)},
		{P(3, 7), P(10, 0)},
		{P(6, 4), P(6, 0)},
		{P(11, 2), P(0, 3)},
	}

	for _, pr := range pairs {
		res, err := FindPath(g, pr[0], pr[1])
		require.NoError(t, err)
		assertWalkable(t, g, res, pr[0], pr[1])
		assert.InDelta(t, MoveCost(pr[0], pr[1]), res.Cost, 1e-9)
	}
}

func TestInvalidEndpoints(t *testing.T) {
	g := gridWithWalls(t, 4, 4, P(2, 2))

	testCases := []struct {
		name          string
		spawn, target Position
	}{
		{"spawn out of bounds", P(-1, 0), P(3, 3)},
		{"target out of bounds", P(0, 0), P(4, 0)},
		{"same cell", P(1, 1), P(1, 1)},
		{"spawn on wall", P(2, 2), P(0, 0)},
		{"target on wall", P(0, 0), P(2, 2)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSearch(g, tc.spawn, tc.target)
			assert.ErrorIs(t, err, ErrInvalidEndpoints)
			assert.Equal(t, InvalidEndpoints, s.State())

			_, err = FindPath(g, tc.spawn, tc.target)
			assert.ErrorIs(t, err, ErrInvalidEndpoints)
		})
	}
}

func TestInvalidEndpointsLeavesGridUntouched(t *testing.T) {
	g := mustGrid(t, 4, 4)
	_, err := FindPath(g, P(0, 0), P(3, 3))
	require.NoError(t, err)

	target, _ := g.CellAt(2, 2)
	before := target.GCost()

	_, err = FindPath(g, P(1, 1), P(1, 1))
	require.ErrorIs(t, err, ErrInvalidEndpoints)
	assert.Equal(t, before, target.GCost())
}

func TestFindGridPathUsesFlags(t *testing.T) {
	g := mustGrid(t, 4, 1)

	_, err := FindGridPath(g)
	assert.ErrorIs(t, err, ErrInvalidEndpoints)

	require.NoError(t, g.SetSpawn(0, 0))
	_, err = FindGridPath(g)
	assert.ErrorIs(t, err, ErrInvalidEndpoints)

	require.NoError(t, g.SetTarget(3, 0))
	res, err := FindGridPath(g)
	require.NoError(t, err)
	assert.Equal(t, []Position{P(0, 0), P(1, 0), P(2, 0), P(3, 0)}, res.Path)
}

func TestDeterminism(t *testing.T) {
	g := randomGrid(t, 30, 20, 0.25, 7)
	spawn, target := P(0, 0), P(29, 19)
	require.NoError(t, g.SetWall(spawn.X, spawn.Y, false))
	require.NoError(t, g.SetWall(target.X, target.Y, false))

	first, err := FindPath(g, spawn, target)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := FindPath(g, spawn, target)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSearchStepwise(t *testing.T) {
	g := gridWithWalls(t, 6, 6, P(2, 0), P(2, 1), P(2, 2), P(2, 3))

	s, err := NewSearch(g, P(0, 0), P(5, 0))
	require.NoError(t, err)
	assert.Equal(t, Running, s.State())
	assert.Equal(t, 1, s.OpenLen())

	steps := 0
	for !s.Step().Terminal() {
		steps++
		require.Less(t, steps, 36, "search must terminate")
	}

	assert.Equal(t, PathFound, s.State())
	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, P(5, 0), current)

	// Stepping a finished search changes nothing
	assert.Equal(t, PathFound, s.Step())

	oneShot, err := FindPath(g.Clone(), P(0, 0), P(5, 0))
	require.NoError(t, err)
	assert.Equal(t, oneShot.Path, s.Result().Path)
	assert.Equal(t, oneShot.Expanded, s.Expanded())
}

func TestRunCancelled(t *testing.T) {
	g := mustGrid(t, 10, 10)
	s, err := NewSearch(g, P(0, 0), P(9, 9))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Running, s.State(), "cancelled search stays resumable")

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Found())
}

func TestParentsFormTreeRootedAtSpawn(t *testing.T) {
	g := randomGrid(t, 15, 15, 0.2, 3)
	spawn := P(7, 7)
	require.NoError(t, g.SetWall(spawn.X, spawn.Y, false))
	require.NoError(t, g.SetWall(0, 0, false))

	_, err := FindPath(g, spawn, P(0, 0))
	require.NoError(t, err)

	for y := 0; y < 15; y++ {
		for x := 0; x < 15; x++ {
			p := P(x, y)
			hops := 0
			for {
				parent, ok := g.ParentOf(p)
				if !ok {
					break
				}
				closedParent, _ := g.CellAt(parent.X, parent.Y)
				assert.True(t, closedParent.Closed(), "parent %v must be closed", parent)
				p = parent
				hops++
				require.Less(t, hops, 15*15, "parent chain must be acyclic")
			}
		}
	}
}

func TestMatchesDijkstraOnRandomGrids(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		g := randomGrid(t, 16, 12, 0.3, seed)
		spawn, target := P(0, 0), P(15, 11)
		require.NoError(t, g.SetWall(spawn.X, spawn.Y, false))
		require.NoError(t, g.SetWall(target.X, target.Y, false))

		want, reachable := dijkstra(g, spawn, target)
		res, err := FindPath(g, spawn, target)
		require.NoError(t, err)

		require.Equal(t, reachable, res.Found(), "seed %d", seed)
		if reachable {
			assertWalkable(t, g, res, spawn, target)
			assert.InDelta(t, want, res.Cost, 1e-9, "seed %d", seed)
		}
	}
}

func randomGrid(t *testing.T, w, h int, density float64, seed int64) *Grid {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g := mustGrid(t, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rng.Float64() < density {
				require.NoError(t, g.SetWall(x, y, true))
			}
		}
	}
	return g
}

// dijkstra is an independent reference for optimal path cost.
func dijkstra(g *Grid, from, to Position) (float64, bool) {
	dist := map[Position]float64{from: 0}
	pq := &refQueue{{pos: from}}
	done := map[Position]bool{}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(refItem)
		if done[cur.pos] {
			continue
		}
		done[cur.pos] = true
		if cur.pos == to {
			return cur.dist, true
		}
		for _, n := range g.NeighborsOf(cur.pos) {
			d := cur.dist + MoveCost(cur.pos, n.Position())
			if old, ok := dist[n.Position()]; !ok || d < old {
				dist[n.Position()] = d
				heap.Push(pq, refItem{pos: n.Position(), dist: d})
			}
		}
	}
	return 0, false
}

type refItem struct {
	pos  Position
	dist float64
}

type refQueue []refItem

func (q refQueue) Len() int           { return len(q) }
func (q refQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q refQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *refQueue) Push(x any)        { *q = append(*q, x.(refItem)) }
func (q *refQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
