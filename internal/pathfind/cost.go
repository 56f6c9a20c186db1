package pathfind

import "math"

// Sqrt2 is the cost of one diagonal step; orthogonal steps cost 1.
const Sqrt2 = math.Sqrt2

// MoveCost returns the octile distance between a and b: the exact cost of the
// cheapest unobstructed 8-directional route.
func MoveCost(a, b Position) float64 {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	lo, hi := dx, dy
	if lo > hi {
		lo, hi = hi, lo
	}
	return float64(lo)*Sqrt2 + float64(hi-lo)
}

// Heuristic estimates the remaining cost from a to the target b.
// Octile distance never overestimates on this grid and is consistent, which
// is what lets the search close cells permanently.
func Heuristic(a, b Position) float64 {
	return MoveCost(a, b)
}

// costEpsilon absorbs rounding in sums of 1 and Sqrt2. Distinct costs on a
// grid differ by far more than this.
const costEpsilon = 1e-9

// costLess reports whether a is smaller than b by more than rounding noise.
func costLess(a, b float64) bool {
	return a < b-costEpsilon
}

// costEqual reports whether a and b are equal up to rounding noise.
func costEqual(a, b float64) bool {
	return math.Abs(a-b) <= costEpsilon
}
