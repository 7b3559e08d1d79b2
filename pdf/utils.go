package pdf

import "math"

const spacingRelTol = 1e-9

// uniformSpacing returns the (positive) spacing of an evenly spaced ascending
// grid, or ok=false when the grid is too short, unordered or unevenly spaced.
func uniformSpacing(grid []float64) (float64, bool) {
	if len(grid) < 2 {
		return 0, false
	}
	delta := grid[1] - grid[0]
	if delta <= 0 {
		return 0, false
	}
	for i := 2; i < len(grid); i++ {
		step := grid[i] - grid[i-1]
		if math.Abs(step-delta) > spacingRelTol*delta {
			return 0, false
		}
	}
	return delta, true
}

func initOnes(n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = 1
	}
	return res
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
