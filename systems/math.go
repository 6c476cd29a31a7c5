package systems

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Clamp restricts v to [lo, hi].
func Clamp[N constraints.Integer | constraints.Float](v, lo, hi N) N {
	return min(max(v, lo), hi)
}

// Clamp01 clamps a value to the [0, 1] range.
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates linearly between a and b.
func Lerp[F constraints.Float](a, b, t F) F {
	return a + (b-a)*t
}

// CountFor returns the number of points for a viewport: fixed when density is 0,
// otherwise one point per density square pixels. Never negative.
func CountFor(count int, density float64, width, height int) int {
	if density > 0 {
		area := float64(max(width, 0)) * float64(max(height, 0))
		return int(math.Floor(area / density))
	}
	return max(count, 0)
}

// Columns returns the grid column count for a viewport width: ceil(width/divisor) + padding,
// clamped to zero for degenerate widths.
func Columns(width int, divisor float64, padding int) int {
	if width <= 0 || divisor <= 0 {
		return 0
	}
	return max(0, int(math.Ceil(float64(width)/divisor))+padding)
}
