// Package progression converts lifetime points into a child's level.
package progression

import "math"

// Level returns the progression level for a lifetime score. The curve is
// quadratic: level 1 at 0 points, 2 at 100, 3 at 400, 4 at 900, so each
// level costs proportionally more cumulative effort. Negative scores are
// treated as zero.
func Level(lifetimeScore int) int {
	if lifetimeScore < 0 {
		lifetimeScore = 0
	}
	return int(math.Sqrt(float64(lifetimeScore)/100)) + 1
}
