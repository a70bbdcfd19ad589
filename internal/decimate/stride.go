package decimate

import (
	"math"

	"github.com/newthinker/prism/internal/core"
)

// Stride reduces a series by keeping every step-th point, where
// step = ceil(N/maxPoints). The true last point is always included; it is
// appended only when the final strided point differs from it by value, so
// duplicate coordinates in the source never produce a doubled endpoint.
// Inputs at or below maxPoints are returned unchanged.
func Stride(s core.Series, maxPoints int) core.Series {
	n := len(s)
	if maxPoints <= 0 || n <= maxPoints {
		return s
	}

	step := (n + maxPoints - 1) / maxPoints

	out := make(core.Series, 0, n/step+2)
	for i := 0; i < n; i += step {
		out = append(out, s[i])
	}

	if last := s[n-1]; !samePoint(out[len(out)-1], last) {
		out = append(out, last)
	}

	return out
}

// samePoint treats two NaN values as equal so a missing-value endpoint
// still deduplicates.
func samePoint(a, b core.Point) bool {
	if a.X != b.X {
		return false
	}
	return a.Y == b.Y || (math.IsNaN(a.Y) && math.IsNaN(b.Y))
}
