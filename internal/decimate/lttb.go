// Package decimate reduces large series to bounded point counts for
// rendering, preserving visually significant features where possible.
package decimate

import (
	"math"

	"github.com/newthinker/prism/internal/core"
)

// Decimate reduces a series to exactly threshold points using
// Largest-Triangle-Three-Buckets. The first and last points are always
// kept and relative order is preserved. Inputs already at or below the
// threshold, or thresholds below 3, are returned unchanged.
//
// Interior points are partitioned into threshold-2 buckets of continuous
// width (N-2)/(threshold-2). Each bucket keeps the candidate forming the
// largest triangle with the previously selected point and the average
// point of the next bucket. The comparison is strict-greater, so on equal
// areas the earliest candidate wins.
func Decimate(s core.Series, threshold int) core.Series {
	n := len(s)
	if threshold < 3 || n <= threshold {
		return s
	}

	out := make(core.Series, 0, threshold)
	out = append(out, s[0])

	w := float64(n-2) / float64(threshold-2)
	anchor := 0

	for i := 0; i < threshold-2; i++ {
		rangeStart := int(float64(i)*w) + 1
		rangeEnd := int(float64(i+1)*w) + 1
		if rangeEnd > n-1 {
			rangeEnd = n - 1
		}

		avgX, avgY := lookaheadAverage(s, i, w, anchor)

		a := s[anchor]
		maxArea := -1.0
		selected := rangeStart
		for j := rangeStart; j < rangeEnd; j++ {
			area := math.Abs((a.X-avgX)*(s[j].Y-a.Y)-(a.X-s[j].X)*(avgY-a.Y)) * 0.5
			if area > maxArea {
				maxArea = area
				selected = j
			}
		}

		out = append(out, s[selected])
		anchor = selected
	}

	out = append(out, s[n-1])
	return out
}

// lookaheadAverage returns the mean point of bucket i+1. The window end is
// clamped to the series length so the final bucket averages into the last
// point. An empty window (possible only at the final bucket boundary for
// some N/threshold combinations) falls back to the anchor point, which
// degrades that bucket's selection to a two-point comparison instead of
// dividing by zero.
func lookaheadAverage(s core.Series, i int, w float64, anchor int) (float64, float64) {
	avgStart := int(float64(i+1)*w) + 1
	avgEnd := int(float64(i+2)*w) + 1
	if avgEnd > len(s) {
		avgEnd = len(s)
	}

	if avgStart >= avgEnd {
		return s[anchor].X, s[anchor].Y
	}

	var sumX, sumY float64
	for j := avgStart; j < avgEnd; j++ {
		sumX += s[j].X
		sumY += s[j].Y
	}
	count := float64(avgEnd - avgStart)
	return sumX / count, sumY / count
}
