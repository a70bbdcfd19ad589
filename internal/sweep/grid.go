// Package sweep reconstructs dense structures from sparse, unordered
// parameter-sweep results and sizes parameter search spaces.
package sweep

import (
	"sort"

	"github.com/newthinker/prism/internal/core"
)

// Grid2D is a dense heatmap matrix. Cells is row-major, indexed
// [yIndex][xIndex]; a nil cell means no matching result exists or the
// matching result lacks the metric.
type Grid2D struct {
	XAxis []float64    `json:"x_axis"`
	YAxis []float64    `json:"y_axis"`
	Cells [][]*float64 `json:"cells"`
}

// BuildGrid reconstructs a dense matrix of metric values over two
// parameter dimensions. Axis values are the deduplicated, ascending
// unique values of dimA (X) and dimB (Y) across all results. For each
// (y, x) cell the first result matching both dimensions wins. The input
// is read-only; results are never reordered.
func BuildGrid(results []core.SweepResult, dimA, dimB, metric string) Grid2D {
	xAxis := uniqueSorted(results, dimA)
	yAxis := uniqueSorted(results, dimB)

	cells := make([][]*float64, len(yAxis))
	for yi, y := range yAxis {
		row := make([]*float64, len(xAxis))
		for xi, x := range xAxis {
			row[xi] = firstMetric(results, dimA, x, dimB, y, metric)
		}
		cells[yi] = row
	}

	return Grid2D{XAxis: xAxis, YAxis: yAxis, Cells: cells}
}

// firstMetric scans results in order for the first entry matching both
// dimension values and returns its metric, or nil.
func firstMetric(results []core.SweepResult, dimA string, x float64, dimB string, y float64, metric string) *float64 {
	for _, r := range results {
		a, okA := r.Param(dimA)
		b, okB := r.Param(dimB)
		if okA && okB && a == x && b == y {
			return r.Metric(metric)
		}
	}
	return nil
}

// uniqueSorted collects the deduplicated ascending values of one
// parameter dimension across all results that carry it.
func uniqueSorted(results []core.SweepResult, dim string) []float64 {
	seen := make(map[float64]struct{})
	var values []float64
	for _, r := range results {
		v, ok := r.Param(dim)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Float64s(values)
	return values
}
