package sweep

import (
	"sort"

	"github.com/newthinker/prism/internal/core"
)

// Sensitivity is a 1-D slice of a sweep: one parameter varies while the
// others are held fixed. ParamValues ascends; MetricValues is parallel,
// nil where a matching result lacks the metric.
type Sensitivity struct {
	ParamValues  []float64  `json:"param_values"`
	MetricValues []*float64 `json:"metric_values"`
}

// BuildSensitivity filters results to those whose parameters exactly
// match every fixed binding except param itself, sorts them ascending by
// param's value, and returns parallel parameter/metric sequences. Results
// not carrying param are skipped. The input slice is never mutated.
func BuildSensitivity(results []core.SweepResult, param, metric string, fixed map[string]float64) Sensitivity {
	type entry struct {
		value  float64
		metric *float64
	}

	var entries []entry
	for _, r := range results {
		v, ok := r.Param(param)
		if !ok {
			continue
		}
		if !matchesFixed(r, param, fixed) {
			continue
		}
		entries = append(entries, entry{value: v, metric: r.Metric(metric)})
	}

	// Stable so equal parameter values keep result order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].value < entries[j].value
	})

	out := Sensitivity{
		ParamValues:  make([]float64, len(entries)),
		MetricValues: make([]*float64, len(entries)),
	}
	for i, e := range entries {
		out.ParamValues[i] = e.value
		out.MetricValues[i] = e.metric
	}
	return out
}

// matchesFixed reports whether the result's parameters exactly equal
// every fixed binding. The target parameter itself is excluded from the
// filter.
func matchesFixed(r core.SweepResult, param string, fixed map[string]float64) bool {
	for name, want := range fixed {
		if name == param {
			continue
		}
		got, ok := r.Param(name)
		if !ok || got != want {
			return false
		}
	}
	return true
}
