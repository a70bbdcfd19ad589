package sweep

import (
	"fmt"
	"math"

	"github.com/newthinker/prism/internal/core"
)

// Range describes one parameter dimension of a search space.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
	Kind string  `json:"kind,omitempty"` // "int" or "float", informational
}

// Steps returns the number of values the range produces:
// floor((max-min)/step) + 1. A range whose max is below its min produces
// zero values. Steps errors on step <= 0 rather than inheriting undefined
// numeric behavior.
func (r Range) Steps() (int64, error) {
	if r.Step <= 0 {
		return 0, core.WrapError(core.ErrInvalidRange,
			fmt.Errorf("step must be positive, got %g", r.Step))
	}
	steps := int64(math.Floor((r.Max-r.Min)/r.Step)) + 1
	if steps < 0 {
		steps = 0
	}
	return steps, nil
}

// Values expands the range into its concrete values, min to max
// inclusive. A small epsilon absorbs floating-point accumulation at the
// upper bound.
func (r Range) Values() ([]float64, error) {
	steps, err := r.Steps()
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, steps)
	for v := r.Min; v <= r.Max+r.Step/1e6; v += r.Step {
		if v > r.Max {
			break
		}
		out = append(out, v)
	}
	return out, nil
}

// Estimate computes the cardinality of a parameter search space: the
// product of each range's step count. An empty range map yields 0, so
// callers can warn before launching an expensive sweep.
func Estimate(ranges map[string]Range) (int64, error) {
	if len(ranges) == 0 {
		return 0, nil
	}

	total := int64(1)
	for name, r := range ranges {
		steps, err := r.Steps()
		if err != nil {
			return 0, core.WrapError(core.ErrInvalidRange,
				fmt.Errorf("parameter %q: %w", name, err))
		}
		total *= steps
	}
	return total, nil
}
