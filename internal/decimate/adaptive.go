package decimate

import "github.com/newthinker/prism/internal/core"

// DefaultMaxPoints is the point budget applied when none is configured.
const DefaultMaxPoints = 2000

// Options selects the sampling strategy and point budget.
type Options struct {
	// MaxPoints is the output cardinality cap. Zero or negative means
	// DefaultMaxPoints.
	MaxPoints int
	// FeaturePreserving selects LTTB over uniform stride.
	FeaturePreserving bool
}

// DefaultOptions returns the adaptive sampling defaults: a 2000 point
// budget with feature-preserving decimation.
func DefaultOptions() Options {
	return Options{
		MaxPoints:         DefaultMaxPoints,
		FeaturePreserving: true,
	}
}

// Adaptive samples a series down to the configured point budget. Series
// already within budget pass through untouched.
func Adaptive(s core.Series, opts Options) core.Series {
	maxPoints := opts.MaxPoints
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}

	if len(s) <= maxPoints {
		return s
	}

	if opts.FeaturePreserving {
		return Decimate(s, maxPoints)
	}
	return Stride(s, maxPoints)
}
