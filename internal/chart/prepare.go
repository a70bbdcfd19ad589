// Package chart assembles render-ready chart data from raw series.
package chart

import (
	"github.com/newthinker/prism/internal/core"
	"github.com/newthinker/prism/internal/decimate"
	"github.com/newthinker/prism/internal/series"
)

// Options controls the preparation pipeline.
type Options struct {
	// Kind declares how coordinates are interpreted; defaults to ordinal
	// so plain integers are never silently read as calendar instants.
	Kind core.CoordKind
	// MaxPoints caps the output cardinality; zero means the decimation
	// default.
	MaxPoints int
	// FeaturePreserving selects LTTB over uniform stride.
	FeaturePreserving bool
	// HintThreshold is the render-hint cardinality threshold; zero means
	// the selector default.
	HintThreshold int
}

// DefaultOptions returns the preparation defaults.
func DefaultOptions() Options {
	return Options{
		Kind:              core.CoordOrdinal,
		MaxPoints:         decimate.DefaultMaxPoints,
		FeaturePreserving: true,
	}
}

// Prepared is the decimation-path output consumed by the renderer.
type Prepared struct {
	Coordinates    []float64           `json:"coordinates"`
	Values         []float64           `json:"values"`
	OriginalLength int                 `json:"original_length"`
	SampledLength  int                 `json:"sampled_length"`
	RenderHint     decimate.RenderHint `json:"render_hint"`
}

// Prepare runs raw records through normalization, adaptive sampling and
// render-hint selection. It never fails: malformed or empty input
// degrades to an empty or identity result.
func Prepare(raw []core.RawPoint, opts Options) Prepared {
	if opts.Kind == "" {
		opts.Kind = core.CoordOrdinal
	}

	normalized := series.Normalize(raw, opts.Kind)
	return PrepareSeries(normalized, opts)
}

// PrepareSeries applies the sampling and hint stages to an already
// canonical series.
func PrepareSeries(s core.Series, opts Options) Prepared {
	sampled := decimate.Adaptive(s, decimate.Options{
		MaxPoints:         opts.MaxPoints,
		FeaturePreserving: opts.FeaturePreserving,
	})

	return Prepared{
		Coordinates:    sampled.Coordinates(),
		Values:         sampled.Values(),
		OriginalLength: len(s),
		SampledLength:  len(sampled),
		RenderHint:     decimate.SelectHint(len(sampled), opts.HintThreshold),
	}
}
