package core

import (
	"encoding/json"
	"math"
	"time"
)

// CoordKind declares how series coordinates are interpreted.
type CoordKind string

const (
	// CoordTemporal coordinates are Unix milliseconds on a time axis.
	CoordTemporal CoordKind = "temporal"
	// CoordOrdinal coordinates are plain numbers or positional indexes.
	CoordOrdinal CoordKind = "ordinal"
)

// RawPoint is an unconstrained record from the analytics backend.
// Coordinate and value live under one of several candidate field names.
type RawPoint map[string]any

// Point is a canonical (coordinate, value) pair.
type Point struct {
	X float64
	Y float64
}

// HasValue reports whether the point carries a defined value.
func (p Point) HasValue() bool {
	return !math.IsNaN(p.Y)
}

// Series is an ordered sequence of points, non-decreasing by coordinate.
// Order is semantically meaningful and no component reshuffles it.
type Series []Point

// Coordinates returns the X values of the series.
func (s Series) Coordinates() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.X
	}
	return out
}

// Values returns the Y values of the series.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Y
	}
	return out
}

// SweepResult is one labeled outcome of a parameter sweep.
type SweepResult struct {
	Label   string             `json:"label"`
	Params  map[string]float64 `json:"params"`
	Metrics map[string]float64 `json:"metrics"`
}

// UnmarshalJSON drops explicit-null entries so a metric or parameter
// serialized as null stays absent instead of decoding to a present 0.
func (r *SweepResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Label   string              `json:"label"`
		Params  map[string]*float64 `json:"params"`
		Metrics map[string]*float64 `json:"metrics"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Label = raw.Label
	r.Params = dropNulls(raw.Params)
	r.Metrics = dropNulls(raw.Metrics)
	return nil
}

func dropNulls(in map[string]*float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for name, v := range in {
		if v != nil {
			out[name] = *v
		}
	}
	return out
}

// Metric returns the named metric, or nil if the result does not carry it.
func (r SweepResult) Metric(name string) *float64 {
	v, ok := r.Metrics[name]
	if !ok {
		return nil
	}
	return &v
}

// Param returns the named parameter value and whether it is present.
func (r SweepResult) Param(name string) (float64, bool) {
	v, ok := r.Params[name]
	return v, ok
}

// TimeToCoord converts a time to a temporal coordinate (Unix milliseconds).
func TimeToCoord(t time.Time) float64 {
	return float64(t.UnixMilli())
}

// CoordToTime converts a temporal coordinate back to a time.
func CoordToTime(x float64) time.Time {
	return time.UnixMilli(int64(x))
}
