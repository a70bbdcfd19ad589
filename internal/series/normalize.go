// Package series converts heterogeneous raw time-indexed records into
// canonical ordered (coordinate, value) sequences.
package series

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/newthinker/prism/internal/core"
)

// Candidate field names, in resolution order. The analytics backend has
// produced all of these spellings at one time or another.
var (
	coordFields = []string{"date", "timestamp", "x"}
	valueFields = []string{"equity", "Equity", "y", "value"}
)

// Normalize converts raw records into a canonical Series. The caller
// declares the coordinate kind: temporal coordinates are coerced to Unix
// milliseconds, ordinal coordinates stay plain numbers. Records with no
// resolvable coordinate fall back to their 0-based position. Records with
// no resolvable value get NaN; that is a data-quality signal for the
// caller, not an error. Output length always equals input length.
func Normalize(raw []core.RawPoint, kind core.CoordKind) core.Series {
	out := make(core.Series, len(raw))
	for i, rec := range raw {
		out[i] = core.Point{
			X: resolveCoord(rec, i, kind),
			Y: resolveValue(rec),
		}
	}
	return out
}

func resolveCoord(rec core.RawPoint, index int, kind core.CoordKind) float64 {
	for _, field := range coordFields {
		v, ok := rec[field]
		if !ok || v == nil {
			continue
		}
		if x, ok := coerceCoord(v, kind); ok {
			return x
		}
	}
	return float64(index)
}

func resolveValue(rec core.RawPoint) float64 {
	for _, field := range valueFields {
		v, ok := rec[field]
		if !ok || v == nil {
			continue
		}
		if y, ok := toFloat(v); ok {
			return y
		}
	}
	return math.NaN()
}

// coerceCoord converts a raw coordinate to a comparable scalar. Temporal
// coordinates become Unix milliseconds; ordinal ones are numeric as-is.
func coerceCoord(v any, kind core.CoordKind) (float64, bool) {
	switch t := v.(type) {
	case time.Time:
		return core.TimeToCoord(t), true
	case string:
		if kind == core.CoordTemporal {
			if ts, err := time.Parse(time.RFC3339, t); err == nil {
				return core.TimeToCoord(ts), true
			}
			if ts, err := time.Parse("2006-01-02", t); err == nil {
				return core.TimeToCoord(ts), true
			}
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return toFloat(v)
	}
}

// toFloat converts the numeric shapes that survive JSON decoding and
// hand-built maps alike.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
