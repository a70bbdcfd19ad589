package series

import (
	"testing"
	"time"

	"github.com/newthinker/prism/internal/core"
)

func TestNormalize_DateField(t *testing.T) {
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	raw := []core.RawPoint{
		{"date": ts, "equity": 100.0},
		{"date": ts.AddDate(0, 0, 1), "equity": 101.5},
	}

	s := Normalize(raw, core.CoordTemporal)

	if len(s) != 2 {
		t.Fatalf("expected 2 points, got %d", len(s))
	}
	if s[0].X != core.TimeToCoord(ts) {
		t.Errorf("coordinate = %f, want %f", s[0].X, core.TimeToCoord(ts))
	}
	if s[1].Y != 101.5 {
		t.Errorf("value = %f, want 101.5", s[1].Y)
	}
}

func TestNormalize_DateString(t *testing.T) {
	raw := []core.RawPoint{
		{"date": "2024-01-02", "equity": 100.0},
	}

	s := Normalize(raw, core.CoordTemporal)

	want := core.TimeToCoord(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	if s[0].X != want {
		t.Errorf("coordinate = %f, want %f", s[0].X, want)
	}
}

func TestNormalize_FallbackOrder(t *testing.T) {
	// date wins over timestamp, timestamp over x
	raw := []core.RawPoint{
		{"timestamp": 5.0, "x": 9.0, "y": 1.0},
		{"x": 9.0, "y": 2.0},
	}

	s := Normalize(raw, core.CoordOrdinal)

	if s[0].X != 5 {
		t.Errorf("timestamp should win over x, got %f", s[0].X)
	}
	if s[1].X != 9 {
		t.Errorf("x should be used when timestamp absent, got %f", s[1].X)
	}
}

func TestNormalize_PositionalIndex(t *testing.T) {
	raw := []core.RawPoint{
		{"value": 10.0},
		{"value": 20.0},
		{"value": 30.0},
	}

	s := Normalize(raw, core.CoordOrdinal)

	for i, p := range s {
		if p.X != float64(i) {
			t.Errorf("point %d coordinate = %f, want %d", i, p.X, i)
		}
	}
}

func TestNormalize_ValuePrecedence(t *testing.T) {
	raw := []core.RawPoint{
		{"equity": 1.0, "Equity": 2.0, "y": 3.0, "value": 4.0},
		{"Equity": 2.0, "y": 3.0, "value": 4.0},
		{"y": 3.0, "value": 4.0},
		{"value": 4.0},
	}

	s := Normalize(raw, core.CoordOrdinal)

	want := []float64{1, 2, 3, 4}
	for i, w := range want {
		if s[i].Y != w {
			t.Errorf("point %d value = %f, want %f", i, s[i].Y, w)
		}
	}
}

func TestNormalize_MissingValueIsNaN(t *testing.T) {
	raw := []core.RawPoint{
		{"x": 1.0},
	}

	s := Normalize(raw, core.CoordOrdinal)

	if len(s) != 1 {
		t.Fatal("normalization must never drop points")
	}
	if s[0].HasValue() {
		t.Error("missing value fields should yield an undefined value")
	}
}

func TestNormalize_IntegerValues(t *testing.T) {
	raw := []core.RawPoint{
		{"x": 0.0, "y": 42},
		{"x": 1.0, "y": int64(43)},
	}

	s := Normalize(raw, core.CoordOrdinal)

	if s[0].Y != 42 || s[1].Y != 43 {
		t.Errorf("integer values not coerced: %v", s.Values())
	}
}

func TestNormalize_OrdinalKeepsPlainNumbers(t *testing.T) {
	// Ordinal series must not be reinterpreted as calendar instants.
	raw := []core.RawPoint{
		{"x": 3.0, "y": 1.0},
	}

	s := Normalize(raw, core.CoordOrdinal)

	if s[0].X != 3 {
		t.Errorf("ordinal coordinate = %f, want 3", s[0].X)
	}
}

func TestNormalize_Empty(t *testing.T) {
	s := Normalize(nil, core.CoordOrdinal)
	if len(s) != 0 {
		t.Errorf("expected empty series, got %d points", len(s))
	}
}
