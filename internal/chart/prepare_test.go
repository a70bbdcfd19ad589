package chart

import (
	"testing"

	"github.com/newthinker/prism/internal/core"
	"github.com/newthinker/prism/internal/decimate"
)

func TestPrepare_SmallSeriesPassesThrough(t *testing.T) {
	raw := []core.RawPoint{
		{"x": 0.0, "y": 1.0},
		{"x": 1.0, "y": 2.0},
		{"x": 2.0, "y": 3.0},
	}

	p := Prepare(raw, DefaultOptions())

	if p.OriginalLength != 3 || p.SampledLength != 3 {
		t.Errorf("lengths = %d/%d, want 3/3", p.OriginalLength, p.SampledLength)
	}
	if p.RenderHint != decimate.RenderStandard {
		t.Errorf("hint = %s, want standard", p.RenderHint)
	}
	if len(p.Coordinates) != len(p.Values) {
		t.Error("coordinate and value sequences must be parallel")
	}
}

func TestPrepare_LargeSeriesDecimated(t *testing.T) {
	raw := make([]core.RawPoint, 5000)
	for i := range raw {
		raw[i] = core.RawPoint{"x": float64(i), "y": float64(i % 97)}
	}

	p := Prepare(raw, DefaultOptions())

	if p.OriginalLength != 5000 {
		t.Errorf("original length = %d, want 5000", p.OriginalLength)
	}
	if p.SampledLength != decimate.DefaultMaxPoints {
		t.Errorf("sampled length = %d, want %d", p.SampledLength, decimate.DefaultMaxPoints)
	}
	if p.RenderHint != decimate.RenderAccelerated {
		t.Errorf("hint = %s, want accelerated", p.RenderHint)
	}
	if p.Coordinates[0] != 0 || p.Coordinates[len(p.Coordinates)-1] != 4999 {
		t.Error("endpoints not preserved through pipeline")
	}
}

func TestPrepare_EmptyInput(t *testing.T) {
	p := Prepare(nil, DefaultOptions())

	if p.OriginalLength != 0 || p.SampledLength != 0 {
		t.Errorf("empty input should yield empty output, got %d/%d",
			p.OriginalLength, p.SampledLength)
	}
}

func TestPrepare_DefaultsKindToOrdinal(t *testing.T) {
	raw := []core.RawPoint{{"x": 3.0, "y": 1.0}}

	p := Prepare(raw, Options{})

	if p.Coordinates[0] != 3 {
		t.Errorf("ordinal coordinate reinterpreted: %f", p.Coordinates[0])
	}
}
