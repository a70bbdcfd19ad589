package core

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestPoint_HasValue(t *testing.T) {
	p := Point{X: 1, Y: 2}
	if !p.HasValue() {
		t.Error("expected point with value")
	}

	undefined := Point{X: 1, Y: math.NaN()}
	if undefined.HasValue() {
		t.Error("NaN value should be undefined")
	}
}

func TestSeries_Coordinates(t *testing.T) {
	s := Series{{X: 1, Y: 10}, {X: 2, Y: 20}, {X: 3, Y: 30}}

	coords := s.Coordinates()
	if len(coords) != 3 {
		t.Fatalf("expected 3 coordinates, got %d", len(coords))
	}
	if coords[0] != 1 || coords[2] != 3 {
		t.Errorf("coordinates = %v, want [1 2 3]", coords)
	}

	values := s.Values()
	if values[1] != 20 {
		t.Errorf("values[1] = %f, want 20", values[1])
	}
}

func TestSweepResult_Metric(t *testing.T) {
	r := SweepResult{
		Label:   "run-1",
		Params:  map[string]float64{"fast": 10, "slow": 50},
		Metrics: map[string]float64{"sharpe": 1.4},
	}

	if m := r.Metric("sharpe"); m == nil || *m != 1.4 {
		t.Errorf("Metric(sharpe) = %v, want 1.4", m)
	}
	if m := r.Metric("sortino"); m != nil {
		t.Errorf("absent metric should be nil, got %v", *m)
	}

	if v, ok := r.Param("fast"); !ok || v != 10 {
		t.Errorf("Param(fast) = %f, %v", v, ok)
	}
	if _, ok := r.Param("missing"); ok {
		t.Error("missing param should not be present")
	}
}

func TestSweepResult_UnmarshalDropsNulls(t *testing.T) {
	payload := `{
		"label": "run-1",
		"params": {"fast": 10, "slow": null},
		"metrics": {"sharpe": null, "sortino": 0.7}
	}`

	var r SweepResult
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Label != "run-1" {
		t.Errorf("label = %q", r.Label)
	}
	if m := r.Metric("sharpe"); m != nil {
		t.Errorf("null metric should be absent, got %v", *m)
	}
	if m := r.Metric("sortino"); m == nil || *m != 0.7 {
		t.Errorf("Metric(sortino) = %v, want 0.7", m)
	}
	if _, ok := r.Param("slow"); ok {
		t.Error("null param should be absent")
	}
	if v, ok := r.Param("fast"); !ok || v != 10 {
		t.Errorf("Param(fast) = %f, %v", v, ok)
	}
}

func TestTimeCoordRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
	coord := TimeToCoord(ts)
	back := CoordToTime(coord)

	if !back.Equal(ts) {
		t.Errorf("round trip = %v, want %v", back, ts)
	}
}
