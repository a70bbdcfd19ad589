package export

import (
	"strings"
	"testing"

	"github.com/newthinker/prism/internal/chart"
	"github.com/newthinker/prism/internal/sweep"
)

func TestPreparedCSV(t *testing.T) {
	p := chart.Prepared{
		Coordinates: []float64{0, 1, 2},
		Values:      []float64{10, 20.5, 30},
	}

	data, err := PreparedCSV(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "coordinate,value" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != "1,20.5" {
		t.Errorf("row = %q, want 1,20.5", lines[2])
	}
}

func TestGridCSV(t *testing.T) {
	v := 1.5
	g := sweep.Grid2D{
		XAxis: []float64{10, 20},
		YAxis: []float64{50},
		Cells: [][]*float64{{&v, nil}},
	}

	data, err := GridCSV(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != ",10,20" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "50,1.5," {
		t.Errorf("row = %q, want 50,1.5, (empty cell stays empty)", lines[1])
	}
}

func TestSensitivityCSV(t *testing.T) {
	m := 0.7
	s := sweep.Sensitivity{
		ParamValues:  []float64{1, 2},
		MetricValues: []*float64{&m, nil},
	}

	data, err := SensitivityCSV(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[1] != "1,0.7" {
		t.Errorf("row = %q", lines[1])
	}
	if lines[2] != "2," {
		t.Errorf("nil metric row = %q", lines[2])
	}
}
