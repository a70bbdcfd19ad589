// Package export renders prepared chart data as CSV and persists it
// through pluggable archive backends.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/newthinker/prism/internal/chart"
	"github.com/newthinker/prism/internal/core"
	"github.com/newthinker/prism/internal/sweep"
)

// PreparedCSV renders a prepared series as two-column CSV.
func PreparedCSV(p chart.Prepared) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"coordinate", "value"}); err != nil {
		return nil, core.WrapError(core.ErrExportFailed, err)
	}
	for i := range p.Coordinates {
		row := []string{
			formatFloat(p.Coordinates[i]),
			formatFloat(p.Values[i]),
		}
		if err := w.Write(row); err != nil {
			return nil, core.WrapError(core.ErrExportFailed, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, core.WrapError(core.ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

// GridCSV renders a heatmap grid as CSV: a header of X axis values, then
// one row per Y value. Empty cells stay empty.
func GridCSV(g sweep.Grid2D) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(g.XAxis)+1)
	header = append(header, "")
	for _, x := range g.XAxis {
		header = append(header, formatFloat(x))
	}
	if err := w.Write(header); err != nil {
		return nil, core.WrapError(core.ErrExportFailed, err)
	}

	for yi, y := range g.YAxis {
		row := make([]string, 0, len(g.XAxis)+1)
		row = append(row, formatFloat(y))
		for xi := range g.XAxis {
			cell := ""
			if v := g.Cells[yi][xi]; v != nil {
				cell = formatFloat(*v)
			}
			row = append(row, cell)
		}
		if err := w.Write(row); err != nil {
			return nil, core.WrapError(core.ErrExportFailed, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, core.WrapError(core.ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

// SensitivityCSV renders a sensitivity sequence as two-column CSV.
func SensitivityCSV(s sweep.Sensitivity) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"parameter", "metric"}); err != nil {
		return nil, core.WrapError(core.ErrExportFailed, err)
	}
	for i := range s.ParamValues {
		metric := ""
		if v := s.MetricValues[i]; v != nil {
			metric = formatFloat(*v)
		}
		if err := w.Write([]string{formatFloat(s.ParamValues[i]), metric}); err != nil {
			return nil, core.WrapError(core.ErrExportFailed, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, core.WrapError(core.ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
