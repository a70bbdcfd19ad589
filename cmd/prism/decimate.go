package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newthinker/prism/internal/chart"
	"github.com/newthinker/prism/internal/core"
	"github.com/newthinker/prism/internal/export"
	"github.com/newthinker/prism/internal/series"
)

var (
	decimateInput     string
	decimateOutput    string
	decimateMaxPoints int
	decimateStride    bool
	decimateKind      string
)

var decimateCmd = &cobra.Command{
	Use:   "decimate",
	Short: "Decimate a series file to render-ready CSV",
	Long:  "Read an equity curve from a CSV or JSON file, downsample it and write prepared CSV",
	RunE:  runDecimate,
}

func init() {
	decimateCmd.Flags().StringVar(&decimateInput, "input", "", "input file, .csv or .json (required)")
	decimateCmd.Flags().StringVar(&decimateOutput, "output", "", "output file (default stdout)")
	decimateCmd.Flags().IntVar(&decimateMaxPoints, "max-points", 2000, "maximum output points")
	decimateCmd.Flags().BoolVar(&decimateStride, "stride", false, "use uniform stride instead of feature-preserving sampling")
	decimateCmd.Flags().StringVar(&decimateKind, "kind", "ordinal", "coordinate kind: temporal or ordinal")

	decimateCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(decimateCmd)
}

func runDecimate(cmd *cobra.Command, args []string) error {
	kind := core.CoordKind(decimateKind)
	if kind != core.CoordTemporal && kind != core.CoordOrdinal {
		return fmt.Errorf("invalid kind %q: expected temporal or ordinal", decimateKind)
	}

	raw, err := readPoints(decimateInput)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("input contains no points")
	}

	normalized := series.Normalize(raw, kind)
	prepared := chart.PrepareSeries(normalized, chart.Options{
		Kind:              kind,
		MaxPoints:         decimateMaxPoints,
		FeaturePreserving: !decimateStride,
	})

	data, err := export.PreparedCSV(prepared)
	if err != nil {
		return fmt.Errorf("rendering csv: %w", err)
	}

	if decimateOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(decimateOutput, data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("wrote %d of %d points to %s (hint: %s)\n",
		prepared.SampledLength, prepared.OriginalLength, decimateOutput, prepared.RenderHint)
	return nil
}

// readPoints loads raw records from a JSON array or a headered CSV file.
func readPoints(path string) ([]core.RawPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var points []core.RawPoint
		if err := json.Unmarshal(data, &points); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
		return points, nil
	case ".csv":
		return parseCSVPoints(data)
	default:
		return nil, fmt.Errorf("unsupported input format %q", filepath.Ext(path))
	}
}

// parseCSVPoints converts headered CSV rows into raw records. Numeric
// cells become floats so the normalizer can treat them as values.
func parseCSVPoints(data []byte) ([]core.RawPoint, error) {
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("csv needs a header row and at least one data row")
	}

	header := rows[0]
	points := make([]core.RawPoint, 0, len(rows)-1)
	for _, row := range rows[1:] {
		p := make(core.RawPoint, len(header))
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			if v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
				p[header[i]] = v
			} else {
				p[header[i]] = strings.TrimSpace(cell)
			}
		}
		points = append(points, p)
	}
	return points, nil
}
