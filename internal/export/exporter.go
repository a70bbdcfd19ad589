package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/newthinker/prism/internal/chart"
	"github.com/newthinker/prism/internal/core"
	"github.com/newthinker/prism/internal/export/archive"
	"github.com/newthinker/prism/internal/sweep"
)

// Exporter writes rendered CSV exports through an archive backend.
type Exporter struct {
	storage archive.Storage
}

// NewExporter creates an exporter over the given backend.
func NewExporter(storage archive.Storage) *Exporter {
	return &Exporter{storage: storage}
}

// ValidateName rejects export names that could alter the archive
// layout. Names become a single path segment and must stay one.
func ValidateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return core.WrapError(core.ErrInvalidRequest,
			fmt.Errorf("invalid export name %q", name))
	}
	return nil
}

// SaveSeries archives a prepared series under name and returns the path.
func (e *Exporter) SaveSeries(ctx context.Context, name string, p chart.Prepared) (string, error) {
	data, err := PreparedCSV(p)
	if err != nil {
		return "", err
	}
	return e.save(ctx, "series", name, data)
}

// SaveGrid archives a heatmap grid under name and returns the path.
func (e *Exporter) SaveGrid(ctx context.Context, name string, g sweep.Grid2D) (string, error) {
	data, err := GridCSV(g)
	if err != nil {
		return "", err
	}
	return e.save(ctx, "grid", name, data)
}

// SaveSensitivity archives a sensitivity slice under name and returns
// the path.
func (e *Exporter) SaveSensitivity(ctx context.Context, name string, s sweep.Sensitivity) (string, error) {
	data, err := SensitivityCSV(s)
	if err != nil {
		return "", err
	}
	return e.save(ctx, "sensitivity", name, data)
}

// List returns archived export paths under the given prefix.
func (e *Exporter) List(ctx context.Context, prefix string) ([]string, error) {
	return e.storage.List(ctx, prefix)
}

func (e *Exporter) save(ctx context.Context, kind, name string, data []byte) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	path := fmt.Sprintf("%s/%s/%s.csv", kind, time.Now().UTC().Format("2006/01/02"), name)
	if err := e.storage.Write(ctx, path, data); err != nil {
		return "", core.WrapError(core.ErrExportFailed, err)
	}
	return path, nil
}
