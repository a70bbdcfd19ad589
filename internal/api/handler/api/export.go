// internal/api/handler/api/export.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/newthinker/prism/internal/api/job"
	"github.com/newthinker/prism/internal/api/response"
	"github.com/newthinker/prism/internal/chart"
	"github.com/newthinker/prism/internal/core"
	"github.com/newthinker/prism/internal/export"
	"github.com/newthinker/prism/internal/metrics"
	"github.com/newthinker/prism/internal/series"
	"github.com/newthinker/prism/internal/sweep"
)

// ExportHandler archives prepared series and grids as CSV. Exports run
// as async jobs; clients poll the job endpoint for the archive path.
type ExportHandler struct {
	exporter *export.Exporter
	jobs     *job.Store
	datasets DatasetGetter
	defaults chart.Options
	metrics  *metrics.Registry
}

// NewExportHandler creates an export handler.
func NewExportHandler(exporter *export.Exporter, jobs *job.Store, datasets DatasetGetter, defaults chart.Options, reg *metrics.Registry) *ExportHandler {
	return &ExportHandler{
		exporter: exporter,
		jobs:     jobs,
		datasets: datasets,
		defaults: defaults,
		metrics:  reg,
	}
}

// ExportSeriesRequest is the request body for POST /api/v1/export/series.
type ExportSeriesRequest struct {
	Name string `json:"name"`
	PrepareRequest
}

// ExportGridRequest is the request body for POST /api/v1/export/grid.
type ExportGridRequest struct {
	Name string `json:"name"`
	GridRequest
}

// ExportSensitivityRequest is the request body for
// POST /api/v1/export/sensitivity.
type ExportSensitivityRequest struct {
	Name string `json:"name"`
	SensitivityRequest
}

// Series prepares a series and archives it as CSV.
func (h *ExportHandler) Series(w http.ResponseWriter, r *http.Request) {
	var req ExportSeriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	if err := export.ValidateName(req.Name); err != nil {
		response.Fail(w, err)
		return
	}

	raw := req.Points
	kind := req.Kind
	if len(raw) == 0 && req.DatasetID != "" {
		d, err := h.datasets.Get(req.DatasetID)
		if err != nil {
			response.Fail(w, err)
			return
		}
		raw = d.Points
		if kind == "" {
			kind = d.Kind
		}
	}
	if len(raw) == 0 {
		response.Fail(w, core.ErrNoData)
		return
	}

	opts := h.defaults
	if kind != "" {
		opts.Kind = kind
	}
	if req.MaxPoints > 0 {
		opts.MaxPoints = req.MaxPoints
	}
	if req.FeaturePreserving != nil {
		opts.FeaturePreserving = *req.FeaturePreserving
	}

	j := h.jobs.Create("export_series")
	go h.runSeriesExport(j.ID, req.Name, raw, opts)

	h.metrics.SetJobsActive("export", h.jobs.ActiveCount())
	response.JSON(w, http.StatusAccepted, j)
}

// Grid builds a heatmap grid and archives it as CSV.
func (h *ExportHandler) Grid(w http.ResponseWriter, r *http.Request) {
	var req ExportGridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	if err := export.ValidateName(req.Name); err != nil {
		response.Fail(w, err)
		return
	}
	if req.DimA == "" || req.DimB == "" || req.Metric == "" {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest,
			fmt.Errorf("dim_a, dim_b and metric are required")))
		return
	}

	results := req.Results
	if len(results) == 0 {
		if req.DatasetID == "" {
			response.Fail(w, core.ErrNoData)
			return
		}
		d, err := h.datasets.Get(req.DatasetID)
		if err != nil {
			response.Fail(w, err)
			return
		}
		results = d.Results
	}
	if len(results) == 0 {
		response.Fail(w, core.ErrNoData)
		return
	}

	j := h.jobs.Create("export_grid")
	go h.runGridExport(j.ID, req.Name, results, req.DimA, req.DimB, req.Metric)

	h.metrics.SetJobsActive("export", h.jobs.ActiveCount())
	response.JSON(w, http.StatusAccepted, j)
}

// Sensitivity builds a sensitivity slice and archives it as CSV.
func (h *ExportHandler) Sensitivity(w http.ResponseWriter, r *http.Request) {
	var req ExportSensitivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	if err := export.ValidateName(req.Name); err != nil {
		response.Fail(w, err)
		return
	}
	if req.Param == "" || req.Metric == "" {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest,
			fmt.Errorf("param and metric are required")))
		return
	}

	results := req.Results
	if len(results) == 0 {
		if req.DatasetID == "" {
			response.Fail(w, core.ErrNoData)
			return
		}
		d, err := h.datasets.Get(req.DatasetID)
		if err != nil {
			response.Fail(w, err)
			return
		}
		results = d.Results
	}
	if len(results) == 0 {
		response.Fail(w, core.ErrNoData)
		return
	}

	j := h.jobs.Create("export_sensitivity")
	go h.runSensitivityExport(j.ID, req.Name, results, req.Param, req.Metric, req.Fixed)

	h.metrics.SetJobsActive("export", h.jobs.ActiveCount())
	response.JSON(w, http.StatusAccepted, j)
}

// GetJob returns one job by ID.
func (h *ExportHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	j, err := h.jobs.Get(r.PathValue("id"))
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, j)
}

// ListJobs returns all jobs.
func (h *ExportHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.jobs.List())
}

func (h *ExportHandler) runSeriesExport(jobID, name string, raw []core.RawPoint, opts chart.Options) {
	h.jobs.Update(jobID, func(j *job.Job) { j.Status = job.StatusRunning })

	normalized := series.Normalize(raw, opts.Kind)
	prepared := chart.PrepareSeries(normalized, opts)

	path, err := h.exporter.SaveSeries(context.Background(), name, prepared)
	h.finish(jobID, "series", path, err)
}

func (h *ExportHandler) runGridExport(jobID, name string, results []core.SweepResult, dimA, dimB, metric string) {
	h.jobs.Update(jobID, func(j *job.Job) { j.Status = job.StatusRunning })

	grid := sweep.BuildGrid(results, dimA, dimB, metric)

	path, err := h.exporter.SaveGrid(context.Background(), name, grid)
	h.finish(jobID, "grid", path, err)
}

func (h *ExportHandler) runSensitivityExport(jobID, name string, results []core.SweepResult, param, metric string, fixed map[string]float64) {
	h.jobs.Update(jobID, func(j *job.Job) { j.Status = job.StatusRunning })

	sens := sweep.BuildSensitivity(results, param, metric, fixed)

	path, err := h.exporter.SaveSensitivity(context.Background(), name, sens)
	h.finish(jobID, "sensitivity", path, err)
}

func (h *ExportHandler) finish(jobID, kind, path string, err error) {
	h.jobs.Update(jobID, func(j *job.Job) {
		if err != nil {
			j.Status = job.StatusFailed
			var coreErr *core.Error
			if !errors.As(err, &coreErr) {
				coreErr = core.WrapError(core.ErrExportFailed, err)
			}
			j.Error = coreErr
			return
		}
		j.Status = job.StatusComplete
		j.Progress = 100
		j.Result = map[string]string{"path": path}
	})

	status := "ok"
	if err != nil {
		status = "error"
	}
	h.metrics.RecordExport(kind, status)
	h.metrics.SetJobsActive("export", h.jobs.ActiveCount())
}
