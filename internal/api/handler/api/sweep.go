// internal/api/handler/api/sweep.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/newthinker/prism/internal/api/response"
	"github.com/newthinker/prism/internal/core"
	"github.com/newthinker/prism/internal/metrics"
	"github.com/newthinker/prism/internal/sweep"
)

// SweepHandler handles grid, sensitivity and estimate requests.
type SweepHandler struct {
	datasets DatasetGetter
	metrics  *metrics.Registry
}

// NewSweepHandler creates a sweep handler.
func NewSweepHandler(datasets DatasetGetter, reg *metrics.Registry) *SweepHandler {
	return &SweepHandler{datasets: datasets, metrics: reg}
}

// GridRequest is the request body for POST /api/v1/sweep/grid.
type GridRequest struct {
	DatasetID string             `json:"dataset_id,omitempty"`
	Results   []core.SweepResult `json:"results,omitempty"`
	DimA      string             `json:"dim_a"`
	DimB      string             `json:"dim_b"`
	Metric    string             `json:"metric"`
}

// SensitivityRequest is the request body for POST /api/v1/sweep/sensitivity.
type SensitivityRequest struct {
	DatasetID string             `json:"dataset_id,omitempty"`
	Results   []core.SweepResult `json:"results,omitempty"`
	Param     string             `json:"param"`
	Metric    string             `json:"metric"`
	Fixed     map[string]float64 `json:"fixed,omitempty"`
}

// EstimateRequest is the request body for POST /api/v1/sweep/estimate.
type EstimateRequest struct {
	Ranges map[string]sweep.Range `json:"ranges"`
}

// Grid reconstructs a dense heatmap matrix from sweep results.
func (h *SweepHandler) Grid(w http.ResponseWriter, r *http.Request) {
	var req GridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	if req.DimA == "" || req.DimB == "" || req.Metric == "" {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest,
			fmt.Errorf("dim_a, dim_b and metric are required")))
		return
	}

	results, err := h.results(req.DatasetID, req.Results)
	if err != nil {
		response.Fail(w, err)
		return
	}

	grid := sweep.BuildGrid(results, req.DimA, req.DimB, req.Metric)
	h.metrics.RecordGrid()
	response.JSON(w, http.StatusOK, grid)
}

// Sensitivity builds a 1-D metric slice along one parameter.
func (h *SweepHandler) Sensitivity(w http.ResponseWriter, r *http.Request) {
	var req SensitivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	if req.Param == "" || req.Metric == "" {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest,
			fmt.Errorf("param and metric are required")))
		return
	}

	results, err := h.results(req.DatasetID, req.Results)
	if err != nil {
		response.Fail(w, err)
		return
	}

	sens := sweep.BuildSensitivity(results, req.Param, req.Metric, req.Fixed)
	h.metrics.RecordSensitivity()
	response.JSON(w, http.StatusOK, sens)
}

// Estimate sizes a parameter search space before a sweep is launched.
func (h *SweepHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest, err))
		return
	}

	total, err := sweep.Estimate(req.Ranges)
	if err != nil {
		h.metrics.RecordEstimate("error")
		response.Fail(w, err)
		return
	}

	h.metrics.RecordEstimate("ok")
	response.JSON(w, http.StatusOK, map[string]int64{"combinations": total})
}

// results resolves the result set from the inline payload or a stored
// dataset. Inline results win when both are present.
func (h *SweepHandler) results(datasetID string, inline []core.SweepResult) ([]core.SweepResult, error) {
	if len(inline) > 0 {
		return inline, nil
	}
	if datasetID == "" {
		return nil, core.ErrNoData
	}
	d, err := h.datasets.Get(datasetID)
	if err != nil {
		return nil, err
	}
	if len(d.Results) == 0 {
		return nil, core.WrapError(core.ErrNoData,
			errors.New("dataset has no sweep results"))
	}
	return d.Results, nil
}
