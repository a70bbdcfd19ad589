// internal/api/handler/api/series.go
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/newthinker/prism/internal/api/response"
	"github.com/newthinker/prism/internal/chart"
	"github.com/newthinker/prism/internal/core"
	"github.com/newthinker/prism/internal/dataset"
	"github.com/newthinker/prism/internal/metrics"
	"github.com/newthinker/prism/internal/series"
)

// DatasetGetter is the slice of the dataset store handlers read from.
type DatasetGetter interface {
	Get(id string) (*dataset.Dataset, error)
}

// SeriesHandler handles chart preparation requests.
type SeriesHandler struct {
	datasets DatasetGetter
	defaults chart.Options
	metrics  *metrics.Registry
}

// NewSeriesHandler creates a series handler with the given preparation
// defaults.
func NewSeriesHandler(datasets DatasetGetter, defaults chart.Options, reg *metrics.Registry) *SeriesHandler {
	return &SeriesHandler{datasets: datasets, defaults: defaults, metrics: reg}
}

// PrepareRequest is the request body for POST /api/v1/series/prepare.
// Points are used directly when present; otherwise DatasetID selects a
// stored upload.
type PrepareRequest struct {
	DatasetID         string          `json:"dataset_id,omitempty"`
	Points            []core.RawPoint `json:"points,omitempty"`
	Kind              core.CoordKind  `json:"kind,omitempty"`
	MaxPoints         int             `json:"max_points,omitempty"`
	FeaturePreserving *bool           `json:"feature_preserving,omitempty"`
	HintThreshold     int             `json:"hint_threshold,omitempty"`
	SMAPeriod         int             `json:"sma_period,omitempty"`
	EMAPeriod         int             `json:"ema_period,omitempty"`
}

// Overlay is a smoothed curve drawn over the prepared series.
type Overlay struct {
	Coordinates []float64 `json:"coordinates"`
	Values      []float64 `json:"values"`
}

// PrepareResponse is the response body for POST /api/v1/series/prepare.
type PrepareResponse struct {
	chart.Prepared
	SMA *Overlay `json:"sma,omitempty"`
	EMA *Overlay `json:"ema,omitempty"`
}

// Prepare normalizes, decimates and hints a series.
func (h *SeriesHandler) Prepare(w http.ResponseWriter, r *http.Request) {
	var req PrepareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest, err))
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

	opts := h.options(req, kind)

	start := time.Now()
	normalized := series.Normalize(raw, opts.Kind)
	prepared := chart.PrepareSeries(normalized, opts)

	resp := PrepareResponse{Prepared: prepared}
	if req.SMAPeriod > 0 {
		resp.SMA = makeOverlay(series.SMA(normalized, req.SMAPeriod))
	}
	if req.EMAPeriod > 0 {
		resp.EMA = makeOverlay(series.EMA(normalized, req.EMAPeriod))
	}

	h.metrics.RecordPreparation(strategyLabel(opts, prepared),
		time.Since(start).Seconds(), prepared.OriginalLength, prepared.SampledLength)

	response.JSON(w, http.StatusOK, resp)
}

// options merges request overrides onto the configured defaults.
func (h *SeriesHandler) options(req PrepareRequest, kind core.CoordKind) chart.Options {
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
	if req.HintThreshold > 0 {
		opts.HintThreshold = req.HintThreshold
	}
	return opts
}

func makeOverlay(s core.Series) *Overlay {
	return &Overlay{Coordinates: s.Coordinates(), Values: s.Values()}
}

func strategyLabel(opts chart.Options, p chart.Prepared) string {
	if p.SampledLength == p.OriginalLength {
		return "none"
	}
	if opts.FeaturePreserving {
		return "lttb"
	}
	return "stride"
}
