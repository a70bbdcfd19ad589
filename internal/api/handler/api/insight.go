// internal/api/handler/api/insight.go
package api

import (
	"encoding/json"
	"net/http"

	"github.com/newthinker/prism/internal/api/response"
	"github.com/newthinker/prism/internal/core"
	"github.com/newthinker/prism/internal/insight"
	"github.com/newthinker/prism/internal/metrics"
)

// InsightHandler generates sweep commentary through the configured
// provider. The summarizer is nil when no provider is configured.
type InsightHandler struct {
	summarizer *insight.Summarizer
	provider   string
	datasets   DatasetGetter
	metrics    *metrics.Registry
}

// NewInsightHandler creates an insight handler.
func NewInsightHandler(s *insight.Summarizer, provider string, datasets DatasetGetter, reg *metrics.Registry) *InsightHandler {
	return &InsightHandler{summarizer: s, provider: provider, datasets: datasets, metrics: reg}
}

// InsightRequest is the request body for POST /api/v1/insight.
type InsightRequest struct {
	DatasetID string             `json:"dataset_id,omitempty"`
	Results   []core.SweepResult `json:"results,omitempty"`
	Metric    string             `json:"metric"`
}

// Summarize returns natural-language commentary on sweep results.
func (h *InsightHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	if h.summarizer == nil {
		response.Fail(w, core.ErrInsightDisabled)
		return
	}

	var req InsightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	if req.Metric == "" {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest, nil))
		return
	}

	results := req.Results
	if len(results) == 0 && req.DatasetID != "" {
		d, err := h.datasets.Get(req.DatasetID)
		if err != nil {
			response.Fail(w, err)
			return
		}
		results = d.Results
	}

	summary, err := h.summarizer.Summarize(r.Context(), results, req.Metric)
	if err != nil {
		h.metrics.RecordInsight(h.provider, "error")
		response.Fail(w, err)
		return
	}

	h.metrics.RecordInsight(h.provider, "ok")
	response.JSON(w, http.StatusOK, map[string]string{"summary": summary})
}
