// internal/api/handler/api/datasets.go
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/newthinker/prism/internal/api/response"
	"github.com/newthinker/prism/internal/core"
	"github.com/newthinker/prism/internal/dataset"
	"github.com/newthinker/prism/internal/metrics"
)

// DatasetsHandler handles dataset upload and retrieval.
type DatasetsHandler struct {
	store   *dataset.Store
	metrics *metrics.Registry
}

// NewDatasetsHandler creates a datasets handler.
func NewDatasetsHandler(store *dataset.Store, reg *metrics.Registry) *DatasetsHandler {
	return &DatasetsHandler{store: store, metrics: reg}
}

// CreateRequest is the request body for POST /api/v1/datasets.
type CreateRequest struct {
	Name    string             `json:"name"`
	Kind    core.CoordKind     `json:"kind,omitempty"`
	Points  []core.RawPoint    `json:"points,omitempty"`
	Results []core.SweepResult `json:"results,omitempty"`
}

// Summary is the list representation of a dataset.
type Summary struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Kind      core.CoordKind `json:"kind"`
	Points    int            `json:"points"`
	Results   int            `json:"results"`
	CreatedAt time.Time      `json:"created_at"`
}

// Create stores an uploaded dataset.
func (h *DatasetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	if len(req.Points) == 0 && len(req.Results) == 0 {
		response.Fail(w, core.ErrNoData)
		return
	}

	id := h.store.Save(dataset.Dataset{
		Name:    req.Name,
		Kind:    req.Kind,
		Points:  req.Points,
		Results: req.Results,
	})
	h.metrics.SetDatasetsStored(h.store.Len())

	response.JSON(w, http.StatusCreated, map[string]string{"id": id})
}

// List returns summaries of all stored datasets.
func (h *DatasetsHandler) List(w http.ResponseWriter, r *http.Request) {
	all := h.store.List()
	out := make([]Summary, 0, len(all))
	for _, d := range all {
		out = append(out, Summary{
			ID:        d.ID,
			Name:      d.Name,
			Kind:      d.Kind,
			Points:    len(d.Points),
			Results:   len(d.Results),
			CreatedAt: d.CreatedAt,
		})
	}
	response.JSON(w, http.StatusOK, out)
}

// Get returns one dataset in full.
func (h *DatasetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, d)
}

// Delete removes one dataset.
func (h *DatasetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.PathValue("id")); err != nil {
		response.Fail(w, err)
		return
	}
	h.metrics.SetDatasetsStored(h.store.Len())
	response.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
