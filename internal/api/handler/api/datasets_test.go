package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/newthinker/prism/internal/api/response"
	"github.com/newthinker/prism/internal/dataset"
	"github.com/newthinker/prism/internal/metrics"
)

func createDataset(t *testing.T, h *DatasetsHandler, body string) string {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/v1/datasets", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Data.(map[string]any)["id"].(string)
}

func TestDatasetsHandler_CreateAndGet(t *testing.T) {
	h := NewDatasetsHandler(dataset.NewStore(10), metrics.NewRegistry())

	id := createDataset(t, h, `{"name":"run-1","kind":"temporal","points":[{"date":"2024-01-02","equity":100.5}]}`)

	req := httptest.NewRequest("GET", "/api/v1/datasets/"+id, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp.Data.(map[string]any)
	if data["name"] != "run-1" {
		t.Errorf("name = %v", data["name"])
	}
	if data["kind"] != "temporal" {
		t.Errorf("kind = %v", data["kind"])
	}
}

func TestDatasetsHandler_Create_Empty(t *testing.T) {
	h := NewDatasetsHandler(dataset.NewStore(10), metrics.NewRegistry())

	req := httptest.NewRequest("POST", "/api/v1/datasets", strings.NewReader(`{"name":"empty"}`))
	w := httptest.NewRecorder()
	h.Create(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestDatasetsHandler_List(t *testing.T) {
	h := NewDatasetsHandler(dataset.NewStore(10), metrics.NewRegistry())

	createDataset(t, h, `{"name":"a","points":[{"y":1}]}`)
	createDataset(t, h, `{"name":"b","results":[{"params":{"fast":10},"metrics":{"sharpe":1.2}}]}`)

	req := httptest.NewRequest("GET", "/api/v1/datasets", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	items := resp.Data.([]any)
	if len(items) != 2 {
		t.Fatalf("len = %d", len(items))
	}

	first := items[0].(map[string]any)
	if first["name"] != "a" || first["points"].(float64) != 1 {
		t.Errorf("first summary = %v", first)
	}
	second := items[1].(map[string]any)
	if second["results"].(float64) != 1 {
		t.Errorf("second summary = %v", second)
	}
}

func TestDatasetsHandler_Delete(t *testing.T) {
	h := NewDatasetsHandler(dataset.NewStore(10), metrics.NewRegistry())
	id := createDataset(t, h, `{"name":"a","points":[{"y":1}]}`)

	req := httptest.NewRequest("DELETE", "/api/v1/datasets/"+id, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.Delete(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/v1/datasets/"+id, nil)
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	h.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d", w.Code)
	}
}

func TestDatasetsHandler_Get_Missing(t *testing.T) {
	h := NewDatasetsHandler(dataset.NewStore(10), metrics.NewRegistry())

	req := httptest.NewRequest("GET", "/api/v1/datasets/nope", nil)
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()
	h.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
}
