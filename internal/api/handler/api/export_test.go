package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/newthinker/prism/internal/api/job"
	"github.com/newthinker/prism/internal/api/response"
	"github.com/newthinker/prism/internal/dataset"
	"github.com/newthinker/prism/internal/export"
	"github.com/newthinker/prism/internal/export/archive"
	"github.com/newthinker/prism/internal/metrics"
)

func newExportHandler(t *testing.T) (*ExportHandler, *job.Store) {
	t.Helper()

	storage, err := archive.NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	jobs := job.NewStore(10, time.Hour)
	h := NewExportHandler(export.NewExporter(storage), jobs,
		dataset.NewStore(10), testDefaults(), metrics.NewRegistry())
	return h, jobs
}

func waitForJob(t *testing.T, jobs *job.Store, id string) *job.Job {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		j, err := jobs.Get(id)
		if err != nil {
			t.Fatal(err)
		}
		if j.Status == job.StatusComplete || j.Status == job.StatusFailed {
			return j
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("job did not finish")
	return nil
}

func TestExportHandler_Series(t *testing.T) {
	h, jobs := newExportHandler(t)

	body := `{"name":"equity","points":[{"x":0,"y":1},{"x":1,"y":2},{"x":2,"y":3}]}`
	req := httptest.NewRequest("POST", "/api/v1/export/series", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Series(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	id := resp.Data.(map[string]any)["id"].(string)

	j := waitForJob(t, jobs, id)
	if j.Status != job.StatusComplete {
		t.Fatalf("job failed: %v", j.Error)
	}
	result := j.Result.(map[string]string)
	if !strings.HasPrefix(result["path"], "series/") || !strings.HasSuffix(result["path"], "equity.csv") {
		t.Errorf("path = %q", result["path"])
	}
}

func TestExportHandler_Series_MissingName(t *testing.T) {
	h, _ := newExportHandler(t)

	body := `{"points":[{"x":0,"y":1}]}`
	req := httptest.NewRequest("POST", "/api/v1/export/series", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Series(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestExportHandler_Series_TraversalName(t *testing.T) {
	h, jobs := newExportHandler(t)

	body := `{"name":"../../../../../escape","points":[{"x":0,"y":1}]}`
	req := httptest.NewRequest("POST", "/api/v1/export/series", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Series(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if len(jobs.List()) != 0 {
		t.Error("traversal name should not create a job")
	}
}

func TestExportHandler_Grid(t *testing.T) {
	h, jobs := newExportHandler(t)

	body := `{"name":"heat","results":` + resultsJSON + `,"dim_a":"fast","dim_b":"slow","metric":"sharpe"}`
	req := httptest.NewRequest("POST", "/api/v1/export/grid", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Grid(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	id := resp.Data.(map[string]any)["id"].(string)

	j := waitForJob(t, jobs, id)
	if j.Status != job.StatusComplete {
		t.Fatalf("job failed: %v", j.Error)
	}
}

func TestExportHandler_Sensitivity(t *testing.T) {
	h, jobs := newExportHandler(t)

	body := `{"name":"fast-slice","results":` + resultsJSON + `,"param":"fast","metric":"sharpe"}`
	req := httptest.NewRequest("POST", "/api/v1/export/sensitivity", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Sensitivity(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	id := resp.Data.(map[string]any)["id"].(string)

	j := waitForJob(t, jobs, id)
	if j.Status != job.StatusComplete {
		t.Fatalf("job failed: %v", j.Error)
	}
	result := j.Result.(map[string]string)
	if !strings.HasPrefix(result["path"], "sensitivity/") {
		t.Errorf("path = %q", result["path"])
	}
}

func TestExportHandler_Sensitivity_MissingParam(t *testing.T) {
	h, _ := newExportHandler(t)

	body := `{"name":"fast-slice","results":` + resultsJSON + `,"metric":"sharpe"}`
	req := httptest.NewRequest("POST", "/api/v1/export/sensitivity", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Sensitivity(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestExportHandler_GetJob_Missing(t *testing.T) {
	h, _ := newExportHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/jobs/nope", nil)
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()
	h.GetJob(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
}

func TestExportHandler_ListJobs(t *testing.T) {
	h, jobs := newExportHandler(t)
	jobs.Create("export_series")

	req := httptest.NewRequest("GET", "/api/v1/jobs", nil)
	w := httptest.NewRecorder()
	h.ListJobs(w, req)

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	items := resp.Data.([]any)
	if len(items) != 1 {
		t.Errorf("len = %d", len(items))
	}
}
