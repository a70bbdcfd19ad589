package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// requestPathLabels returns the distinct "path" label values recorded
// on the request counter.
func requestPathLabels(t *testing.T, reg *Registry) []string {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	seen := map[string]bool{}
	var labels []string
	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "path" && !seen[lp.GetValue()] {
					seen[lp.GetValue()] = true
					labels = append(labels, lp.GetValue())
				}
			}
		}
	}
	return labels
}

func TestHTTPMiddleware_LabelsByRoutePattern(t *testing.T) {
	reg := NewRegistry()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/datasets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := HTTPMiddleware(reg)(mux)

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/datasets/"+id, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	labels := requestPathLabels(t, reg)
	if len(labels) != 1 {
		t.Fatalf("expected one path label for three IDs, got %v", labels)
	}
	if labels[0] != "/api/v1/datasets/{id}" {
		t.Errorf("path label = %q, want route pattern", labels[0])
	}
}

func TestHTTPMiddleware_UnmatchedRequests(t *testing.T) {
	reg := NewRegistry()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /known", func(w http.ResponseWriter, r *http.Request) {})
	handler := HTTPMiddleware(reg)(mux)

	for _, path := range []string{"/nope-1", "/nope-2", "/nope-3"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	labels := requestPathLabels(t, reg)
	if len(labels) != 1 || labels[0] != "unmatched" {
		t.Errorf("unmatched requests produced labels %v, want [unmatched]", labels)
	}
}

func TestHTTPMiddleware_RecordsStatus(t *testing.T) {
	reg := NewRegistry()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	handler := HTTPMiddleware(reg)(mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "status" && lp.GetValue() == "5xx" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Error("no request counted with status 5xx")
	}
}
