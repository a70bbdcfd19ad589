package metrics

import (
	"net/http"
	"strings"
	"time"
)

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware returns middleware that records request metrics.
// Requests are labeled by the matched route pattern, not the raw URL
// path, so parameterized routes stay a single series.
func HTTPMiddleware(reg *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reg.InFlightInc()
			defer reg.InFlightDec()

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			reg.RecordRequest(r.Method, routeLabel(r), rec.status, time.Since(start).Seconds())
		})
	}
}

// routeLabel prefers the ServeMux pattern the request matched; requests
// that matched no route share a fixed label to keep cardinality bounded.
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	// Patterns carry the method prefix ("GET /api/v1/..."); the method
	// is already its own label.
	if _, path, ok := strings.Cut(r.Pattern, " "); ok {
		return path
	}
	return r.Pattern
}
