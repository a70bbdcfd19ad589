// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	handler "github.com/newthinker/prism/internal/api/handler/api"
	"github.com/newthinker/prism/internal/api/job"
	"github.com/newthinker/prism/internal/api/middleware"
	"github.com/newthinker/prism/internal/chart"
	"github.com/newthinker/prism/internal/dataset"
	"github.com/newthinker/prism/internal/export"
	"github.com/newthinker/prism/internal/insight"
	"github.com/newthinker/prism/internal/metrics"
)

// Server is the dashboard HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration. An empty MetricsPath disables the
// scrape endpoint.
type Config struct {
	Host        string
	Port        int
	APIKey      string
	MetricsPath string
}

// Dependencies holds the wired components handlers need.
type Dependencies struct {
	Datasets   *dataset.Store
	Jobs       *job.Store
	Exporter   *export.Exporter
	Summarizer *insight.Summarizer // nil when no provider configured
	Provider   string
	Defaults   chart.Options
	Metrics    *metrics.Registry
}

// NewServer creates a new HTTP server.
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      metrics.HTTPMiddleware(deps.Metrics)(mux),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, deps)

	return s, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(cfg Config, deps Dependencies) {
	auth := middleware.APIKeyAuth(cfg.APIKey)

	seriesHandler := handler.NewSeriesHandler(deps.Datasets, deps.Defaults, deps.Metrics)
	datasetsHandler := handler.NewDatasetsHandler(deps.Datasets, deps.Metrics)
	sweepHandler := handler.NewSweepHandler(deps.Datasets, deps.Metrics)
	exportHandler := handler.NewExportHandler(deps.Exporter, deps.Jobs, deps.Datasets, deps.Defaults, deps.Metrics)
	insightHandler := handler.NewInsightHandler(deps.Summarizer, deps.Provider, deps.Datasets, deps.Metrics)

	s.mux.Handle("POST /api/v1/series/prepare", auth(http.HandlerFunc(seriesHandler.Prepare)))

	s.mux.Handle("POST /api/v1/datasets", auth(http.HandlerFunc(datasetsHandler.Create)))
	s.mux.Handle("GET /api/v1/datasets", auth(http.HandlerFunc(datasetsHandler.List)))
	s.mux.Handle("GET /api/v1/datasets/{id}", auth(http.HandlerFunc(datasetsHandler.Get)))
	s.mux.Handle("DELETE /api/v1/datasets/{id}", auth(http.HandlerFunc(datasetsHandler.Delete)))

	s.mux.Handle("POST /api/v1/sweep/grid", auth(http.HandlerFunc(sweepHandler.Grid)))
	s.mux.Handle("POST /api/v1/sweep/sensitivity", auth(http.HandlerFunc(sweepHandler.Sensitivity)))
	s.mux.Handle("POST /api/v1/sweep/estimate", auth(http.HandlerFunc(sweepHandler.Estimate)))

	s.mux.Handle("POST /api/v1/export/series", auth(http.HandlerFunc(exportHandler.Series)))
	s.mux.Handle("POST /api/v1/export/grid", auth(http.HandlerFunc(exportHandler.Grid)))
	s.mux.Handle("POST /api/v1/export/sensitivity", auth(http.HandlerFunc(exportHandler.Sensitivity)))
	s.mux.Handle("GET /api/v1/jobs", auth(http.HandlerFunc(exportHandler.ListJobs)))
	s.mux.Handle("GET /api/v1/jobs/{id}", auth(http.HandlerFunc(exportHandler.GetJob)))

	s.mux.Handle("POST /api/v1/insight", auth(http.HandlerFunc(insightHandler.Summarize)))

	// Health and metrics stay unauthenticated for probes and scrapers.
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)

	if cfg.MetricsPath != "" {
		s.mux.Handle("GET "+cfg.MetricsPath,
			promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
