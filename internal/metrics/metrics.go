package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	preparationsTotal   *prometheus.CounterVec
	preparationDuration prometheus.Histogram
	pointsReduced       prometheus.Counter
	gridsBuilt          prometheus.Counter
	sensitivitiesBuilt  prometheus.Counter
	estimatesTotal      *prometheus.CounterVec
	exportsTotal        *prometheus.CounterVec
	insightRequests     *prometheus.CounterVec
	jobsActive          *prometheus.GaugeVec
	datasetsStored      prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.preparationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prism_preparations_total",
			Help: "Total number of chart preparations",
		},
		[]string{"strategy"},
	)
	r.preparationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prism_preparation_duration_seconds",
			Help:    "Chart preparation duration in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
	)
	r.pointsReduced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prism_points_reduced_total",
			Help: "Total number of points removed by decimation",
		},
	)
	r.gridsBuilt = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prism_grids_built_total",
			Help: "Total number of heatmap grids built",
		},
	)
	r.sensitivitiesBuilt = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prism_sensitivities_built_total",
			Help: "Total number of sensitivity sequences built",
		},
	)
	r.estimatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prism_estimates_total",
			Help: "Total number of combination estimates",
		},
		[]string{"status"},
	)
	r.exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prism_exports_total",
			Help: "Total number of CSV exports",
		},
		[]string{"kind", "status"},
	)
	r.insightRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prism_insight_requests_total",
			Help: "Total number of insight requests",
		},
		[]string{"provider", "status"},
	)
	r.jobsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "prism_jobs_active",
			Help: "Number of active jobs",
		},
		[]string{"type"},
	)
	r.datasetsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "prism_datasets_stored",
			Help: "Number of datasets currently stored",
		},
	)

	reg.MustRegister(r.preparationsTotal)
	reg.MustRegister(r.preparationDuration)
	reg.MustRegister(r.pointsReduced)
	reg.MustRegister(r.gridsBuilt)
	reg.MustRegister(r.sensitivitiesBuilt)
	reg.MustRegister(r.estimatesTotal)
	reg.MustRegister(r.exportsTotal)
	reg.MustRegister(r.insightRequests)
	reg.MustRegister(r.jobsActive)
	reg.MustRegister(r.datasetsStored)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordPreparation records a chart preparation.
func (r *Registry) RecordPreparation(strategy string, duration float64, pointsIn, pointsOut int) {
	r.preparationsTotal.WithLabelValues(strategy).Inc()
	r.preparationDuration.Observe(duration)
	if pointsIn > pointsOut {
		r.pointsReduced.Add(float64(pointsIn - pointsOut))
	}
}

// RecordGrid records a heatmap grid build.
func (r *Registry) RecordGrid() {
	r.gridsBuilt.Inc()
}

// RecordSensitivity records a sensitivity sequence build.
func (r *Registry) RecordSensitivity() {
	r.sensitivitiesBuilt.Inc()
}

// RecordEstimate records a combination estimate.
func (r *Registry) RecordEstimate(status string) {
	r.estimatesTotal.WithLabelValues(status).Inc()
}

// RecordExport records a CSV export.
func (r *Registry) RecordExport(kind, status string) {
	r.exportsTotal.WithLabelValues(kind, status).Inc()
}

// RecordInsight records an insight request.
func (r *Registry) RecordInsight(provider, status string) {
	r.insightRequests.WithLabelValues(provider, status).Inc()
}

// SetJobsActive sets the number of active jobs of a type.
func (r *Registry) SetJobsActive(jobType string, count int) {
	r.jobsActive.WithLabelValues(jobType).Set(float64(count))
}

// SetDatasetsStored sets the stored dataset count.
func (r *Registry) SetDatasetsStored(count int) {
	r.datasetsStored.Set(float64(count))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
