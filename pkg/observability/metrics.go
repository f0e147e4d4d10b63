package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Lint metrics
	ValidationsTotal   prometheus.Counter
	ValidationDuration prometheus.Histogram
	IssuesTotal        *prometheus.CounterVec
	InvalidFilesTotal  prometheus.Counter

	// Format metrics
	FormatsTotal   prometheus.Counter
	FormatDuration prometheus.Histogram

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "protovet_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "protovet_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		ValidationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "protovet_validations_total",
			Help: "Total number of validation runs",
		}),
		ValidationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "protovet_validation_duration_seconds",
			Help:    "Validation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		IssuesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "protovet_issues_total",
				Help: "Total issues reported, by rule and severity",
			},
			[]string{"rule", "severity"},
		),
		InvalidFilesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "protovet_invalid_files_total",
			Help: "Total validation runs that produced at least one error",
		}),

		FormatsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "protovet_formats_total",
			Help: "Total number of format runs",
		}),
		FormatDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "protovet_format_duration_seconds",
			Help:    "Format duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),

		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "protovet_cache_hits_total",
				Help: "Response cache hits",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "protovet_cache_misses_total",
				Help: "Response cache misses",
			},
			[]string{"cache"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ValidationsTotal,
		m.ValidationDuration,
		m.IssuesTotal,
		m.InvalidFilesTotal,
		m.FormatsTotal,
		m.FormatDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// Handler returns the /metrics endpoint handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Middleware instruments an HTTP handler with request metrics
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		m.ObserveRequest(r.Method, r.URL.Path, rw.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
