package blsapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the API client.
type Metrics struct {
	Registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration prometheus.Histogram
	RowsTotal       prometheus.Counter
	LogRowsTotal    prometheus.Counter
	ErrorsTotal     *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bls_api_requests_total",
			Help: "Total HTTP requests issued to the BLS API.",
		},
		[]string{"operation"},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bls_api_request_duration_seconds",
			Help:    "HTTP request latency for BLS API calls.",
			Buckets: prometheus.DefBuckets,
		},
	)
	rows := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bls_api_data_rows_total",
			Help: "Total data rows returned by the BLS API.",
		},
	)
	logRows := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bls_api_log_rows_total",
			Help: "Total log messages returned by the BLS API.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bls_api_errors_total",
			Help: "Total client errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(requests, requestDuration, rows, logRows, errorsTotal)

	return &Metrics{
		Registry:        registry,
		RequestsTotal:   requests,
		RequestDuration: requestDuration,
		RowsTotal:       rows,
		LogRowsTotal:    logRows,
		ErrorsTotal:     errorsTotal,
	}
}

// IncRequest increments the requests counter for an operation label.
func (m *Metrics) IncRequest(operation string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(operation).Inc()
}

// ObserveDuration records an HTTP request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// AddRows counts data rows handed back to callers.
func (m *Metrics) AddRows(n int) {
	if m == nil {
		return
	}
	m.RowsTotal.Add(float64(n))
}

// AddLogRows counts log messages handed back to callers.
func (m *Metrics) AddLogRows(n int) {
	if m == nil {
		return
	}
	m.LogRowsTotal.Add(float64(n))
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
