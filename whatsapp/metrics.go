package whatsapp

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector records Prometheus metrics for client operations. Attach
// one via WithMetrics; a nil collector is safe and records nothing.
type MetricsCollector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
}

// NewMetricsCollector creates a collector backed by its own registry.
func NewMetricsCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &MetricsCollector{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "whatsapp_client_requests_total",
			Help: "Total number of bridge API requests by method, endpoint and status code.",
		}, []string{"method", "endpoint", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "whatsapp_client_request_duration_seconds",
			Help:    "Bridge API request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		retriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "whatsapp_client_retries_total",
			Help: "Total number of retry attempts by endpoint.",
		}, []string{"endpoint"}),
		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "whatsapp_client_errors_total",
			Help: "Total number of terminal errors by error type.",
		}, []string{"type"}),
	}
}

// Registry exposes the underlying registry so callers can serve it via
// promhttp.HandlerFor or merge it into their own registration.
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

func (m *MetricsCollector) recordRequest(method, endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

func (m *MetricsCollector) recordRetry(endpoint string) {
	if m == nil {
		return
	}
	m.retriesTotal.WithLabelValues(endpoint).Inc()
}

func (m *MetricsCollector) recordError(errType string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(errType).Inc()
}
