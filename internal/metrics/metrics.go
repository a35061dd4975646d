package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	AuthAttempts    *prometheus.CounterVec
	ContentWrites   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them together with the Go
// runtime and process collectors
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		AuthAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_auth_attempts_total",
				Help: "Total number of register, login and logout attempts by outcome",
			},
			[]string{"action", "outcome"},
		),
		ContentWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_content_writes_total",
				Help: "Total number of post and comment writes by outcome",
			},
			[]string{"kind", "outcome"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blog_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	registry.MustRegister(m.AuthAttempts)
	registry.MustRegister(m.ContentWrites)
	registry.MustRegister(m.RequestDuration)

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// RecordAuth counts an auth attempt
func (m *Metrics) RecordAuth(action, outcome string) {
	m.AuthAttempts.WithLabelValues(action, outcome).Inc()
}

// RecordWrite counts a content write
func (m *Metrics) RecordWrite(kind, outcome string) {
	m.ContentWrites.WithLabelValues(kind, outcome).Inc()
}

// ObserveRequest records the latency of a completed request.
// route is the matched route pattern, not the raw path.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
