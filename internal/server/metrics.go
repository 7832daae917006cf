package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/primecalc/internal/metrics"
)

// Metrics serves a collector's registry and tracks scrape traffic on it.
type Metrics struct {
	handler        http.Handler
	activeRequests prometheus.Gauge
	requestsTotal  prometheus.Counter
}

// NewMetrics registers the scrape metrics on c and builds the exposition
// handler.
func NewMetrics(c *metrics.Collector) *Metrics {
	m := &Metrics{
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metrics.Namespace,
			Name:      "scrape_active_requests",
			Help:      "Metrics requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "scrape_requests_total",
			Help:      "Metrics requests served.",
		}),
	}
	reg := c.Registry()
	reg.MustRegister(m.activeRequests, m.requestsTotal)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// IncrementActiveRequests marks the start of a request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests marks the end of a request.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// WritePrometheus writes the text exposition of the registry.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
