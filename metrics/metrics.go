// Package metrics exposes the relay's Prometheus instrumentation: request
// counters, forwarding latency, and reject counts by ILP error code,
// namespaced under the ilprelay_* prefix.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process's Prometheus collectors. The zero value is
// not usable; construct with New.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	forwardDuration prometheus.Histogram
	rejectsTotal    *prometheus.CounterVec
	routeMisses     prometheus.Counter
}

// New creates a Metrics instance registered against a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ilprelay_requests_total",
			Help: "Total number of ILP Prepare packets received.",
		}, []string{"outcome"}),
		forwardDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ilprelay_forward_duration_seconds",
			Help:    "Time spent forwarding a Prepare to its next hop.",
			Buckets: prometheus.DefBuckets,
		}),
		rejectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ilprelay_rejects_total",
			Help: "Total number of Reject packets returned, by ILP error code.",
		}, []string{"code"}),
		routeMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ilprelay_route_misses_total",
			Help: "Total number of Prepares with no matching route.",
		}),
	}

	reg.MustRegister(m.requestsTotal, m.forwardDuration, m.rejectsTotal, m.routeMisses)
	return m
}

// IncRequests records one received Prepare, tagged "fulfill" or "reject".
func (m *Metrics) IncRequests(outcome string) {
	m.requestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveForwardDuration records the time taken for one outbound forward.
func (m *Metrics) ObserveForwardDuration(seconds float64) {
	m.forwardDuration.Observe(seconds)
}

// IncRejects records one Reject, tagged by its 3-character ILP code.
func (m *Metrics) IncRejects(code string) {
	m.rejectsTotal.WithLabelValues(code).Inc()
}

// IncRouteMisses records one Prepare with no matching route.
func (m *Metrics) IncRouteMisses() {
	m.routeMisses.Inc()
}

// Handler returns the HTTP handler serving this instance's metrics in
// the Prometheus text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
