package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsCollector tracks gate and login outcomes. Each API instance owns its
// registry so parallel test servers never collide on registration.
type metricsCollector struct {
	registry *prometheus.Registry

	gateRequests *prometheus.CounterVec
	logins       *prometheus.CounterVec
}

func newMetricsCollector() *metricsCollector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &metricsCollector{
		registry: reg,
		gateRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_gate_requests_total",
			Help: "Requests seen by the request gate, by outcome.",
		}, []string{"outcome"}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_logins_total",
			Help: "Login attempts, by result.",
		}, []string{"result"}),
	}
}

// recordGate counts a gate decision: excluded, allowed, unauthorized, or
// forbidden.
func (m *metricsCollector) recordGate(outcome string) {
	m.gateRequests.WithLabelValues(outcome).Inc()
}

func (m *metricsCollector) recordLogin(result string) {
	m.logins.WithLabelValues(result).Inc()
}

// MetricsHandler exposes this instance's metrics in Prometheus text format.
func (a *API) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(a.metrics.registry, promhttp.HandlerOpts{})
}
