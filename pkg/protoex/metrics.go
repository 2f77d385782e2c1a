package protoex

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects the server-side counters and histogram named in
// SPEC_FULL.md's domain-stack wiring: a total by (statement, status) and
// a prove-latency histogram by statement.
type Metrics struct {
	requestsTotal *prometheus.CounterVec
	proveSeconds  *prometheus.HistogramVec
}

// NewMetrics registers the protocol's Prometheus collectors. Call once
// per process; registering twice against the default registry panics,
// matching promauto's own behavior.
func NewMetrics() *Metrics {
	return &Metrics{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "privacyzk",
				Name:      "requests_total",
				Help:      "Total proof-exchange requests by statement and outcome.",
			},
			[]string{"statement", "status"},
		),
		proveSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "privacyzk",
				Name:      "prove_seconds",
				Help:      "Time spent producing one statement's proof.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"statement"},
		),
	}
}

func (m *Metrics) observe(statement, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(statement, status).Inc()
	m.proveSeconds.WithLabelValues(statement).Observe(seconds)
}
