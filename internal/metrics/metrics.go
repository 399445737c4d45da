// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gpacalc"

// Metrics groups the server's collectors.
type Metrics struct {
	RPCRequests  *prometheus.CounterVec
	RPCDuration  *prometheus.HistogramVec
	Calculations *prometheus.CounterVec
	Visits       *prometheus.CounterVec
}

// OutcomeOK labels a calculation that produced a GPA.
const OutcomeOK = "ok"

// New creates the collectors and registers them with reg. activeSessions, if
// non-nil, is sampled on every scrape.
func New(reg prometheus.Registerer, activeSessions func() float64) *Metrics {
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "GPA calculations by outcome (ok or validation kind).",
		}, []string{"outcome"}),
		Visits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visits_recorded_total",
			Help:      "Recorded visits by counter backend and whether the local fallback was used.",
		}, []string{"backend", "fallback"}),
	}
	reg.MustRegister(m.RPCRequests, m.RPCDuration, m.Calculations, m.Visits)

	if activeSessions != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Form sessions currently held in memory.",
		}, activeSessions))
	}
	return m
}
