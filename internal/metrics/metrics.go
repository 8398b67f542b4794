// Package metrics exposes Prometheus collectors for settlement computations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Summary outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeInvalid    = "invalid"
	OutcomeImbalanced = "imbalanced"
	OutcomeError      = "error"
)

// Metrics holds the collectors recorded by the trip service.
type Metrics struct {
	summaries *prometheus.CounterVec
	duration  prometheus.Histogram
	transfers prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripsplit",
			Name:      "summary_computations_total",
			Help:      "Trip summaries computed, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tripsplit",
			Name:      "summary_duration_seconds",
			Help:      "Time spent loading a trip and computing its settlement.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		transfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tripsplit",
			Name:      "settlement_transfers",
			Help:      "Number of transfers in a computed settlement.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 34},
		}),
	}
	reg.MustRegister(m.summaries, m.duration, m.transfers)
	return m
}

// ObserveSummary records one summary computation. transfers is ignored
// unless outcome is OutcomeOK.
func (m *Metrics) ObserveSummary(outcome string, elapsed time.Duration, transfers int) {
	if m == nil {
		return
	}
	m.summaries.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
	if outcome == OutcomeOK {
		m.transfers.Observe(float64(transfers))
	}
}
