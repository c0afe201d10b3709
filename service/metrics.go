package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the instrumentations the service layer emits. A nil Metrics
// is valid and records nothing, which keeps tests free of registry setup.
type Metrics struct {
	EventsApplied  *prometheus.CounterVec
	EventsRejected prometheus.Counter
	Candidates     *prometheus.CounterVec
	ScanDuration   prometheus.Histogram
	OpenOrders     prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fenrir",
			Name:      "events_applied_total",
			Help:      "Order events applied to the book, by kind.",
		}, []string{"kind"}),
		EventsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fenrir",
			Name:      "events_rejected_total",
			Help:      "Order events dropped as malformed or unknown.",
		}),
		Candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fenrir",
			Name:      "candidates_total",
			Help:      "Fill and trigger candidates proposed, by kind.",
		}, []string{"kind"}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fenrir",
			Name:      "scan_duration_seconds",
			Help:      "Wall time of one full market scan.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		OpenOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fenrir",
			Name:      "open_orders",
			Help:      "Open orders currently tracked across all markets.",
		}),
	}
	reg.MustRegister(
		m.EventsApplied,
		m.EventsRejected,
		m.Candidates,
		m.ScanDuration,
		m.OpenOrders,
	)
	return m
}

func (m *Metrics) applied(kind string) {
	if m != nil {
		m.EventsApplied.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) rejected() {
	if m != nil {
		m.EventsRejected.Inc()
	}
}

func (m *Metrics) candidate(kind string, n int) {
	if m != nil && n > 0 {
		m.Candidates.WithLabelValues(kind).Add(float64(n))
	}
}

func (m *Metrics) scanSeconds(s float64) {
	if m != nil {
		m.ScanDuration.Observe(s)
	}
}

func (m *Metrics) openOrders(n int) {
	if m != nil {
		m.OpenOrders.Set(float64(n))
	}
}
