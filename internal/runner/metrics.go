package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	scenarios *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		scenarios: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uiautomation",
			Name:      "scenarios_total",
			Help:      "Finished scenarios by status and failure kind.",
		}, []string{"status", "kind"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "uiautomation",
			Name:      "scenario_duration_seconds",
			Help:      "Scenario wall time including browser start and teardown.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"browser"}),
	}
}

func (m *metrics) observe(res Result) {
	if m == nil {
		return
	}
	kind := ""
	if !res.Passed() {
		kind = res.Kind.String()
	}
	m.scenarios.WithLabelValues(string(res.Status), kind).Inc()
	m.duration.WithLabelValues(res.Browser).Observe(res.Duration.Seconds())
}
