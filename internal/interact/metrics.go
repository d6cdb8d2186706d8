package interact

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - счетчики ожиданий. Nil-значение допустимо и ничего не пишет.
type Metrics struct {
	waitSeconds    *prometheus.HistogramVec
	locateTimeouts *prometheus.CounterVec
	actions        *prometheus.CounterVec
}

// NewMetrics регистрирует метрики в reg. Один экземпляр разделяется всеми
// сценариями прогона.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		waitSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "uiautomation",
			Name:      "wait_seconds",
			Help:      "Time spent waiting for element conditions.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"condition", "outcome"}),
		locateTimeouts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uiautomation",
			Name:      "locate_timeouts_total",
			Help:      "Waits that exhausted their budget.",
		}, []string{"condition"}),
		actions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uiautomation",
			Name:      "actions_total",
			Help:      "Interactions performed, by action and result.",
		}, []string{"action", "result"}),
	}
}

const (
	outcomeOK       = "ok"
	outcomeTimeout  = "timeout"
	outcomeCanceled = "canceled"
)

func (m *Metrics) observeWait(cond Condition, elapsed time.Duration, outcome string) {
	if m == nil {
		return
	}
	if outcome == outcomeTimeout {
		m.locateTimeouts.WithLabelValues(cond.String()).Inc()
	}
	m.waitSeconds.WithLabelValues(cond.String(), outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) recordAction(action string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.actions.WithLabelValues(action, result).Inc()
}
