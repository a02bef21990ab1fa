package profile

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for pipeline passes.
type Metrics struct {
	stageRuns     *prometheus.CounterVec   // By stage, op and status (ok/error)
	stageDuration *prometheus.HistogramVec // By stage and op
	triplesDelta  *prometheus.CounterVec   // By stage and direction (added/removed), net per run
}

// NewMetrics creates the pipeline metrics and registers them with reg.
// A nil registerer leaves the metrics unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		stageRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "presencas",
			Subsystem: "profile",
			Name:      "stage_runs_total",
			Help:      "Total number of profile stage runs",
		}, []string{"stage", "op", "status"}),

		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "presencas",
			Subsystem: "profile",
			Name:      "stage_duration_seconds",
			Help:      "Profile stage run duration in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"stage", "op"}),

		triplesDelta: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "presencas",
			Subsystem: "profile",
			Name:      "graph_triples_changed_total",
			Help:      "Net number of triples added or removed by a stage run",
		}, []string{"stage", "direction"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.stageRuns, m.stageDuration, m.triplesDelta} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(stage, op string, elapsed time.Duration, delta int, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.stageRuns.WithLabelValues(stage, op, status).Inc()
	m.stageDuration.WithLabelValues(stage, op).Observe(elapsed.Seconds())
	switch {
	case delta > 0:
		m.triplesDelta.WithLabelValues(stage, "added").Add(float64(delta))
	case delta < 0:
		m.triplesDelta.WithLabelValues(stage, "removed").Add(float64(-delta))
	}
}
