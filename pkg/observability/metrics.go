package observability

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// OutcomeCached labels runs answered from a store.
const OutcomeCached = "cached"

// Metrics holds the Prometheus collectors fed by Hooks.
type Metrics struct {
	Runs     *prometheus.CounterVec
	Steps    *prometheus.CounterVec
	RunSteps *prometheus.HistogramVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Finished runs by machine and outcome (verdict, error kind or cached)",
			},
			[]string{"machine", "outcome"},
		),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_steps_total",
				Help: "Transitions applied",
			},
			[]string{"machine"},
		),
		RunSteps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "turing_run_steps",
				Help:    "Transitions applied per executed run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"machine"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "turing_run_duration_seconds",
				Help: "Wall time of executed runs",
			},
			[]string{"machine"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.Steps, m.RunSteps, m.Duration)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
// Steps are counted from the run summary, so OnStep stays unset and
// engines skip per-step tracing.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunHalt: func(_ context.Context, e *domain.RunEvent) {
			if e.Cached {
				m.Runs.WithLabelValues(e.Machine, OutcomeCached).Inc()
				return
			}
			m.Runs.WithLabelValues(e.Machine, e.Verdict).Inc()
			m.observe(e)
		},
		OnRunFail: func(_ context.Context, e *domain.RunEvent) {
			m.Runs.WithLabelValues(e.Machine, domain.ErrorKind(e.Err)).Inc()
			m.observe(e)
		},
	}
}

func (m *Metrics) observe(e *domain.RunEvent) {
	m.Steps.WithLabelValues(e.Machine).Add(float64(e.Steps))
	m.RunSteps.WithLabelValues(e.Machine).Observe(float64(e.Steps))
	m.Duration.WithLabelValues(e.Machine).Observe(e.Duration.Seconds())
}
