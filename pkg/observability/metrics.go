// Package observability turns wizard lifecycle hooks into Prometheus
// counters and structured log lines.
package observability

import (
	"log/slog"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const namespace = "formwizard"

// Metrics holds the wizard counters.
type Metrics struct {
	steps       *prometheus.CounterVec
	failures    *prometheus.CounterVec
	submissions *prometheus.CounterVec
	logger      *slog.Logger
}

// Option configures Metrics.
type Option func(*Metrics)

// WithLogger logs every lifecycle event at debug level alongside the counters.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Metrics) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMetrics creates the counters and registers them on reg. A nil reg
// leaves them unregistered, which is handy for tests that only read values.
func NewMetrics(reg prometheus.Registerer, opts ...Option) (*Metrics, error) {
	m := &Metrics{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "step_transitions_total",
				Help:      "Steps entered, by application, step and direction.",
			},
			[]string{"application", "step", "direction"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Fields that blocked navigation, by application, step and field.",
			},
			[]string{"application", "step", "field"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Completed applications, by category.",
			},
			[]string{"category"},
		),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.steps, m.failures, m.submissions} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// MustNewMetrics is NewMetrics that panics on registration errors.
func MustNewMetrics(reg prometheus.Registerer, opts ...Option) *Metrics {
	m, err := NewMetrics(reg, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Hooks returns session hooks feeding the counters. Combine with other hooks
// through wizard.Hooks.Merge.
func (m *Metrics) Hooks() wizard.Hooks {
	return wizard.Hooks{
		OnStepEnter: func(e wizard.StepEvent) {
			m.logger.Debug("step_enter", "application", e.ApplicationID, "step", e.StepID, "direction", string(e.Direction))
			m.steps.WithLabelValues(e.ApplicationID, stepLabel(e.StepID, e.StepIndex), string(e.Direction)).Inc()
		},
		OnStepLeave: func(e wizard.StepEvent) {
			m.logger.Debug("step_leave", "application", e.ApplicationID, "step", e.StepID, "direction", string(e.Direction))
		},
		OnValidationFailed: func(e wizard.ValidationEvent) {
			m.logger.Debug("validation_failed", "application", e.ApplicationID, "step", e.StepID, "fields", len(e.Failures))
			step := stepLabel(e.StepID, e.StepIndex)
			for field := range e.Failures {
				m.failures.WithLabelValues(e.ApplicationID, step, field).Inc()
			}
		},
		OnSubmit: func(s wizard.Submission) {
			m.logger.Debug("submit", "application", s.ApplicationID, "category", s.Category)
			m.submissions.WithLabelValues(s.Category).Inc()
		},
	}
}

// Option returns a session option installing Hooks.
func (m *Metrics) Option() wizard.Option {
	return wizard.WithHooks(m.Hooks())
}

// Collectors exposes the counters, mainly for tests and custom registries.
func (m *Metrics) Collectors() (steps, failures, submissions *prometheus.CounterVec) {
	return m.steps, m.failures, m.submissions
}

func stepLabel(id string, index int) string {
	if id != "" {
		return id
	}
	return strconv.Itoa(index)
}
