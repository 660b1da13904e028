package observability

import (
	"context"
	"time"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors updated by Instrument.
type Metrics struct {
	Scopes          prometheus.Counter
	Requests        *prometheus.CounterVec
	Reports         *prometheus.CounterVec
	Actions         *prometheus.CounterVec
	Passes          prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates unregistered collectors named under namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Scopes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scopes_total",
			Help:      "Total number of scopes opened",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of answers requested, by kind",
		}, []string{"kind"}),
		Reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Total number of reports, by kind",
		}, []string{"kind"}),
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Total number of control actions, by action",
		}, []string{"action"}),
		Passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "Total number of walks started by the build driver",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent waiting for an answer",
			Buckets:   []float64{.01, .1, .5, 1, 2.5, 5, 10, 30, 60, 300},
		}, []string{"kind"}),
	}
}

// Register adds every collector to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Scopes, m.Requests, m.Reports, m.Actions, m.Passes, m.RequestDuration} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Hooks returns lifecycle hooks that count passes and the control actions
// handled by the build driver.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPassStart: func(context.Context, *domain.PassEvent) {
			m.Passes.Inc()
		},
		OnAction: func(_ context.Context, e *domain.ActionEvent) {
			m.Actions.WithLabelValues(string(e.Action.Kind)).Inc()
		},
	}
}

// Instrument wraps inner so that its calls update m.
func (m *Metrics) Instrument(inner ports.Requester) ports.Requester {
	return &instrumented{inner: inner, m: m}
}

type instrumented struct {
	inner ports.Requester
	m     *Metrics
}

func (t *instrumented) BeginScope(name string, size int) error {
	t.m.Scopes.Inc()
	return t.inner.BeginScope(name, size)
}

func (t *instrumented) EndScope() error { return t.inner.EndScope() }

func (t *instrumented) Respond(kind domain.RequestKind, label, text string) error {
	return t.inner.Respond(kind, label, text)
}

func (t *instrumented) IsInteractive() bool { return t.inner.IsInteractive() }

func (t *instrumented) Request(ctx context.Context, kind domain.RequestKind, label string, variants []string) (string, error) {
	start := time.Now()
	s, err := t.inner.Request(ctx, kind, label, variants)
	t.m.Requests.WithLabelValues(kind.String()).Inc()
	t.m.RequestDuration.WithLabelValues(kind.String()).Observe(time.Since(start).Seconds())
	return s, err
}

func (t *instrumented) Report(kind domain.ReportKind, msg string) error {
	t.m.Reports.WithLabelValues(kind.String()).Inc()
	return t.inner.Report(kind, msg)
}
