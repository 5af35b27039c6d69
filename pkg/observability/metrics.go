package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/promistrio/albatros-chute/pkg/domain"
)

const namespace = "chute"

// Metrics holds the collectors updated by the lifecycle hooks.
type Metrics struct {
	Triggers      *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	Outputs       *prometheus.CounterVec
	Released      prometheus.Gauge
	OutputActive  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Triggers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "release_requests_total",
			Help:      "Accepted release requests by reason.",
		}, []string{"reason"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Operator notifications by kind and severity.",
		}, []string{"kind", "severity"}),
		Outputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "output_transitions_total",
			Help:      "Release output level changes.",
		}, []string{"output", "level"}),
		Released: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "released",
			Help:      "1 once the release output has been asserted.",
		}),
		OutputActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_active",
			Help:      "1 while the release output is held asserted.",
		}),
	}

	for _, c := range []prometheus.Collector{m.Triggers, m.Notifications, m.Outputs, m.Released, m.OutputActive} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrigger: func(_ context.Context, e *domain.TriggerEvent) {
			m.Triggers.WithLabelValues(string(e.Trigger.Reason)).Inc()
		},
		OnOutput: func(_ context.Context, e *domain.OutputEvent) {
			level := "rest"
			if e.Asserted {
				level = "assert"
				m.Released.Set(1)
				m.OutputActive.Set(1)
			} else {
				m.OutputActive.Set(0)
			}
			m.Outputs.WithLabelValues(string(e.Output), level).Inc()
		},
		OnNotify: func(_ context.Context, e *domain.NotificationEvent) {
			m.Notifications.WithLabelValues(string(e.Notification.Kind), e.Notification.Severity.String()).Inc()
		},
	}
}
