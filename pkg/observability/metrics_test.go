package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/promistrio/albatros-chute/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnTrigger(ctx, &domain.TriggerEvent{Trigger: domain.Trigger{Reason: domain.ReasonCriticalSink}})
	hooks.OnNotify(ctx, &domain.NotificationEvent{
		Notification: domain.NewNotification(domain.KindCriticalSink, "", time.Time{}),
	})
	hooks.OnOutput(ctx, &domain.OutputEvent{Output: domain.ReleaseRelay, Asserted: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Triggers.WithLabelValues("critical_sink")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("critical_sink", domain.SeverityAlert.String())))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Released))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutputActive))

	hooks.OnOutput(ctx, &domain.OutputEvent{Output: domain.ReleaseRelay, Asserted: false})
	assert.Equal(t, 0.0, testutil.ToFloat64(m.OutputActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Released), "released stays set")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Outputs.WithLabelValues("relay", "rest")))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}
