package ports

import (
	"context"
	"testing"
	"time"

	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunFlightRecorderContract runs a suite of tests to verify that a FlightRecorder
// implementation adheres to the defined interface contract.
func RunFlightRecorderContract(t *testing.T, rec FlightRecorder) {
	ctx := context.Background()
	flightID := "contract-flight-" + time.Now().Format("20060102150405")
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Append and Read Back In Order", func(t *testing.T) {
		first := domain.Event{
			Timestamp: base,
			Type:      domain.EventTrigger,
			Reason:    domain.ReasonCriticalSink,
			Fields:    map[string]string{"sink_rate": "6.5"},
		}
		second := domain.Event{
			Timestamp: base.Add(500 * time.Millisecond),
			Type:      domain.EventOutputAssert,
		}

		require.NoError(t, rec.Append(ctx, flightID, first))
		require.NoError(t, rec.Append(ctx, flightID, second))

		events, err := rec.Events(ctx, flightID)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, domain.EventTrigger, events[0].Type)
		assert.Equal(t, domain.ReasonCriticalSink, events[0].Reason)
		assert.Equal(t, "6.5", events[0].Fields["sink_rate"])
		assert.True(t, base.Equal(events[0].Timestamp))
		assert.Equal(t, domain.EventOutputAssert, events[1].Type)
	})

	t.Run("Unknown Flight", func(t *testing.T) {
		_, err := rec.Events(ctx, "non-existent-"+flightID)
		assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	})

	t.Run("List", func(t *testing.T) {
		other := flightID + "-2"
		require.NoError(t, rec.Append(ctx, other, domain.Event{Timestamp: base, Type: domain.EventNotification}))
		defer func() { _ = rec.Delete(ctx, other) }()

		flights, err := rec.Flights(ctx)
		require.NoError(t, err)
		assert.Contains(t, flights, flightID)
		assert.Contains(t, flights, other)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, rec.Delete(ctx, flightID), "Delete should not return error")

		_, err := rec.Events(ctx, flightID)
		assert.ErrorIs(t, err, domain.ErrFlightNotFound, "Events after Delete should return ErrFlightNotFound")

		flights, err := rec.Flights(ctx)
		require.NoError(t, err)
		assert.NotContains(t, flights, flightID)
	})
}
