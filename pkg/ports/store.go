package ports

import (
	"context"

	"github.com/promistrio/albatros-chute/pkg/domain"
)

// FlightRecorder persists the events of each flight for post-flight review.
// Recorded events are never read back into the release state.
type FlightRecorder interface {
	// Append adds an event to the end of the flight's log.
	Append(ctx context.Context, flightID string, event domain.Event) error

	// Events returns the flight's events in append order.
	// Returns domain.ErrFlightNotFound if nothing was recorded for the flight.
	Events(ctx context.Context, flightID string) ([]domain.Event, error)

	// Flights lists the IDs of recorded flights.
	Flights(ctx context.Context) ([]string, error)

	// Delete removes a flight's log.
	Delete(ctx context.Context, flightID string) error
}
