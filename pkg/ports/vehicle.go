package ports

import (
	"context"

	"github.com/promistrio/albatros-chute/pkg/domain"
)

// Vehicle is the part of the autopilot a release request acts on.
type Vehicle interface {
	// Disarm stops propulsion before the chute leaves.
	Disarm(ctx context.Context)

	// SetMode switches the flight mode, tagged with the reason for the change.
	SetMode(ctx context.Context, mode, reason string)
}

// Notifier delivers text messages to the ground station.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}
