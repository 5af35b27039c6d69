package runtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/promistrio/albatros-chute/internal/runtime"
	"github.com/promistrio/albatros-chute/pkg/adapters/memory"
	"github.com/promistrio/albatros-chute/pkg/domain"
)

const tickPeriod = 100 * time.Millisecond

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	ctrl     *runtime.Controller
	clock    *memory.Clock
	actuator *memory.Actuator
	vehicle  *memory.Vehicle
	ctx      context.Context
}

func newHarness(t *testing.T, cfg domain.Config, opts ...runtime.ControllerOption) *harness {
	t.Helper()
	h := &harness{
		clock:    memory.NewClock(epoch),
		actuator: memory.NewActuator(),
		vehicle:  memory.NewVehicle(),
		ctx:      context.Background(),
	}
	opts = append([]runtime.ControllerOption{runtime.WithClock(h.clock)}, opts...)
	h.ctrl = runtime.NewController(cfg, h.actuator, h.vehicle, h.vehicle, opts...)
	return h
}

// tick advances the clock by one period and polls the controller.
func (h *harness) tick(t domain.Telemetry) []domain.Notification {
	h.clock.Advance(tickPeriod)
	return h.ctrl.Tick(h.ctx, t)
}

// tickFor polls with the same telemetry for d and returns every notification.
func (h *harness) tickFor(d time.Duration, t domain.Telemetry) []domain.Notification {
	var out []domain.Notification
	for elapsed := time.Duration(0); elapsed < d; elapsed += tickPeriod {
		out = append(out, h.tick(t)...)
	}
	return out
}

func kinds(ns []domain.Notification) []domain.NotificationKind {
	out := make([]domain.NotificationKind, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Kind)
	}
	return out
}

func autoConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Enabled = true
	cfg.AutoEnabled = true
	return cfg
}

// cruise is armed level flight well above every threshold.
func cruise(alt float64) domain.Telemetry {
	return domain.Telemetry{
		RelativeAltitude:    alt,
		GroundAltitude:      alt,
		BaroAltitude:        100 + alt,
		TakeoffBaroAltitude: 100,
		Armed:               true,
		HasFlown:            true,
	}
}
