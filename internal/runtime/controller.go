package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/promistrio/albatros-chute/pkg/ports"
)

// Controller is the release state machine runner. It is polled at a fixed rate and
// is not safe for concurrent use; callers serialise Tick and ManualRelease.
type Controller struct {
	cfg       domain.Config
	state     State
	evaluator *Evaluator
	readiness *Readiness
	sequencer *Sequencer
	sent      domain.NotificationLog

	vehicle  ports.Vehicle
	notifier ports.Notifier
	clock    ports.Clock
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	flightID string
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithClock replaces the system clock, typically with a fake clock in tests.
func WithClock(clock ports.Clock) ControllerOption {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) ControllerOption {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithFlightID tags events and log lines with the flight identifier.
func WithFlightID(id string) ControllerOption {
	return func(c *Controller) {
		c.flightID = id
	}
}

// NewController wires the release logic to its collaborators. Every collaborator is
// injected here; nothing is looked up globally.
func NewController(cfg domain.Config, actuator ports.Actuator, vehicle ports.Vehicle, notifier ports.Notifier, opts ...ControllerOption) *Controller {
	c := &Controller{
		cfg:       cfg,
		evaluator: NewEvaluator(cfg),
		readiness: NewReadiness(cfg),
		sent:      domain.NotificationLog{},
		vehicle:   vehicle,
		notifier:  notifier,
		clock:     ports.SystemClock{},
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.flightID != "" {
		c.logger = c.logger.With("flight", c.flightID)
	}
	c.sequencer = NewSequencer(cfg, &c.state, actuator, c.logger)
	return c
}

// Tick runs one polling cycle and returns the notifications it emitted.
// The telemetry time is stamped from the controller's clock.
func (c *Controller) Tick(ctx context.Context, t domain.Telemetry) []domain.Notification {
	now := c.clock.Now()
	t.Time = now

	var out []domain.Notification

	switch c.sequencer.Update(now) {
	case StepAsserted:
		c.fireOutput(ctx, true, now)
		c.logger.Warn("parachute released", "phase", c.state.Phase())
		if c.cfg.PostReleaseMode != "" {
			c.vehicle.SetMode(ctx, c.cfg.PostReleaseMode, domain.ModeReasonCommanded)
		}
		out = c.notify(ctx, out, domain.KindReleased, "", now)
	case StepRested:
		c.fireOutput(ctx, false, now)
		c.logger.Info("parachute output returned to rest", "phase", c.state.Phase())
	}

	if c.cfg.Enabled && c.cfg.AutoEnabled && !c.state.Released {
		if trig, ok := c.evaluator.Evaluate(&c.state, c.readiness.Ready(), t); ok {
			if c.requestRelease(ctx, trig, t, &out) {
				out = c.notify(ctx, out, trig.Reason.Kind(), trig.Reason.Text(), now)
			}
		}
	}

	if c.readiness.Update(t.RelativeAltitude) {
		c.logger.Info("parachute auto release armed", "enable_alt", c.readiness.EnableAlt())
		out = c.notify(ctx, out, domain.KindAutoReady, "", now)
	}

	return out
}

// ManualRelease handles a pilot release command. It returns false only when the
// parachute is disabled or the aircraft is too low; a rejected request leaves the
// release state untouched. A request while a release is under way is accepted
// silently, and one after the hold only reports the repeat.
func (c *Controller) ManualRelease(ctx context.Context, t domain.Telemetry) (bool, []domain.Notification) {
	now := c.clock.Now()
	t.Time = now

	var out []domain.Notification

	verdict := c.evaluator.CheckManual(c.state.ReleaseState, t)
	switch verdict {
	case ManualDisabled:
		c.logger.Warn("manual release rejected", "verdict", verdict)
		return false, nil
	case ManualPending:
		return true, nil
	case ManualAlreadyReleased:
		out = c.notify(ctx, out, domain.KindReleasedAgain, "", now)
		return true, out
	case ManualTooLow:
		c.logger.Warn("manual release rejected", "verdict", verdict, "ground_alt", t.GroundAltitude, "alt_min", c.cfg.AltMin)
		out = c.notify(ctx, out, domain.KindManualTooLow, "", now)
		return false, out
	}

	out = c.notify(ctx, out, domain.KindManualRelease, "", now)
	c.requestRelease(ctx, domain.Trigger{Reason: domain.ReasonManual}, t, &out)
	return true, out
}

// requestRelease disarms, forces the recovery mode and starts the sequencer. It
// short-circuits before touching any collaborator when a release is already under
// way, so it is safe to call on every tick.
func (c *Controller) requestRelease(ctx context.Context, trig domain.Trigger, t domain.Telemetry, out *[]domain.Notification) bool {
	if c.state.Initiated {
		return false
	}

	c.vehicle.Disarm(ctx)
	c.vehicle.SetMode(ctx, c.cfg.RecoveryMode, domain.ModeReasonCommanded)
	*out = c.notify(ctx, *out, domain.KindElevonOverride, "", t.Time)

	c.sequencer.TriggerRelease(t.Time)
	c.logger.Warn("parachute release requested",
		"reason", trig.Reason,
		"detail", trig.Detail,
		"delay", c.cfg.PreReleaseDelay(),
	)

	if c.hooks.OnTrigger != nil {
		c.hooks.OnTrigger(ctx, &domain.TriggerEvent{
			EventBase: c.eventBase(domain.EventTrigger, t.Time),
			Trigger:   trig,
			Telemetry: t,
		})
	}
	return true
}

func (c *Controller) notify(ctx context.Context, out []domain.Notification, kind domain.NotificationKind, text string, now time.Time) []domain.Notification {
	if !c.sent.Mark(kind, now) {
		return out
	}

	n := domain.NewNotification(kind, text, now)
	c.notifier.Notify(ctx, n)
	c.logger.Log(ctx, logLevel(n.Severity), n.Text, "kind", kind, "severity", n.Severity)

	if c.hooks.OnNotify != nil {
		c.hooks.OnNotify(ctx, &domain.NotificationEvent{
			EventBase:    c.eventBase(domain.EventNotification, now),
			Notification: n,
		})
	}
	return append(out, n)
}

func (c *Controller) fireOutput(ctx context.Context, asserted bool, now time.Time) {
	if c.hooks.OnOutput == nil {
		return
	}
	typ := domain.EventOutputRest
	if asserted {
		typ = domain.EventOutputAssert
	}
	channel, pwm := c.sequencer.Level(asserted)
	c.hooks.OnOutput(ctx, &domain.OutputEvent{
		EventBase: c.eventBase(typ, now),
		Output:    c.cfg.Type,
		Asserted:  asserted,
		Channel:   channel,
		PWM:       pwm,
	})
}

func (c *Controller) eventBase(typ domain.EventType, now time.Time) domain.EventBase {
	return domain.EventBase{Timestamp: now, Type: typ, FlightID: c.flightID}
}

// State returns a copy of the release state.
func (c *Controller) State() domain.ReleaseState {
	return c.state.Snapshot()
}

// AutoReady reports whether the altitude trigger has been armed.
func (c *Controller) AutoReady() bool {
	return c.readiness.Ready()
}

// Notified reports whether a notification kind has been sent this flight.
func (c *Controller) Notified(kind domain.NotificationKind) bool {
	return c.sent.Fired(kind)
}

func logLevel(s domain.Severity) slog.Level {
	switch {
	case s <= domain.SeverityError:
		return slog.LevelError
	case s == domain.SeverityWarning:
		return slog.LevelWarn
	case s == domain.SeverityDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
