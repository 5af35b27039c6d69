package chute

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/promistrio/albatros-chute/internal/runtime"
	"github.com/promistrio/albatros-chute/pkg/adapters/memory"
	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/promistrio/albatros-chute/pkg/ports"
)

// Engine is the high-level entry point for the parachute controller.
// It wraps the internal runtime and is safe for concurrent use: calls are
// serialised so a ground-station API can issue commands while the tick loop runs.
type Engine struct {
	mu   sync.Mutex
	ctrl *runtime.Controller

	cfg      domain.Config
	flightID string
	actuator ports.Actuator
	vehicle  ports.Vehicle
	notifier ports.Notifier
	clock    ports.Clock
	recorder ports.FlightRecorder
	locker   ports.OutputLocker
	lockTTL  time.Duration
	hooks    []domain.LifecycleHooks
	logger   *slog.Logger

	recordBuffer  int
	recordTimeout time.Duration
	queue         *recordQueue
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock replaces the system clock.
func WithClock(clock ports.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithActuator sets the release output driver.
func WithActuator(a ports.Actuator) Option {
	return func(e *Engine) {
		e.actuator = a
	}
}

// WithVehicle sets the autopilot command sink.
func WithVehicle(v ports.Vehicle) Option {
	return func(e *Engine) {
		e.vehicle = v
	}
}

// WithNotifier sets the operator message sink.
func WithNotifier(n ports.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithLifecycleHooks registers observability hooks. It may be given more than
// once; hooks run in registration order after the flight recorder.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hooks)
	}
}

// WithRecorder sets where flight events are appended.
func WithRecorder(r ports.FlightRecorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithFlightID overrides the generated flight identifier.
func WithFlightID(id string) Option {
	return func(e *Engine) {
		e.flightID = id
	}
}

// WithOutputLocker makes Run hold an exclusive lock on the release output for its
// whole lifetime.
func WithOutputLocker(l ports.OutputLocker, ttl time.Duration) Option {
	return func(e *Engine) {
		e.locker = l
		e.lockTTL = ttl
	}
}

// WithRecorderBuffer bounds how many flight events may wait for the recorder.
// Events arriving while the buffer is full are dropped and logged.
func WithRecorderBuffer(size int) Option {
	return func(e *Engine) {
		e.recordBuffer = size
	}
}

// WithRecorderTimeout bounds each append to the recorder.
func WithRecorderTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.recordTimeout = d
	}
}

// New validates cfg and builds an Engine for a single flight.
// Collaborators that are not supplied default to in-memory adapters.
func New(cfg domain.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	eng := &Engine{
		cfg:           cfg,
		recordBuffer:  DefaultRecorderBuffer,
		recordTimeout: DefaultRecorderTimeout,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.clock == nil {
		eng.clock = ports.SystemClock{}
	}
	if eng.actuator == nil {
		eng.actuator = memory.NewActuator()
	}
	if eng.vehicle == nil || eng.notifier == nil {
		sim := memory.NewVehicle()
		if eng.vehicle == nil {
			eng.vehicle = sim
		}
		if eng.notifier == nil {
			eng.notifier = sim
		}
	}
	if eng.recorder == nil {
		eng.recorder = memory.NewRecorder()
	}
	if eng.flightID == "" {
		eng.flightID = uuid.NewString()
	}
	eng.queue = newRecordQueue(eng.recorder, eng.flightID, eng.recordBuffer, eng.recordTimeout, eng.logger)

	eng.ctrl = runtime.NewController(cfg, eng.actuator, eng.vehicle, eng.notifier,
		runtime.WithClock(eng.clock),
		runtime.WithLogger(eng.logger),
		runtime.WithFlightID(eng.flightID),
		runtime.WithLifecycleHooks(eng.combinedHooks()),
	)
	return eng, nil
}

// Tick runs one polling cycle with the latest telemetry.
func (e *Engine) Tick(ctx context.Context, t domain.Telemetry) []domain.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl.Tick(ctx, t)
}

// ManualRelease handles a pilot release command. It reports whether the request
// was accepted.
func (e *Engine) ManualRelease(ctx context.Context, t domain.Telemetry) (bool, []domain.Notification) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl.ManualRelease(ctx, t)
}

// State returns a copy of the release state.
func (e *Engine) State() domain.ReleaseState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl.State()
}

// AutoReady reports whether the altitude trigger has been armed.
func (e *Engine) AutoReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl.AutoReady()
}

// FlightID identifies this flight in logs and recorded events.
func (e *Engine) FlightID() string {
	return e.flightID
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() domain.Config {
	return e.cfg
}

// Recorder returns the flight recorder events are appended to.
func (e *Engine) Recorder() ports.FlightRecorder {
	return e.recorder
}

// Events waits for pending events to reach the recorder, then returns the events
// recorded for this flight so far.
func (e *Engine) Events(ctx context.Context) ([]domain.Event, error) {
	if err := e.queue.flush(ctx); err != nil {
		return nil, fmt.Errorf("flight %s: %w", e.flightID, err)
	}
	events, err := e.recorder.Events(ctx, e.flightID)
	if err != nil {
		return nil, fmt.Errorf("flight %s: %w", e.flightID, err)
	}
	return events, nil
}

// Close stops the background recorder after the pending events are written, or
// when ctx is done. Events produced after Close are not recorded.
func (e *Engine) Close(ctx context.Context) error {
	return e.queue.close(ctx)
}
