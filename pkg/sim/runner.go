package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/promistrio/albatros-chute"
	"github.com/promistrio/albatros-chute/pkg/adapters/memory"
	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/promistrio/albatros-chute/pkg/ports"
)

// Epoch is the simulated wall-clock time of the first tick.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Result summarises a simulated flight.
type Result struct {
	Scenario      string
	FlightID      string
	Ticks         int
	State         domain.ReleaseState
	AutoReady     bool
	Notifications []domain.Notification
	Writes        []memory.OutputWrite
	Modes         []memory.ModeChange
	Events        []domain.Event
}

// Option configures a simulation run.
type Option func(*runner)

type runner struct {
	logger   *slog.Logger
	recorder ports.FlightRecorder
	hooks    []domain.LifecycleHooks
}

// WithLogger passes a logger to the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(r *runner) {
		r.logger = logger
	}
}

// WithRecorder records the flight somewhere other than memory.
func WithRecorder(rec ports.FlightRecorder) Option {
	return func(r *runner) {
		r.recorder = rec
	}
}

// WithLifecycleHooks forwards hooks to the engine.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(r *runner) {
		r.hooks = append(r.hooks, h)
	}
}

// Run flies the scenario tick by tick on a simulated clock. It never sleeps.
func Run(ctx context.Context, sc Scenario, opts ...Option) (*Result, error) {
	r := &runner{recorder: memory.NewRecorder()}
	for _, opt := range opts {
		opt(r)
	}

	clock := memory.NewClock(Epoch)
	act := memory.NewActuator()
	fc := memory.NewVehicle()

	engOpts := []chute.Option{
		chute.WithClock(clock),
		chute.WithActuator(act),
		chute.WithVehicle(fc),
		chute.WithNotifier(fc),
		chute.WithRecorder(r.recorder),
	}
	if r.logger != nil {
		engOpts = append(engOpts, chute.WithLogger(r.logger))
	}
	for _, h := range r.hooks {
		engOpts = append(engOpts, chute.WithLifecycleHooks(h))
	}

	eng, err := chute.New(sc.Config, engOpts...)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	defer eng.Close(context.WithoutCancel(ctx))

	res := &Result{Scenario: sc.Name, FlightID: eng.FlightID()}
	commands := sc.Commands

	for elapsed := time.Duration(0); elapsed <= sc.Duration; elapsed += sc.Period {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		clock.Set(Epoch.Add(elapsed))

		t := sc.At(elapsed)
		if sc.DisarmFeedback && !fc.Armed() {
			t.Armed = false
		}

		res.Notifications = append(res.Notifications, eng.Tick(ctx, t)...)
		res.Ticks++

		for len(commands) > 0 && commands[0].At <= elapsed {
			if commands[0].ManualRelease {
				_, notes := eng.ManualRelease(ctx, t)
				res.Notifications = append(res.Notifications, notes...)
			}
			commands = commands[1:]
		}
	}

	res.State = eng.State()
	res.AutoReady = eng.AutoReady()
	res.Writes = act.Writes()
	res.Modes = fc.Modes()

	events, err := eng.Events(ctx)
	if err == nil {
		res.Events = events
	}
	return res, nil
}
