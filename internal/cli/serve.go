package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/promistrio/albatros-chute"
	httpAdapter "github.com/promistrio/albatros-chute/pkg/adapters/http"
	"github.com/promistrio/albatros-chute/pkg/adapters/memory"
	"github.com/promistrio/albatros-chute/pkg/adapters/periph"
	"github.com/promistrio/albatros-chute/pkg/observability"
	"github.com/promistrio/albatros-chute/pkg/ports"
)

// ServeOptions configures the 'serve' command.
type ServeOptions struct {
	CommonOptions
	Addr      string
	Period    time.Duration
	RelayPins []string // indexed by relay channel
	ServoPin  string
	LockTTL   time.Duration
	JWTSecret string // enables bearer token auth on the API
	Debug     bool
}

// Serve runs the release controller against live telemetry posted over HTTP,
// until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger, closeLog, err := createLogger(opts.CommonOptions)
	if err != nil {
		return err
	}
	defer closeLog()
	cfg, err := loadConfig(opts.CommonOptions)
	if err != nil {
		return err
	}

	be, err := createBackends(opts.CommonOptions, logger)
	if err != nil {
		return err
	}
	defer be.close()

	var actuator ports.Actuator = memory.NewActuator()
	if len(opts.RelayPins) > 0 || opts.ServoPin != "" {
		gpio, err := periph.Open(opts.RelayPins, opts.ServoPin)
		if err != nil {
			return err
		}
		actuator = gpio
		logger.Info("GPIO output ready", "relays", opts.RelayPins, "servo", opts.ServoPin)
	} else {
		logger.Warn("No output pins configured, release output is simulated")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}

	streams := httpAdapter.NewStreamManager()
	vehicle := newConsoleVehicle(logger, opts.Out)

	engOpts := []chute.Option{
		chute.WithLogger(logger),
		chute.WithActuator(actuator),
		chute.WithVehicle(vehicle),
		chute.WithNotifier(vehicle),
		chute.WithRecorder(be.recorder),
		chute.WithOutputLocker(be.locker, opts.LockTTL),
		chute.WithLifecycleHooks(metrics.Hooks()),
		chute.WithLifecycleHooks(streams.Hooks()),
	}
	if opts.Debug {
		engOpts = append(engOpts, chute.WithLifecycleHooks(createDebugHooks(logger)))
	}
	eng, err := chute.New(cfg, engOpts...)
	if err != nil {
		return err
	}

	latest := &chute.LatestTelemetry{}
	apiOpts := []httpAdapter.Option{
		httpAdapter.WithTelemetry(latest),
		httpAdapter.WithRecorder(be.recorder),
		httpAdapter.WithStreams(streams),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		httpAdapter.WithLogger(logger),
	}
	if opts.JWTSecret != "" {
		auth, err := httpAdapter.NewAuthenticator([]byte(opts.JWTSecret))
		if err != nil {
			return err
		}
		apiOpts = append(apiOpts, httpAdapter.WithAuth(auth))
	} else {
		logger.Warn("API authentication disabled, any client may command a release")
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           httpAdapter.NewHandler(eng, apiOpts...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 2)
	go func() {
		printSystemMessage(opts.Out, "Flight %s: listening on %s", eng.FlightID(), srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("server error: %w", err)
		}
	}()
	go func() {
		errs <- eng.Run(ctx, latest, opts.Period)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errs:
	}

	// Give outstanding requests a deadline for completion.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Graceful shutdown did not complete", "err", err)
		_ = srv.Close()
	}
	if err := eng.Close(shutdownCtx); err != nil {
		logger.Warn("Flight recorder did not drain", "err", err)
	}

	printSystemMessage(opts.Out, "Flight %s stopped, phase %s.", eng.FlightID(), eng.State().Phase())
	return runErr
}
