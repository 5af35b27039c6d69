package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/promistrio/albatros-chute/pkg/adapters/memory"
	redisAdapter "github.com/promistrio/albatros-chute/pkg/adapters/redis"
	"github.com/promistrio/albatros-chute/pkg/config"
	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/promistrio/albatros-chute/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// CommonOptions are shared by every command.
type CommonOptions struct {
	ConfigPath string // YAML or JSON config file
	ParamsPath string // YAML or JSON table of CHUTE_* parameters
	RedisURL   string // redis://host:port/db; empty keeps flights in memory
	RedisTTL   time.Duration
	LogLevel   string
	LogFile    string // rotated log file; empty logs to stderr
	Out        io.Writer
}

// loadConfig resolves the flight configuration. A params table takes precedence
// over a config file; with neither the defaults are used.
func loadConfig(opts CommonOptions) (domain.Config, error) {
	switch {
	case opts.ParamsPath != "":
		return config.LoadParams(opts.ParamsPath)
	case opts.ConfigPath != "":
		return config.Load(opts.ConfigPath)
	default:
		return domain.DefaultConfig(), nil
	}
}

// backends bundles the storage the commands share.
type backends struct {
	recorder ports.FlightRecorder
	locker   ports.OutputLocker
	close    func() error
}

// createBackends connects to Redis when a URL is given, and falls back to
// in-memory adapters otherwise.
func createBackends(opts CommonOptions, logger *slog.Logger) (*backends, error) {
	if opts.RedisURL == "" {
		return &backends{
			recorder: memory.NewRecorder(),
			locker:   memory.NewLocker(),
			close:    func() error { return nil },
		}, nil
	}

	redisOpts, err := backend.ParseURL(opts.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid --redis url: %w", err)
	}
	client := backend.NewClient(redisOpts)
	logger.Info("Using Redis flight recorder", "addr", redisOpts.Addr, "db", redisOpts.DB)

	var recOpts []redisAdapter.Option
	if opts.RedisTTL > 0 {
		recOpts = append(recOpts, redisAdapter.WithTTL(opts.RedisTTL))
	}
	rec := redisAdapter.NewFromClient(client, recOpts...)
	return &backends{
		recorder: rec,
		locker:   redisAdapter.NewLocker(client, "chute:"),
		close:    rec.Close,
	}, nil
}
