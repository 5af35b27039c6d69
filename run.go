package chute

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/promistrio/albatros-chute/pkg/domain"
)

// DefaultTickPeriod is the polling rate the release timings were tuned for.
const DefaultTickPeriod = 100 * time.Millisecond

// TelemetrySource supplies the snapshot used on each tick.
type TelemetrySource interface {
	Telemetry() domain.Telemetry
}

// TelemetryFunc adapts a function to a TelemetrySource.
type TelemetryFunc func() domain.Telemetry

// Telemetry calls f.
func (f TelemetryFunc) Telemetry() domain.Telemetry { return f() }

// LatestTelemetry is a TelemetrySource holding the most recent snapshot pushed by
// a link (for example the HTTP adapter). The zero value reports an idle vehicle
// on the ground.
type LatestTelemetry struct {
	mu sync.RWMutex
	t  domain.Telemetry
}

// Set replaces the stored snapshot.
func (l *LatestTelemetry) Set(t domain.Telemetry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.t = t
}

// Telemetry returns the stored snapshot.
func (l *LatestTelemetry) Telemetry() domain.Telemetry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t
}

// Run ticks the engine every period until ctx is done. The sequencer depends on
// being polled, so the loop keeps ticking with stale telemetry rather than
// stalling. When an output locker is configured Run holds the output lock
// for its whole lifetime.
func (e *Engine) Run(ctx context.Context, source TelemetrySource, period time.Duration) error {
	if period <= 0 {
		period = DefaultTickPeriod
	}

	if e.locker != nil {
		key := "output:" + string(e.cfg.Type)
		unlock, err := e.locker.Lock(ctx, key, e.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to lock release output: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				e.logger.Warn("failed to release output lock", "err", err)
			}
		}()
	}

	e.logger.Info("release controller running", "period", period, "enabled", e.cfg.Enabled, "auto", e.cfg.AutoEnabled)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("release controller stopped", "released", e.State().Released)
			return nil
		case <-ticker.C:
			e.Tick(ctx, source.Telemetry())
		}
	}
}
