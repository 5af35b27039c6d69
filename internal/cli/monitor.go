package cli

import (
	"context"
	"time"

	"github.com/promistrio/albatros-chute/internal/presentation/monitor"
	httpAdapter "github.com/promistrio/albatros-chute/pkg/adapters/http"
)

// MonitorOptions configures the 'monitor' command.
type MonitorOptions struct {
	URL      string
	Token    string
	Interval time.Duration
}

// Monitor opens the live dashboard against a 'serve' instance.
func Monitor(ctx context.Context, opts MonitorOptions) error {
	if opts.Interval <= 0 {
		opts.Interval = 500 * time.Millisecond
	}
	return monitor.Run(ctx, httpAdapter.NewClient(opts.URL, opts.Token), opts.Interval)
}
