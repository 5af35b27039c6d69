package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/promistrio/albatros-chute/internal/presentation/graph"
	"github.com/promistrio/albatros-chute/internal/presentation/report"
)

// ReportOptions configures the 'report' command.
type ReportOptions struct {
	CommonOptions
	FlightID string
	Raw      bool // print markdown without terminal styling
	Mermaid  bool // print only the phase diagram
}

// Report renders the post-flight report of a recorded flight. Without a flight
// ID it lists the recorded flights.
func Report(ctx context.Context, opts ReportOptions) error {
	logger, closeLog, err := createLogger(opts.CommonOptions)
	if err != nil {
		return err
	}
	defer closeLog()
	be, err := createBackends(opts.CommonOptions, logger)
	if err != nil {
		return err
	}
	defer be.close()

	if opts.FlightID == "" {
		flights, err := be.recorder.Flights(ctx)
		if err != nil {
			return err
		}
		for _, id := range flights {
			fmt.Fprintln(opts.Out, id)
		}
		return nil
	}

	events, err := be.recorder.Events(ctx, opts.FlightID)
	if err != nil {
		return fmt.Errorf("flight %s: %w", opts.FlightID, err)
	}

	flight := report.Flight{ID: opts.FlightID, Events: events}
	if opts.ConfigPath != "" || opts.ParamsPath != "" {
		cfg, err := loadConfig(opts.CommonOptions)
		if err != nil {
			return err
		}
		flight.Config = &cfg
	}

	if opts.Mermaid {
		if flight.Config == nil {
			return fmt.Errorf("--mermaid needs --config or --params")
		}
		s := report.Summarize(events)
		_, err := io.WriteString(opts.Out, graph.GenerateMermaid(*flight.Config, &graph.Overlay{Current: s.Phase, Reason: s.Reason}))
		return err
	}

	md := report.Markdown(flight)
	if opts.Raw {
		_, err := io.WriteString(opts.Out, md)
		return err
	}
	return renderMarkdown(opts.Out, md)
}
