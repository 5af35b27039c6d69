package cli

import (
	"context"
	"fmt"

	"github.com/promistrio/albatros-chute/internal/presentation/report"
	"github.com/promistrio/albatros-chute/internal/presentation/tui"
	"github.com/promistrio/albatros-chute/pkg/sim"
)

// RunOptions configures the 'run' command.
type RunOptions struct {
	CommonOptions
	ScenarioPath string
	Report       bool
	Debug        bool
}

// RunScenario flies a scripted scenario on a simulated clock and prints the
// operator messages, optionally followed by the post-flight report.
func RunScenario(ctx context.Context, opts RunOptions) error {
	logger, closeLog, err := createLogger(opts.CommonOptions)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := sim.Load(opts.ScenarioPath)
	if err != nil {
		return err
	}
	if opts.ConfigPath != "" || opts.ParamsPath != "" {
		cfg, err := loadConfig(opts.CommonOptions)
		if err != nil {
			return err
		}
		sc.Config = cfg
	}

	be, err := createBackends(opts.CommonOptions, logger)
	if err != nil {
		return err
	}
	defer be.close()

	simOpts := []sim.Option{sim.WithLogger(logger), sim.WithRecorder(be.recorder)}
	if opts.Debug {
		simOpts = append(simOpts, sim.WithLifecycleHooks(createDebugHooks(logger)))
	}

	res, err := sim.Run(ctx, sc, simOpts...)
	if err != nil {
		return err
	}

	profile := colorProfile(opts.Out)
	for _, n := range res.Notifications {
		fmt.Fprintln(opts.Out, tui.FormatNotification(profile, n))
	}
	printSystemMessage(opts.Out, "Flight %s: %d ticks, phase %s.", res.FlightID, res.Ticks, res.State.Phase())

	if !opts.Report {
		return nil
	}
	return renderMarkdown(opts.Out, report.Markdown(report.Flight{
		ID:     res.FlightID,
		Config: &sc.Config,
		Events: res.Events,
	}))
}
