package main

import (
	"context"

	"github.com/promistrio/albatros-chute/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Fly a scripted scenario on a simulated clock",
	Long: `Replays a YAML telemetry scenario through the release controller at the
configured tick rate, without sleeping, and prints every operator message.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		showReport, _ := cmd.Flags().GetBool("report")
		debug, _ := cmd.Flags().GetBool("debug")

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		return cli.RunScenario(sc, cli.RunOptions{
			CommonOptions: commonOptions(cmd),
			ScenarioPath:  args[0],
			Report:        showReport,
			Debug:         debug,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("report", false, "Print the post-flight report after the run")
	runCmd.Flags().Bool("debug", false, "Log every lifecycle event")
}
