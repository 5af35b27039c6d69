package main

import (
	"context"

	"github.com/promistrio/albatros-chute/internal/cli"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [flight-id]",
	Short: "Render the post-flight report of a recorded flight",
	Long:  `Without a flight ID, lists the flights held by the recorder.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		opts := cli.ReportOptions{CommonOptions: commonOptions(cmd), Raw: raw}
		if len(args) > 0 {
			opts.FlightID = args[0]
		}
		return cli.Report(context.Background(), opts)
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph <flight-id>",
	Short: "Export the release sequence of a flight as a Mermaid diagram",
	Long:  `Draws the configured sequence (--config or --params) with the phases the flight reached highlighted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Report(context.Background(), cli.ReportOptions{
			CommonOptions: commonOptions(cmd),
			FlightID:      args[0],
			Mermaid:       true,
		})
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(graphCmd)
	reportCmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
}
