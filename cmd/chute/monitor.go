package main

import (
	"context"
	"os"
	"time"

	"github.com/promistrio/albatros-chute/internal/cli"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor [url]",
	Short: "Watch a running controller in a live dashboard",
	Long: `Polls the status of a 'chute serve' instance (default http://localhost:8080).
Press p to command a release; it needs a pilot token when the API is protected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := "http://localhost:8080"
		if len(args) > 0 {
			url = args[0]
		}
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			token = os.Getenv("CHUTE_TOKEN")
		}
		interval, _ := cmd.Flags().GetDuration("interval")

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()
		return cli.Monitor(sc, cli.MonitorOptions{URL: url, Token: token, Interval: interval})
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().String("token", "", "API bearer token (or CHUTE_TOKEN)")
	monitorCmd.Flags().Duration("interval", 500*time.Millisecond, "Poll interval")
}
