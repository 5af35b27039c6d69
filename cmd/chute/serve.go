package main

import (
	"context"
	"fmt"
	"os"

	"github.com/promistrio/albatros-chute"
	"github.com/promistrio/albatros-chute/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the release controller behind the ground-station HTTP API",
	Long: `Starts the release controller ticking against the latest telemetry posted to
POST /telemetry. Pilot release commands arrive on POST /release; status, recorded
flights, a notification stream and Prometheus metrics are exposed alongside.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		period, _ := cmd.Flags().GetDuration("period")
		relays, _ := cmd.Flags().GetStringSlice("relay-pin")
		servo, _ := cmd.Flags().GetString("servo-pin")
		lockTTL, _ := cmd.Flags().GetDuration("lock-ttl")
		debug, _ := cmd.Flags().GetBool("debug")
		secret, _ := cmd.Flags().GetString("jwt-secret")
		if secret == "" {
			secret = os.Getenv("CHUTE_JWT_SECRET")
		}

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		err := cli.Serve(sc, cli.ServeOptions{
			CommonOptions: commonOptions(cmd),
			Addr:          ":" + port,
			Period:        period,
			RelayPins:     relays,
			ServoPin:      servo,
			LockTTL:       lockTTL,
			JWTSecret:     secret,
			Debug:         debug,
		})
		if sig := sc.Signal(); sig != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "stopped by %v\n", sig)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Duration("period", chute.DefaultTickPeriod, "Controller tick period")
	serveCmd.Flags().StringSlice("relay-pin", nil, "GPIO pin names indexed by relay channel (e.g. GPIO17,,GPIO27)")
	serveCmd.Flags().String("servo-pin", "", "PWM capable GPIO pin for the servo output")
	serveCmd.Flags().Duration("lock-ttl", 0, "Output lock expiry; 0 holds it until shutdown")
	serveCmd.Flags().String("jwt-secret", "", "HS256 secret for API tokens (or CHUTE_JWT_SECRET)")
	serveCmd.Flags().Bool("debug", false, "Log every lifecycle event")
}
