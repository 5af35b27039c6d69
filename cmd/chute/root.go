package main

import (
	"fmt"
	"os"

	"github.com/promistrio/albatros-chute/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chute",
	Short: "Chute is a parachute release controller for fixed-wing aircraft",
	Long: `Chute decides when an aircraft must come down under canopy and drives the
release output. Use 'serve' against live telemetry, 'run' to fly a scripted
scenario, and 'report' to review a recorded flight.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "YAML or JSON configuration file")
	flags.String("params", "", "YAML or JSON table of CHUTE_* autopilot parameters")
	flags.String("redis", "", "Redis URL for the flight recorder (e.g. redis://localhost:6379/0)")
	flags.Duration("redis-ttl", 0, "Expire recorded flights after this long (0 keeps them)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (default off)")
	flags.String("log-file", "", "Write logs to a rotated file instead of stderr")
}

// commonOptions reads the persistent flags.
func commonOptions(cmd *cobra.Command) cli.CommonOptions {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	paramsPath, _ := flags.GetString("params")
	redisURL, _ := flags.GetString("redis")
	redisTTL, _ := flags.GetDuration("redis-ttl")
	logLevel, _ := flags.GetString("log-level")
	logFile, _ := flags.GetString("log-file")

	return cli.CommonOptions{
		ConfigPath: configPath,
		ParamsPath: paramsPath,
		RedisURL:   redisURL,
		RedisTTL:   redisTTL,
		LogLevel:   logLevel,
		LogFile:    logFile,
		Out:        cmd.OutOrStdout(),
	}
}

