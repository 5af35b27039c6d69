package main

import (
	"fmt"

	"github.com/promistrio/albatros-chute/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a configuration file or parameter table",
	Long:  `Loads --config or --params, reports every inconsistent value, and prints the effective settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := cli.Validate(commonOptions(cmd)); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
