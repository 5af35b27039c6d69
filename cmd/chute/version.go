package main

import (
	"fmt"
	"strings"

	"github.com/promistrio/albatros-chute"
	"github.com/promistrio/albatros-chute/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of chute",
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner(cmd.OutOrStdout(), strings.TrimSpace(chute.Version))
		fmt.Fprintf(cmd.OutOrStdout(), "chute version %s\n", strings.TrimSpace(chute.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
