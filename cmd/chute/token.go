package main

import (
	"fmt"
	"os"

	"github.com/promistrio/albatros-chute/internal/cli"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Issue an API token for a ground-station client",
	Long: `Signs a bearer token for 'serve --jwt-secret'. Roles: viewer reads status,
link may also push telemetry, pilot may also command a release.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, _ := cmd.Flags().GetString("jwt-secret")
		if secret == "" {
			secret = os.Getenv("CHUTE_JWT_SECRET")
		}
		role, _ := cmd.Flags().GetString("role")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		tok, err := cli.IssueToken(cli.TokenOptions{Secret: secret, Subject: args[0], Role: role, TTL: ttl})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().String("jwt-secret", "", "HS256 secret shared with 'serve' (or CHUTE_JWT_SECRET)")
	tokenCmd.Flags().String("role", "viewer", "Token role: viewer, link or pilot")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime; 0 never expires")
}
