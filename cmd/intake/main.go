package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/intake/internal/cli"
	"github.com/example/intake/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "intake",
		Short:   "intake - community application pipeline",
		Version: version.String(),
		Long: `intake manages community applications end to end: staff define
positions with ordered questions, users answer them one at a time over DM,
and submissions land in a review channel for approval, rejection, or
escalation.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.PositionCmd())
	rootCmd.AddCommand(cli.ApplyCmd())
	rootCmd.AddCommand(cli.AnswerCmd())
	rootCmd.AddCommand(cli.WithdrawCmd())
	rootCmd.AddCommand(cli.MyStatusCmd())
	rootCmd.AddCommand(cli.ReviewCmd())
	rootCmd.AddCommand(cli.StandingCmd())
	rootCmd.AddCommand(cli.ChannelCmd())
	rootCmd.AddCommand(cli.PermsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
