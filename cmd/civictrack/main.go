package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/civictrack/civictrack/internal/interfaces/cli/migrate"
	"github.com/civictrack/civictrack/internal/interfaces/cli/seed"
	"github.com/civictrack/civictrack/internal/interfaces/cli/server"
	"github.com/civictrack/civictrack/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "civictrack",
		Short:         "CivicTrack - municipal incident reporting",
		Long:          `CivicTrack tracks citizen incident reports from intake through triage, scheduling and resolution.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		newVersionCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "civictrack %s (release: %t)\n", info.Version, info.Release)
		},
	}
}
