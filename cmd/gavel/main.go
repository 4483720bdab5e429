package main

import (
	"os"

	"github.com/spf13/cobra"

	"gavel/internal/interfaces/cli/migrate"
	"gavel/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gavel",
		Short: "Gavel - subscription billing backend",
		Long:  `Gavel is the billing backend for the legal assistant platform: plan catalog, payment confirmation, credit grants, and subscription renewals.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
