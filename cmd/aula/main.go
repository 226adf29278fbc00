package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aula-lms/aula/internal/interfaces/cli/migrate"
	"github.com/aula-lms/aula/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aula",
		Short: "Aula - identity and session service",
		Long:  `Aula is the identity and session lifecycle service for the Aula learning platform, with a built-in server and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
