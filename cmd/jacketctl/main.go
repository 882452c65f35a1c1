package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jacketapp/jacketapp/cmd/jacketctl/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "jacketctl",
		Short: "Operational tools for jacketapp",
	}

	rootCmd.AddCommand(cmd.SendCmd())
	rootCmd.AddCommand(cmd.UsersCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
