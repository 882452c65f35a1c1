package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacketapp/jacketapp/internal/config"
	"github.com/jacketapp/jacketapp/internal/db"
)

func MigrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	migrate.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close()
			return db.RunMigrations(database.DB, cfg.DBDriver)
		},
	})

	migrate.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close()
			if err := db.MigrateDown(database.DB, cfg.DBDriver); err != nil {
				return err
			}
			fmt.Println("rolled back one migration")
			return nil
		},
	})

	return migrate
}
