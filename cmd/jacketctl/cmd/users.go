package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/jacketapp/jacketapp/internal/config"
	"github.com/jacketapp/jacketapp/internal/db"
	"github.com/jacketapp/jacketapp/internal/repository"
	"github.com/jacketapp/jacketapp/internal/validation"
)

func UsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users and their notification times",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			users, err := repository.NewUserRepository(database).All()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tPHONE\tZIPCODE\tNOTIFY AT")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					u.ID, u.Username, u.PhoneNumber, u.Zipcode,
					validation.DisplayTimeOfDay(u.PreferredTime))
			}
			return w.Flush()
		},
	}
}

func openDB(cfg *config.Config) (*sqlx.DB, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	return database, nil
}
