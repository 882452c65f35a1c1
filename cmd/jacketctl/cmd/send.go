package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jacketapp/jacketapp/internal/app"
	"github.com/jacketapp/jacketapp/internal/config"
	"github.com/jacketapp/jacketapp/internal/logger"
)

// SendCmd triggers the daily notification pipeline once for a user,
// outside their schedule. Useful for verifying provider credentials.
func SendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <user-id>",
		Short: "Run the notification pipeline once for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			cfg := config.Load()
			logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			a.Pipeline.Run(context.Background(), userID)
			return nil
		},
	}
}
