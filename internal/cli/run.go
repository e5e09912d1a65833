package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wanderline/synckit/internal/client"
	"github.com/wanderline/synckit/internal/config"
	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/models"
)

// NewRunCommand starts the engine and keeps it draining until interrupted.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the sync engine until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewLoggerTo("engine", os.Stderr)

			cfg, err := config.GetConfig(opts.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := client.NewApp(ctx, cfg, log, nil)
			if err != nil {
				return fmt.Errorf("init app: %w", err)
			}
			defer app.Close()

			cancel := app.Status.Subscribe(func(status models.SyncStatus) {
				log.Info().
					Bool("online", status.IsOnline).
					Bool("syncing", status.IsSyncing).
					Int("pending", status.PendingActionCount).
					Strs("errors", status.SyncErrors).
					Msg("status changed")
			})
			defer cancel()

			return app.Run(ctx)
		},
	}
}
