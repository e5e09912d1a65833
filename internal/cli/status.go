package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wanderline/synckit/internal/config"
	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/internal/store"
)

// statusReport is the one-shot diagnostics document printed by the status
// command.
type statusReport struct {
	PendingActions int64            `json:"pendingActions"`
	Cache          cacheReport      `json:"cache"`
	Collections    map[string]int64 `json:"collections"`
}

type cacheReport struct {
	Entries int64 `json:"entries"`
	Bytes   int64 `json:"bytes"`
}

// NewStatusCommand prints queue and cache diagnostics for the local database
// and exits.
func NewStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print queue and cache diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.Nop()
			if opts.Verbose {
				log = logger.NewLogger("cli")
			}

			cfg, err := config.GetConfig(opts.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
			if err != nil {
				return fmt.Errorf("connect local database: %w", err)
			}
			defer db.Close()

			st := store.NewLocalStore(db, log)

			report := statusReport{Collections: make(map[string]int64)}
			for _, collection := range []store.Collection{
				store.CollectionTrips,
				store.CollectionBookings,
				store.CollectionPosts,
				store.CollectionUserData,
			} {
				n, err := st.Count(ctx, collection)
				if err != nil {
					return fmt.Errorf("count %s: %w", collection, err)
				}
				report.Collections[string(collection)] = n
			}

			if report.PendingActions, err = st.Count(ctx, store.CollectionSyncQueue); err != nil {
				return fmt.Errorf("count pending actions: %w", err)
			}

			stats, err := st.Stats(ctx, store.CollectionCachedResponses)
			if err != nil {
				return fmt.Errorf("cache stats: %w", err)
			}
			report.Cache = cacheReport{Entries: stats.Entries, Bytes: stats.Bytes}

			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			return nil
		},
	}
}
