// Package client assembles the sync engine from explicit, injected parts.
// There are no package-level singletons: hosts construct an App (or wire the
// pieces themselves) and hand fakes to tests the same way.
package client

import (
	"context"
	"fmt"

	"github.com/wanderline/synckit/internal/adapter"
	"github.com/wanderline/synckit/internal/cache"
	"github.com/wanderline/synckit/internal/config"
	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/internal/netmon"
	"github.com/wanderline/synckit/internal/queue"
	"github.com/wanderline/synckit/internal/service"
	"github.com/wanderline/synckit/internal/store"
)

// App is a fully wired offline sync engine.
type App struct {
	Store     store.LocalStore
	Cache     cache.ResponseCache
	Queue     queue.ActionQueue
	Session   *service.Session
	Status    *service.StatusBroadcaster
	Engine    *service.SyncEngine
	Mutations *service.Mutations
	Monitor   *netmon.Monitor
	Wake      service.PeriodicWake

	cfg *config.StructuredConfig
	db  *store.DB
	log *logger.Logger
}

// NewApp connects the local database, applies migrations and wires every
// component. registrar may be nil when the host offers no background sync
// capability.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger, registrar service.BackgroundSyncRegistrar) (*App, error) {
	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log.GetChildLogger())
	if err != nil {
		return nil, fmt.Errorf("connect local database: %w", err)
	}

	localStore := store.NewLocalStore(db, log.GetChildLogger())
	responseCache := cache.NewResponseCache(localStore, log.GetChildLogger(), cfg.Cache.DefaultTTL)
	actionQueue := queue.NewActionQueue(localStore, log.GetChildLogger(), cfg.Queue.MaxRetries)
	session := service.NewSession(localStore, log.GetChildLogger())
	status := service.NewStatusBroadcaster(log.GetChildLogger())

	network := adapter.NewHTTPNetworkClient(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.BaseURL,
		Timeout: cfg.Adapter.RequestTimeout,
	}, log.GetChildLogger())

	// The monitor is the engine's connectivity source and the engine is
	// the monitor's drainer, so they are attached in two steps.
	monitor := netmon.NewMonitor(status, log.GetChildLogger())
	engine := service.NewSyncEngine(actionQueue, network, monitor, status, registrar, log.GetChildLogger())
	monitor.SetDrainer(engine)

	mutations := service.NewMutations(localStore, actionQueue, engine, status, session, monitor, log.GetChildLogger())

	return &App{
		Store:     localStore,
		Cache:     responseCache,
		Queue:     actionQueue,
		Session:   session,
		Status:    status,
		Engine:    engine,
		Mutations: mutations,
		Monitor:   monitor,
		Wake:      service.NewPeriodicWake(engine),
		cfg:       cfg,
		db:        db,
		log:       log,
	}, nil
}

// Run assumes connectivity at startup, starts the periodic wake job and
// blocks until ctx is cancelled. Hosts that receive real connectivity
// signals should instead feed Monitor.Run (or the Set methods) themselves.
func (a *App) Run(ctx context.Context) error {
	a.Monitor.SetOnline(ctx)

	a.Wake.Start(ctx, a.cfg.Workers.WakeInterval)
	defer a.Wake.Stop()

	<-ctx.Done()
	return nil
}

// Close releases the local database.
func (a *App) Close() error {
	return a.db.Close()
}
