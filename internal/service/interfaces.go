package service

import (
	"context"

	"github.com/wanderline/synckit/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ConnectivitySource reports the current connectivity belief. It is owned by
// the network monitor and passed explicitly into the engine's drain decision;
// the engine never reads connectivity from global state.
type ConnectivitySource interface {
	Online() bool
}

// Drainer triggers one drain pass. Implemented by the sync engine; consumed
// by the network monitor and the periodic wake job.
type Drainer interface {
	Drain(ctx context.Context) error
}

// BackgroundSyncRegistrar asks the host for a background sync capability
// after a successful drain pass. The capability is optional: an error (or a
// nil registrar) must never fail the pass.
type BackgroundSyncRegistrar interface {
	Register(ctx context.Context) error
}

// Subscriber receives status snapshots. Panics are isolated per callback and
// never abort the engine operation that triggered the broadcast.
type Subscriber func(status models.SyncStatus)
