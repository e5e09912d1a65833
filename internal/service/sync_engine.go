package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/wanderline/synckit/internal/adapter"
	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/internal/queue"
	"github.com/wanderline/synckit/models"
)

// SyncEngine drains the action queue against the network. Its lifecycle is
// Idle → Draining → Idle; the draining guard makes passes single-flight, so
// enqueue, reconnect and periodic wake triggers can all call Drain without
// coordination.
type SyncEngine struct {
	queue        queue.ActionQueue
	network      adapter.NetworkClient
	connectivity ConnectivitySource
	status       *StatusBroadcaster
	registrar    BackgroundSyncRegistrar
	logger       *logger.Logger

	draining atomic.Bool
	now      func() time.Time
}

// NewSyncEngine wires a SyncEngine. registrar may be nil when the host has
// no background sync capability.
func NewSyncEngine(
	q queue.ActionQueue,
	network adapter.NetworkClient,
	connectivity ConnectivitySource,
	status *StatusBroadcaster,
	registrar BackgroundSyncRegistrar,
	log *logger.Logger,
) *SyncEngine {
	return &SyncEngine{
		queue:        q,
		network:      network,
		connectivity: connectivity,
		status:       status,
		registrar:    registrar,
		logger:       log,
		now:          time.Now,
	}
}

// Drain replays all currently queued actions in FIFO order. Calling it while
// offline or while another pass is running is a no-op, not an error.
//
// Within a pass each action gets exactly one attempt; retries happen on
// later passes, so backoff across attempts is implicit in whatever external
// event (enqueue, reconnect, periodic wake) triggers the next pass.
func (e *SyncEngine) Drain(ctx context.Context) error {
	if !e.connectivity.Online() {
		e.logger.Debug().Msg("drain skipped: offline")
		return nil
	}
	if !e.draining.CompareAndSwap(false, true) {
		e.logger.Debug().Msg("drain skipped: pass already in flight")
		return nil
	}
	defer e.draining.Store(false)

	e.status.Update(func(s *models.SyncStatus) {
		s.IsSyncing = true
		s.SyncErrors = nil
	})

	actions, err := e.queue.DrainOrder(ctx)
	if err != nil {
		// Storage trouble degrades to an empty pass; the queue is still
		// intact on disk for the next attempt.
		e.logger.Err(err).Msg("drain pass could not load queue")
		actions = nil
	}

	var (
		succeeded  int
		syncErrors []string
	)
	for _, action := range actions {
		// Re-check connectivity before every action: on a mid-pass
		// disconnect the remainder of the queue is left untouched and
		// the next online transition resumes from the same point.
		if !e.connectivity.Online() {
			e.logger.Info().
				Int("remaining", len(actions)-succeeded).
				Msg("connectivity lost mid-pass, leaving remaining actions queued")
			break
		}

		if err := e.network.Do(ctx, action); err != nil {
			attempts := action.RetryCount + 1
			exhausted, qErr := e.queue.RecordFailure(ctx, action)
			if qErr != nil {
				e.logger.Err(qErr).Str("action_id", action.ID).Msg("failed to record action failure")
				continue
			}
			if exhausted {
				syncErrors = append(syncErrors,
					fmt.Sprintf("%s action %s dropped after %d failed attempts", action.Type, action.Method, attempts))
			}
			continue
		}

		if err := e.queue.Remove(ctx, action.ID); err != nil {
			// The server accepted the call; a failed removal means the
			// action may replay once more on the next pass.
			e.logger.Err(err).Str("action_id", action.ID).Msg("failed to remove confirmed action")
			continue
		}
		succeeded++
	}

	pending, err := e.queue.PendingCount(ctx)
	if err != nil {
		e.logger.Err(err).Msg("failed to recount pending actions")
		pending = int64(len(actions) - succeeded)
	}

	finished := e.now()
	e.status.Update(func(s *models.SyncStatus) {
		s.IsSyncing = false
		s.LastSyncTime = &finished
		s.PendingActionCount = int(pending)
		s.SyncErrors = append(s.SyncErrors, syncErrors...)
	})

	e.logger.Info().
		Int("succeeded", succeeded).
		Int64("pending", pending).
		Int("exhausted", len(syncErrors)).
		Msg("drain pass finished")

	if succeeded > 0 && e.registrar != nil {
		if err := e.registrar.Register(ctx); err != nil {
			// Best effort only; hosts without the capability are fine.
			e.logger.Debug().Err(err).Msg("background sync registration unavailable")
		}
	}

	return nil
}

// Draining reports whether a pass is currently in flight.
func (e *SyncEngine) Draining() bool {
	return e.draining.Load()
}
