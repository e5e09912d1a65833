package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/internal/queue"
	"github.com/wanderline/synckit/internal/store"
	"github.com/wanderline/synckit/models"
)

// ErrUnknownEntityType is returned when a mutation names a collection type
// the local mirror does not track.
var ErrUnknownEntityType = errors.New("unknown entity type")

// Mutations is the write entry point of the engine. Every mutation is first
// applied optimistically to the local mirror, then queued, then drained
// immediately if the monitor believes we are online. Online and offline
// submissions follow exactly the same path.
type Mutations struct {
	store        store.LocalStore
	queue        queue.ActionQueue
	engine       *SyncEngine
	status       *StatusBroadcaster
	session      *Session
	connectivity ConnectivitySource
	logger       *logger.Logger

	now func() time.Time
}

// NewMutations wires the mutation pipeline. session may be nil for hosts
// that attach tokens to actions themselves.
func NewMutations(
	st store.LocalStore,
	q queue.ActionQueue,
	engine *SyncEngine,
	status *StatusBroadcaster,
	session *Session,
	connectivity ConnectivitySource,
	log *logger.Logger,
) *Mutations {
	return &Mutations{
		store:        st,
		queue:        q,
		engine:       engine,
		status:       status,
		session:      session,
		connectivity: connectivity,
		logger:       log,
		now:          time.Now,
	}
}

// Submit applies the optimistic local effect of action to entity and
// enqueues the action for replay. The returned action carries the assigned
// id and enqueue timestamp.
//
// A failed optimistic write degrades (the mirror misses the change until the
// server confirms it) but does not block the mutation; a failed enqueue is a
// real error because the mutation would otherwise be lost.
func (m *Mutations) Submit(ctx context.Context, entity models.CachedEntity, action models.QueuedAction) (models.QueuedAction, error) {
	collection, ok := store.EntityCollection(entity.CollectionType)
	if !ok {
		return models.QueuedAction{}, fmt.Errorf("submit %q: %w", entity.CollectionType, ErrUnknownEntityType)
	}

	m.applyOptimistic(ctx, collection, entity, action.Method)

	if action.Token == "" && m.session != nil {
		if token, err := m.session.Token(ctx); err == nil {
			action.Token = token
		}
	}

	stored, err := m.queue.Enqueue(ctx, action)
	if err != nil {
		return models.QueuedAction{}, fmt.Errorf("submit mutation: %w", err)
	}

	pending, err := m.queue.PendingCount(ctx)
	if err != nil {
		m.logger.Err(err).Msg("failed to recount pending actions after enqueue")
	} else {
		m.status.Update(func(s *models.SyncStatus) {
			s.PendingActionCount = int(pending)
		})
	}

	if m.connectivity.Online() {
		if err := m.engine.Drain(ctx); err != nil {
			m.logger.Err(err).Msg("immediate drain after enqueue failed")
		}
	}

	return stored, nil
}

// applyOptimistic writes (or for deletes, removes) the mirrored entity. The
// entity is marked pending until a drain pass confirms it server-side.
func (m *Mutations) applyOptimistic(ctx context.Context, collection store.Collection, entity models.CachedEntity, method string) {
	if method == models.MethodDelete {
		if err := m.store.Delete(ctx, collection, entity.ID); err != nil {
			m.logger.Err(err).
				Str("entity_id", entity.ID).
				Msg("optimistic delete dropped, mirror out of date until sync")
		}
		return
	}

	entity.SyncStatus = models.SyncStatusPending
	entity.LastModified = m.now()

	payload, err := json.Marshal(entity)
	if err != nil {
		m.logger.Err(err).Str("entity_id", entity.ID).Msg("optimistic write dropped: encode failed")
		return
	}
	if err = m.store.Put(ctx, collection, entity.ID, payload); err != nil {
		m.logger.Err(err).
			Str("entity_id", entity.ID).
			Msg("optimistic write dropped, mirror out of date until sync")
	}
}

// ConfirmSynced marks a mirrored entity as server-confirmed. Exposed for the
// host's read-reconciliation flows; the engine itself never calls it because
// it discards success bodies.
func (m *Mutations) ConfirmSynced(ctx context.Context, collectionType, id string) error {
	collection, ok := store.EntityCollection(collectionType)
	if !ok {
		return fmt.Errorf("confirm %q: %w", collectionType, ErrUnknownEntityType)
	}

	rec, err := m.store.Get(ctx, collection, id)
	if err != nil {
		return fmt.Errorf("confirm synced %s/%s: %w", collectionType, id, err)
	}

	var entity models.CachedEntity
	if err = json.Unmarshal(rec.Payload, &entity); err != nil {
		return fmt.Errorf("decode entity %s/%s: %w", collectionType, id, err)
	}

	entity.SyncStatus = models.SyncStatusSynced
	entity.LastModified = m.now()
	payload, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encode entity %s/%s: %w", collectionType, id, err)
	}

	return m.store.Put(ctx, collection, id, payload)
}
