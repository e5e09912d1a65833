package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/internal/store"
	"github.com/wanderline/synckit/models"
)

type actionQueue struct {
	store      store.LocalStore
	logger     *logger.Logger
	maxRetries int

	now func() time.Time
}

// NewActionQueue builds an ActionQueue over the store's syncQueue
// collection. defaultMaxRetries is applied to actions enqueued without an
// explicit budget; values below one fall back to models.DefaultMaxRetries.
func NewActionQueue(st store.LocalStore, log *logger.Logger, defaultMaxRetries int) ActionQueue {
	if defaultMaxRetries < 1 {
		defaultMaxRetries = models.DefaultMaxRetries
	}
	return &actionQueue{
		store:      st,
		logger:     log,
		maxRetries: defaultMaxRetries,
		now:        time.Now,
	}
}

// actionID builds "type-timestamp-random" ids. The random suffix keeps ids
// collision-free even when the same action type is enqueued twice within one
// millisecond.
func actionID(actionType string, ts int64) string {
	return fmt.Sprintf("%s-%d-%s", actionType, ts, uuid.NewString()[:8])
}

func (q *actionQueue) Enqueue(ctx context.Context, action models.QueuedAction) (models.QueuedAction, error) {
	now := q.now()

	action.Timestamp = now.UnixMilli()
	action.ID = actionID(action.Type, action.Timestamp)
	action.RetryCount = 0
	if action.MaxRetries < 1 {
		action.MaxRetries = q.maxRetries
	}

	if err := q.persist(ctx, action); err != nil {
		return models.QueuedAction{}, fmt.Errorf("enqueue %s: %w", action.ID, err)
	}

	q.logger.Debug().
		Str("action_id", action.ID).
		Str("type", action.Type).
		Str("method", action.Method).
		Str("endpoint", action.Endpoint).
		Msg("action enqueued")

	return action, nil
}

func (q *actionQueue) DrainOrder(ctx context.Context) ([]models.QueuedAction, error) {
	records, err := q.store.List(ctx, store.CollectionSyncQueue, store.IndexByTimestamp)
	if err != nil {
		return nil, fmt.Errorf("load drain order: %w", err)
	}

	actions := make([]models.QueuedAction, 0, len(records))
	for _, rec := range records {
		var action models.QueuedAction
		if err := json.Unmarshal(rec.Payload, &action); err != nil {
			// A corrupt row must not wedge the whole queue.
			q.logger.Err(err).Str("action_id", rec.ID).Msg("skipping undecodable queued action")
			continue
		}
		actions = append(actions, action)
	}

	return actions, nil
}

func (q *actionQueue) RecordFailure(ctx context.Context, action models.QueuedAction) (bool, error) {
	action.RetryCount++

	if action.RetryCount >= action.MaxRetries {
		if err := q.store.Delete(ctx, store.CollectionSyncQueue, action.ID); err != nil {
			return false, fmt.Errorf("drop exhausted action %s: %w", action.ID, err)
		}
		q.logger.Warn().
			Str("action_id", action.ID).
			Str("type", action.Type).
			Int("retries", action.RetryCount).
			Msg("action exhausted retry budget and was dropped")
		return true, nil
	}

	if err := q.persist(ctx, action); err != nil {
		return false, fmt.Errorf("record failure for %s: %w", action.ID, err)
	}

	q.logger.Debug().
		Str("action_id", action.ID).
		Int("retry_count", action.RetryCount).
		Int("max_retries", action.MaxRetries).
		Msg("action failure recorded")

	return false, nil
}

func (q *actionQueue) Remove(ctx context.Context, id string) error {
	if err := q.store.Delete(ctx, store.CollectionSyncQueue, id); err != nil {
		return fmt.Errorf("remove action %s: %w", id, err)
	}
	return nil
}

func (q *actionQueue) PendingCount(ctx context.Context) (int64, error) {
	n, err := q.store.Count(ctx, store.CollectionSyncQueue)
	if err != nil {
		return 0, fmt.Errorf("count pending actions: %w", err)
	}
	return n, nil
}

func (q *actionQueue) persist(ctx context.Context, action models.QueuedAction) error {
	payload, err := json.Marshal(action)
	if err != nil {
		return fmt.Errorf("encode action: %w", err)
	}
	return q.store.Put(ctx, store.CollectionSyncQueue, action.ID, payload)
}
