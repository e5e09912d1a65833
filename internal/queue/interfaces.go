package queue

import (
	"context"

	"github.com/wanderline/synckit/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/queue_mock.go -package=mock

// ActionQueue is the durable FIFO of pending mutations. It is a thin policy
// layer over the local store's syncQueue collection; only the sync engine
// mutates persisted actions, and only their retry count.
type ActionQueue interface {
	// Enqueue assigns an id and enqueue timestamp, applies the default
	// retry budget when the action carries none, persists the action and
	// returns it as stored.
	Enqueue(ctx context.Context, action models.QueuedAction) (models.QueuedAction, error)

	// DrainOrder returns all pending actions ordered ascending by their
	// enqueue timestamp. FIFO is mandatory: later actions on the same
	// entity may depend on earlier ones and must never replay out of
	// order.
	DrainOrder(ctx context.Context) ([]models.QueuedAction, error)

	// RecordFailure increments the action's retry count. When the count
	// reaches the action's budget the action is deleted and exhausted is
	// true; otherwise the incremented record is persisted for the next
	// drain pass.
	RecordFailure(ctx context.Context, action models.QueuedAction) (exhausted bool, err error)

	// Remove deletes an action after its network call was confirmed.
	Remove(ctx context.Context, id string) error

	// PendingCount reports how many actions are waiting.
	PendingCount(ctx context.Context) (int64, error)
}
