package service

import (
	"sync"

	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/models"
)

// StatusBroadcaster aggregates sync state and fans it out to subscribers.
// It owns the single authoritative SyncStatus snapshot: every component
// mutates state through Update and every observer sees the same sequence of
// snapshots.
//
// Delivery to a single subscriber is strictly in the order the state changes
// occurred; no ordering is promised across distinct subscribers. Callbacks
// run synchronously on the updating goroutine and must not call back into
// the broadcaster.
type StatusBroadcaster struct {
	logger *logger.Logger

	mu          sync.Mutex
	status      models.SyncStatus
	subscribers map[int]Subscriber
	nextID      int
}

// NewStatusBroadcaster returns an empty broadcaster with a zero status.
func NewStatusBroadcaster(log *logger.Logger) *StatusBroadcaster {
	return &StatusBroadcaster{
		logger:      log,
		subscribers: make(map[int]Subscriber),
	}
}

// Subscribe registers cb, immediately delivers the current snapshot to it,
// and returns a cancel function that unregisters the subscriber.
func (b *StatusBroadcaster) Subscribe(cb Subscriber) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subscribers[id] = cb

	b.deliver(id, cb, b.status.Clone())

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers, id)
	}
}

// Update applies mutate to the current status and broadcasts the resulting
// snapshot to every subscriber.
func (b *StatusBroadcaster) Update(mutate func(status *models.SyncStatus)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	mutate(&b.status)
	snapshot := b.status.Clone()

	for id, cb := range b.subscribers {
		b.deliver(id, cb, snapshot)
	}
}

// Status returns the current snapshot.
func (b *StatusBroadcaster) Status() models.SyncStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status.Clone()
}

// deliver invokes one subscriber with panic isolation: a panicking callback
// is logged and skipped, it never prevents the remaining subscribers from
// receiving the update.
func (b *StatusBroadcaster) deliver(id int, cb Subscriber, snapshot models.SyncStatus) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Int("subscriber", id).
				Interface("panic", r).
				Msg("status subscriber panicked; isolated")
		}
	}()

	cb(snapshot)
}
