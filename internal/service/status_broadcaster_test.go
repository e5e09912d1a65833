package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/models"
)

func TestSubscribe_DeliversImmediateSnapshot(t *testing.T) {
	b := NewStatusBroadcaster(logger.Nop())
	b.Update(func(s *models.SyncStatus) { s.PendingActionCount = 2 })

	var got []models.SyncStatus
	cancel := b.Subscribe(func(s models.SyncStatus) { got = append(got, s) })
	defer cancel()

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].PendingActionCount)
}

func TestUpdate_BroadcastsInOrderPerSubscriber(t *testing.T) {
	b := NewStatusBroadcaster(logger.Nop())

	var counts []int
	cancel := b.Subscribe(func(s models.SyncStatus) { counts = append(counts, s.PendingActionCount) })
	defer cancel()

	for i := 1; i <= 3; i++ {
		n := i
		b.Update(func(s *models.SyncStatus) { s.PendingActionCount = n })
	}

	assert.Equal(t, []int{0, 1, 2, 3}, counts, "initial snapshot followed by every change, in order")
}

func TestCancel_StopsDelivery(t *testing.T) {
	b := NewStatusBroadcaster(logger.Nop())

	var calls int
	cancel := b.Subscribe(func(models.SyncStatus) { calls++ })
	cancel()

	b.Update(func(s *models.SyncStatus) { s.IsOnline = true })

	assert.Equal(t, 1, calls, "only the initial snapshot before cancel")
}

func TestUpdate_PanickingSubscriberIsIsolated(t *testing.T) {
	b := NewStatusBroadcaster(logger.Nop())

	cancelBad := b.Subscribe(func(models.SyncStatus) { panic("subscriber bug") })
	defer cancelBad()

	var healthy int
	cancelGood := b.Subscribe(func(models.SyncStatus) { healthy++ })
	defer cancelGood()

	assert.NotPanics(t, func() {
		b.Update(func(s *models.SyncStatus) { s.IsOnline = true })
	})
	assert.Equal(t, 2, healthy, "healthy subscriber still receives the update")
}

func TestStatus_ReturnsClone(t *testing.T) {
	b := NewStatusBroadcaster(logger.Nop())
	b.Update(func(s *models.SyncStatus) { s.SyncErrors = []string{"boom"} })

	snap := b.Status()
	snap.SyncErrors[0] = "mutated"

	assert.Equal(t, []string{"boom"}, b.Status().SyncErrors, "callers cannot reach the internal slice")
}

func TestSubscribersSeeConsistentSnapshots(t *testing.T) {
	b := NewStatusBroadcaster(logger.Nop())

	var a, c models.SyncStatus
	cancelA := b.Subscribe(func(s models.SyncStatus) { a = s })
	defer cancelA()
	cancelC := b.Subscribe(func(s models.SyncStatus) { c = s })
	defer cancelC()

	b.Update(func(s *models.SyncStatus) {
		s.IsOnline = true
		s.PendingActionCount = 5
	})

	assert.Equal(t, a, c)
	assert.True(t, a.IsOnline)
	assert.Equal(t, 5, a.PendingActionCount)
}
