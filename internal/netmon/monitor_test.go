package netmon

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/internal/mock"
	"github.com/wanderline/synckit/internal/service"
	"github.com/wanderline/synckit/models"
)

func newTestMonitor(t *testing.T) (*Monitor, *mock.MockDrainer, *service.StatusBroadcaster) {
	t.Helper()
	ctrl := gomock.NewController(t)
	drainer := mock.NewMockDrainer(ctrl)
	status := service.NewStatusBroadcaster(logger.Nop())
	m := NewMonitor(status, logger.Nop())
	m.SetDrainer(drainer)
	return m, drainer, status
}

func TestMonitor_StartsOffline(t *testing.T) {
	m, _, _ := newTestMonitor(t)
	assert.False(t, m.Online())
}

func TestSetOnline_BroadcastsAndDrains(t *testing.T) {
	m, drainer, status := newTestMonitor(t)

	drainer.EXPECT().Drain(gomock.Any()).Return(nil)

	m.SetOnline(context.Background())

	assert.True(t, m.Online())
	assert.True(t, status.Status().IsOnline)
}

func TestSetOnline_IsIdempotent(t *testing.T) {
	m, drainer, _ := newTestMonitor(t)

	// Repeated online reports collapse to a single transition.
	drainer.EXPECT().Drain(gomock.Any()).Return(nil).Times(1)

	m.SetOnline(context.Background())
	m.SetOnline(context.Background())
	m.SetOnline(context.Background())
}

func TestSetOffline_ClearsSyncingFlag(t *testing.T) {
	m, drainer, status := newTestMonitor(t)

	drainer.EXPECT().Drain(gomock.Any()).Return(nil)
	m.SetOnline(context.Background())

	status.Update(func(s *models.SyncStatus) { s.IsSyncing = true })

	m.SetOffline(context.Background())

	snap := status.Status()
	assert.False(t, m.Online())
	assert.False(t, snap.IsOnline)
	assert.False(t, snap.IsSyncing, "scheduling flag resets on disconnect")
}

func TestSetOffline_WhileAlreadyOfflineIsANoOp(t *testing.T) {
	m, _, status := newTestMonitor(t)

	var updates int
	cancel := status.Subscribe(func(models.SyncStatus) { updates++ })
	defer cancel()

	m.SetOffline(context.Background())
	assert.Equal(t, 1, updates, "only the subscribe snapshot was delivered")
}

func TestWake_TriggersDrain(t *testing.T) {
	m, drainer, _ := newTestMonitor(t)

	drainer.EXPECT().Drain(gomock.Any()).Return(nil)

	m.Wake(context.Background())
}

func TestWake_WithoutDrainerDoesNotPanic(t *testing.T) {
	status := service.NewStatusBroadcaster(logger.Nop())
	m := NewMonitor(status, logger.Nop())

	assert.NotPanics(t, func() { m.Wake(context.Background()) })
}

func TestHandleBackgroundSyncCompleted_RebroadcastsStatus(t *testing.T) {
	m, _, status := newTestMonitor(t)

	var updates int
	cancel := status.Subscribe(func(models.SyncStatus) { updates++ })
	defer cancel()

	m.HandleBackgroundSyncCompleted(context.Background(), json.RawMessage(`{"synced":2}`))
	assert.Equal(t, 2, updates, "subscribe snapshot plus the refresh")
}

func TestRun_DispatchesSignals(t *testing.T) {
	m, drainer, _ := newTestMonitor(t)

	// online transition drains, the wake drains again.
	drainer.EXPECT().Drain(gomock.Any()).Return(nil).Times(2)

	ch := make(chan Signal)
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(context.Background(), ch)
	}()

	ch <- Signal{Kind: SignalOnline}
	ch <- Signal{Kind: SignalWake}
	ch <- Signal{Kind: SignalOffline}
	close(ch)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after channel close")
	}
	assert.False(t, m.Online())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	m, _, _ := newTestMonitor(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(ctx, make(chan Signal))
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancel")
	}
}

func TestMonitor_ServesAsConnectivitySource(t *testing.T) {
	m, drainer, _ := newTestMonitor(t)
	var src service.ConnectivitySource = m

	require.False(t, src.Online())

	drainer.EXPECT().Drain(gomock.Any()).Return(nil)
	m.SetOnline(context.Background())
	assert.True(t, src.Online())
}
