// Package netmon owns the engine's connectivity belief. Host environments
// report transitions through SetOnline/SetOffline (or a Run loop consuming a
// signal channel); the monitor broadcasts the change and schedules drain
// passes. Connectivity is never read from global state: the engine consults
// the monitor through the ConnectivitySource interface.
package netmon

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/internal/service"
	"github.com/wanderline/synckit/models"
)

// SignalKind enumerates the host signals the monitor consumes.
type SignalKind int

const (
	// SignalOnline reports a transition to connectivity.
	SignalOnline SignalKind = iota
	// SignalOffline reports a loss of connectivity.
	SignalOffline
	// SignalWake is a host-provided deferred sync request, e.g. a
	// background wake. It triggers a drain exactly as a reconnect would.
	SignalWake
	// SignalBackgroundSyncCompleted reports that a host-level background
	// sync finished; the payload is host-defined.
	SignalBackgroundSyncCompleted
)

// Signal is one host connectivity/lifecycle event.
type Signal struct {
	Kind    SignalKind
	Payload json.RawMessage
}

// Monitor observes connectivity transitions and triggers the sync engine.
type Monitor struct {
	status *service.StatusBroadcaster
	logger *logger.Logger

	online  atomic.Bool
	drainer service.Drainer
}

// NewMonitor builds a Monitor that starts in the offline state. The drainer
// is attached separately via SetDrainer because the engine needs the monitor
// as its ConnectivitySource first.
func NewMonitor(status *service.StatusBroadcaster, log *logger.Logger) *Monitor {
	return &Monitor{status: status, logger: log}
}

// SetDrainer attaches the engine triggered on reconnect and wake.
func (m *Monitor) SetDrainer(d service.Drainer) {
	m.drainer = d
}

// Online implements service.ConnectivitySource.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// SetOnline records a transition to online, broadcasts it and starts a drain
// pass.
func (m *Monitor) SetOnline(ctx context.Context) {
	if m.online.Swap(true) {
		return
	}

	m.logger.Info().Msg("connectivity restored")
	m.status.Update(func(s *models.SyncStatus) {
		s.IsOnline = true
	})

	m.drain(ctx)
}

// SetOffline records a transition to offline. The syncing flag is force
// cleared: an in-flight network call is allowed to finish or fail on its
// own, the reset only affects scheduling of further iterations.
func (m *Monitor) SetOffline(ctx context.Context) {
	if !m.online.Swap(false) {
		return
	}

	m.logger.Info().Msg("connectivity lost")
	m.status.Update(func(s *models.SyncStatus) {
		s.IsOnline = false
		s.IsSyncing = false
	})
}

// Wake handles a host-provided deferred sync request, draining exactly as a
// reconnect would.
func (m *Monitor) Wake(ctx context.Context) {
	m.logger.Debug().Msg("deferred sync wake received")
	m.drain(ctx)
}

// HandleBackgroundSyncCompleted records a host-level background sync result.
// The payload is opaque to the engine and only logged.
func (m *Monitor) HandleBackgroundSyncCompleted(ctx context.Context, payload json.RawMessage) {
	m.logger.Info().
		RawJSON("payload", nonEmpty(payload)).
		Msg("host background sync completed")

	// Re-broadcast so subscribers refresh their pending counts.
	m.status.Update(func(s *models.SyncStatus) {})
}

// Run consumes host signals from ch until ctx is cancelled or ch closes.
// Hosts with callback-style connectivity APIs can call the Set/Wake methods
// directly instead.
func (m *Monitor) Run(ctx context.Context, ch <-chan Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-ch:
			if !ok {
				return
			}
			switch sig.Kind {
			case SignalOnline:
				m.SetOnline(ctx)
			case SignalOffline:
				m.SetOffline(ctx)
			case SignalWake:
				m.Wake(ctx)
			case SignalBackgroundSyncCompleted:
				m.HandleBackgroundSyncCompleted(ctx, sig.Payload)
			}
		}
	}
}

func (m *Monitor) drain(ctx context.Context) {
	if m.drainer == nil {
		return
	}
	if err := m.drainer.Drain(ctx); err != nil {
		m.logger.Err(err).Msg("drain pass failed")
	}
}

func nonEmpty(payload json.RawMessage) []byte {
	if len(payload) == 0 {
		return []byte("null")
	}
	return payload
}
