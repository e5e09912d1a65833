package service

import (
	"context"
	"sync"
	"time"
)

type periodicWake struct {
	drainer Drainer

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// PeriodicWake triggers a drain pass on a fixed interval. It is the
// host-independent form of a periodic/background wake signal.
type PeriodicWake interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

// NewPeriodicWake creates a wake job that calls drainer.Drain on a ticker.
// The job is idle until Start is called.
func NewPeriodicWake(drainer Drainer) PeriodicWake {
	return &periodicWake{drainer: drainer}
}

// Start stops any previously running job, then launches a background
// goroutine that drains every interval. If interval is zero or negative it
// defaults to 5 minutes. The goroutine exits when ctx is cancelled or Stop
// is called.
func (j *periodicWake) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				_ = j.drainer.Drain(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has fully
// exited. Safe to call when the job is not running (no-op in that case).
func (j *periodicWake) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
