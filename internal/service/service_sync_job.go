package service

import (
	"context"
	"sync"
	"time"
)

type syncJob struct {
	reconciler Reconciler

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	trigger chan struct{}
}

// NewSyncJob creates a syncJob that runs the reconciler on a ticker. The job
// is idle until Start is called.
func NewSyncJob(reconciler Reconciler) SyncJob {
	return &syncJob{
		reconciler: reconciler,
		trigger:    make(chan struct{}, 1),
	}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a background goroutine that runs a sync pass every interval and
// on every Trigger call. If interval is zero or negative it defaults to
// 5 minutes. The goroutine exits when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
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
				_ = j.reconciler.Sync(jobCtx)
			case <-j.trigger:
				_ = j.reconciler.Sync(jobCtx)
			}
		}
	}()
}

// Trigger implements SyncJob. Multiple triggers while a pass is pending
// coalesce into one.
func (j *syncJob) Trigger() {
	select {
	case j.trigger <- struct{}{}:
	default:
	}
}

// Stop implements SyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is
// not running (no-op in that case).
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
