package service

import (
	"sync"

	"github.com/laiosys/risu/models"
)

type statusTracker struct {
	mu          sync.RWMutex
	current     models.Status
	subscribers []chan models.Status
}

// NewStatusTracker creates a tracker starting in the Offline state.
func NewStatusTracker() StatusTracker {
	return &statusTracker{
		current: models.Status{State: models.StateOffline},
	}
}

func (t *statusTracker) Set(status models.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if status == t.current {
		return
	}
	t.current = status

	for _, ch := range t.subscribers {
		select {
		case ch <- status:
		default:
			// drop the stale update so the fresh one fits
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- status:
			default:
			}
		}
	}
}

func (t *statusTracker) Get() models.Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

func (t *statusTracker) Subscribe() <-chan models.Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch := make(chan models.Status, 1)
	t.subscribers = append(t.subscribers, ch)
	return ch
}
