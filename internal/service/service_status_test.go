package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laiosys/risu/models"
)

func TestStatusTracker_SetAndGet(t *testing.T) {
	tracker := NewStatusTracker()

	assert.Equal(t, models.StateOffline, tracker.Get().State, "trackers start offline")

	tracker.Set(models.Status{State: models.StateSyncing})
	assert.Equal(t, models.StateSyncing, tracker.Get().State)

	tracker.Set(models.Status{State: models.StateError, Detail: "boom"})
	assert.Equal(t, "error: boom", tracker.Get().String())
}

func TestStatusTracker_SubscribeReceivesUpdates(t *testing.T) {
	tracker := NewStatusTracker()
	updates := tracker.Subscribe()

	tracker.Set(models.Status{State: models.StateSyncing})

	select {
	case got := <-updates:
		assert.Equal(t, models.StateSyncing, got.State)
	default:
		t.Fatal("expected a buffered status update")
	}
}

func TestStatusTracker_SlowSubscriberGetsLatest(t *testing.T) {
	tracker := NewStatusTracker()
	updates := tracker.Subscribe()

	// nobody reads between these updates
	tracker.Set(models.Status{State: models.StateSyncing})
	tracker.Set(models.Status{State: models.StateSynced})

	select {
	case got := <-updates:
		assert.Equal(t, models.StateSynced, got.State, "the stale update is replaced, not queued")
	default:
		t.Fatal("expected a buffered status update")
	}
}

func TestStatusTracker_DuplicateSetIsSilent(t *testing.T) {
	tracker := NewStatusTracker()
	updates := tracker.Subscribe()

	tracker.Set(models.Status{State: models.StateSyncing})
	require.Len(t, updates, 1)
	<-updates

	tracker.Set(models.Status{State: models.StateSyncing})
	assert.Empty(t, updates, "an unchanged status does not notify")
}
