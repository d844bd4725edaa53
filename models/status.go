package models

// SyncState is the coarse engine state exposed to the UI layer.
type SyncState string

const (
	StateOffline SyncState = "offline"
	StateSyncing SyncState = "syncing"
	StateSynced  SyncState = "synced"
	StateError   SyncState = "error"
)

// Status pairs a SyncState with optional human-readable detail (set for
// StateError). Synced is only valid while authenticated with a completed,
// non-stale pass; logout and reset both drop the engine back to Offline.
type Status struct {
	State  SyncState `json:"state"`
	Detail string    `json:"detail,omitempty"`
}

func (s Status) String() string {
	if s.Detail == "" {
		return string(s.State)
	}
	return string(s.State) + ": " + s.Detail
}
