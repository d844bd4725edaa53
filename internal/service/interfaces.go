// Package service implements the engine behind the note store: the
// pull/push reconciler, the decryption recovery loop, session and key
// lifecycle handling, and the background sync job. The service layer talks
// to the local store through repositories and to the remote feed through
// [adapter.FeedClient]; it owns every rule about when a cursor may advance
// and what happens to a note that cannot be decrypted.
package service

import (
	"context"
	"time"

	"github.com/laiosys/risu/models"
)

// Reconciler drives sync passes against the remote feed. A pass is a pull
// phase followed by a push phase; overlapping Sync calls coalesce into the
// already-running pass.
type Reconciler interface {
	// Sync runs one full pull+push pass. It is safe to call concurrently;
	// only one pass runs at a time. Transport failures surface through the
	// status tracker as Offline rather than as an error state.
	Sync(ctx context.Context) error

	// Reset wipes all local state in one transaction: notes, cursors, salt,
	// cached validator, session token. The in-memory key is dropped too.
	// An in-flight sync pass aborts before its next commit.
	Reset(ctx context.Context) error

	// ResetAll additionally asks the server to drop the account's notes
	// before wiping local state.
	ResetAll(ctx context.Context) error
}

// RecoveryHandler re-drives decryption for parked notes whenever a key
// becomes available, without any network traffic.
type RecoveryHandler interface {
	// Start launches the background loop listening for key arrival.
	Start(ctx context.Context)

	// Stop terminates the background loop and waits for it to exit.
	Stop()

	// Recover scans notes in PendingKey and Failed states and retries
	// decryption with the current key, recording each outcome.
	Recover(ctx context.Context) error
}

// SessionManager handles login, logout, and the passphrase lifecycle that
// gates the encryption key.
type SessionManager interface {
	// OnLogin installs the session token and reconciles the session salt
	// with the locally stored one. A salt conflict is fatal and leaves the
	// session unusable for sync.
	OnLogin(ctx context.Context, session models.Session) error

	// SetPassphrase derives the key from the stored salt, verifies it
	// against the account validator, and installs it. Installation wakes
	// the recovery handler.
	SetPassphrase(ctx context.Context, passphrase string) error

	// EnableEncryption performs first-time end-to-end setup: generates a
	// salt, derives the key, and registers salt and validator with the
	// server. If another device enabled encryption first, the server's
	// salt wins and the passphrase is verified against its validator.
	EnableEncryption(ctx context.Context, passphrase string) error

	// OnLogout drops the token and the in-memory key. Local notes and
	// cursors are kept; see [Reconciler.Reset] for the destructive path.
	OnLogout(ctx context.Context) error
}

// StatusTracker publishes the engine state to the UI layer.
type StatusTracker interface {
	// Set records the status and notifies subscribers.
	Set(status models.Status)

	// Get returns the last recorded status.
	Get() models.Status

	// Subscribe returns a buffered channel receiving status updates. A slow
	// consumer loses intermediate updates, never the act of notification.
	Subscribe() <-chan models.Status
}

// SyncJob periodically triggers reconciliation in the background.
type SyncJob interface {
	// Start launches the ticker loop. Zero or negative interval falls back
	// to a default.
	Start(ctx context.Context, interval time.Duration)

	// Trigger requests an immediate pass outside the ticker schedule.
	Trigger()

	// Stop cancels the loop and blocks until it has exited.
	Stop()
}
