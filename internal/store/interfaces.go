package store

import (
	"context"

	"github.com/laiosys/risu/models"
)

// KV keys used by the engine. Reset clears all of them.
const (
	KeySessionToken   = "session_token"
	KeyEncryptionSalt = "encryption_salt"
	KeyValidator      = "encryption_validator"
)

// NoteRepository is the local durable note store. Methods taking *Tx must be
// called inside a [DB.WithTx] transaction; the remaining methods manage
// their own statements.
type NoteRepository interface {
	// SaveNote upserts a user-driven create or edit. The store assigns the
	// note id (when empty), the next version, and marks the note dirty for
	// the next push pass. The stored note is returned.
	SaveNote(ctx context.Context, note models.Note) (models.Note, error)

	// GetNote loads a single note by id, including soft-deleted ones.
	// Returns ErrNoteNotFound when the id has no record.
	GetNote(ctx context.Context, id string) (models.Note, error)

	// GetAllNotes lists all non-deleted notes, most recently updated first.
	GetAllNotes(ctx context.Context) ([]models.Note, error)

	// ListDirtySince lists notes awaiting push: dirty notes with version
	// greater than sinceVersion, in version order.
	ListDirtySince(ctx context.Context, sinceVersion int64) ([]models.Note, error)

	// ListByDecryptStatus lists notes whose decrypt_status is one of
	// statuses, in version order. Used by recovery re-scans.
	ListByDecryptStatus(ctx context.Context, statuses ...models.DecryptStatus) ([]models.Note, error)

	// ApplyRemote upserts a note materialized from a pulled change inside
	// tx. The store assigns the next version; the note is not marked dirty
	// (pulled content must not echo back on the next push). Re-applying an
	// item whose updated_at is not newer than the stored row is a no-op,
	// which makes pull re-runs idempotent.
	ApplyRemote(tx *Tx, note models.Note) error

	// UpdateDecryptOutcome records a decryption transition for a note:
	// status, display title/body (real plaintext or placeholder), and the
	// classified failure reason. Content fields the push path reads
	// (ciphertext, version, dirty) are untouched.
	UpdateDecryptOutcome(ctx context.Context, id string, status models.DecryptStatus, title, body, failReason string) error

	// MarkPushed clears the dirty flag after a push acknowledgment, inside
	// the same transaction that advances the push cursor.
	MarkPushed(tx *Tx, id string) error

	// DeleteNote soft-deletes a note. The deletion is a mutation like any
	// other: it takes a fresh version and is pushed on the next pass.
	DeleteNote(ctx context.Context, id string) error

	// CountNotes returns the total number of note records, deleted
	// included.
	CountNotes(ctx context.Context) (int64, error)
}

// CursorRepository tracks per-collection, per-direction sync progress.
// Advance is deliberately only reachable with a *Tx: a cursor may move only
// in the same transaction that durably applied the records it covers.
type CursorRepository interface {
	// GetCursor returns the stored position, or models.InitialPosition when
	// the collection/direction pair has never advanced.
	GetCursor(ctx context.Context, collection string, direction models.Direction) (int64, error)

	// Advance moves the cursor forward inside tx. Equal positions are a
	// no-op; smaller ones return ErrCursorRegression.
	Advance(tx *Tx, collection string, direction models.Direction, position int64) error
}

// KVRepository stores small engine state: session token, encryption salt,
// cached validator.
type KVRepository interface {
	// GetValue returns the value for key, or ErrValueNotFound.
	GetValue(ctx context.Context, key string) (string, error)

	// SetValue upserts the value for key.
	SetValue(ctx context.Context, key, value string) error

	// DeleteValue removes key. Deleting an absent key is not an error.
	DeleteValue(ctx context.Context, key string) error
}
