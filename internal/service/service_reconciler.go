package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/laiosys/risu/internal/adapter"
	"github.com/laiosys/risu/internal/crypto"
	"github.com/laiosys/risu/internal/logger"
	"github.com/laiosys/risu/internal/store"
	"github.com/laiosys/risu/models"
)

const (
	// maxPullPages caps a single pull phase. The cursor is durable, so a
	// capped pass simply resumes where it stopped on the next run.
	maxPullPages = 100
	pullPageSize = 100
)

// Placeholder bodies shown while the real plaintext is unavailable.
const (
	lockedTitle = "Encrypted note"
	lockedBody  = "This note is encrypted. Enter your passphrase to unlock it."
	failedBody  = "This note could not be decrypted."
)

type reconciler struct {
	storages *store.Storages
	feed     adapter.FeedClient
	keychain crypto.Keychain
	codec    crypto.Codec
	status   StatusTracker
	logger   *logger.Logger

	// mu serialises sync passes; epoch invalidates in-flight passes on
	// reset before their next commit.
	mu    sync.Mutex
	epoch atomic.Int64
}

// NewReconciler wires the sync engine over the given store, feed client, and
// key material.
func NewReconciler(storages *store.Storages, feed adapter.FeedClient, keychain crypto.Keychain, codec crypto.Codec, status StatusTracker, logger *logger.Logger) Reconciler {
	return &reconciler{
		storages: storages,
		feed:     feed,
		keychain: keychain,
		codec:    codec,
		status:   status,
		logger:   logger,
	}
}

func (r *reconciler) Sync(ctx context.Context) error {
	if !r.mu.TryLock() {
		// a pass is already running; this request coalesces into it
		return nil
	}
	defer r.mu.Unlock()

	if r.feed.Token() == "" {
		r.status.Set(models.Status{State: models.StateOffline})
		return nil
	}

	epoch := r.epoch.Load()
	r.status.Set(models.Status{State: models.StateSyncing})

	err := r.ensureSalt(ctx)
	if err == nil {
		err = r.pull(ctx, epoch)
	}
	if err == nil {
		err = r.push(ctx, epoch)
	}
	if err != nil {
		return r.fail(ctx, err)
	}

	r.status.Set(models.Status{State: models.StateSynced})
	return nil
}

// fail maps a pass failure onto the status signal. Transport loss is the
// Offline state, not an error; a stale pass leaves whatever status the reset
// already set.
func (r *reconciler) fail(ctx context.Context, err error) error {
	log := logger.FromContext(ctx)

	switch {
	case errors.Is(err, errStalePass):
		log.Debug().Msg("sync pass aborted by reset")
		return nil
	case errors.Is(err, adapter.ErrNetwork):
		log.Info().Msg("sync pass deferred: network unavailable")
		r.status.Set(models.Status{State: models.StateOffline})
		return nil
	case errors.Is(err, adapter.ErrUnauthorized):
		r.status.Set(models.Status{State: models.StateOffline, Detail: "session expired"})
		return err
	default:
		log.Err(err).Msg("sync pass failed")
		r.status.Set(models.Status{State: models.StateError, Detail: err.Error()})
		return err
	}
}

// ensureSalt aligns the local encryption profile with the account's remote
// one before any note moves. Four cases: both absent (encryption off), remote
// only (adopt it), local only (a remote reset dropped it, follow suit), both
// present (they must match).
func (r *reconciler) ensureSalt(ctx context.Context) error {
	log := logger.FromContext(ctx)

	local, err := r.storages.KV.GetValue(ctx, store.KeyEncryptionSalt)
	if err != nil && !errors.Is(err, store.ErrValueNotFound) {
		return err
	}

	profile, err := r.feed.SaltProfile(ctx)
	if err != nil {
		return fmt.Errorf("fetch encryption profile: %w", err)
	}

	switch {
	case profile.Salt == "" && local == "":
		return nil

	case profile.Salt != "" && local == "":
		log.Info().Msg("adopting remote encryption salt")
		if err = r.storages.KV.SetValue(ctx, store.KeyEncryptionSalt, profile.Salt); err != nil {
			return err
		}
		if profile.Validator != "" {
			return r.storages.KV.SetValue(ctx, store.KeyValidator, profile.Validator)
		}
		return nil

	case profile.Salt == "" && local != "":
		log.Warn().Msg("remote encryption profile was reset, dropping local salt")
		r.keychain.Clear()
		if err = r.storages.KV.DeleteValue(ctx, store.KeyEncryptionSalt); err != nil {
			return err
		}
		return r.storages.KV.DeleteValue(ctx, store.KeyValidator)

	case profile.Salt != local:
		return fmt.Errorf("%w: stored salt does not match account profile", crypto.ErrSaltConflict)
	}

	return nil
}

// pull walks the remote change feed page by page. Every item of a page is
// resolved to a durable record (decrypted, parked, or failed) and written in
// the same transaction that advances the pull cursor, so a crash can never
// lose an item the cursor has moved past.
func (r *reconciler) pull(ctx context.Context, epoch int64) error {
	log := logger.FromContext(ctx)

	cursor, err := r.storages.Cursors.GetCursor(ctx, models.DefaultCollection, models.DirectionPull)
	if err != nil {
		return err
	}

	for page := 0; page < maxPullPages; page++ {
		result, err := r.feed.Pull(ctx, models.DefaultCollection, cursor, pullPageSize)
		if err != nil {
			return fmt.Errorf("pull page at position %d: %w", cursor, err)
		}
		if len(result.Changes) == 0 {
			return nil
		}

		notes := make([]models.Note, 0, len(result.Changes))
		for _, change := range result.Changes {
			notes = append(notes, r.resolveChange(ctx, change))
		}

		next := result.NextPosition
		if last := result.Changes[len(result.Changes)-1].Position; next < last {
			next = last
		}

		if r.epoch.Load() != epoch {
			return errStalePass
		}

		err = r.storages.WithTx(ctx, func(tx *store.Tx) error {
			for _, note := range notes {
				if err := r.storages.Notes.ApplyRemote(tx, note); err != nil {
					return err
				}
			}
			return r.storages.Cursors.Advance(tx, models.DefaultCollection, models.DirectionPull, next)
		})
		if err != nil {
			return fmt.Errorf("apply pulled page: %w", err)
		}

		log.Debug().
			Int("items", len(notes)).
			Int64("cursor", next).
			Msg("pull page applied")

		cursor = next
		if !result.HasMore {
			return nil
		}
	}

	log.Warn().Int("pages", maxPullPages).Msg("pull page cap reached, resuming next pass")
	return nil
}

// resolveChange turns one feed item into the note record to persist. It
// never returns an error: an undecryptable item becomes a parked or failed
// record instead of blocking the feed.
func (r *reconciler) resolveChange(ctx context.Context, change models.RemoteChange) models.Note {
	note := models.Note{
		ID:        change.ID,
		UpdatedAt: change.UpdatedAt,
		Deleted:   change.Deleted,
	}

	if change.Deleted {
		note.DecryptStatus = models.StatusDecrypted
		return note
	}

	if !change.IsEncrypted {
		note.Title = models.TitleFromBody(change.Body)
		note.Body = change.Body
		note.DecryptStatus = models.StatusDecrypted
		return note
	}

	// some older clients set is_encrypted on plaintext bodies
	if r.codec.Classify(change.Body) == crypto.LooksPlaintextNote {
		note.Title = models.TitleFromBody(change.Body)
		note.Body = change.Body
		note.DecryptStatus = models.StatusPlaintextLegacy
		return note
	}

	note.IsEncrypted = true
	note.Ciphertext = models.CipheredBody(change.Body)

	key, err := r.keychain.Key()
	if err != nil {
		note.Title = lockedTitle
		note.Body = lockedBody
		note.DecryptStatus = models.StatusPendingKey
		return note
	}

	plaintext, err := r.codec.Decrypt(change.Body, key)
	if err != nil {
		status, reason := classifyDecryptFailure(err)
		logger.FromContext(ctx).Warn().
			Str("note_id", change.ID).
			Str("reason", reason).
			Msg("pulled note could not be decrypted")
		note.Title = lockedTitle
		note.Body = failedBody
		note.DecryptStatus = status
		note.FailReason = reason
		return note
	}

	note.Title = models.TitleFromBody(plaintext)
	note.Body = plaintext
	note.DecryptStatus = models.StatusDecrypted
	return note
}

// push uploads local revisions past the push cursor, oldest first. The
// cursor advances per acknowledged note inside the same transaction that
// clears its dirty flag; a failed push halts the phase with the cursor
// still pointing at the unacknowledged revision.
func (r *reconciler) push(ctx context.Context, epoch int64) error {
	log := logger.FromContext(ctx)

	// nothing ever leaves the device unencrypted: no profile, no push
	enabled, err := r.encryptionEnabled(ctx)
	if err != nil {
		return err
	}
	if !enabled {
		log.Debug().Msg("push skipped: encryption not configured")
		return nil
	}

	key, err := r.keychain.Key()
	if errors.Is(err, crypto.ErrKeyUnavailable) {
		log.Debug().Msg("push deferred: key locked")
		return nil
	}
	if err != nil {
		return err
	}

	cursor, err := r.storages.Cursors.GetCursor(ctx, models.DefaultCollection, models.DirectionPush)
	if err != nil {
		return err
	}

	notes, err := r.storages.Notes.ListDirtySince(ctx, cursor)
	if err != nil {
		return err
	}

	for _, note := range notes {
		outbound, err := r.outboundNote(note, key)
		if err != nil {
			return fmt.Errorf("prepare outbound note (id=%s): %w", note.ID, err)
		}

		ack, err := r.feed.Push(ctx, outbound)
		if err != nil {
			return fmt.Errorf("push note (id=%s): %w", note.ID, err)
		}

		if r.epoch.Load() != epoch {
			return errStalePass
		}

		err = r.storages.WithTx(ctx, func(tx *store.Tx) error {
			if err := r.storages.Notes.MarkPushed(tx, note.ID); err != nil {
				return err
			}
			return r.storages.Cursors.Advance(tx, models.DefaultCollection, models.DirectionPush, note.Version)
		})
		if err != nil {
			return fmt.Errorf("record push ack (id=%s): %w", note.ID, err)
		}

		log.Debug().
			Str("note_id", ack.ID).
			Int64("version", note.Version).
			Msg("note pushed")
	}

	return nil
}

func (r *reconciler) outboundNote(note models.Note, key []byte) (models.NotePush, error) {
	outbound := models.NotePush{
		ID:        note.ID,
		Deleted:   note.Deleted,
		UpdatedAt: note.UpdatedAt,
		Version:   note.Version,
	}
	if note.Deleted {
		// a tombstone has no body to protect
		return outbound, nil
	}

	blob, err := r.codec.Encrypt(note.Body, key)
	if err != nil {
		return models.NotePush{}, err
	}
	outbound.Body = blob
	outbound.IsEncrypted = true
	return outbound, nil
}

func (r *reconciler) encryptionEnabled(ctx context.Context) (bool, error) {
	_, err := r.storages.KV.GetValue(ctx, store.KeyEncryptionSalt)
	if errors.Is(err, store.ErrValueNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *reconciler) Reset(ctx context.Context) error {
	// invalidate any in-flight pass, then wait for it to stand down
	r.epoch.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.storages.Reset(ctx); err != nil {
		return fmt.Errorf("reset local state: %w", err)
	}
	r.keychain.Clear()
	r.status.Set(models.Status{State: models.StateOffline})

	r.logger.Info().Msg("local state reset")
	return nil
}

func (r *reconciler) ResetAll(ctx context.Context) error {
	if err := r.feed.ResetRemote(ctx); err != nil {
		return fmt.Errorf("reset remote state: %w", err)
	}
	return r.Reset(ctx)
}
