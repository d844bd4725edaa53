package service

import (
	"context"
	"errors"
	"sync"

	"github.com/laiosys/risu/internal/crypto"
	"github.com/laiosys/risu/internal/logger"
	"github.com/laiosys/risu/internal/store"
	"github.com/laiosys/risu/models"
)

type recoveryHandler struct {
	storages *store.Storages
	keychain crypto.Keychain
	codec    crypto.Codec
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRecoveryHandler creates the handler that re-drives decryption of parked
// notes whenever a key becomes available. Recovery works entirely from
// retained ciphertext; it never touches the network.
func NewRecoveryHandler(storages *store.Storages, keychain crypto.Keychain, codec crypto.Codec, logger *logger.Logger) RecoveryHandler {
	return &recoveryHandler{
		storages: storages,
		keychain: keychain,
		codec:    codec,
		logger:   logger,
	}
}

func (h *recoveryHandler) Start(ctx context.Context) {
	h.Stop()

	h.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.wg.Add(1)
	h.mu.Unlock()

	keyArrived := h.keychain.Subscribe()

	go func() {
		defer h.wg.Done()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-keyArrived:
				if err := h.Recover(loopCtx); err != nil {
					h.logger.Err(err).Msg("decryption recovery failed")
				}
			}
		}
	}()
}

func (h *recoveryHandler) Stop() {
	h.mu.Lock()
	cancel := h.cancel
	h.cancel = nil
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	h.wg.Wait()
}

// Recover retries decryption for every note parked in PendingKey or Failed
// state using the current key and records each outcome. Outcome updates do
// not bump the note version, so recovered notes are not re-pushed.
func (h *recoveryHandler) Recover(ctx context.Context) error {
	log := logger.FromContext(ctx)

	key, err := h.keychain.Key()
	if err != nil {
		// no key, nothing to retry
		return nil
	}

	parked, err := h.storages.Notes.ListByDecryptStatus(ctx, models.StatusPendingKey, models.StatusFailed)
	if err != nil {
		return err
	}
	if len(parked) == 0 {
		return nil
	}

	recovered := 0
	for _, note := range parked {
		plaintext, decErr := h.codec.Decrypt(string(note.Ciphertext), key)
		if decErr != nil {
			status, reason := classifyDecryptFailure(decErr)
			if status == note.DecryptStatus && reason == note.FailReason {
				continue
			}
			if err = h.storages.Notes.UpdateDecryptOutcome(ctx, note.ID, status, lockedTitle, failedBody, reason); err != nil {
				return err
			}
			continue
		}

		err = h.storages.Notes.UpdateDecryptOutcome(ctx, note.ID,
			models.StatusDecrypted, models.TitleFromBody(plaintext), plaintext, "")
		if err != nil {
			return err
		}
		recovered++
	}

	log.Info().
		Int("parked", len(parked)).
		Int("recovered", recovered).
		Msg("decryption recovery pass finished")
	return nil
}

// classifyDecryptFailure maps a codec error to the durable outcome recorded
// on the note.
func classifyDecryptFailure(err error) (models.DecryptStatus, string) {
	switch {
	case errors.Is(err, crypto.ErrKeyUnavailable):
		return models.StatusPendingKey, ""
	case errors.Is(err, crypto.ErrCorruptedRecord):
		return models.StatusFailed, "corrupted record"
	default:
		return models.StatusFailed, "decryption failed"
	}
}
