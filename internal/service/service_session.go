package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/laiosys/risu/internal/adapter"
	"github.com/laiosys/risu/internal/crypto"
	"github.com/laiosys/risu/internal/logger"
	"github.com/laiosys/risu/internal/store"
	"github.com/laiosys/risu/models"
)

type sessionManager struct {
	storages *store.Storages
	feed     adapter.FeedClient
	keychain crypto.Keychain
	codec    crypto.Codec
	status   StatusTracker
	logger   *logger.Logger
}

// NewSessionManager creates the session and passphrase lifecycle handler.
func NewSessionManager(storages *store.Storages, feed adapter.FeedClient, keychain crypto.Keychain, codec crypto.Codec, status StatusTracker, logger *logger.Logger) SessionManager {
	return &sessionManager{
		storages: storages,
		feed:     feed,
		keychain: keychain,
		codec:    codec,
		status:   status,
		logger:   logger,
	}
}

func (s *sessionManager) OnLogin(ctx context.Context, session models.Session) error {
	if session.Token == "" {
		return ErrNoSession
	}

	local, err := s.storages.KV.GetValue(ctx, store.KeyEncryptionSalt)
	if err != nil && !errors.Is(err, store.ErrValueNotFound) {
		return err
	}

	salt, err := s.keychain.ReconcileSalt(local, session.Salt)
	if err != nil {
		// conflicting salts would make every note from the other device
		// undecryptable; refuse the session rather than corrupt state
		return fmt.Errorf("reconcile session salt: %w", err)
	}

	if salt != "" && salt != local {
		if err = s.storages.KV.SetValue(ctx, store.KeyEncryptionSalt, salt); err != nil {
			return err
		}
	}
	if err = s.storages.KV.SetValue(ctx, store.KeySessionToken, session.Token); err != nil {
		return err
	}
	s.feed.SetToken(session.Token)

	s.logger.Info().Msg("session established")
	return nil
}

func (s *sessionManager) SetPassphrase(ctx context.Context, passphrase string) error {
	salt, validator, err := s.encryptionProfile(ctx)
	if err != nil {
		return err
	}
	if salt == "" {
		return ErrEncryptionNotEnabled
	}

	key, err := s.keychain.DeriveKey(passphrase, salt)
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}

	if validator != "" {
		if err = s.codec.CheckValidator(validator, key); err != nil {
			return fmt.Errorf("verify passphrase: %w", err)
		}
	}

	// installation signals the recovery handler
	s.keychain.SetKey(key)
	return nil
}

func (s *sessionManager) EnableEncryption(ctx context.Context, passphrase string) error {
	salt, _, err := s.encryptionProfile(ctx)
	if err != nil {
		return err
	}
	if salt != "" {
		// already enabled somewhere; this is just an unlock
		return s.SetPassphrase(ctx, passphrase)
	}

	salt, err = s.keychain.GenerateSalt()
	if err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	key, err := s.keychain.DeriveKey(passphrase, salt)
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}
	validator, err := s.codec.MakeValidator(key)
	if err != nil {
		return fmt.Errorf("build validator: %w", err)
	}

	recorded, err := s.feed.EnableE2E(ctx, salt, validator)
	if err != nil {
		return fmt.Errorf("register encryption profile: %w", err)
	}

	if recorded != salt {
		// another device won the enablement race; its salt is canonical
		s.logger.Info().Msg("server already had an encryption profile, adopting it")
		key, err = s.keychain.DeriveKey(passphrase, recorded)
		if err != nil {
			return fmt.Errorf("derive key for recorded salt: %w", err)
		}

		profile, profErr := s.feed.SaltProfile(ctx)
		if profErr != nil {
			return fmt.Errorf("fetch recorded encryption profile: %w", profErr)
		}
		validator = profile.Validator
		if validator != "" {
			if err = s.codec.CheckValidator(validator, key); err != nil {
				return fmt.Errorf("verify passphrase against recorded profile: %w", err)
			}
		}
		salt = recorded
	}

	if err = s.storages.KV.SetValue(ctx, store.KeyEncryptionSalt, salt); err != nil {
		return err
	}
	if validator != "" {
		if err = s.storages.KV.SetValue(ctx, store.KeyValidator, validator); err != nil {
			return err
		}
	}

	s.keychain.SetKey(key)
	return nil
}

func (s *sessionManager) OnLogout(ctx context.Context) error {
	s.keychain.Clear()
	s.feed.SetToken("")

	if err := s.storages.KV.DeleteValue(ctx, store.KeySessionToken); err != nil {
		return err
	}

	s.status.Set(models.Status{State: models.StateOffline})
	s.logger.Info().Msg("session closed")
	return nil
}

// encryptionProfile returns the salt and validator, preferring local copies
// and falling back to the account profile when the local store has none.
func (s *sessionManager) encryptionProfile(ctx context.Context) (salt, validator string, err error) {
	salt, err = s.storages.KV.GetValue(ctx, store.KeyEncryptionSalt)
	if err != nil && !errors.Is(err, store.ErrValueNotFound) {
		return "", "", err
	}
	validator, err = s.storages.KV.GetValue(ctx, store.KeyValidator)
	if err != nil && !errors.Is(err, store.ErrValueNotFound) {
		return "", "", err
	}

	if salt != "" {
		return salt, validator, nil
	}
	if s.feed.Token() == "" {
		return "", "", nil
	}

	profile, err := s.feed.SaltProfile(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrNetwork) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("fetch encryption profile: %w", err)
	}
	if profile.Salt == "" {
		return "", "", nil
	}

	if err = s.storages.KV.SetValue(ctx, store.KeyEncryptionSalt, profile.Salt); err != nil {
		return "", "", err
	}
	if profile.Validator != "" {
		if err = s.storages.KV.SetValue(ctx, store.KeyValidator, profile.Validator); err != nil {
			return "", "", err
		}
	}

	return profile.Salt, profile.Validator, nil
}
