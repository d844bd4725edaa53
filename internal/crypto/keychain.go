package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/argon2"
)

// keychain is the private implementation of [Keychain].
type keychain struct {
	// Argon2id tuning parameters. The profile is a deployment constant:
	// every device must use the same values or the same passphrase would
	// derive different keys on different devices.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32

	mu   sync.RWMutex
	key  []byte
	subs []chan struct{}
}

// NewKeychain constructs a [Keychain] with the fixed Argon2id profile used
// across all deployments of the sync service:
//   - time cost:   3 iterations
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewKeychain() Keychain {
	return &keychain{
		argonTime:    3,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// GenerateSalt implements [Keychain]. It reads 16 random bytes from the OS
// CSPRNG and returns them base64 encoded. Returns an error if the random
// read fails.
func (k *keychain) GenerateSalt() (string, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// DeriveKey implements [Keychain]. It decodes the base64 salt and derives a
// 256-bit key from passphrase using Argon2id with the profile stored in the
// receiver. Derivation is CPU and memory intensive by design; callers must
// not run it on a goroutine that services interactive input.
func (k *keychain) DeriveKey(passphrase, saltB64 string) ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(saltB64)
	if err != nil {
		return nil, fmt.Errorf("decode salt: %w", err)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("empty salt")
	}

	key := argon2.IDKey(
		[]byte(passphrase),
		salt,
		k.argonTime,
		k.argonMemory,
		k.argonThreads,
		k.argonKeyLen,
	)
	return key, nil
}

// SetKey implements [Keychain]. It installs key and signals every
// subscriber. Sends are non-blocking: each subscriber channel holds one
// pending signal at most, which is enough to trigger a recovery re-scan.
func (k *keychain) SetKey(key []byte) {
	k.mu.Lock()
	k.key = make([]byte, len(key))
	copy(k.key, key)
	subs := make([]chan struct{}, len(k.subs))
	copy(subs, k.subs)
	k.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// HasKey implements [Keychain].
func (k *keychain) HasKey() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.key) > 0
}

// Key implements [Keychain]. It returns a copy of the session key so callers
// cannot mutate the keychain's state, or ErrKeyUnavailable when locked.
func (k *keychain) Key() ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if len(k.key) == 0 {
		return nil, ErrKeyUnavailable
	}
	out := make([]byte, len(k.key))
	copy(out, k.key)
	return out, nil
}

// Clear implements [Keychain]. The key bytes are zeroed before the slice is
// released.
func (k *keychain) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()

	for i := range k.key {
		k.key[i] = 0
	}
	k.key = nil
}

// Subscribe implements [Keychain].
func (k *keychain) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)

	k.mu.Lock()
	k.subs = append(k.subs, ch)
	k.mu.Unlock()

	return ch
}

// ReconcileSalt implements [Keychain]. Exactly one of four cases applies:
// both empty (no E2E anywhere yet), local missing (adopt session), session
// missing (keep local, caller pushes it), both present and equal (no-op).
// Conflicting non-empty values are a fatal configuration error, guarding
// against login paths that established a session without propagating the
// salt.
func (k *keychain) ReconcileSalt(local, session string) (string, error) {
	switch {
	case local == "":
		return session, nil
	case session == "":
		return local, nil
	case local == session:
		return local, nil
	default:
		return "", ErrSaltConflict
	}
}
