// Package crypto owns the key lifecycle and the cipher primitives of the
// sync engine: Argon2id passphrase derivation with a fixed cost profile,
// ChaCha20-Poly1305 note encryption with a nonce-prefixed blob format, and
// the plaintext/ciphertext classification heuristic for legacy records.
package crypto

// Classification is the outcome of the legacy-record heuristic in
// [Codec.Classify].
type Classification int

const (
	// LooksEncrypted means the raw body is a plausible ciphertext blob and
	// should be sent through decryption.
	LooksEncrypted Classification = iota
	// LooksPlaintextNote means the raw body structurally parses as a
	// plaintext note despite whatever the stored flag claims.
	LooksPlaintextNote
)

// Keychain owns the device's key material: the synchronized salt, the
// in-memory derived key, and the key-availability signal that drives
// decryption recovery. The passphrase itself is never persisted; the derived
// key lives only in process memory and is dropped on logout or reset.
type Keychain interface {
	// GenerateSalt returns a fresh random 16-byte salt, base64 encoded, for
	// first-time end-to-end encryption enablement.
	GenerateSalt() (string, error)

	// DeriveKey derives the 256-bit symmetric key from passphrase and the
	// base64 salt using Argon2id with the keychain's fixed cost profile.
	// It does not install the key; call SetKey after the validator check.
	DeriveKey(passphrase, saltB64 string) ([]byte, error)

	// SetKey installs key as the session key and notifies subscribers that
	// a key became available.
	SetKey(key []byte)

	// HasKey reports whether a derived key is currently held in memory.
	HasKey() bool

	// Key returns the session key, or ErrKeyUnavailable when locked.
	Key() ([]byte, error)

	// Clear drops the session key. Called on logout and reset. Notes in
	// PendingKey/Failed states simply remain there until a key reappears.
	Clear()

	// Subscribe returns a channel that receives a signal each time a key
	// becomes available. The channel is buffered; a slow consumer coalesces
	// signals rather than blocking SetKey.
	Subscribe() <-chan struct{}

	// ReconcileSalt merges the locally stored salt with the salt delivered
	// by the auth session. A missing side adopts the other; two non-empty,
	// differing values return ErrSaltConflict.
	ReconcileSalt(local, session string) (string, error)
}

// Codec is the stateless encrypt/decrypt primitive plus the classification
// heuristic. The blob format is base64(nonce ‖ ciphertext) with a fresh
// random 12-byte nonce per encryption; nonce reuse under the same key must
// never occur.
type Codec interface {
	// Encrypt seals plaintext under key and returns the base64 blob.
	Encrypt(plaintext string, key []byte) (string, error)

	// Decrypt opens a base64 blob. It returns ErrCorruptedRecord for
	// structurally malformed input and ErrDecryptFailed when the
	// authentication tag does not verify.
	Decrypt(blobB64 string, key []byte) (string, error)

	// Classify applies the legacy heuristic to a raw body whose
	// is_encrypted flag is suspected wrong.
	Classify(rawBody string) Classification

	// MakeValidator encrypts the validator sentinel under key. The result
	// is stored remotely next to the salt when E2E is first enabled.
	MakeValidator(key []byte) (string, error)

	// CheckValidator decrypts validatorB64 and verifies the sentinel,
	// returning ErrValidatorMismatch when the passphrase-derived key is
	// wrong for this account.
	CheckValidator(validatorB64 string, key []byte) error
}
