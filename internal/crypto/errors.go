package crypto

import "errors"

var (
	// ErrKeyUnavailable is returned when an operation needs the derived key
	// and none is held in memory (locked, logged out, or never derived).
	ErrKeyUnavailable = errors.New("encryption key unavailable")

	// ErrSaltConflict is returned when the locally stored salt and the
	// session salt are both non-empty and disagree. This is a fatal
	// configuration error: silently picking one side would make the two
	// devices derive different keys from the same passphrase.
	ErrSaltConflict = errors.New("local and session encryption salts conflict")

	// ErrDecryptFailed is returned when the AEAD authentication tag does not
	// verify: either the key is wrong or the ciphertext was tampered with.
	ErrDecryptFailed = errors.New("decryption failed")

	// ErrCorruptedRecord is returned when a ciphertext blob is structurally
	// malformed (bad base64, or too short to contain a nonce and tag).
	ErrCorruptedRecord = errors.New("corrupted record")

	// ErrValidatorMismatch is returned when the remote passphrase validator
	// does not decrypt to the expected sentinel under the derived key,
	// meaning the passphrase is wrong for this account.
	ErrValidatorMismatch = errors.New("passphrase validator mismatch")
)
