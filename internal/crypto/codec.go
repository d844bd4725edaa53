package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/crypto/chacha20poly1305"
)

// validatorSentinel is the fixed plaintext encrypted under the derived key
// and stored remotely when E2E is enabled. Decrypting it back proves the
// passphrase is right before any note data is touched. The value is part of
// the wire format shared with other client implementations.
const validatorSentinel = "RISU-VALID"

// minBlobLen is the smallest structurally valid ciphertext blob: a 12-byte
// nonce followed by at least the 16-byte Poly1305 tag.
const minBlobLen = chacha20poly1305.NonceSize + chacha20poly1305.Overhead

// codec is the private implementation of [Codec].
type codec struct{}

// NewCodec constructs the ChaCha20-Poly1305 [Codec]. The codec is stateless;
// the key is an explicit argument on every call so that logout and reset are
// a pure "drop the key" operation with no leftover cipher state.
func NewCodec() Codec {
	return &codec{}
}

// Encrypt implements [Codec]. The blob layout is nonce (12 bytes) ‖
// ciphertext, base64 encoded, matching the format produced by every other
// client of the sync service. A fresh random nonce is read from the OS
// CSPRNG per call.
func (c *codec) Encrypt(plaintext string, key []byte) (string, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := aead.Seal(nil, nonce, []byte(plaintext), nil)
	blob := append(nonce, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [Codec]. Structural problems (bad base64, blob shorter
// than nonce+tag) return ErrCorruptedRecord; an authentication-tag mismatch
// (wrong key or tampered data) returns ErrDecryptFailed. The two are kept
// distinct because recovery records them as different failure reasons.
func (c *codec) Decrypt(blobB64 string, key []byte) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(blobB64)
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %v", ErrCorruptedRecord, err)
	}
	if len(blob) < minBlobLen {
		return "", fmt.Errorf("%w: blob too short (%d bytes)", ErrCorruptedRecord, len(blob))
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	nonce, ciphertext := blob[:chacha20poly1305.NonceSize], blob[chacha20poly1305.NonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}

	return string(plaintext), nil
}

// Classify implements [Codec]. The heuristic targets records written by an
// older client that set is_encrypted inconsistently on one platform: a body
// that does not decode as a plausible blob (bad base64, or decoded length
// below nonce+tag) but is valid UTF-8 is a plaintext note. Anything that
// looks like a well-formed blob stays classified as encrypted, even though
// rare plaintext bodies are themselves valid base64.
func (c *codec) Classify(rawBody string) Classification {
	if !utf8.ValidString(rawBody) {
		return LooksEncrypted
	}

	decoded, err := base64.StdEncoding.DecodeString(rawBody)
	if err != nil || len(decoded) < minBlobLen {
		return LooksPlaintextNote
	}

	return LooksEncrypted
}

// MakeValidator implements [Codec].
func (c *codec) MakeValidator(key []byte) (string, error) {
	return c.Encrypt(validatorSentinel, key)
}

// CheckValidator implements [Codec]. A structurally broken or unopenable
// validator maps to ErrValidatorMismatch: in both cases the key cannot be
// trusted for this account.
func (c *codec) CheckValidator(validatorB64 string, key []byte) error {
	plaintext, err := c.Decrypt(validatorB64, key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidatorMismatch, err)
	}

	if subtle.ConstantTimeCompare([]byte(plaintext), []byte(validatorSentinel)) != 1 {
		return ErrValidatorMismatch
	}
	return nil
}
