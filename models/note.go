package models

import (
	"strings"
	"time"
)

// DecryptStatus is the per-note decryption outcome recorded in the local
// store. Decrypted, Failed and PlaintextLegacy are terminal for a pull pass;
// PendingKey is not terminal but is still durably recorded so the note is
// neither lost nor re-fetched.
type DecryptStatus string

const (
	// StatusDecrypted means the plaintext body is available locally.
	StatusDecrypted DecryptStatus = "decrypted"
	// StatusPendingKey means the note is encrypted and no key was available
	// when it was pulled. The ciphertext is retained for a later retry.
	StatusPendingKey DecryptStatus = "pending_key"
	// StatusFailed means decryption was attempted with a key and failed.
	// FailReason carries the classified cause.
	StatusFailed DecryptStatus = "failed"
	// StatusPlaintextLegacy marks a record whose is_encrypted flag claimed
	// ciphertext but whose body is structurally plaintext (produced by an
	// older client that set the flag inconsistently).
	StatusPlaintextLegacy DecryptStatus = "plaintext_legacy"
)

// Note is a locally stored note record. Body holds the displayable text:
// the real plaintext when DecryptStatus is Decrypted or PlaintextLegacy, and
// an explanatory placeholder otherwise. Ciphertext retains the full
// nonce-prefixed AEAD blob (base64) for encrypted notes regardless of
// decryption outcome, so recovery never needs a network fetch.
type Note struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Body          string        `json:"body"`
	Ciphertext    CipheredBody  `json:"ciphertext,omitempty"`
	IsEncrypted   bool          `json:"is_encrypted"`
	DecryptStatus DecryptStatus `json:"decrypt_status"`
	FailReason    string        `json:"fail_reason,omitempty"`
	Version       int64         `json:"version"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Deleted       bool          `json:"deleted"`
}

// CipheredBody is a string alias representing encrypted note content:
// base64(nonce ‖ ciphertext). Its internal structure is opaque to the store.
type CipheredBody string

// TitleFromBody derives a display title from the first non-empty line of a
// plaintext body, matching how notes are titled at creation time.
func TitleFromBody(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
