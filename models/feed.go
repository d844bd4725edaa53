package models

import "time"

// RemoteChange is one item of the ordered remote change feed. Body carries
// ciphertext (nonce-prefixed AEAD blob, base64) when IsEncrypted is true and
// plaintext otherwise. Position is the server-assigned feed sequence.
type RemoteChange struct {
	ID          string    `json:"id"`
	Body        string    `json:"body"`
	IsEncrypted bool      `json:"is_encrypted"`
	Deleted     bool      `json:"deleted"`
	UpdatedAt   time.Time `json:"updated_at"`
	Position    int64     `json:"position"`
}

// PullResult is one page of the remote change feed.
type PullResult struct {
	Changes      []RemoteChange `json:"changes"`
	NextPosition int64          `json:"next_position"`
	HasMore      bool           `json:"has_more"`
}

// NotePush is the outbound representation of a local note. Body is always
// ciphertext when end-to-end encryption is enabled; the server never sees
// plaintext in that mode.
type NotePush struct {
	ID          string    `json:"id"`
	Body        string    `json:"body"`
	IsEncrypted bool      `json:"is_encrypted"`
	Deleted     bool      `json:"deleted"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int64     `json:"version"`
}

// PushAck is the server acknowledgment for a pushed note. Version echoes the
// local version the push covered; the push cursor advances to it.
type PushAck struct {
	ID       string `json:"id"`
	Version  int64  `json:"version"`
	Position int64  `json:"position"`
}

// SaltProfile is the account's encryption profile as stored remotely: the
// synchronized key-derivation salt and the passphrase validator blob. Both
// are empty until end-to-end encryption has been enabled on some device.
type SaltProfile struct {
	Salt      string `json:"encryption_salt"`
	Validator string `json:"encryption_validator"`
}
