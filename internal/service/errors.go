package service

import "errors"

var (
	// ErrNoSession means a sync pass or session operation was requested
	// before OnLogin provided a token.
	ErrNoSession = errors.New("no active session")

	// ErrEncryptionNotEnabled means a passphrase was supplied but the
	// account has no encryption profile yet, locally or remotely.
	ErrEncryptionNotEnabled = errors.New("end-to-end encryption not enabled")

	// errStalePass aborts an in-flight sync pass whose engine epoch was
	// invalidated by a concurrent reset. It never escapes the reconciler.
	errStalePass = errors.New("sync pass superseded by reset")
)
