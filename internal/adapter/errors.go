package adapter

import "errors"

var (
	// ErrUnauthorized maps 401 responses and locally-detected token expiry.
	ErrUnauthorized = errors.New("client unauthorized")
	// ErrNetwork marks transport-level failures: connection refused, DNS,
	// timeouts. The reconciler treats it as "offline", not as a sync error.
	ErrNetwork = errors.New("network unavailable")
)
