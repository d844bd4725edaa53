// Package adapter provides transport-layer abstractions for communicating
// with the remote note feed.
//
// The primary abstraction is [FeedClient], which decouples the service layer
// from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPFeedClient]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes and
// transport failures by mapHTTPError so that callers can use [errors.Is] for
// transport-agnostic error handling (e.g. [ErrUnauthorized] for 401,
// [ErrNetwork] for connection failures).
package adapter

import (
	"context"

	"github.com/laiosys/risu/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/feed_client_mock.go -package=mock

// FeedClient defines transport-agnostic communication with the remote note
// feed. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type FeedClient interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the client, or an
	// empty string if no token has been set yet.
	Token() string

	// Pull fetches one page of the ordered change feed for collection,
	// starting strictly after position since. The returned page carries at
	// most limit items together with the position to resume from and
	// whether more pages are pending.
	Pull(ctx context.Context, collection string, since int64, limit int) (models.PullResult, error)

	// Push uploads a single local note revision. The server acknowledges
	// with the version it recorded; the push cursor advances to it.
	Push(ctx context.Context, note models.NotePush) (models.PushAck, error)

	// SaltProfile fetches the account's encryption profile: the
	// key-derivation salt and the passphrase validator, both empty until
	// end-to-end encryption has been enabled on some device.
	SaltProfile(ctx context.Context) (models.SaltProfile, error)

	// EnableE2E registers salt and validator as the account's encryption
	// profile and returns the salt the server recorded. When another device
	// won the race the returned salt differs from the submitted one.
	EnableE2E(ctx context.Context, salt, validator string) (string, error)

	// ResetRemote asks the server to drop every stored note for the
	// account. Used together with a local reset to start over.
	ResetRemote(ctx context.Context) error
}
