package service

import (
	"github.com/laiosys/risu/internal/adapter"
	"github.com/laiosys/risu/internal/crypto"
	"github.com/laiosys/risu/internal/logger"
	"github.com/laiosys/risu/internal/store"
)

// Services bundles the engine's service layer for the application wiring.
type Services struct {
	Status     StatusTracker
	Reconciler Reconciler
	Recovery   RecoveryHandler
	Session    SessionManager
	SyncJob    SyncJob
}

// NewServices wires the full engine over the given store and feed client.
func NewServices(storages *store.Storages, feed adapter.FeedClient, log *logger.Logger) *Services {
	keychain := crypto.NewKeychain()
	codec := crypto.NewCodec()
	status := NewStatusTracker()

	reconciler := NewReconciler(storages, feed, keychain, codec, status, log)

	return &Services{
		Status:     status,
		Reconciler: reconciler,
		Recovery:   NewRecoveryHandler(storages, keychain, codec, log),
		Session:    NewSessionManager(storages, feed, keychain, codec, status, log),
		SyncJob:    NewSyncJob(reconciler),
	}
}
