package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/laiosys/risu/internal/adapter"
	"github.com/laiosys/risu/internal/config"
	"github.com/laiosys/risu/internal/logger"
	"github.com/laiosys/risu/internal/service"
	"github.com/laiosys/risu/internal/store"
)

// App owns the wired engine and its lifecycle.
type App struct {
	cfg      *config.ClientConfig
	log      *logger.Logger
	storages *store.Storages
	feed     adapter.FeedClient
	services *service.Services
}

// NewApp wires the engine from the resolved configuration.
func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	feed := adapter.NewHTTPFeedClient(cfg.Adapter)

	return &App{
		cfg:      cfg,
		log:      log,
		storages: storages,
		feed:     feed,
		services: service.NewServices(storages, feed, log),
	}, nil
}

// Services exposes the wired service layer to the embedding UI.
func (a *App) Services() *service.Services {
	return a.services
}

// Run restores the stored session, starts the recovery handler and the
// background sync job, fires an initial pass, and blocks until ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.storages.Close(); err != nil {
			a.log.Err(err).Msg("closing local storage")
		}
	}()

	if err := a.restoreSession(ctx); err != nil {
		return err
	}

	a.services.Recovery.Start(ctx)
	defer a.services.Recovery.Stop()

	if err := a.services.Reconciler.Sync(ctx); err != nil {
		a.log.Warn().Err(err).Msg("initial sync pass failed")
	}

	a.services.SyncJob.Start(ctx, a.cfg.Workers.SyncInterval)
	defer a.services.SyncJob.Stop()

	<-ctx.Done()
	a.log.Info().Msg("shutting down")
	return nil
}

// restoreSession reinstates the bearer token persisted by a previous login,
// if any. Without one the engine stays offline until OnLogin.
func (a *App) restoreSession(ctx context.Context) error {
	token, err := a.storages.KV.GetValue(ctx, store.KeySessionToken)
	if errors.Is(err, store.ErrValueNotFound) {
		a.log.Info().Msg("no stored session, starting offline")
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	a.feed.SetToken(token)
	a.log.Info().Msg("session restored")
	return nil
}
