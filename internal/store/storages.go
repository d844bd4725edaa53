package store

import (
	"context"
	"fmt"

	"github.com/laiosys/risu/internal/config"
	"github.com/laiosys/risu/internal/logger"
)

// Storages groups all local repositories into a single value passed to the
// service layer, together with the transaction entry point they share.
type Storages struct {
	// Notes is the SQLite-backed note repository.
	Notes NoteRepository
	// Cursors tracks pull/push progress per collection.
	Cursors CursorRepository
	// KV stores the session token, salt, and cached validator.
	KV KVRepository

	db *DB
}

// NewStorages initialises the local storage layer: it opens (or creates)
// the SQLite database named by cfg, runs pending schema migrations, and
// wires the repositories.
func NewStorages(cfg config.ClientStorage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("dsn", cfg.DB.DSN).Msg("opening local storage")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Notes:   NewLocalNoteRepository(db, logger),
		Cursors: NewLocalCursorRepository(db, logger),
		KV:      NewLocalKVRepository(db, logger),
		db:      db,
	}, nil
}

// WithTx runs fn inside a single transaction. See [DB.WithTx].
func (s *Storages) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	return s.db.WithTx(ctx, fn)
}

// Reset atomically wipes every note, every cursor, and all kv state. After
// Reset the store is indistinguishable from a first run: zero notes, both
// cursors at the initial position, no salt, no token.
func (s *Storages) Reset(ctx context.Context) error {
	return s.db.WithTx(ctx, func(tx *Tx) error {
		for _, stmt := range []string{
			`DELETE FROM notes;`,
			`DELETE FROM sync_cursors;`,
			`DELETE FROM kv_store;`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("reset local state: %w", err)
			}
		}
		return nil
	})
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}
