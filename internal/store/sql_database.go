package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/laiosys/risu/internal/logger"
	"github.com/laiosys/risu/migrations"
)

// DB wraps the SQLite connection shared by all repositories.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies pending schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// Tx is the store's transaction handle. Repository methods that must only
// run inside a transaction (cursor advancement, remote applies) take *Tx as
// their first argument, so there is no bypass path around [DB.WithTx].
type Tx struct {
	*sql.Tx
}

// WithTx runs fn inside a single SQLite transaction. Any error from fn
// rolls the transaction back; otherwise it is committed. This is the sole
// mutual-exclusion boundary for writes that must land together, such as
// "apply pulled items and advance the pull cursor".
func (db *DB) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	tx := &Tx{Tx: sqlTx}
	if err = fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			db.logger.Err(rbErr).Str("func", "DB.WithTx").Msg("rollback failed")
		}
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
