package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/laiosys/risu/internal/logger"
	"github.com/laiosys/risu/models"
)

type localCursorRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalCursorRepository constructs the SQLite-backed [CursorRepository].
func NewLocalCursorRepository(db *DB, logger *logger.Logger) CursorRepository {
	return &localCursorRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localCursorRepository) GetCursor(ctx context.Context, collection string, direction models.Direction) (int64, error) {
	log := logger.FromContext(ctx)

	var position int64
	err := l.DB.QueryRowContext(ctx, getCursorPosition, collection, direction).Scan(&position)
	if errors.Is(err, sql.ErrNoRows) {
		return models.InitialPosition, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "cursorRepository.GetCursor").
			Str("collection", collection).
			Str("direction", string(direction)).
			Msg("failed to read cursor position")
		return 0, fmt.Errorf("failed to get cursor (%s/%s): %w", collection, direction, err)
	}

	return position, nil
}

// Advance moves the cursor forward inside tx. The current position is read
// within the same transaction, so a concurrent pass cannot interleave
// between the check and the write.
func (l *localCursorRepository) Advance(tx *Tx, collection string, direction models.Direction, position int64) error {
	var current int64
	err := tx.QueryRow(getCursorPosition, collection, direction).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read cursor (%s/%s): %w", collection, direction, err)
	}

	if position < current {
		return fmt.Errorf("%w (%s/%s): %d < %d", ErrCursorRegression, collection, direction, position, current)
	}
	if position == current {
		return nil
	}

	if _, err = tx.Exec(upsertCursorPosition, collection, direction, position); err != nil {
		return fmt.Errorf("failed to advance cursor (%s/%s): %w", collection, direction, err)
	}

	return nil
}
