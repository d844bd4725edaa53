package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/laiosys/risu/internal/logger"
)

type localKVRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalKVRepository constructs the SQLite-backed [KVRepository].
func NewLocalKVRepository(db *DB, logger *logger.Logger) KVRepository {
	return &localKVRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localKVRepository) GetValue(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	var value string
	err := l.DB.QueryRowContext(ctx, getKVValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrValueNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "kvRepository.GetValue").
			Str("key", key).
			Msg("failed to read kv value")
		return "", fmt.Errorf("failed to get value (key=%s): %w", key, err)
	}

	return value, nil
}

func (l *localKVRepository) SetValue(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, setKVValue, key, value); err != nil {
		log.Err(err).
			Str("func", "kvRepository.SetValue").
			Str("key", key).
			Msg("failed to write kv value")
		return fmt.Errorf("failed to set value (key=%s): %w", key, err)
	}

	return nil
}

func (l *localKVRepository) DeleteValue(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, deleteKVValue, key); err != nil {
		log.Err(err).
			Str("func", "kvRepository.DeleteValue").
			Str("key", key).
			Msg("failed to delete kv value")
		return fmt.Errorf("failed to delete value (key=%s): %w", key, err)
	}

	return nil
}
