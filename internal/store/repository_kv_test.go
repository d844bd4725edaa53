package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laiosys/risu/internal/logger"
)

func TestKVRepository_RoundTrip(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	_, err := s.KV.GetValue(ctx, KeyEncryptionSalt)
	assert.ErrorIs(t, err, ErrValueNotFound)

	require.NoError(t, s.KV.SetValue(ctx, KeyEncryptionSalt, "c2FsdA=="))
	require.NoError(t, s.KV.SetValue(ctx, KeyEncryptionSalt, "bmV3LXNhbHQ="))

	value, err := s.KV.GetValue(ctx, KeyEncryptionSalt)
	require.NoError(t, err)
	assert.Equal(t, "bmV3LXNhbHQ=", value, "SetValue overwrites an existing key")

	require.NoError(t, s.KV.DeleteValue(ctx, KeyEncryptionSalt))
	_, err = s.KV.GetValue(ctx, KeyEncryptionSalt)
	assert.ErrorIs(t, err, ErrValueNotFound)

	// deleting an absent key is not an error
	require.NoError(t, s.KV.DeleteValue(ctx, KeyEncryptionSalt))
}

func TestKVRepository_QueryErrors(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer mockDB.Close()

	db := &DB{DB: mockDB, logger: logger.Nop()}
	repo := NewLocalKVRepository(db, logger.Nop())
	ctx := context.Background()

	dbErr := errors.New("database is locked")

	mock.ExpectQuery(getKVValue).WithArgs(KeySessionToken).WillReturnError(dbErr)
	_, err = repo.GetValue(ctx, KeySessionToken)
	assert.ErrorIs(t, err, dbErr)

	mock.ExpectExec(setKVValue).WithArgs(KeySessionToken, "token").WillReturnError(dbErr)
	assert.ErrorIs(t, repo.SetValue(ctx, KeySessionToken, "token"), dbErr)

	mock.ExpectExec(deleteKVValue).WithArgs(KeySessionToken).WillReturnError(dbErr)
	assert.ErrorIs(t, repo.DeleteValue(ctx, KeySessionToken), dbErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}
