package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/laiosys/risu/internal/config"
	"github.com/laiosys/risu/internal/logger"
	"github.com/laiosys/risu/models"
)

func newTestStorages(t *testing.T) *Storages {
	t.Helper()

	s, err := NewStorages(config.ClientStorage{DB: config.ClientDB{DSN: ":memory:"}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestStorages_Reset_FirstRunEquivalent(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	_, err := s.Notes.SaveNote(ctx, models.Note{Body: "a note"})
	require.NoError(t, err)
	require.NoError(t, s.KV.SetValue(ctx, KeyEncryptionSalt, "salt"))
	require.NoError(t, s.KV.SetValue(ctx, KeySessionToken, "token"))
	require.NoError(t, s.WithTx(ctx, func(tx *Tx) error {
		return s.Cursors.Advance(tx, models.DefaultCollection, models.DirectionPull, 42)
	}))

	require.NoError(t, s.Reset(ctx))

	count, err := s.Notes.CountNotes(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	for _, direction := range []models.Direction{models.DirectionPull, models.DirectionPush} {
		pos, err := s.Cursors.GetCursor(ctx, models.DefaultCollection, direction)
		require.NoError(t, err)
		require.Equal(t, models.InitialPosition, pos)
	}

	_, err = s.KV.GetValue(ctx, KeyEncryptionSalt)
	require.ErrorIs(t, err, ErrValueNotFound)
	_, err = s.KV.GetValue(ctx, KeySessionToken)
	require.ErrorIs(t, err, ErrValueNotFound)
}

func TestStorages_WithTx_RollsBackOnError(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	boom := require.New(t)
	err := s.WithTx(ctx, func(tx *Tx) error {
		if err := s.Cursors.Advance(tx, models.DefaultCollection, models.DirectionPull, 7); err != nil {
			return err
		}
		return context.Canceled // any error rolls the tx back
	})
	boom.Error(err)

	pos, err := s.Cursors.GetCursor(ctx, models.DefaultCollection, models.DirectionPull)
	require.NoError(t, err)
	require.Equal(t, models.InitialPosition, pos)
}
