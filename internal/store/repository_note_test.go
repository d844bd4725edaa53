package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laiosys/risu/models"
)

func TestNoteRepository_SaveNote(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	saved, err := s.Notes.SaveNote(ctx, models.Note{Body: "Groceries\nmilk, eggs"})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Groceries", saved.Title)
	assert.Equal(t, models.StatusDecrypted, saved.DecryptStatus)
	assert.Equal(t, int64(1), saved.Version)

	second, err := s.Notes.SaveNote(ctx, models.Note{Body: "second"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Version, "versions are assigned monotonically")

	// an edit bumps the version past every existing note
	saved.Body = "Groceries\nmilk, eggs, bread"
	edited, err := s.Notes.SaveNote(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, edited.ID)
	assert.Equal(t, int64(3), edited.Version)

	got, err := s.Notes.GetNote(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries\nmilk, eggs, bread", got.Body)
}

func TestNoteRepository_GetNote_NotFound(t *testing.T) {
	s := newTestStorages(t)

	_, err := s.Notes.GetNote(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNoteRepository_ListDirtySince(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	local, err := s.Notes.SaveNote(ctx, models.Note{Body: "local edit"})
	require.NoError(t, err)

	// a pull-applied note must never show up as dirty
	require.NoError(t, s.WithTx(ctx, func(tx *Tx) error {
		return s.Notes.ApplyRemote(tx, models.Note{
			ID:            "remote-1",
			Title:         "remote",
			Body:          "remote body",
			DecryptStatus: models.StatusDecrypted,
			UpdatedAt:     time.Now().UTC(),
		})
	}))

	dirty, err := s.Notes.ListDirtySince(ctx, models.InitialPosition)
	require.NoError(t, err)
	require.Len(t, dirty, 1)
	assert.Equal(t, local.ID, dirty[0].ID)

	// once pushed the note drops out of the dirty set
	require.NoError(t, s.WithTx(ctx, func(tx *Tx) error {
		return s.Notes.MarkPushed(tx, local.ID)
	}))

	dirty, err = s.Notes.ListDirtySince(ctx, models.InitialPosition)
	require.NoError(t, err)
	assert.Empty(t, dirty)

	// sinceVersion excludes already-covered versions
	dirty, err = s.Notes.ListDirtySince(ctx, local.Version)
	require.NoError(t, err)
	assert.Empty(t, dirty)
}

func TestNoteRepository_ApplyRemote_Idempotent(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	stamp := time.Now().UTC().Truncate(time.Second)
	change := models.Note{
		ID:            "note-1",
		Title:         "Hello",
		Body:          "Hello world",
		DecryptStatus: models.StatusDecrypted,
		UpdatedAt:     stamp,
	}

	apply := func(note models.Note) {
		t.Helper()
		require.NoError(t, s.WithTx(ctx, func(tx *Tx) error {
			return s.Notes.ApplyRemote(tx, note)
		}))
	}

	apply(change)
	apply(change) // same change twice, as after a crash between commit and ack

	got, err := s.Notes.GetNote(ctx, "note-1")
	require.NoError(t, err)
	assert.Equal(t, "Hello world", got.Body)

	count, err := s.Notes.CountNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// an older remote change never clobbers a newer local row
	stale := change
	stale.Body = "stale body"
	stale.UpdatedAt = stamp.Add(-time.Hour)
	apply(stale)

	got, err = s.Notes.GetNote(ctx, "note-1")
	require.NoError(t, err)
	assert.Equal(t, "Hello world", got.Body)

	// a newer one does
	fresh := change
	fresh.Body = "fresh body"
	fresh.UpdatedAt = stamp.Add(time.Hour)
	apply(fresh)

	got, err = s.Notes.GetNote(ctx, "note-1")
	require.NoError(t, err)
	assert.Equal(t, "fresh body", got.Body)
}

func TestNoteRepository_UpdateDecryptOutcome(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	require.NoError(t, s.WithTx(ctx, func(tx *Tx) error {
		return s.Notes.ApplyRemote(tx, models.Note{
			ID:            "locked-1",
			Title:         "[encrypted]",
			Ciphertext:    models.CipheredBody("b64blob"),
			IsEncrypted:   true,
			DecryptStatus: models.StatusPendingKey,
			UpdatedAt:     time.Now().UTC(),
		})
	}))

	err := s.Notes.UpdateDecryptOutcome(ctx, "locked-1", models.StatusDecrypted, "Hello", "Hello world", "")
	require.NoError(t, err)

	got, err := s.Notes.GetNote(ctx, "locked-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDecrypted, got.DecryptStatus)
	assert.Equal(t, "Hello world", got.Body)
	assert.NotEmpty(t, got.Ciphertext, "ciphertext is retained after decryption")

	err = s.Notes.UpdateDecryptOutcome(ctx, "missing", models.StatusFailed, "", "", "decryption failed")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNoteRepository_ListByDecryptStatus(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	seed := []models.Note{
		{ID: "a", DecryptStatus: models.StatusPendingKey, IsEncrypted: true},
		{ID: "b", DecryptStatus: models.StatusFailed, IsEncrypted: true},
		{ID: "c", DecryptStatus: models.StatusDecrypted},
	}
	require.NoError(t, s.WithTx(ctx, func(tx *Tx) error {
		for _, note := range seed {
			note.UpdatedAt = time.Now().UTC()
			if err := s.Notes.ApplyRemote(tx, note); err != nil {
				return err
			}
		}
		return nil
	}))

	notes, err := s.Notes.ListByDecryptStatus(ctx, models.StatusPendingKey, models.StatusFailed)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "a", notes[0].ID)
	assert.Equal(t, "b", notes[1].ID)
}

func TestNoteRepository_DeleteNote(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	saved, err := s.Notes.SaveNote(ctx, models.Note{Body: "to delete"})
	require.NoError(t, err)

	require.NoError(t, s.Notes.DeleteNote(ctx, saved.ID))

	// soft deleted: gone from listings, still present for push
	all, err := s.Notes.GetAllNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	dirty, err := s.Notes.ListDirtySince(ctx, models.InitialPosition)
	require.NoError(t, err)
	require.Len(t, dirty, 1)
	assert.True(t, dirty[0].Deleted)
	assert.Greater(t, dirty[0].Version, saved.Version)

	assert.ErrorIs(t, s.Notes.DeleteNote(ctx, "missing"), ErrNoteNotFound)
}
