package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/laiosys/risu/internal/logger"
	"github.com/laiosys/risu/models"
)

// noteColumns is the column order shared by every note SELECT and scan.
var noteColumns = []string{
	"id",
	"title",
	"body",
	"ciphertext",
	"is_encrypted",
	"decrypt_status",
	"fail_reason",
	"version",
	"updated_at",
	"deleted",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type localNoteRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalNoteRepository constructs the SQLite-backed [NoteRepository].
func NewLocalNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	return &localNoteRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localNoteRepository) SaveNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.Title == "" {
		note.Title = models.TitleFromBody(note.Body)
	}
	if note.DecryptStatus == "" {
		note.DecryptStatus = models.StatusDecrypted
	}
	note.UpdatedAt = time.Now().UTC()

	err := l.DB.WithTx(ctx, func(tx *Tx) error {
		if err := tx.QueryRowContext(ctx, nextVersion).Scan(&note.Version); err != nil {
			return fmt.Errorf("assign note version: %w", err)
		}

		_, err := tx.ExecContext(ctx, upsertLocalNote,
			note.ID,
			note.Title,
			note.Body,
			note.Ciphertext,
			note.IsEncrypted,
			note.DecryptStatus,
			note.FailReason,
			note.Version,
			note.UpdatedAt,
			note.Deleted,
		)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.SaveNote").
			Str("note_id", note.ID).
			Msg("failed to upsert local note")
		return models.Note{}, fmt.Errorf("failed to save note (id=%s): %w", note.ID, err)
	}

	return note, nil
}

func (l *localNoteRepository) GetNote(ctx context.Context, id string) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := l.DB.QueryRowContext(ctx, getSingleNote, id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.GetNote").
			Str("note_id", id).
			Msg("failed to scan note row")
		return models.Note{}, fmt.Errorf("failed to get note (id=%s): %w", id, err)
	}

	return note, nil
}

func (l *localNoteRepository) GetAllNotes(ctx context.Context) ([]models.Note, error) {
	query, args, err := psql.
		Select(noteColumns...).
		From("notes").
		Where(sq.Eq{"deleted": 0}).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build all-notes query: %w", err)
	}

	return l.queryNotes(ctx, "noteRepository.GetAllNotes", query, args...)
}

func (l *localNoteRepository) ListDirtySince(ctx context.Context, sinceVersion int64) ([]models.Note, error) {
	query, args, err := psql.
		Select(noteColumns...).
		From("notes").
		Where(sq.And{
			sq.Gt{"version": sinceVersion},
			sq.Eq{"dirty": 1},
		}).
		OrderBy("version ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build dirty-notes query: %w", err)
	}

	return l.queryNotes(ctx, "noteRepository.ListDirtySince", query, args...)
}

func (l *localNoteRepository) ListByDecryptStatus(ctx context.Context, statuses ...models.DecryptStatus) ([]models.Note, error) {
	query, args, err := psql.
		Select(noteColumns...).
		From("notes").
		Where(sq.Eq{"decrypt_status": statuses}).
		OrderBy("version ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build status query: %w", err)
	}

	return l.queryNotes(ctx, "noteRepository.ListByDecryptStatus", query, args...)
}

func (l *localNoteRepository) ApplyRemote(tx *Tx, note models.Note) error {
	var version int64
	if err := tx.QueryRow(nextVersion).Scan(&version); err != nil {
		return fmt.Errorf("assign note version: %w", err)
	}

	_, err := tx.Exec(upsertRemoteNote,
		note.ID,
		note.Title,
		note.Body,
		note.Ciphertext,
		note.IsEncrypted,
		note.DecryptStatus,
		note.FailReason,
		version,
		note.UpdatedAt,
		note.Deleted,
	)
	if err != nil {
		return fmt.Errorf("failed to apply remote note (id=%s): %w", note.ID, err)
	}

	return nil
}

func (l *localNoteRepository) UpdateDecryptOutcome(ctx context.Context, id string, status models.DecryptStatus, title, body, failReason string) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, updateDecryptOutcome, status, title, body, failReason, id)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.UpdateDecryptOutcome").
			Str("note_id", id).
			Str("decrypt_status", string(status)).
			Msg("failed to record decrypt outcome")
		return fmt.Errorf("failed to record decrypt outcome (id=%s): %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (id=%s): %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w (id=%s)", ErrNoteNotFound, id)
	}

	return nil
}

func (l *localNoteRepository) MarkPushed(tx *Tx, id string) error {
	if _, err := tx.Exec(markNotePushed, id); err != nil {
		return fmt.Errorf("failed to mark note pushed (id=%s): %w", id, err)
	}
	return nil
}

func (l *localNoteRepository) DeleteNote(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	err := l.DB.WithTx(ctx, func(tx *Tx) error {
		var version int64
		if err := tx.QueryRowContext(ctx, nextVersion).Scan(&version); err != nil {
			return fmt.Errorf("assign note version: %w", err)
		}

		result, err := tx.ExecContext(ctx, softDeleteNote, version, time.Now().UTC(), id)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrNoteNotFound
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNoteNotFound) {
			log.Err(err).
				Str("func", "noteRepository.DeleteNote").
				Str("note_id", id).
				Msg("failed to soft delete note")
		}
		return fmt.Errorf("failed to delete note (id=%s): %w", id, err)
	}

	return nil
}

func (l *localNoteRepository) CountNotes(ctx context.Context) (int64, error) {
	var count int64
	if err := l.DB.QueryRowContext(ctx, countNotes).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}

func (l *localNoteRepository) queryNotes(ctx context.Context, caller, query string, args ...any) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", caller).Msg("failed to execute note query")
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		note, scanErr := scanNote(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", caller).Msg("failed to scan note row")
			return nil, fmt.Errorf("failed to scan note row: %w", scanErr)
		}
		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", caller).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating note rows: %w", rowsErr)
	}

	return notes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (models.Note, error) {
	var note models.Note
	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Body,
		&note.Ciphertext,
		&note.IsEncrypted,
		&note.DecryptStatus,
		&note.FailReason,
		&note.Version,
		&note.UpdatedAt,
		&note.Deleted,
	)
	return note, err
}
