package store

import "errors"

var (
	// ErrNoteNotFound is returned when a note id has no local record.
	ErrNoteNotFound = errors.New("note not found")

	// ErrValueNotFound is returned when a kv_store key has no value.
	ErrValueNotFound = errors.New("value not found")

	// ErrCursorRegression is returned when an Advance call would move a
	// sync cursor backwards. Cursors are monotonic; a regression means a
	// caller is trying to commit against stale state.
	ErrCursorRegression = errors.New("cursor position regression")
)
