package store

const (
	nextVersion = `
		SELECT COALESCE(MAX(version), 0) + 1 FROM notes;`

	upsertLocalNote = `
		INSERT INTO notes (
			id,
			title,
			body,
			ciphertext,
			is_encrypted,
			decrypt_status,
			fail_reason,
			version,
			dirty,
			updated_at,
			deleted
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, $9, $10)
		ON CONFLICT(id) DO UPDATE SET
			title          = excluded.title,
			body           = excluded.body,
			ciphertext     = excluded.ciphertext,
			is_encrypted   = excluded.is_encrypted,
			decrypt_status = excluded.decrypt_status,
			fail_reason    = excluded.fail_reason,
			version        = excluded.version,
			dirty          = 1,
			updated_at     = excluded.updated_at,
			deleted        = excluded.deleted;`

	upsertRemoteNote = `
		INSERT INTO notes (
			id,
			title,
			body,
			ciphertext,
			is_encrypted,
			decrypt_status,
			fail_reason,
			version,
			dirty,
			updated_at,
			deleted
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $10)
		ON CONFLICT(id) DO UPDATE SET
			title          = excluded.title,
			body           = excluded.body,
			ciphertext     = excluded.ciphertext,
			is_encrypted   = excluded.is_encrypted,
			decrypt_status = excluded.decrypt_status,
			fail_reason    = excluded.fail_reason,
			version        = excluded.version,
			dirty          = 0,
			updated_at     = excluded.updated_at,
			deleted        = excluded.deleted
		WHERE excluded.updated_at > notes.updated_at;`

	getSingleNote = `
		SELECT
			id,
			title,
			body,
			ciphertext,
			is_encrypted,
			decrypt_status,
			fail_reason,
			version,
			updated_at,
			deleted
		FROM notes
		WHERE id = $1;`

	updateDecryptOutcome = `
		UPDATE notes SET
			decrypt_status = $1,
			title          = $2,
			body           = $3,
			fail_reason    = $4
		WHERE id = $5;`

	markNotePushed = `
		UPDATE notes SET dirty = 0 WHERE id = $1;`

	softDeleteNote = `
		UPDATE notes SET
			deleted    = 1,
			dirty      = 1,
			version    = $1,
			updated_at = $2
		WHERE id = $3;`

	countNotes = `
		SELECT COUNT(*) FROM notes;`

	getCursorPosition = `
		SELECT position FROM sync_cursors
		WHERE collection = $1 AND direction = $2;`

	upsertCursorPosition = `
		INSERT INTO sync_cursors (collection, direction, position)
		VALUES ($1, $2, $3)
		ON CONFLICT(collection, direction) DO UPDATE SET
			position = excluded.position;`

	getKVValue = `
		SELECT value FROM kv_store WHERE key = $1;`

	setKVValue = `
		INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;`

	deleteKVValue = `
		DELETE FROM kv_store WHERE key = $1;`
)
