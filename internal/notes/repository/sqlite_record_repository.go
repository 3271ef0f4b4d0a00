// Package repository provides persistence for encrypted note records.
//
// Only the record id and creation time are stored in the clear. List returns
// records newest first, with the id as a tiebreaker.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/clinicnotes/internal/database"
	apperrors "github.com/allisson/clinicnotes/internal/errors"
	notesDomain "github.com/allisson/clinicnotes/internal/notes/domain"
)

// SQLiteRecordRepository handles encrypted record persistence for SQLite.
type SQLiteRecordRepository struct {
	db *sql.DB
}

// NewSQLiteRecordRepository creates a new SQLiteRecordRepository.
func NewSQLiteRecordRepository(db *sql.DB) *SQLiteRecordRepository {
	return &SQLiteRecordRepository{db: db}
}

// Save inserts the record or replaces the one with the same id.
func (r *SQLiteRecordRepository) Save(ctx context.Context, record *notesDomain.EncryptedRecord) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO notes (id, ciphertext, nonce, created_at) VALUES (?, ?, ?, ?)
			  ON CONFLICT (id) DO UPDATE SET
				ciphertext = excluded.ciphertext,
				nonce = excluded.nonce,
				created_at = excluded.created_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.Ciphertext,
		record.Nonce,
		database.FormatSQLiteTime(record.CreatedAt),
	)
	if err != nil {
		return apperrors.Storage(err, "failed to save note")
	}
	return nil
}

// Get loads one record by id.
func (r *SQLiteRecordRepository) Get(ctx context.Context, id string) (*notesDomain.EncryptedRecord, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, ciphertext, nonce, created_at FROM notes WHERE id = ?`

	var record notesDomain.EncryptedRecord
	var createdAt string

	err := querier.QueryRowContext(ctx, query, id).
		Scan(&record.ID, &record.Ciphertext, &record.Nonce, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notesDomain.ErrNoteNotFound
		}
		return nil, apperrors.Storage(err, "failed to get note")
	}

	if record.CreatedAt, err = database.ParseSQLiteTime(createdAt); err != nil {
		return nil, apperrors.Storage(err, "malformed note created_at")
	}
	return &record, nil
}

// List loads every record, newest first. A row whose created_at cannot be parsed
// is returned with Malformed set.
func (r *SQLiteRecordRepository) List(ctx context.Context) ([]*notesDomain.EncryptedRecord, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, ciphertext, nonce, created_at FROM notes ORDER BY created_at DESC, id DESC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Storage(err, "failed to list notes")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*notesDomain.EncryptedRecord, 0)
	for rows.Next() {
		var record notesDomain.EncryptedRecord
		var createdAt string
		if err := rows.Scan(&record.ID, &record.Ciphertext, &record.Nonce, &createdAt); err != nil {
			return nil, apperrors.Storage(err, "failed to scan note")
		}
		if record.CreatedAt, err = database.ParseSQLiteTime(createdAt); err != nil {
			record.Malformed = true
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage(err, "failed to iterate notes")
	}
	return records, nil
}

// Delete removes a record and reports whether one existed.
func (r *SQLiteRecordRepository) Delete(ctx context.Context, id string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return false, apperrors.Storage(err, "failed to delete note")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Storage(err, "failed to delete note")
	}
	return affected > 0, nil
}
