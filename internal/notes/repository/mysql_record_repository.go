package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/clinicnotes/internal/database"
	apperrors "github.com/allisson/clinicnotes/internal/errors"
	notesDomain "github.com/allisson/clinicnotes/internal/notes/domain"
)

// MySQLRecordRepository handles encrypted record persistence for MySQL.
type MySQLRecordRepository struct {
	db *sql.DB
}

// NewMySQLRecordRepository creates a new MySQLRecordRepository.
func NewMySQLRecordRepository(db *sql.DB) *MySQLRecordRepository {
	return &MySQLRecordRepository{db: db}
}

// Save inserts the record or replaces the one with the same id.
func (r *MySQLRecordRepository) Save(ctx context.Context, record *notesDomain.EncryptedRecord) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO notes (id, ciphertext, nonce, created_at) VALUES (?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
				ciphertext = VALUES(ciphertext),
				nonce = VALUES(nonce),
				created_at = VALUES(created_at)`

	_, err := querier.ExecContext(ctx, query, record.ID, record.Ciphertext, record.Nonce, record.CreatedAt.UTC())
	if err != nil {
		return apperrors.Storage(err, "failed to save note")
	}
	return nil
}

// Get loads one record by id.
func (r *MySQLRecordRepository) Get(ctx context.Context, id string) (*notesDomain.EncryptedRecord, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, ciphertext, nonce, created_at FROM notes WHERE id = ?`

	var record notesDomain.EncryptedRecord
	err := querier.QueryRowContext(ctx, query, id).
		Scan(&record.ID, &record.Ciphertext, &record.Nonce, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notesDomain.ErrNoteNotFound
		}
		return nil, apperrors.Storage(err, "failed to get note")
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return &record, nil
}

// List loads every record, newest first.
func (r *MySQLRecordRepository) List(ctx context.Context) ([]*notesDomain.EncryptedRecord, error) {
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
		if err := rows.Scan(&record.ID, &record.Ciphertext, &record.Nonce, &record.CreatedAt); err != nil {
			return nil, apperrors.Storage(err, "failed to scan note")
		}
		record.CreatedAt = record.CreatedAt.UTC()
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage(err, "failed to iterate notes")
	}
	return records, nil
}

// Delete removes a record and reports whether one existed.
func (r *MySQLRecordRepository) Delete(ctx context.Context, id string) (bool, error) {
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
