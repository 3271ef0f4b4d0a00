// Package repository provides persistence for the single account envelope.
//
// Every implementation stores the account in a fixed row (id = 1) so the store can
// never hold two envelopes. Save is an upsert on that row.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	"github.com/allisson/clinicnotes/internal/database"
	apperrors "github.com/allisson/clinicnotes/internal/errors"
)

// accountRowID is the primary key of the only account row.
const accountRowID = 1

// SQLiteAccountRepository handles account persistence for SQLite.
type SQLiteAccountRepository struct {
	db *sql.DB
}

// NewSQLiteAccountRepository creates a new SQLiteAccountRepository.
func NewSQLiteAccountRepository(db *sql.DB) *SQLiteAccountRepository {
	return &SQLiteAccountRepository{db: db}
}

// Save inserts or replaces the account row.
func (r *SQLiteAccountRepository) Save(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO accounts (
				id, version, user_id, username,
				kdf_algorithm, kdf_salt, kdf_memory_kib, kdf_iterations, kdf_parallelism,
				dek_algorithm, dek_nonce, dek_ciphertext,
				created_at, last_password_change
			  ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT (id) DO UPDATE SET
				version = excluded.version,
				user_id = excluded.user_id,
				username = excluded.username,
				kdf_algorithm = excluded.kdf_algorithm,
				kdf_salt = excluded.kdf_salt,
				kdf_memory_kib = excluded.kdf_memory_kib,
				kdf_iterations = excluded.kdf_iterations,
				kdf_parallelism = excluded.kdf_parallelism,
				dek_algorithm = excluded.dek_algorithm,
				dek_nonce = excluded.dek_nonce,
				dek_ciphertext = excluded.dek_ciphertext,
				created_at = excluded.created_at,
				last_password_change = excluded.last_password_change`

	_, err := querier.ExecContext(
		ctx,
		query,
		accountRowID,
		account.Version,
		account.UserID.String(),
		account.Username,
		string(account.Kdf.Algorithm),
		account.Kdf.Salt,
		account.Kdf.MemoryKiB,
		account.Kdf.Iterations,
		account.Kdf.Parallelism,
		string(account.WrappedDek.Algorithm),
		account.WrappedDek.Nonce,
		account.WrappedDek.Ciphertext,
		database.FormatSQLiteTime(account.CreatedAt),
		database.FormatSQLiteTime(account.LastPasswordChange),
	)
	if err != nil {
		return apperrors.Storage(err, "failed to save account")
	}
	return nil
}

// Get loads the account row.
func (r *SQLiteAccountRepository) Get(ctx context.Context) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT version, user_id, username,
				kdf_algorithm, kdf_salt, kdf_memory_kib, kdf_iterations, kdf_parallelism,
				dek_algorithm, dek_nonce, dek_ciphertext,
				created_at, last_password_change
			  FROM accounts WHERE id = ?`

	var account accountDomain.Account
	var userID, kdfAlgorithm, dekAlgorithm, createdAt, lastPasswordChange string

	err := querier.QueryRowContext(ctx, query, accountRowID).Scan(
		&account.Version,
		&userID,
		&account.Username,
		&kdfAlgorithm,
		&account.Kdf.Salt,
		&account.Kdf.MemoryKiB,
		&account.Kdf.Iterations,
		&account.Kdf.Parallelism,
		&dekAlgorithm,
		&account.WrappedDek.Nonce,
		&account.WrappedDek.Ciphertext,
		&createdAt,
		&lastPasswordChange,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrAccountNotFound
		}
		return nil, apperrors.Storage(err, "failed to get account")
	}

	if account.UserID, err = uuid.Parse(userID); err != nil {
		return nil, apperrors.Wrap(accountDomain.ErrInvalidEnvelope, "malformed user id")
	}
	if account.CreatedAt, err = database.ParseSQLiteTime(createdAt); err != nil {
		return nil, apperrors.Wrap(accountDomain.ErrInvalidEnvelope, "malformed created_at")
	}
	if account.LastPasswordChange, err = database.ParseSQLiteTime(lastPasswordChange); err != nil {
		return nil, apperrors.Wrap(accountDomain.ErrInvalidEnvelope, "malformed last_password_change")
	}
	account.Kdf.Algorithm = cryptoDomain.KdfAlgorithm(kdfAlgorithm)
	account.WrappedDek.Algorithm = cryptoDomain.Algorithm(dekAlgorithm)

	return &account, nil
}

// Exists reports whether the account row is present.
func (r *SQLiteAccountRepository) Exists(ctx context.Context) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	var exists bool
	err := querier.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = ?)`, accountRowID).
		Scan(&exists)
	if err != nil {
		return false, apperrors.Storage(err, "failed to check account")
	}
	return exists, nil
}
