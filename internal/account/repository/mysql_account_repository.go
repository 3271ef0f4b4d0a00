package repository

import (
	"context"
	"database/sql"
	"errors"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	"github.com/allisson/clinicnotes/internal/database"
	apperrors "github.com/allisson/clinicnotes/internal/errors"
)

// MySQLAccountRepository handles account persistence for MySQL.
//
// The connection string must set parseTime=true.
type MySQLAccountRepository struct {
	db *sql.DB
}

// NewMySQLAccountRepository creates a new MySQLAccountRepository.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}

// Save inserts or replaces the account row.
func (r *MySQLAccountRepository) Save(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO accounts (
				id, version, user_id, username,
				kdf_algorithm, kdf_salt, kdf_memory_kib, kdf_iterations, kdf_parallelism,
				dek_algorithm, dek_nonce, dek_ciphertext,
				created_at, last_password_change
			  ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
				version = VALUES(version),
				user_id = VALUES(user_id),
				username = VALUES(username),
				kdf_algorithm = VALUES(kdf_algorithm),
				kdf_salt = VALUES(kdf_salt),
				kdf_memory_kib = VALUES(kdf_memory_kib),
				kdf_iterations = VALUES(kdf_iterations),
				kdf_parallelism = VALUES(kdf_parallelism),
				dek_algorithm = VALUES(dek_algorithm),
				dek_nonce = VALUES(dek_nonce),
				dek_ciphertext = VALUES(dek_ciphertext),
				created_at = VALUES(created_at),
				last_password_change = VALUES(last_password_change)`

	userID, err := account.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		accountRowID,
		account.Version,
		userID,
		account.Username,
		string(account.Kdf.Algorithm),
		account.Kdf.Salt,
		account.Kdf.MemoryKiB,
		account.Kdf.Iterations,
		account.Kdf.Parallelism,
		string(account.WrappedDek.Algorithm),
		account.WrappedDek.Nonce,
		account.WrappedDek.Ciphertext,
		account.CreatedAt.UTC(),
		account.LastPasswordChange.UTC(),
	)
	if err != nil {
		return apperrors.Storage(err, "failed to save account")
	}
	return nil
}

// Get loads the account row.
func (r *MySQLAccountRepository) Get(ctx context.Context) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT version, user_id, username,
				kdf_algorithm, kdf_salt, kdf_memory_kib, kdf_iterations, kdf_parallelism,
				dek_algorithm, dek_nonce, dek_ciphertext,
				created_at, last_password_change
			  FROM accounts WHERE id = ?`

	var account accountDomain.Account
	var userID []byte
	var kdfAlgorithm, dekAlgorithm string

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
		&account.CreatedAt,
		&account.LastPasswordChange,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrAccountNotFound
		}
		return nil, apperrors.Storage(err, "failed to get account")
	}

	if err := account.UserID.UnmarshalBinary(userID); err != nil {
		return nil, apperrors.Wrap(accountDomain.ErrInvalidEnvelope, "malformed user id")
	}
	account.Kdf.Algorithm = cryptoDomain.KdfAlgorithm(kdfAlgorithm)
	account.WrappedDek.Algorithm = cryptoDomain.Algorithm(dekAlgorithm)
	account.CreatedAt = account.CreatedAt.UTC()
	account.LastPasswordChange = account.LastPasswordChange.UTC()

	return &account, nil
}

// Exists reports whether the account row is present.
func (r *MySQLAccountRepository) Exists(ctx context.Context) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	var exists bool
	err := querier.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = ?)`, accountRowID).
		Scan(&exists)
	if err != nil {
		return false, apperrors.Storage(err, "failed to check account")
	}
	return exists, nil
}
