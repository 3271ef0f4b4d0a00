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

// PostgreSQLAccountRepository handles account persistence for PostgreSQL.
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// NewPostgreSQLAccountRepository creates a new PostgreSQLAccountRepository.
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}

// Save inserts or replaces the account row.
func (r *PostgreSQLAccountRepository) Save(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO accounts (
				id, version, user_id, username,
				kdf_algorithm, kdf_salt, kdf_memory_kib, kdf_iterations, kdf_parallelism,
				dek_algorithm, dek_nonce, dek_ciphertext,
				created_at, last_password_change
			  ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			  ON CONFLICT (id) DO UPDATE SET
				version = EXCLUDED.version,
				user_id = EXCLUDED.user_id,
				username = EXCLUDED.username,
				kdf_algorithm = EXCLUDED.kdf_algorithm,
				kdf_salt = EXCLUDED.kdf_salt,
				kdf_memory_kib = EXCLUDED.kdf_memory_kib,
				kdf_iterations = EXCLUDED.kdf_iterations,
				kdf_parallelism = EXCLUDED.kdf_parallelism,
				dek_algorithm = EXCLUDED.dek_algorithm,
				dek_nonce = EXCLUDED.dek_nonce,
				dek_ciphertext = EXCLUDED.dek_ciphertext,
				created_at = EXCLUDED.created_at,
				last_password_change = EXCLUDED.last_password_change`

	_, err := querier.ExecContext(
		ctx,
		query,
		accountRowID,
		account.Version,
		account.UserID,
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
func (r *PostgreSQLAccountRepository) Get(ctx context.Context) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT version, user_id, username,
				kdf_algorithm, kdf_salt, kdf_memory_kib, kdf_iterations, kdf_parallelism,
				dek_algorithm, dek_nonce, dek_ciphertext,
				created_at, last_password_change
			  FROM accounts WHERE id = $1`

	var account accountDomain.Account
	var kdfAlgorithm, dekAlgorithm string

	err := querier.QueryRowContext(ctx, query, accountRowID).Scan(
		&account.Version,
		&account.UserID,
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

	account.Kdf.Algorithm = cryptoDomain.KdfAlgorithm(kdfAlgorithm)
	account.WrappedDek.Algorithm = cryptoDomain.Algorithm(dekAlgorithm)
	account.CreatedAt = account.CreatedAt.UTC()
	account.LastPasswordChange = account.LastPasswordChange.UTC()

	return &account, nil
}

// Exists reports whether the account row is present.
func (r *PostgreSQLAccountRepository) Exists(ctx context.Context) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	var exists bool
	err := querier.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, accountRowID).
		Scan(&exists)
	if err != nil {
		return false, apperrors.Storage(err, "failed to check account")
	}
	return exists, nil
}
