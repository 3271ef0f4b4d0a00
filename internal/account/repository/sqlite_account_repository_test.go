package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	"github.com/allisson/clinicnotes/internal/database"
	apperrors "github.com/allisson/clinicnotes/internal/errors"
	"github.com/allisson/clinicnotes/internal/testutil"
)

func newTestAccount() *accountDomain.Account {
	now := time.Now().UTC()
	return &accountDomain.Account{
		Version:  accountDomain.CurrentVersion,
		UserID:   uuid.New(),
		Username: "dr.smith",
		Kdf: cryptoDomain.NewKdfParams(
			[]byte("0123456789abcdef"),
			cryptoDomain.DefaultKdfCost(),
		),
		WrappedDek: cryptoDomain.WrappedDek{
			Algorithm:  cryptoDomain.AES256GCM,
			Nonce:      []byte("nonce-12byte"),
			Ciphertext: []byte("0123456789abcdef0123456789abcdef-tag-16-bytes!!"),
		},
		CreatedAt:          now,
		LastPasswordChange: now,
	}
}

func TestSQLiteAccountRepository_SaveAndGet(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewSQLiteAccountRepository(db)
	ctx := context.Background()

	t.Run("Get before Save returns not found", func(t *testing.T) {
		account, err := repo.Get(ctx)
		assert.Nil(t, account)
		assert.ErrorIs(t, err, accountDomain.ErrAccountNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		exists, err := repo.Exists(ctx)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	account := newTestAccount()

	t.Run("round trip is lossless", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, account))

		loaded, err := repo.Get(ctx)
		require.NoError(t, err)

		assert.Equal(t, account.Version, loaded.Version)
		assert.Equal(t, account.UserID, loaded.UserID)
		assert.Equal(t, account.Username, loaded.Username)
		assert.Equal(t, account.Kdf, loaded.Kdf)
		assert.Equal(t, account.WrappedDek, loaded.WrappedDek)
		assert.True(t, account.CreatedAt.Equal(loaded.CreatedAt))
		assert.True(t, account.LastPasswordChange.Equal(loaded.LastPasswordChange))
		assert.NoError(t, loaded.Validate())

		exists, err := repo.Exists(ctx)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Save replaces the single row", func(t *testing.T) {
		updated := *account
		updated.Kdf.Salt = []byte("fedcba9876543210")
		updated.WrappedDek.Nonce = []byte("other-nonce!")
		updated.LastPasswordChange = account.LastPasswordChange.Add(time.Hour)
		require.NoError(t, repo.Save(ctx, &updated))

		loaded, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, updated.Kdf.Salt, loaded.Kdf.Salt)
		assert.Equal(t, updated.WrappedDek.Nonce, loaded.WrappedDek.Nonce)
		assert.True(t, updated.LastPasswordChange.Equal(loaded.LastPasswordChange))

		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM accounts").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("second row is rejected by the schema", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO accounts (id, version, user_id, username, kdf_algorithm, kdf_salt,
			kdf_memory_kib, kdf_iterations, kdf_parallelism, dek_algorithm, dek_nonce, dek_ciphertext,
			created_at, last_password_change)
			VALUES (2, 1, 'x', 'y', 'argon2id', x'00', 1, 1, 1, 'aes-256-gcm', x'00', x'00', 'a', 'b')`)
		assert.Error(t, err)
	})
}

func TestSQLiteAccountRepository_WithTx(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewSQLiteAccountRepository(db)
	txManager := database.NewTxManager(db)
	ctx := context.Background()

	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := repo.Save(ctx, newTestAccount()); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	exists, err := repo.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists, "rolled back save must not persist")
}

func TestSQLiteAccountRepository_StorageError(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewSQLiteAccountRepository(db)
	require.NoError(t, db.Close())

	err := repo.Save(context.Background(), newTestAccount())
	assert.ErrorIs(t, err, apperrors.ErrStorage)

	_, err = repo.Get(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrStorage)

	_, err = repo.Exists(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}

func TestSQLiteAccountRepository_MalformedRow(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	defer testutil.TeardownDB(t, db)

	_, err := db.Exec(`INSERT INTO accounts (id, version, user_id, username, kdf_algorithm, kdf_salt,
		kdf_memory_kib, kdf_iterations, kdf_parallelism, dek_algorithm, dek_nonce, dek_ciphertext,
		created_at, last_password_change)
		VALUES (1, 1, 'not-a-uuid', 'y', 'argon2id', x'00', 1, 1, 1, 'aes-256-gcm', x'00', x'00',
		'2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = NewSQLiteAccountRepository(db).Get(context.Background())
	assert.ErrorIs(t, err, accountDomain.ErrInvalidEnvelope)
}
