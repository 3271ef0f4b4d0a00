package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
)

func TestKeyring(t *testing.T) {
	t.Run("Open empty keyring", func(t *testing.T) {
		k := NewKeyring()
		assert.False(t, k.Loaded())

		dek, err := k.Open()
		assert.Nil(t, dek)
		assert.ErrorIs(t, err, accountDomain.ErrNotAuthenticated)
	})

	t.Run("Store consumes the DEK and Open returns a copy", func(t *testing.T) {
		k := NewKeyring()
		dek := newTestDek(t)
		want, err := dek.Key()
		require.NoError(t, err)
		want = append([]byte(nil), want...)

		require.NoError(t, k.Store(dek))
		assert.True(t, k.Loaded())

		_, err = dek.Key()
		assert.ErrorIs(t, err, cryptoDomain.ErrDekDestroyed)

		for range 2 {
			opened, err := k.Open()
			require.NoError(t, err)
			key, err := opened.Key()
			require.NoError(t, err)
			assert.Equal(t, want, key)
			opened.Destroy()
		}
	})

	t.Run("Clear drops the cached enclave", func(t *testing.T) {
		k := NewKeyring()
		require.NoError(t, k.Store(newTestDek(t)))

		k.Clear()
		assert.False(t, k.Loaded())
		_, err := k.Open()
		assert.ErrorIs(t, err, accountDomain.ErrNotAuthenticated)
	})

	t.Run("Clear leaves opened copies to their owner", func(t *testing.T) {
		k := NewKeyring()
		require.NoError(t, k.Store(newTestDek(t)))

		opened, err := k.Open()
		require.NoError(t, err)
		k.Clear()

		_, err = opened.Key()
		require.NoError(t, err)
		opened.Destroy()
		_, err = opened.Key()
		assert.ErrorIs(t, err, cryptoDomain.ErrDekDestroyed)

		for range 2 {
			k.Clear()
			assert.False(t, k.Loaded())
		}
	})

	t.Run("Store destroyed DEK", func(t *testing.T) {
		dek := newTestDek(t)
		dek.Destroy()

		err := NewKeyring().Store(dek)
		assert.ErrorIs(t, err, cryptoDomain.ErrDekDestroyed)
	})
}
