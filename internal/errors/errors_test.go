package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type driverError struct {
	Code string
}

func (e *driverError) Error() string { return "driver: " + e.Code }

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrConflict,
		ErrInvalidInput,
		ErrCryptographic,
		ErrAuthenticationFailed,
		ErrStorage,
		ErrLocked,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
			}
		}
	}
}

func TestNew(t *testing.T) {
	err := New("account envelope missing")
	require.Error(t, err)
	assert.Equal(t, "account envelope missing", err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("keeps the chain", func(t *testing.T) {
		wrongPassword := Wrap(ErrAuthenticationFailed, "wrong password")
		assert.Equal(t, "wrong password: authentication failed", wrongPassword.Error())
		assert.ErrorIs(t, wrongPassword, ErrAuthenticationFailed)

		outer := Wrap(wrongPassword, "unlock")
		assert.ErrorIs(t, outer, wrongPassword)
		assert.ErrorIs(t, outer, ErrAuthenticationFailed)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "ignored"))
	})
}

func TestWrapf(t *testing.T) {
	err := Wrapf(ErrInvalidInput, "invalid format: %s", "yaml")
	assert.Equal(t, "invalid format: yaml: invalid input", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.NoError(t, Wrapf(nil, "ignored %d", 1))
}

func TestStorage(t *testing.T) {
	t.Run("driver error reachable", func(t *testing.T) {
		cause := &driverError{Code: "SQLITE_BUSY"}
		err := Storage(cause, "failed to save note")

		assert.ErrorIs(t, err, ErrStorage)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "failed to save note")
		assert.Contains(t, err.Error(), "SQLITE_BUSY")

		var target *driverError
		require.True(t, As(err, &target))
		assert.Equal(t, "SQLITE_BUSY", target.Code)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Storage(nil, "ignored"))
	})

	t.Run("not confused with other kinds", func(t *testing.T) {
		err := Storage(errors.New("disk full"), "failed to load account")
		assert.False(t, Is(err, ErrNotFound))
		assert.False(t, Is(err, ErrCryptographic))
	})
}

func TestIsAs(t *testing.T) {
	notFound := Wrap(ErrNotFound, "note not found")
	assert.True(t, Is(notFound, ErrNotFound))
	assert.False(t, Is(notFound, ErrConflict))

	var target *driverError
	assert.False(t, As(notFound, &target))
}
