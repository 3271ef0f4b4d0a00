package commands

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/clinicnotes/internal/errors"
)

func TestConsole_ReadLine(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(IOTuple{Reader: strings.NewReader("first\r\nsecond"), Writer: &out}, false)

	line, err := console.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = console.ReadLine("> ")
	require.NoError(t, err, "last line without newline")
	assert.Equal(t, "second", line)

	_, err = console.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "> > > ", out.String())
}

func TestConsole_ReadPassword(t *testing.T) {
	t.Run("from stdin", func(t *testing.T) {
		console := NewConsole(IOTuple{Reader: strings.NewReader("s3cret-pass\nnext\n"), Writer: io.Discard}, true)

		password, err := console.ReadPassword("Password: ")
		require.NoError(t, err)
		assert.Equal(t, []byte("s3cret-pass"), password)

		line, err := console.ReadLine("")
		require.NoError(t, err)
		assert.Equal(t, "next", line, "password and lines share one stream")
	})

	t.Run("no terminal", func(t *testing.T) {
		console := NewConsole(IOTuple{Reader: strings.NewReader("pw\n"), Writer: io.Discard}, false)

		_, err := console.ReadPassword("Password: ")
		assert.ErrorIs(t, err, ErrNoTerminal)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("empty stdin", func(t *testing.T) {
		console := NewConsole(IOTuple{Reader: nil, Writer: io.Discard}, true)

		_, err := console.ReadPassword("Password: ")
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestConsole_ReadNewPassword_Stdin(t *testing.T) {
	console := NewConsole(IOTuple{Reader: strings.NewReader("only-once\n"), Writer: io.Discard}, true)

	password, err := console.ReadNewPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, []byte("only-once"), password, "no confirmation prompt on stdin")
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat(FormatText))
	assert.NoError(t, validateFormat(FormatJSON))

	err := validateFormat("yaml")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "yaml")
}
