// Package commands contains CLI command implementations for the application.
package commands

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"golang.org/x/term"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	apperrors "github.com/allisson/clinicnotes/internal/errors"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrNoTerminal is returned when a password is needed, stdin is not a terminal
// and --password-stdin was not given.
var ErrNoTerminal = apperrors.Wrap(
	apperrors.ErrInvalidInput,
	"password input requires a terminal; use --password-stdin",
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// Console reads lines and passwords from a single input stream.
//
// Passwords are read without echo when the input is a terminal. With
// passwordStdin set, each password is one line of input instead.
type Console struct {
	in            io.Reader
	lines         *bufio.Reader
	out           io.Writer
	passwordStdin bool
}

// NewConsole creates a Console over io.
func NewConsole(iot IOTuple, passwordStdin bool) *Console {
	in := iot.Reader
	if in == nil {
		in = strings.NewReader("")
	}
	return &Console{
		in:            in,
		lines:         bufio.NewReader(in),
		out:           iot.Writer,
		passwordStdin: passwordStdin,
	}
}

// Writer returns the output stream.
func (c *Console) Writer() io.Writer {
	return c.out
}

// ReadLine prints prompt and returns the next line without its line ending.
// io.EOF is returned only when no input is left.
func (c *Console) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		_, _ = fmt.Fprint(c.out, prompt)
	}
	line, err := c.lines.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPassword prints prompt and reads a password. The caller should Zero the
// result when done.
func (c *Console) ReadPassword(prompt string) ([]byte, error) {
	if c.passwordStdin {
		line, err := c.ReadLine("")
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		return []byte(line), nil
	}

	f, ok := c.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil, ErrNoTerminal
	}

	_, _ = fmt.Fprint(c.out, prompt)
	password, err := term.ReadPassword(int(f.Fd()))
	_, _ = fmt.Fprintln(c.out)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// ReadNewPassword reads a password and, on a terminal, asks for it twice.
func (c *Console) ReadNewPassword(prompt string) ([]byte, error) {
	password, err := c.ReadPassword(prompt)
	if err != nil || c.passwordStdin {
		return password, err
	}

	confirm, err := c.ReadPassword("Confirm password: ")
	if err != nil {
		zero(password)
		return nil, err
	}
	defer zero(confirm)

	if string(password) != string(confirm) {
		zero(password)
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "passwords do not match")
	}
	return password, nil
}

// validateFormat rejects unknown --format values.
func validateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON:
		return nil
	default:
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "invalid format: %s (valid options: text, json)", format)
	}
}

// writeJSON outputs v as indented JSON.
func writeJSON(writer io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(writer, string(jsonBytes))
	return err
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(m *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := m.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

func zero(b []byte) {
	cryptoDomain.Zero(b)
}
