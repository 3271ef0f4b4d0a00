package commands

import (
	"context"
	"fmt"
	"log/slog"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	accountUseCase "github.com/allisson/clinicnotes/internal/account/usecase"
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	notesDomain "github.com/allisson/clinicnotes/internal/notes/domain"
	notesUseCase "github.com/allisson/clinicnotes/internal/notes/usecase"
)

// withDek asks for the password, unlocks the DEK and destroys it once fn returns.
func withDek(
	ctx context.Context,
	accounts accountUseCase.AccountUseCase,
	console *Console,
	fn func(dek *cryptoDomain.Dek) error,
) error {
	password, err := console.ReadPassword("Password: ")
	if err != nil {
		return err
	}
	_, dek, err := accounts.Unlock(ctx, password)
	zero(password)
	if err != nil {
		return err
	}
	defer dek.Destroy()

	return fn(dek)
}

// RunCreateNote encrypts and stores a new note.
func RunCreateNote(
	ctx context.Context,
	accounts accountUseCase.AccountUseCase,
	notes notesUseCase.NoteUseCase,
	logger *slog.Logger,
	console *Console,
	input notesDomain.NoteInput,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	return withDek(ctx, accounts, console, func(dek *cryptoDomain.Dek) error {
		note, err := notes.Create(ctx, dek, input)
		if err != nil {
			return err
		}
		logger.Info("note created", slog.String("id", note.ID))
		return writeNote(console.Writer(), format, note)
	})
}

// RunUpdateNote replaces the editable fields of an existing note.
func RunUpdateNote(
	ctx context.Context,
	accounts accountUseCase.AccountUseCase,
	notes notesUseCase.NoteUseCase,
	logger *slog.Logger,
	console *Console,
	id string,
	input notesDomain.NoteInput,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	return withDek(ctx, accounts, console, func(dek *cryptoDomain.Dek) error {
		note, err := notes.Update(ctx, dek, id, input)
		if err != nil {
			return err
		}
		logger.Info("note updated", slog.String("id", note.ID))
		return writeNote(console.Writer(), format, note)
	})
}

// RunGetNote decrypts and prints one note.
func RunGetNote(
	ctx context.Context,
	accounts accountUseCase.AccountUseCase,
	notes notesUseCase.NoteUseCase,
	console *Console,
	id string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	return withDek(ctx, accounts, console, func(dek *cryptoDomain.Dek) error {
		note, err := notes.Get(ctx, dek, id)
		if err != nil {
			return err
		}
		return writeNote(console.Writer(), format, note)
	})
}

// RunListNotes decrypts and prints every readable note, newest first.
func RunListNotes(
	ctx context.Context,
	accounts accountUseCase.AccountUseCase,
	notes notesUseCase.NoteUseCase,
	console *Console,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	return withDek(ctx, accounts, console, func(dek *cryptoDomain.Dek) error {
		list, err := notes.List(ctx, dek)
		if err != nil {
			return err
		}
		return writeNoteList(console.Writer(), format, list)
	})
}

// RunDeleteNote removes a note. The password is checked but the DEK is not needed.
func RunDeleteNote(
	ctx context.Context,
	accounts accountUseCase.AccountUseCase,
	notes notesUseCase.NoteUseCase,
	logger *slog.Logger,
	console *Console,
	id string,
) error {
	password, err := console.ReadPassword("Password: ")
	if err != nil {
		return err
	}
	_, ok, err := accounts.Authenticate(ctx, password)
	zero(password)
	if err != nil {
		return err
	}
	if !ok {
		return accountDomain.ErrWrongPassword
	}

	if err := notes.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("note deleted", slog.String("id", id))
	_, err = fmt.Fprintf(console.Writer(), "Note %s deleted\n", id)
	return err
}
