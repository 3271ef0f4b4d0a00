package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	notesDomain "github.com/allisson/clinicnotes/internal/notes/domain"
	notesUseCase "github.com/allisson/clinicnotes/internal/notes/usecase"
	"github.com/allisson/clinicnotes/internal/session"
)

const shellHelp = `Commands:
  unlock          enter the password and unlock the session
  lock            forget the password and any cached key
  status          show the session state
  list            list notes, newest first
  get <id>        show a note
  create          create a note
  update <id>     edit a note; empty answers keep the current value
  delete <id>     delete a note
  help            show this help
  exit            leave the shell
`

// BackgroundRunner is a service the shell keeps running until it exits.
type BackgroundRunner interface {
	Run(ctx context.Context) error
}

// Shell is an interactive session over the note use case.
//
// With a keyring the DEK is unwrapped once at unlock and kept sealed between
// commands; without one every note command asks for the password again.
type Shell struct {
	session *session.Session
	keyring *session.Keyring
	notes   notesUseCase.NoteUseCase
	console *Console
	logger  *slog.Logger
	format  string
}

// NewShell creates a Shell. keyring may be nil to disable DEK caching.
func NewShell(
	sess *session.Session,
	keyring *session.Keyring,
	notes notesUseCase.NoteUseCase,
	console *Console,
	logger *slog.Logger,
	format string,
) *Shell {
	return &Shell{
		session: sess,
		keyring: keyring,
		notes:   notes,
		console: console,
		logger:  logger,
		format:  format,
	}
}

// RunShell runs shell until the user exits, together with background when it is not nil.
func RunShell(ctx context.Context, shell *Shell, background BackgroundRunner) error {
	if err := validateFormat(shell.format); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	shellCtx, cancel := context.WithCancel(gctx)

	if background != nil {
		g.Go(func() error {
			return background.Run(shellCtx)
		})
	}
	g.Go(func() error {
		defer cancel()
		return shell.Run(shellCtx)
	})

	return g.Wait()
}

// Run reads commands until exit, end of input or ctx is done. The session is
// locked on return.
func (s *Shell) Run(ctx context.Context) error {
	defer s.lock()

	out := s.console.Writer()
	_, _ = fmt.Fprintln(out, "Type 'help' for commands.")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := s.console.ReadLine("clinicnotes> ")
		if errors.Is(err, io.EOF) {
			_, _ = fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			return nil
		}

		if err := s.dispatch(ctx, fields[0], fields[1:]); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			_, _ = fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "help":
		_, err := io.WriteString(s.console.Writer(), shellHelp)
		return err
	case "unlock":
		return s.unlock(ctx)
	case "lock":
		s.lock()
		_, err := fmt.Fprintln(s.console.Writer(), "Locked")
		return err
	case "status":
		return s.status()
	case "list":
		return s.withDek(ctx, func(dek *cryptoDomain.Dek) error {
			list, err := s.notes.List(ctx, dek)
			if err != nil {
				return err
			}
			return writeNoteList(s.console.Writer(), s.format, list)
		})
	case "get":
		id, err := singleArg(command, args)
		if err != nil {
			return err
		}
		return s.withDek(ctx, func(dek *cryptoDomain.Dek) error {
			note, err := s.notes.Get(ctx, dek, id)
			if err != nil {
				return err
			}
			return writeNote(s.console.Writer(), s.format, note)
		})
	case "create":
		return s.create(ctx)
	case "update":
		id, err := singleArg(command, args)
		if err != nil {
			return err
		}
		return s.update(ctx, id)
	case "delete":
		id, err := singleArg(command, args)
		if err != nil {
			return err
		}
		return s.delete(ctx, id)
	default:
		return fmt.Errorf("unknown command %q, type 'help' for commands", command)
	}
}

func (s *Shell) unlock(ctx context.Context) error {
	password, err := s.console.ReadPassword("Password: ")
	if err != nil {
		return err
	}
	defer zero(password)

	if s.keyring == nil {
		ok, err := s.session.Authenticate(ctx, password)
		if err != nil {
			return err
		}
		if !ok {
			return accountDomain.ErrWrongPassword
		}
	} else {
		dek, err := s.session.Unlock(ctx, password)
		if err != nil {
			return err
		}
		if err := s.keyring.Store(dek); err != nil {
			return err
		}
	}

	identity, err := s.session.Identity()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.console.Writer(), "Unlocked as %s\n", identity.Username)
	return err
}

func (s *Shell) lock() {
	if s.keyring != nil {
		s.keyring.Clear()
	}
	s.session.Lock()
}

func (s *Shell) status() error {
	state := s.session.State()
	if s.format == FormatJSON {
		return writeJSON(s.console.Writer(), map[string]any{
			"status":   state.Status,
			"identity": state.Identity,
		})
	}
	if !state.IsAuthenticated() {
		_, err := fmt.Fprintln(s.console.Writer(), "Locked")
		return err
	}
	_, err := fmt.Fprintf(s.console.Writer(), "Unlocked as %s\n", state.Identity.Username)
	return err
}

// withDek hands fn a DEK owned by the call, either opened from the keyring or
// unwrapped with a fresh password prompt.
func (s *Shell) withDek(ctx context.Context, fn func(dek *cryptoDomain.Dek) error) error {
	if _, err := s.session.Identity(); err != nil {
		return fmt.Errorf("%w; run 'unlock' first", err)
	}

	var dek *cryptoDomain.Dek
	if s.keyring != nil && s.keyring.Loaded() {
		opened, err := s.keyring.Open()
		if err != nil {
			return err
		}
		dek = opened
	} else {
		password, err := s.console.ReadPassword("Password: ")
		if err != nil {
			return err
		}
		dek, err = s.session.Unlock(ctx, password)
		zero(password)
		if err != nil {
			return err
		}
	}
	defer dek.Destroy()

	return fn(dek)
}

func (s *Shell) create(ctx context.Context) error {
	input, err := s.readNoteInput(nil)
	if err != nil {
		return err
	}
	return s.withDek(ctx, func(dek *cryptoDomain.Dek) error {
		note, err := s.notes.Create(ctx, dek, input)
		if err != nil {
			return err
		}
		s.logger.Info("note created", slog.String("id", note.ID))
		return writeNote(s.console.Writer(), s.format, note)
	})
}

func (s *Shell) update(ctx context.Context, id string) error {
	return s.withDek(ctx, func(dek *cryptoDomain.Dek) error {
		current, err := s.notes.Get(ctx, dek, id)
		if err != nil {
			return err
		}
		input, err := s.readNoteInput(current)
		if err != nil {
			return err
		}
		note, err := s.notes.Update(ctx, dek, id, input)
		if err != nil {
			return err
		}
		s.logger.Info("note updated", slog.String("id", note.ID))
		return writeNote(s.console.Writer(), s.format, note)
	})
}

func (s *Shell) delete(ctx context.Context, id string) error {
	if _, err := s.session.Identity(); err != nil {
		return fmt.Errorf("%w; run 'unlock' first", err)
	}
	if err := s.notes.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("note deleted", slog.String("id", id))
	_, err := fmt.Fprintf(s.console.Writer(), "Note %s deleted\n", id)
	return err
}

// readNoteInput prompts for every editable field. With current set, an empty
// answer keeps the existing value.
func (s *Shell) readNoteInput(current *notesDomain.Note) (notesDomain.NoteInput, error) {
	var input notesDomain.NoteInput
	if current != nil {
		input = notesDomain.NoteInput{
			FirstName:   current.FirstName,
			LastName:    current.LastName,
			DateOfBirth: current.DateOfBirth,
			NoteType:    current.NoteType,
			Transcript:  current.Transcript,
			MedicalNote: current.MedicalNote,
		}
	}

	prompts := []struct {
		label string
		field *string
	}{
		{"First name", &input.FirstName},
		{"Last name", &input.LastName},
		{"Date of birth (YYYY-MM-DD)", &input.DateOfBirth},
		{"Note type", &input.NoteType},
		{"Transcript", &input.Transcript},
		{"Medical note", &input.MedicalNote},
	}
	for _, p := range prompts {
		prompt := p.label + ": "
		if current != nil && *p.field != "" {
			prompt = fmt.Sprintf("%s [%s]: ", p.label, truncate(*p.field, 32))
		}
		answer, err := s.console.ReadLine(prompt)
		if err != nil {
			return notesDomain.NoteInput{}, err
		}
		if answer != "" || current == nil {
			*p.field = strings.TrimSpace(answer)
		}
	}
	return input, nil
}

func singleArg(command string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: %s <id>", command)
	}
	return args[0], nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
