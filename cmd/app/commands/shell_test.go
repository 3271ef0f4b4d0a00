package commands

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	accountMocks "github.com/allisson/clinicnotes/internal/account/usecase/mocks"
	notesDomain "github.com/allisson/clinicnotes/internal/notes/domain"
	notesMocks "github.com/allisson/clinicnotes/internal/notes/usecase/mocks"
	"github.com/allisson/clinicnotes/internal/session"
)

type shellFixture struct {
	accounts *accountMocks.MockAccountUseCase
	notes    *notesMocks.MockNoteUseCase
	session  *session.Session
	keyring  *session.Keyring
	out      *bytes.Buffer
}

func newShellFixture(t *testing.T, cacheDek bool) *shellFixture {
	t.Helper()
	accounts := accountMocks.NewMockAccountUseCase(t)
	f := &shellFixture{
		accounts: accounts,
		notes:    notesMocks.NewMockNoteUseCase(t),
		session:  session.NewSession(accounts, nil, discardLogger()),
		out:      &bytes.Buffer{},
	}
	if cacheDek {
		f.keyring = session.NewKeyring()
	}
	return f
}

func (f *shellFixture) shell(input string) *Shell {
	console := NewConsole(IOTuple{Reader: strings.NewReader(input), Writer: f.out}, true)
	return NewShell(f.session, f.keyring, f.notes, console, discardLogger(), FormatText)
}

const dekType = "*domain.Dek"

func TestShell_CachedDek(t *testing.T) {
	f := newShellFixture(t, true)
	dek := newTestDek(t)
	note := testNote()

	f.accounts.On("Unlock", mock.Anything, []byte("pw")).Return(testIdentity, dek, nil).Once()
	f.notes.On("List", mock.Anything, mock.AnythingOfType(dekType)).
		Return(&notesDomain.NoteList{Notes: []*notesDomain.Note{note}}, nil).Once()
	f.notes.On("Get", mock.Anything, mock.AnythingOfType(dekType), note.ID).Return(note, nil).Once()

	input := "unlock\npw\nstatus\nlist\nget " + note.ID + "\nexit\n"
	require.NoError(t, f.shell(input).Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "Unlocked as dr.house")
	assert.Contains(t, out, "Lovelace, Ada")
	assert.Contains(t, out, "Order blood panel.")
	assert.NotContains(t, out, "Error:")

	assert.False(t, f.keyring.Loaded(), "exit clears the keyring")
	assert.False(t, f.session.State().IsAuthenticated(), "exit locks the session")
	assertDestroyed(t, dek)
}

func TestShell_PasswordPerCommand(t *testing.T) {
	f := newShellFixture(t, false)
	dek := newTestDek(t)

	f.accounts.On("Authenticate", mock.Anything, []byte("pw")).Return(testIdentity, true, nil).Once()
	f.accounts.On("Unlock", mock.Anything, []byte("pw")).Return(testIdentity, dek, nil).Once()
	f.notes.On("List", mock.Anything, dek).Return(&notesDomain.NoteList{}, nil).Once()

	require.NoError(t, f.shell("unlock\npw\nlist\npw\n").Run(context.Background()))

	assert.Contains(t, f.out.String(), "No notes found")
	assertDestroyed(t, dek)
}

func TestShell_Locked(t *testing.T) {
	f := newShellFixture(t, true)

	require.NoError(t, f.shell("list\ndelete some-id\nstatus\nexit\n").Run(context.Background()))

	out := f.out.String()
	assert.Equal(t, 2, strings.Count(out, "run 'unlock' first"))
	assert.Contains(t, out, "Locked")
}

func TestShell_WrongPassword(t *testing.T) {
	f := newShellFixture(t, true)
	f.accounts.On("Unlock", mock.Anything, []byte("bad")).Return(nil, nil, accountDomain.ErrWrongPassword).Once()

	require.NoError(t, f.shell("unlock\nbad\nexit\n").Run(context.Background()))

	assert.Contains(t, f.out.String(), "Error: wrong password")
	assert.False(t, f.keyring.Loaded())
}

func TestShell_CreateUpdateDelete(t *testing.T) {
	f := newShellFixture(t, true)
	dek := newTestDek(t)
	note := testNote()

	created := notesDomain.NoteInput{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: "1815-12-10",
		NoteType:    "follow-up",
		Transcript:  "Patient reports fatigue.",
		MedicalNote: "Order blood panel.",
	}
	updatedInput := created
	updatedInput.LastName = "King"
	updated := testNote()
	updated.LastName = "King"

	f.accounts.On("Unlock", mock.Anything, []byte("pw")).Return(testIdentity, dek, nil).Once()
	f.notes.On("Create", mock.Anything, mock.AnythingOfType(dekType), created).Return(note, nil).Once()
	f.notes.On("Get", mock.Anything, mock.AnythingOfType(dekType), note.ID).Return(note, nil).Once()
	f.notes.On("Update", mock.Anything, mock.AnythingOfType(dekType), note.ID, updatedInput).Return(updated, nil).Once()
	f.notes.On("Delete", mock.Anything, note.ID).Return(nil).Once()

	input := strings.Join([]string{
		"unlock", "pw",
		"create", "Ada", "Lovelace", "1815-12-10", "follow-up", "Patient reports fatigue.", "Order blood panel.",
		"update " + note.ID, "", "King", "", "", "", "",
		"delete " + note.ID,
		"exit",
	}, "\n") + "\n"
	require.NoError(t, f.shell(input).Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "Last name [Lovelace]: ")
	assert.Contains(t, out, "Ada King")
	assert.Contains(t, out, "Note "+note.ID+" deleted")
	assert.NotContains(t, out, "Error:")
}

func TestShell_UnknownCommandAndUsage(t *testing.T) {
	f := newShellFixture(t, false)

	require.NoError(t, f.shell("frobnicate\nget\nhelp\n").Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, `unknown command "frobnicate"`)
	assert.Contains(t, out, "usage: get <id>")
	assert.Contains(t, out, "update <id>")
}

type fakeRunner struct {
	started chan struct{}
	err     error
}

func (r *fakeRunner) Run(ctx context.Context) error {
	close(r.started)
	<-ctx.Done()
	return r.err
}

func TestRunShell(t *testing.T) {
	t.Run("stops background on exit", func(t *testing.T) {
		f := newShellFixture(t, true)
		runner := &fakeRunner{started: make(chan struct{})}

		require.NoError(t, RunShell(context.Background(), f.shell("exit\n"), runner))
		<-runner.started
	})

	t.Run("background error", func(t *testing.T) {
		f := newShellFixture(t, true)
		runErr := errors.New("listen failed")
		runner := &fakeRunner{started: make(chan struct{}), err: runErr}

		err := RunShell(context.Background(), f.shell("status\n"), runner)
		assert.ErrorIs(t, err, runErr)
	})

	t.Run("no background", func(t *testing.T) {
		f := newShellFixture(t, false)
		require.NoError(t, RunShell(context.Background(), f.shell(""), nil))
	})

	t.Run("invalid format", func(t *testing.T) {
		f := newShellFixture(t, false)
		shell := f.shell("")
		shell.format = "yaml"
		assert.Error(t, RunShell(context.Background(), shell, nil))
	})
}
