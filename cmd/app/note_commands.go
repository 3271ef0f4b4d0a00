package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/clinicnotes/cmd/app/commands"
	accountUseCase "github.com/allisson/clinicnotes/internal/account/usecase"
	"github.com/allisson/clinicnotes/internal/app"
	"github.com/allisson/clinicnotes/internal/config"
	notesUseCase "github.com/allisson/clinicnotes/internal/notes/usecase"
)

// noteAction builds the container and hands the account and note use cases to run.
func noteAction(
	run func(
		ctx context.Context,
		cmd *cli.Command,
		container *app.Container,
		accounts accountUseCase.AccountUseCase,
		notes notesUseCase.NoteUseCase,
	) error,
) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg := config.Load()
		container := app.NewContainer(cfg)
		defer func() { _ = container.Shutdown(ctx) }()

		accounts, err := container.AccountUseCase()
		if err != nil {
			return err
		}
		notes, err := container.NoteUseCase()
		if err != nil {
			return err
		}

		return run(ctx, cmd, container, accounts, notes)
	}
}

func idFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "id",
		Aliases:  []string{"i"},
		Required: true,
		Usage:    "Note ID",
	}
}

func getNoteCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-note",
			Usage: "Encrypt and store a new note",
			Flags: append(noteInputFlags(true), formatFlag(), passwordStdinFlag()),
			Action: noteAction(func(
				ctx context.Context,
				cmd *cli.Command,
				container *app.Container,
				accounts accountUseCase.AccountUseCase,
				notes notesUseCase.NoteUseCase,
			) error {
				return commands.RunCreateNote(
					ctx,
					accounts,
					notes,
					container.Logger(),
					newConsole(cmd),
					noteInput(cmd),
					cmd.String("format"),
				)
			}),
		},
		{
			Name:  "update-note",
			Usage: "Replace the fields of a note",
			Flags: append(append([]cli.Flag{idFlag()}, noteInputFlags(true)...), formatFlag(), passwordStdinFlag()),
			Action: noteAction(func(
				ctx context.Context,
				cmd *cli.Command,
				container *app.Container,
				accounts accountUseCase.AccountUseCase,
				notes notesUseCase.NoteUseCase,
			) error {
				return commands.RunUpdateNote(
					ctx,
					accounts,
					notes,
					container.Logger(),
					newConsole(cmd),
					cmd.String("id"),
					noteInput(cmd),
					cmd.String("format"),
				)
			}),
		},
		{
			Name:  "get-note",
			Usage: "Decrypt and show a note",
			Flags: []cli.Flag{idFlag(), formatFlag(), passwordStdinFlag()},
			Action: noteAction(func(
				ctx context.Context,
				cmd *cli.Command,
				_ *app.Container,
				accounts accountUseCase.AccountUseCase,
				notes notesUseCase.NoteUseCase,
			) error {
				return commands.RunGetNote(ctx, accounts, notes, newConsole(cmd), cmd.String("id"), cmd.String("format"))
			}),
		},
		{
			Name:  "list-notes",
			Usage: "Decrypt and list all notes, newest first",
			Flags: []cli.Flag{formatFlag(), passwordStdinFlag()},
			Action: noteAction(func(
				ctx context.Context,
				cmd *cli.Command,
				_ *app.Container,
				accounts accountUseCase.AccountUseCase,
				notes notesUseCase.NoteUseCase,
			) error {
				return commands.RunListNotes(ctx, accounts, notes, newConsole(cmd), cmd.String("format"))
			}),
		},
		{
			Name:  "delete-note",
			Usage: "Delete a note",
			Flags: []cli.Flag{idFlag(), passwordStdinFlag()},
			Action: noteAction(func(
				ctx context.Context,
				cmd *cli.Command,
				container *app.Container,
				accounts accountUseCase.AccountUseCase,
				notes notesUseCase.NoteUseCase,
			) error {
				return commands.RunDeleteNote(
					ctx,
					accounts,
					notes,
					container.Logger(),
					newConsole(cmd),
					cmd.String("id"),
				)
			}),
		},
	}
}
