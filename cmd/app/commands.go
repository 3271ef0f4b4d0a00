package main

import (
	"github.com/urfave/cli/v3"

	"github.com/allisson/clinicnotes/cmd/app/commands"
	notesDomain "github.com/allisson/clinicnotes/internal/notes/domain"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getAccountCommands()...)
	cmds = append(cmds, getNoteCommands()...)
	return cmds
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   commands.FormatText,
		Usage:   "Output format: 'text' or 'json'",
	}
}

func passwordStdinFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "password-stdin",
		Usage: "Read passwords from stdin, one per line, instead of the terminal",
	}
}

func newConsole(cmd *cli.Command) *commands.Console {
	return commands.NewConsole(commands.DefaultIO(), cmd.Bool("password-stdin"))
}

func noteInputFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "first-name", Required: required, Usage: "Patient first name"},
		&cli.StringFlag{Name: "last-name", Required: required, Usage: "Patient last name"},
		&cli.StringFlag{Name: "dob", Usage: "Patient date of birth (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Note type, e.g. 'intake' or 'follow-up'"},
		&cli.StringFlag{Name: "transcript", Usage: "Visit transcript"},
		&cli.StringFlag{Name: "medical-note", Aliases: []string{"m"}, Usage: "Clinician's medical note"},
	}
}

func noteInput(cmd *cli.Command) notesDomain.NoteInput {
	return notesDomain.NoteInput{
		FirstName:   cmd.String("first-name"),
		LastName:    cmd.String("last-name"),
		DateOfBirth: cmd.String("dob"),
		NoteType:    cmd.String("type"),
		Transcript:  cmd.String("transcript"),
		MedicalNote: cmd.String("medical-note"),
	}
}
