package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/clinicnotes/cmd/app/commands"
	"github.com/allisson/clinicnotes/internal/app"
	"github.com/allisson/clinicnotes/internal/config"
)

func getAccountCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-account",
			Usage: "Create the local account and its data key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Display name for the account",
				},
				formatFlag(),
				passwordStdinFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateAccount(
					ctx,
					accountUseCase,
					container.Logger(),
					newConsole(cmd),
					cmd.String("username"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "status",
			Usage: "Show whether an account exists",
			Flags: []cli.Flag{
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				return commands.RunStatus(ctx, accountUseCase, newConsole(cmd), cmd.String("format"))
			},
		},
		{
			Name:  "authenticate",
			Usage: "Check the account password",
			Flags: []cli.Flag{
				formatFlag(),
				passwordStdinFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				return commands.RunAuthenticate(
					ctx,
					accountUseCase,
					container.Logger(),
					newConsole(cmd),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "change-password",
			Usage: "Change the account password without re-encrypting notes",
			Flags: []cli.Flag{
				passwordStdinFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				return commands.RunChangePassword(ctx, accountUseCase, container.Logger(), newConsole(cmd))
			},
		},
	}
}
