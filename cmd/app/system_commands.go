package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/allisson/clinicnotes/cmd/app/commands"
	"github.com/allisson/clinicnotes/internal/app"
	"github.com/allisson/clinicnotes/internal/config"
	"github.com/allisson/clinicnotes/internal/session"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				db, err := container.DB()
				if err != nil {
					return err
				}

				return commands.RunMigrations(db, cfg.DBDriver, container.Logger())
			},
		},
		{
			Name:  "shell",
			Usage: "Start an interactive session",
			Flags: []cli.Flag{
				formatFlag(),
				passwordStdinFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				sess, err := container.Session()
				if err != nil {
					return err
				}
				noteUseCase, err := container.NoteUseCase()
				if err != nil {
					return err
				}

				var keyring *session.Keyring
				if cfg.SessionCacheDek {
					keyring = container.Keyring()
				}

				var background commands.BackgroundRunner
				metricsServer, err := container.MetricsServer()
				if err != nil {
					return err
				}
				if metricsServer != nil {
					background = metricsServer
				}

				container.Logger().Info("starting shell", slog.String("version", version))

				shell := commands.NewShell(
					sess,
					keyring,
					noteUseCase,
					newConsole(cmd),
					container.Logger(),
					cmd.String("format"),
				)
				return commands.RunShell(ctx, shell, background)
			},
		},
	}
}
