package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/allisson/onboarding/cmd/app/commands"
	"github.com/allisson/onboarding/internal/app"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the onboarding API and metrics servers",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Apply database migrations for the configured driver",
			Action: withContainer(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				cfg := container.Config()
				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			}),
		},
		{
			Name:  "verify-audit-logs",
			Usage: "Verify the signatures of audit log entries",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "start-date",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Start date in YYYY-MM-DD or YYYY-MM-DD HH:MM:SS format",
				},
				&cli.StringFlag{
					Name:     "end-date",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "End date in YYYY-MM-DD or YYYY-MM-DD HH:MM:SS format",
				},
				&cli.StringFlag{
					Name:    "user-id",
					Aliases: []string{"u"},
					Usage:   "Only verify entries of this user (UUID)",
				},
				&cli.StringFlag{
					Name:    "action",
					Aliases: []string{"a"},
					Usage:   "Only verify entries of this action, e.g. investor.tax_id_revealed",
				},
				formatFlag(),
			},
			Action: withContainer(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				auditLogUseCase, err := container.AuditLogUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyAuditLogs(
					ctx,
					auditLogUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					commands.VerifyAuditLogsOptions{
						StartDate: cmd.String("start-date"),
						EndDate:   cmd.String("end-date"),
						UserID:    strings.TrimSpace(cmd.String("user-id")),
						Action:    strings.TrimSpace(cmd.String("action")),
						Format:    cmd.String("format"),
					},
				)
			}),
		},
	}
}
