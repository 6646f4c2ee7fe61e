package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/onboarding/cmd/app/commands"
	"github.com/allisson/onboarding/internal/app"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-encryption-key",
			Usage: "Generate a new PII encryption key",
			Flags: []cli.Flag{
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateEncryptionKey(commands.DefaultIO().Writer, cmd.String("format"))
			},
		},
		{
			Name:  "set-secret",
			Usage: "Store a secret in the configured secret store",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "name",
					Aliases: []string{"n"},
					Value:   "pii-encryption-key",
					Usage:   "Secret name",
				},
				&cli.StringFlag{
					Name:    "value",
					Aliases: []string{"v"},
					Usage:   "Secret value (omit to be prompted)",
				},
				formatFlag(),
			},
			Action: withContainer(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				secretProvider, err := container.SecretProvider()
				if err != nil {
					return err
				}

				return commands.RunSetSecret(
					ctx,
					secretProvider,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("name"),
					cmd.String("value"),
					cmd.String("format"),
				)
			}),
		},
	}
}
