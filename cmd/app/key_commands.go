package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/mealguard/cmd/app/commands"
	"github.com/allisson/mealguard/internal/app"
	"github.com/allisson/mealguard/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-key",
			Usage: "Generate a new field encryption key slot",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "version",
					Aliases:  []string{"v"},
					Required: true,
					Usage:    "Key version the slot is generated for (e.g., 2)",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "KMS key URI used to wrap the key (defaults to FIELD_ENCRYPTION_KMS_KEY_URI)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				kmsKeyURI := cmd.String("kms-key-uri")
				if kmsKeyURI == "" {
					kmsKeyURI = cfg.FieldEncryptionKMSKeyURI
				}

				return commands.RunGenerateKey(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("version")),
					cfg.FieldEncryptionKeyPrefix,
					kmsKeyURI,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "rotate-fields",
			Usage: "Re-encrypt stored account PII with the current field key version",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "batch-size",
					Aliases: []string{"b"},
					Value:   100,
					Usage:   "Number of accounts processed per batch",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				rotationUseCase, err := container.RotationUseCase()
				if err != nil {
					return err
				}

				return commands.RunRotateFields(
					ctx,
					rotationUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("batch-size")),
					cmd.String("format"),
				)
			},
		},
	}
}
