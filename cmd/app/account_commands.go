package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/mealguard/cmd/app/commands"
	"github.com/allisson/mealguard/internal/app"
	"github.com/allisson/mealguard/internal/config"
)

func getAccountCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-account",
			Usage: "Create an account as the system operator",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "tenant-id",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Tenant ID (UUID)",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Account email",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Account display name",
				},
				&cli.StringFlag{
					Name:    "role",
					Aliases: []string{"r"},
					Value:   "employee",
					Usage:   "Role: employee, admin or super_admin",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Account password (omit to be prompted)",
				},
				&cli.StringFlag{
					Name:  "phone",
					Usage: "Phone number, stored encrypted",
				},
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

				return commands.RunCreateAccount(
					ctx,
					accountUseCase,
					container.Logger(),
					commands.DefaultIO(),
					commands.CreateAccountOptions{
						TenantID: cmd.String("tenant-id"),
						Email:    cmd.String("email"),
						Name:     cmd.String("name"),
						Role:     cmd.String("role"),
						Password: cmd.String("password"),
						Phone:    cmd.String("phone"),
						Format:   cmd.String("format"),
					},
				)
			},
		},
		{
			Name:  "hash-password",
			Usage: "Hash a password with the configured bcrypt cost",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Password to hash (omit to be prompted)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				hasher, err := container.PasswordHasher()
				if err != nil {
					return err
				}

				return commands.RunHashPassword(
					hasher,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("password"),
					cmd.String("format"),
				)
			},
		},
	}
}
