package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/mealguard/cmd/app/commands"
	"github.com/allisson/mealguard/internal/app"
	"github.com/allisson/mealguard/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	dirFlag := &cli.StringFlag{
		Name:  "dir",
		Value: "migrations",
		Usage: "Directory holding the postgresql and mysql migration sets",
	}

	migrate := func(direction string) cli.ActionFunc {
		return func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			container := app.NewContainer(cfg)
			defer func() { _ = container.Shutdown(ctx) }()

			return commands.RunMigrations(container.Logger(), commands.DefaultIO().Writer, commands.MigrateOptions{
				Driver:           cfg.DBDriver,
				ConnectionString: cfg.DBConnectionString,
				Dir:              cmd.String("dir"),
				Direction:        direction,
				Steps:            int(cmd.Int("steps")),
			})
		}
	}

	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the API server and, when enabled, the metrics server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:   "migrate",
			Usage:  "Apply pending database migrations (same as 'migrate up')",
			Flags:  []cli.Flag{dirFlag},
			Action: migrate(commands.MigrateUp),
			Commands: []*cli.Command{
				{
					Name:   "up",
					Usage:  "Apply every pending migration",
					Flags:  []cli.Flag{dirFlag},
					Action: migrate(commands.MigrateUp),
				},
				{
					Name:  "down",
					Usage: "Roll back the last applied migrations",
					Flags: []cli.Flag{
						dirFlag,
						&cli.IntFlag{Name: "steps", Aliases: []string{"n"}, Value: 1, Usage: "Migrations to roll back"},
					},
					Action: migrate(commands.MigrateDown),
				},
				{
					Name:   "status",
					Usage:  "Print the applied schema version",
					Flags:  []cli.Flag{dirFlag},
					Action: migrate(commands.MigrateStatus),
				},
			},
		},
	}
}
