package main

import (
	"slices"

	"github.com/urfave/cli/v3"
)

func getCommands(version string) []*cli.Command {
	return slices.Concat(
		getSystemCommands(version),
		getKeyCommands(),
		getAccountCommands(),
	)
}

// formatFlag selects between human output and JSON for scripts.
func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: text or json",
		Validator: func(format string) error {
			if format != "text" && format != "json" {
				return cli.Exit("format must be text or json", 1)
			}
			return nil
		},
	}
}
