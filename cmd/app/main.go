// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/socioclub/membership/cmd/app/commands"
	"github.com/socioclub/membership/internal/app"
	"github.com/socioclub/membership/internal/config"
)

var version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "membership",
		Usage:   "Membership platform identity and profile service",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				},
			},
			{
				Name:  "seed-roles",
				Usage: "Insert the built-in roles (Admin, Moderador, Usuario) if missing",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunSeedRoles(ctx)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
