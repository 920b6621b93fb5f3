package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"shelfthis/internal/app"
	"shelfthis/internal/config"
	"shelfthis/internal/logger"
)

func main() {
	cmd := &cli.Command{
		Name:  "shelfctl",
		Usage: "Operate on a reading history export",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "config.yaml",
				Sources: cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			importCommand(),
			summaryCommand(),
			coverCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("shelfctl failed", "error", err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the application for one command.
func setup(ctx context.Context, cmd *cli.Command) (*app.App, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	log := logger.Init(logger.ParseLevel(cfg.App.LogLevel), cfg.App.LogFormat)
	return app.New(ctx, cfg, log)
}
