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

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	log := logger.Init(logger.ParseLevel(cfg.App.LogLevel), cfg.App.LogFormat)

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer a.Close()

	return a.Serve(ctx)
}

func main() {
	cmd := &cli.Command{
		Name:   "shelfthis-api",
		Usage:  "Reading statistics dashboard API",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config.yaml",
				Value:       "config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}
