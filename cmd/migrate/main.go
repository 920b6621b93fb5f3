package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"shelfthis/internal/config"
	"shelfthis/internal/logger"
)

func main() {
	var (
		command    = flag.String("command", "up", "Migration command: up, down, status, create")
		name       = flag.String("name", "", "Name for 'create' command")
		configPath = flag.String("config", "config.yaml", "Path to the YAML config file")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.Init(logger.ParseLevel(cfg.App.LogLevel), cfg.App.LogFormat)

	fail := func(msg string, err error) {
		log.Error(msg, "error", err)
		os.Exit(1)
	}

	dir := migrationsDir()
	if *command == "create" {
		if *name == "" {
			fail("name is required for 'create' command", nil)
		}
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			fail("failed to create migration", err)
		}
		log.Info("migration created", "name", *name, "dir", dir)
		return
	}

	if !cfg.Database.Enabled() {
		fail("database.dsn (DB_DSN) is required", nil)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		fail("failed to connect to database", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		fail("failed to set dialect", err)
	}

	switch *command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			fail("failed to run migrations", err)
		}
		log.Info("migrations applied", "dir", dir)
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			fail("failed to roll back migration", err)
		}
		log.Info("migration rolled back", "dir", dir)
	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			fail("failed to check migration status", err)
		}
	default:
		fail("unknown command, use: up, down, status, create", fmt.Errorf("%q", *command))
	}
}
