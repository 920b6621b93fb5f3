// Package app wires configuration into the running components shared by the
// server and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"shelfthis/internal/config"
	"shelfthis/internal/cover"
	"shelfthis/internal/dashboard"
	"shelfthis/internal/history"
	"shelfthis/internal/platform/googlebooks"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger

	// DB is nil when no DSN is configured.
	DB *pgxpool.Pool

	History   *history.Service
	Importer  *history.Importer
	Covers    *cover.Cache
	Shelf     *cover.Shelf
	Dashboard *dashboard.Service
}

// New builds every component from cfg. Close releases what it opened.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	if cfg.Database.Enabled() {
		pool, err := openDB(ctx, cfg.Database.DSN, logger)
		if err != nil {
			return nil, err
		}
		a.DB = pool
	}

	opener := history.NewOpener(history.WithAWSRegion(cfg.Data.AWSRegion))
	csv := history.NewCSVLoader(opener, cfg.Data.Source, cfg.Data.MaxRows)

	var loader history.Loader = csv
	if a.DB != nil {
		repo := history.NewPostgresRepo(a.DB)
		a.Importer = history.NewImporter(csv, csv.Location(), repo, logger)
		if cfg.Data.FromDB {
			loader = repo
		}
	}
	a.History = history.NewService(loader, cfg.Data.Refresh, logger)

	catalog := googlebooks.NewClient(cfg.Covers.UserAgent, cfg.Covers.RPS,
		googlebooks.WithBaseURL(cfg.Covers.CatalogURL),
		googlebooks.WithAPIKey(cfg.Covers.APIKey),
		googlebooks.WithTimeout(cfg.Covers.Timeout),
	)
	a.Covers = cover.NewCache(catalog, cover.WithTTL(cfg.Covers.TTL), cover.WithLogger(logger))
	a.Shelf = cover.NewShelf(a.Covers, cfg.Covers.PlaceholderURL, cfg.Covers.Concurrency)
	a.Dashboard = dashboard.NewService(a.History, a.Shelf, a.Covers, cfg.Covers.TopRated, logger)

	logger.Info("components ready",
		"data_source", csv.Location(),
		"from_db", cfg.Data.FromDB,
		"database", a.DB != nil,
		"cover_ttl", cfg.Covers.TTL.String(),
	)
	return a, nil
}

// ImportRunner returns the importer as an interface, nil when there is no
// database.
func (a *App) ImportRunner() dashboard.ImportRunner {
	if a.Importer == nil {
		return nil
	}
	return a.Importer
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func openDB(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (%s): %w", redactDSN(dsn), err)
	}
	logger.Info("database connection OK", "dsn", redactDSN(dsn))
	return pool, nil
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
