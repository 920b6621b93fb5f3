package dashboard

import (
	"context"

	"shelfthis/internal/history"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=dashboard

// RecordSource yields the read records of the history.
type RecordSource interface {
	Records(ctx context.Context) ([]history.Record, error)
}

// ShelfRenderer maps identifiers to cover URLs, one per identifier, in order.
type ShelfRenderer interface {
	RenderAll(ctx context.Context, identifiers []string) []string
	Placeholder() string
}

// CoverResolver looks up a single cover.
type CoverResolver interface {
	Resolve(ctx context.Context, identifier string) (string, bool)
}

// ImportRunner copies the configured export into the database.
type ImportRunner interface {
	Run(ctx context.Context) (*history.ImportRun, error)
}
