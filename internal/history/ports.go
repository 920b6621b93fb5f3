package history

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=history

// Loader produces all rows of a reading history, read or not.
type Loader interface {
	Load(ctx context.Context) ([]Record, error)
}

// Store persists imported history.
type Store interface {
	Loader
	ReplaceAll(ctx context.Context, records []Record) (int, error)
	RecordRun(ctx context.Context, run *ImportRun) error
}
