package history

import (
	"context"
	"log/slog"
	"time"
)

const (
	RunCompleted = "COMPLETED"
	RunFailed    = "FAILED"
)

type ImportRun struct {
	ID         int64      `json:"id"`
	Source     string     `json:"source"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Status     string     `json:"status"`
	RowsTotal  int        `json:"rows_total"`
	RowsRead   int        `json:"rows_read"`
	Error      string     `json:"error,omitempty"`
}

// Importer copies an export into a Store.
type Importer struct {
	source Loader
	name   string
	store  Store
	logger *slog.Logger
}

func NewImporter(source Loader, name string, store Store, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{source: source, name: name, store: store, logger: logger}
}

// Run loads the export and replaces the stored history with it. The run is
// recorded whether it succeeds or not.
func (im *Importer) Run(ctx context.Context) (run *ImportRun, err error) {
	if im.store == nil {
		return nil, ErrNoDatabase
	}

	run = &ImportRun{Source: im.name, StartedAt: time.Now()}
	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		if err != nil {
			run.Status = RunFailed
			run.Error = err.Error()
		} else {
			run.Status = RunCompleted
		}
		if recErr := im.store.RecordRun(ctx, run); recErr != nil {
			im.logger.Error("failed to record import run", "source", im.name, "error", recErr)
		}
		im.logger.Info("import finished",
			"source", im.name, "status", run.Status, "rows", run.RowsTotal, "read", run.RowsRead)
	}()

	records, err := im.source.Load(ctx)
	if err != nil {
		return run, err
	}
	run.RowsTotal = len(records)
	run.RowsRead = len(FilterRead(records))

	if _, err = im.store.ReplaceAll(ctx, records); err != nil {
		return run, err
	}
	return run, nil
}
