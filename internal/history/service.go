package history

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// CSVLoader reads an export through an Opener.
type CSVLoader struct {
	opener   *Opener
	location string
	maxRows  int
}

func NewCSVLoader(opener *Opener, location string, maxRows int) *CSVLoader {
	return &CSVLoader{opener: opener, location: location, maxRows: maxRows}
}

func (l *CSVLoader) Load(ctx context.Context) ([]Record, error) {
	rc, err := l.opener.Open(ctx, l.location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	records, err := ParseCSV(rc, l.maxRows)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.location, err)
	}
	return records, nil
}

// Location is where the export is read from.
func (l *CSVLoader) Location() string {
	return l.location
}

// Service hands out the read records of a history and keeps them for a
// refresh interval so every request does not re-read the source.
type Service struct {
	loader  Loader
	refresh time.Duration
	now     func() time.Time
	logger  *slog.Logger

	mu       sync.Mutex
	cached   []Record
	loadedAt time.Time
}

func NewService(loader Loader, refresh time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{loader: loader, refresh: refresh, now: time.Now, logger: logger}
}

// Records returns the rows marked as read. With refresh <= 0 the source is
// read on every call.
func (s *Service) Records(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.refresh > 0 && s.now().Sub(s.loadedAt) < s.refresh {
		return s.cached, nil
	}

	all, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reading history: %w", err)
	}
	read := FilterRead(all)
	s.logger.Info("reading history loaded", "rows", len(all), "read", len(read))

	s.cached = read
	s.loadedAt = s.now()
	return read, nil
}

// Invalidate drops the memoized records.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}
