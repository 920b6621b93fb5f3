package dashboard

import (
	"context"
	"log/slog"

	"shelfthis/internal/history"
	"shelfthis/internal/stats"
)

const DefaultTopRated = 10

type Service struct {
	records  RecordSource
	shelf    ShelfRenderer
	covers   CoverResolver
	topRated int
	logger   *slog.Logger
}

func NewService(records RecordSource, shelf ShelfRenderer, covers CoverResolver, topRated int, logger *slog.Logger) *Service {
	if topRated <= 0 {
		topRated = DefaultTopRated
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{records: records, shelf: shelf, covers: covers, topRated: topRated, logger: logger}
}

// Build loads the history and computes the dashboard for year (0 for all
// years). Books per year and the top rated shelf always span every year.
func (s *Service) Build(ctx context.Context, year int) (*Dashboard, error) {
	if year < 0 {
		return nil, ErrInvalidYear
	}
	read, err := s.records.Records(ctx)
	if err != nil {
		return nil, err
	}
	selected := stats.FilterYear(read, year)

	formats := stats.FormatCounts(selected)
	d := &Dashboard{
		Year:       year,
		Years:      stats.Years(read),
		TotalBooks: len(selected),
		Charts: Charts{
			StarRatings:  stats.PieChart("Star Ratings Distribution", stats.RatingCounts(selected)),
			Formats:      stats.PieChart("Format Distribution", formats),
			BooksPerYear: stats.BooksPerYearChart(stats.BooksPerYear(read)),
			ReadingPace:  stats.ReadingPaceChart(stats.ReadingPace(selected)),
		},
	}
	if d.Years == nil {
		d.Years = []int{}
	}
	if avg, ok := stats.AverageRating(selected); ok {
		d.AverageRating = &avg
	}
	if top, ok := stats.MostUsedFormat(formats); ok {
		d.MostUsedFormat = &top
	}

	d.Shelf = s.shelf.RenderAll(ctx, stats.ShelfIdentifiers(selected))
	d.TopRatedShelf = s.topRatedShelf(ctx, read)

	s.logger.Debug("dashboard built", "year", year, "books", d.TotalBooks, "shelf", len(d.Shelf))
	return d, nil
}

func (s *Service) topRatedShelf(ctx context.Context, read []history.Record) []ShelfBook {
	top := stats.TopRated(read, s.topRated)
	ids := make([]string, len(top))
	for i, r := range top {
		ids[i] = r.Identifier
	}
	urls := s.shelf.RenderAll(ctx, ids)

	out := make([]ShelfBook, len(top))
	for i, r := range top {
		out[i] = ShelfBook{
			Title:      r.Title,
			Authors:    r.Authors,
			StarRating: *r.StarRating,
			Identifier: r.Identifier,
			CoverURL:   urls[i],
		}
	}
	return out
}

// Books returns the raw table rows for year (0 for all years).
func (s *Service) Books(ctx context.Context, year int) ([]BookRow, error) {
	if year < 0 {
		return nil, ErrInvalidYear
	}
	read, err := s.records.Records(ctx)
	if err != nil {
		return nil, err
	}
	selected := stats.FilterYear(read, year)

	rows := make([]BookRow, len(selected))
	for i, r := range selected {
		rows[i] = BookRow{
			Title:      r.Title,
			Authors:    r.Authors,
			Format:     r.Format,
			StarRating: r.StarRating,
		}
		if y, ok := r.ReadYear(); ok {
			rows[i].ReadYear = &y
		}
	}
	return rows, nil
}

// Cover resolves one identifier, falling back to the placeholder.
func (s *Service) Cover(ctx context.Context, identifier string) CoverResult {
	if u, ok := s.covers.Resolve(ctx, identifier); ok {
		return CoverResult{Identifier: identifier, URL: u}
	}
	return CoverResult{Identifier: identifier, URL: s.shelf.Placeholder(), Placeholder: true}
}

// Refresh drops any memoized history so the next build reloads it.
func (s *Service) Refresh() {
	if inv, ok := s.records.(interface{ Invalidate() }); ok {
		inv.Invalidate()
	}
}
