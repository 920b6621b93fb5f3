// Package dashboard assembles the reading dashboard from the history, the
// aggregations in stats and the cover shelf.
package dashboard

import (
	"errors"

	"shelfthis/internal/stats"
)

var ErrInvalidYear = errors.New("invalid year")

// Dashboard is everything the page renders for one year selection.
type Dashboard struct {
	// Year is the selected completion year; 0 means all years.
	Year           int          `json:"year"`
	Years          []int        `json:"years"`
	TotalBooks     int          `json:"total_books"`
	AverageRating  *float64     `json:"average_rating"`
	MostUsedFormat *stats.Count `json:"most_used_format"`
	Charts         Charts       `json:"charts"`
	Shelf          []string     `json:"shelf"`
	TopRatedShelf  []ShelfBook  `json:"top_rated_shelf"`
}

type Charts struct {
	StarRatings  stats.Chart `json:"star_ratings"`
	Formats      stats.Chart `json:"formats"`
	BooksPerYear stats.Chart `json:"books_per_year"`
	ReadingPace  stats.Chart `json:"reading_pace"`
}

// ShelfBook is one entry of the top rated shelf.
type ShelfBook struct {
	Title      string  `json:"title"`
	Authors    string  `json:"authors"`
	StarRating float64 `json:"star_rating"`
	Identifier string  `json:"isbn,omitempty"`
	CoverURL   string  `json:"cover_url"`
}

// BookRow is one line of the raw books table.
type BookRow struct {
	Title      string   `json:"title"`
	Authors    string   `json:"authors"`
	Format     string   `json:"format,omitempty"`
	StarRating *float64 `json:"star_rating"`
	ReadYear   *int     `json:"read_year"`
}

// CoverResult answers a single cover lookup.
type CoverResult struct {
	Identifier  string `json:"isbn"`
	URL         string `json:"url"`
	Placeholder bool   `json:"placeholder"`
}
