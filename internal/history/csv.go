package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Column names after lower-casing the export header.
const (
	colTitle        = "title"
	colAuthors      = "authors"
	colReadStatus   = "read status"
	colStarRating   = "star rating"
	colFormat       = "format"
	colIdentifier   = "isbn/uid"
	colDateAdded    = "date added"
	colLastDateRead = "last date read"
	colDatesRead    = "dates read"
)

var requiredColumns = []string{colTitle, colAuthors, colReadStatus}

// ParseCSV reads up to maxRows data rows (0 means all) from a reading history
// export. Header names are matched case-insensitively. Dates that cannot be
// parsed are treated as absent.
func ParseCSV(r io.Reader, maxRows int) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []Record
	for line := 2; maxRows <= 0 || len(out) < maxRows; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		out = append(out, Record{
			Title:        field(row, colTitle),
			Authors:      field(row, colAuthors),
			ReadStatus:   field(row, colReadStatus),
			Format:       field(row, colFormat),
			StarRating:   parseRating(field(row, colStarRating)),
			Identifier:   field(row, colIdentifier),
			DateAdded:    parseDate(field(row, colDateAdded)),
			LastDateRead: parseDate(field(row, colLastDateRead)),
			DatesRead:    field(row, colDatesRead),
		})
	}
	return out, nil
}

func parseRating(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return nil
	}
	return &v
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}
