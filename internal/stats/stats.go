// Package stats aggregates reading history into the numbers and chart
// configurations shown on the dashboard.
package stats

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"shelfthis/internal/history"
)

// AllYears selects every record in FilterYear.
const AllYears = 0

// Count is one slice of a categorical breakdown.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// PacePoint is the number of books finished in one calendar month.
type PacePoint struct {
	Year       int `json:"year"`
	Month      int `json:"month"`
	Count      int `json:"count"`
	Cumulative int `json:"cumulative"`
}

// FilterYear keeps records finished in year. AllYears returns records
// unchanged, including those without a completion date.
func FilterYear(records []history.Record, year int) []history.Record {
	if year == AllYears {
		return records
	}
	out := make([]history.Record, 0, len(records))
	for _, r := range records {
		if y, ok := r.ReadYear(); ok && y == year {
			out = append(out, r)
		}
	}
	return out
}

// Years lists the distinct completion years, newest first.
func Years(records []history.Record) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, r := range records {
		y, ok := r.ReadYear()
		if !ok {
			continue
		}
		if _, dup := seen[y]; dup {
			continue
		}
		seen[y] = struct{}{}
		out = append(out, y)
	}
	slices.Sort(out)
	slices.Reverse(out)
	return out
}

// RatingCounts breaks records down by star rating, most common first.
// Unrated records are skipped.
func RatingCounts(records []history.Record) []Count {
	return countBy(records, func(r history.Record) (string, bool) {
		if r.StarRating == nil {
			return "", false
		}
		return strconv.FormatFloat(*r.StarRating, 'f', -1, 64), true
	})
}

// AverageRating is the mean star rating of rated records. ok is false when
// nothing is rated.
func AverageRating(records []history.Record) (avg float64, ok bool) {
	var sum float64
	var n int
	for _, r := range records {
		if r.StarRating != nil {
			sum += *r.StarRating
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// FormatCounts breaks records down by format, most common first. Records with
// no format are skipped.
func FormatCounts(records []history.Record) []Count {
	return countBy(records, func(r history.Record) (string, bool) {
		f := strings.TrimSpace(r.Format)
		return f, f != ""
	})
}

// MostUsedFormat picks the head of a FormatCounts result.
func MostUsedFormat(formats []Count) (Count, bool) {
	if len(formats) == 0 {
		return Count{}, false
	}
	return formats[0], true
}

// countBy tallies records by key. Ties are broken by label so results are
// stable across runs.
func countBy(records []history.Record, key func(history.Record) (string, bool)) []Count {
	idx := make(map[string]int)
	var out []Count
	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		if i, seen := idx[k]; seen {
			out[i].Count++
			continue
		}
		idx[k] = len(out)
		out = append(out, Count{Label: k, Count: 1})
	}
	slices.SortStableFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

// BooksPerYear counts finished books per completion year, oldest first.
// Records without a completion date are ignored.
func BooksPerYear(records []history.Record) []YearCount {
	counts := make(map[int]int)
	for _, r := range records {
		if y, ok := r.ReadYear(); ok {
			counts[y]++
		}
	}
	out := make([]YearCount, 0, len(counts))
	for y, n := range counts {
		out = append(out, YearCount{Year: y, Count: n})
	}
	slices.SortFunc(out, func(a, b YearCount) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// ReadingPace counts finished books per calendar month in chronological order
// with a running total. Months with no finished books are not listed.
func ReadingPace(records []history.Record) []PacePoint {
	type ym struct{ y, m int }
	counts := make(map[ym]int)
	for _, r := range records {
		y, ok := r.ReadYear()
		if !ok {
			continue
		}
		m, _ := r.ReadMonth()
		counts[ym{y, m}]++
	}

	out := make([]PacePoint, 0, len(counts))
	for k, n := range counts {
		out = append(out, PacePoint{Year: k.y, Month: k.m, Count: n})
	}
	slices.SortFunc(out, func(a, b PacePoint) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})
	total := 0
	for i := range out {
		total += out[i].Count
		out[i].Cumulative = total
	}
	return out
}

// TopRated returns up to n rated records, highest rating first. Equal ratings
// keep their input order.
func TopRated(records []history.Record, n int) []history.Record {
	rated := make([]history.Record, 0, len(records))
	for _, r := range records {
		if r.StarRating != nil {
			rated = append(rated, r)
		}
	}
	slices.SortStableFunc(rated, func(a, b history.Record) int {
		return cmp.Compare(*b.StarRating, *a.StarRating)
	})
	if n >= 0 && len(rated) > n {
		rated = rated[:n]
	}
	return rated
}

// ShelfIdentifiers lists the distinct non-empty identifiers of records in
// first-seen order.
func ShelfIdentifiers(records []history.Record) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		id := strings.TrimSpace(r.Identifier)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
