package history

import (
	"errors"
	"strings"
	"time"
)

const StatusRead = "read"

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrNoDatabase    = errors.New("database not configured")
)

// Record is one row of a reading history export.
type Record struct {
	Title        string     `json:"title"`
	Authors      string     `json:"authors"`
	ReadStatus   string     `json:"read_status"`
	Format       string     `json:"format,omitempty"`
	StarRating   *float64   `json:"star_rating,omitempty"`
	Identifier   string     `json:"isbn,omitempty"`
	DateAdded    *time.Time `json:"date_added,omitempty"`
	LastDateRead *time.Time `json:"last_date_read,omitempty"`
	DatesRead    string     `json:"dates_read,omitempty"`
}

// IsRead reports whether the row is marked as read, case-insensitively.
func (r Record) IsRead() bool {
	return strings.EqualFold(strings.TrimSpace(r.ReadStatus), StatusRead)
}

// ReadYear is the year of the completion date. ok is false when the record has
// no completion date.
func (r Record) ReadYear() (year int, ok bool) {
	if r.LastDateRead == nil {
		return 0, false
	}
	return r.LastDateRead.Year(), true
}

// ReadMonth is the month (1-12) of the completion date.
func (r Record) ReadMonth() (month int, ok bool) {
	if r.LastDateRead == nil {
		return 0, false
	}
	return int(r.LastDateRead.Month()), true
}

// FilterRead keeps records marked as read, preserving order.
func FilterRead(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.IsRead() {
			out = append(out, r)
		}
	}
	return out
}
