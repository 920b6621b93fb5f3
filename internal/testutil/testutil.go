package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"shelfthis/internal/history"
)

// Rating returns a pointer to v for Record.StarRating.
func Rating(v float64) *float64 { return &v }

// Date parses a YYYY-MM-DD date in UTC and panics on bad input.
func Date(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// ReadBook builds a read record finished on date. An empty date leaves
// LastDateRead unset; a zero rating leaves the book unrated.
func ReadBook(title, format string, rating float64, date, isbn string) history.Record {
	r := history.Record{
		Title:      title,
		Authors:    "Test Author",
		ReadStatus: "read",
		Format:     format,
		Identifier: isbn,
	}
	if rating > 0 {
		r.StarRating = Rating(rating)
	}
	if date != "" {
		r.LastDateRead = Date(date)
	}
	return r
}

// SampleHistory is a small mixed export used across packages.
//
// Read books: 2023 has two (one unrated), 2024 has three, one has no date.
// One to-read book is included and must never be counted.
func SampleHistory() []history.Record {
	return []history.Record{
		ReadBook("The Hobbit", "paperback", 5, "2024-03-14", "9780547928227"),
		ReadBook("Dune", "ebook", 4, "2024-03-02", "9780441172719"),
		ReadBook("Piranesi", "hardcover", 4.5, "2024-07-21", "9781635575637"),
		ReadBook("Circe", "ebook", 3, "2023-11-09", "9780316556347"),
		ReadBook("Emma", "ebook", 0, "2023-01-30", ""),
		ReadBook("Beloved", "paperback", 5, "", "9781400033416"),
		{Title: "Middlemarch", Authors: "George Eliot", ReadStatus: "to-read", Format: "audio", Identifier: "9780141439549"},
	}
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body any) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

// RecordHTTPResponse decodes the JSON envelope written to w.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]any
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// Data returns the "data" object of a success envelope, or nil.
func (r RecordResponse) Data() map[string]any {
	d, _ := r.Body["data"].(map[string]any)
	return d
}

// ErrorCode returns error.code of an error envelope, or "".
func (r RecordResponse) ErrorCode() string {
	e, _ := r.Body["error"].(map[string]any)
	c, _ := e["code"].(string)
	return c
}
