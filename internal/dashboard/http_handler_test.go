package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"shelfthis/internal/cover"
	"shelfthis/internal/history"
	"shelfthis/internal/httpx"
	"shelfthis/internal/logger"
	"shelfthis/internal/platform/googlebooks"
	"shelfthis/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportCSV = `Title,Authors,ISBN/UID,Format,Read Status,Last Date Read,Star Rating
The Hobbit,J.R.R. Tolkien,123,Physical,read,2024/02/10,5
Dune,Frank Herbert,456,Audio,read,2024/07/04,4
Circe,Madeline Miller,123,Digital,read,2023/05/01,4.5
Piranesi,Susanna Clarke,789,Digital,to-read,,
Emma,Jane Austen,,Physical,read,,3
`

// catalog answers volumes queries: 123 has an http thumbnail, everything
// else has no items.
type catalog struct {
	mu    sync.Mutex
	calls map[string]int
}

func (c *catalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	isbn := strings.TrimPrefix(r.URL.Query().Get("q"), "isbn:")
	c.mu.Lock()
	c.calls[isbn]++
	c.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if isbn == "123" {
		_, _ = w.Write([]byte(`{"items":[{"volumeInfo":{"imageLinks":{"thumbnail":"http://x/y.jpg"}}}]}`))
		return
	}
	_, _ = w.Write([]byte(`{"kind":"books#volumes","totalItems":0}`))
}

func (c *catalog) count(isbn string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[isbn]
}

func newTestServer(t *testing.T, importer ImportRunner) (http.Handler, *catalog) {
	t.Helper()

	cat := &catalog{calls: map[string]int{}}
	srv := httptest.NewServer(cat)
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "books.csv")
	require.NoError(t, os.WriteFile(path, []byte(exportCSV), 0o644))

	log := logger.Discard()
	hist := history.NewService(history.NewCSVLoader(history.NewOpener(), path, 0), time.Minute, log)
	gb := googlebooks.NewClient("shelfthis-test", 1000,
		googlebooks.WithBaseURL(srv.URL), googlebooks.WithHTTPClient(srv.Client()))
	cache := cover.NewCache(gb, cover.WithLogger(log))
	shelf := cover.NewShelf(cache, placeholder, 4)

	svc := NewService(hist, shelf, cache, 10, log)
	mux := http.NewServeMux()
	NewHTTPHandler(svc, importer, log).Register(mux, httpx.InternalSecretMiddleware("s3cret"))
	return httpx.Chain(mux, httpx.RequestIDMiddleware), cat
}

func get(h http.Handler, path string) testutil.RecordResponse {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, testutil.NewRequest(http.MethodGet, path, nil))
	return testutil.RecordHTTPResponse(w)
}

func TestHTTPHandler_Dashboard(t *testing.T) {
	h, cat := newTestServer(t, nil)

	res := get(h, "/v1/dashboard?year=2024")
	require.Equal(t, http.StatusOK, res.Code)
	data := res.Data()
	require.NotNil(t, data)

	assert.Equal(t, float64(2), data["total_books"])
	assert.Equal(t, float64(4.5), data["average_rating"])
	assert.Equal(t, []any{float64(2024), float64(2023)}, data["years"])
	// 123 resolves over http and comes back upgraded; 456 has no cover
	assert.Equal(t, []any{"https://x/y.jpg", placeholder}, data["shelf"])

	top, ok := data["top_rated_shelf"].([]any)
	require.True(t, ok)
	require.Len(t, top, 4)
	first := top[0].(map[string]any)
	assert.Equal(t, "The Hobbit", first["title"])
	assert.Equal(t, "https://x/y.jpg", first["cover_url"])
	// Emma has no identifier
	assert.Equal(t, placeholder, top[3].(map[string]any)["cover_url"])

	// a second render is served from the cache
	res = get(h, "/v1/dashboard")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, float64(4), res.Data()["total_books"])
	assert.Equal(t, 1, cat.count("123"))
	assert.Equal(t, 1, cat.count("456"))
	assert.Zero(t, cat.count(""))
}

func TestHTTPHandler_DashboardBadYear(t *testing.T) {
	h, _ := newTestServer(t, nil)

	for _, q := range []string{"year=abc", "year=-3", "year=0"} {
		res := get(h, "/v1/dashboard?"+q)
		assert.Equal(t, http.StatusBadRequest, res.Code, q)
		assert.Equal(t, "VALIDATION_ERROR", res.ErrorCode(), q)
	}
}

func TestHTTPHandler_Books(t *testing.T) {
	h, _ := newTestServer(t, nil)

	res := get(h, "/v1/books?year=all")
	require.Equal(t, http.StatusOK, res.Code)
	rows, ok := res.Body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, rows, 4)
	assert.Equal(t, float64(4), res.Body["meta"].(map[string]any)["total"])
	assert.NotEmpty(t, res.Body["meta"].(map[string]any)["request_id"])
}

func TestHTTPHandler_Cover(t *testing.T) {
	h, cat := newTestServer(t, nil)

	res := get(h, "/v1/covers/123")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "https://x/y.jpg", res.Data()["url"])
	assert.Equal(t, false, res.Data()["placeholder"])

	res = get(h, "/v1/covers/000")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, placeholder, res.Data()["url"])
	assert.Equal(t, true, res.Data()["placeholder"])

	// the miss is cached too
	get(h, "/v1/covers/000")
	assert.Equal(t, 1, cat.count("000"))
}

func TestHTTPHandler_Import(t *testing.T) {
	post := func(h http.Handler, secret string) testutil.RecordResponse {
		r := testutil.NewRequest(http.MethodPost, "/internal/jobs/import", nil)
		if secret != "" {
			r.Header.Set(httpx.InternalSecretHeader, secret)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return testutil.RecordHTTPResponse(w)
	}

	t.Run("without database", func(t *testing.T) {
		h, _ := newTestServer(t, nil)
		res := post(h, "s3cret")
		assert.Equal(t, http.StatusServiceUnavailable, res.Code)
		assert.Equal(t, "DATABASE_NOT_CONFIGURED", res.ErrorCode())
	})

	t.Run("wrong secret", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h, _ := newTestServer(t, NewMockImportRunner(ctrl))
		res := post(h, "nope")
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("runs the import", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := NewMockImportRunner(ctrl)
		runner.EXPECT().Run(gomock.Any()).DoAndReturn(func(context.Context) (*history.ImportRun, error) {
			return &history.ImportRun{ID: 7, Status: history.RunCompleted, RowsTotal: 5, RowsRead: 4}, nil
		})

		h, _ := newTestServer(t, runner)
		res := post(h, "s3cret")
		require.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, float64(7), res.Data()["id"])
		assert.Equal(t, history.RunCompleted, res.Data()["status"])
	})
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"all", 0, false},
		{"ALL", 0, false},
		{" 2024 ", 2024, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"20x4", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseYear(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidYear, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
