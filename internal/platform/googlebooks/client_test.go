package googlebooks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient("shelfthis-test", 1000, WithBaseURL(srv.URL), WithHTTPClient(srv.Client())), &calls
}

func TestClient_FetchCover(t *testing.T) {
	ctx := context.Background()

	t.Run("returns thumbnail of first item", func(t *testing.T) {
		c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "isbn:123", r.URL.Query().Get("q"))
			assert.Equal(t, "shelfthis-test", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(`{"items":[{"volumeInfo":{"imageLinks":{"thumbnail":"http://x/y.jpg"}}}]}`))
		})

		got, err := c.FetchCover(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, "http://x/y.jpg", got)
		assert.EqualValues(t, 1, *calls)
	})

	t.Run("skips items without image links", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"items":[{"volumeInfo":{}},{"volumeInfo":{"imageLinks":{"smallThumbnail":"http://x/small.jpg"}}}]}`))
		})

		got, err := c.FetchCover(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, "http://x/small.jpg", got)
	})

	t.Run("no items is not an error", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"kind":"books#volumes","totalItems":0}`))
		})

		got, err := c.FetchCover(ctx, "000")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("non-200 status", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := c.FetchCover(ctx, "123")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnexpectedStatus))
	})

	t.Run("does not retry", func(t *testing.T) {
		c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := c.FetchCover(ctx, "123")
		assert.Error(t, err)
		assert.EqualValues(t, 1, *calls)
	})

	t.Run("malformed payload", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"items":[`))
		})

		_, err := c.FetchCover(ctx, "123")
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("api key is sent when configured", func(t *testing.T) {
		var gotKey string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.URL.Query().Get("key")
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		c := NewClient("ua", 1000, WithBaseURL(srv.URL), WithAPIKey("secret"))
		_, err := c.FetchCover(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, "secret", gotKey)
	})
}

func TestParseImageLinks(t *testing.T) {
	t.Run("array payload is malformed", func(t *testing.T) {
		_, err := ParseImageLinks([]byte(`[1,2]`))
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("empty body is malformed", func(t *testing.T) {
		_, err := ParseImageLinks(nil)
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("both sizes", func(t *testing.T) {
		links, err := ParseImageLinks([]byte(`{"items":[{"volumeInfo":{"imageLinks":{"smallThumbnail":"s","thumbnail":"t"}}}]}`))
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "t", links[0].ShelfLink())
	})

	t.Run("small thumbnail only", func(t *testing.T) {
		links, err := ParseImageLinks([]byte(`{"items":[{"volumeInfo":{"imageLinks":{"smallThumbnail":"s"}}}]}`))
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "s", links[0].ShelfLink())
	})
}
