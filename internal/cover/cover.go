// Package cover resolves book identifiers to displayable cover image URLs and
// memoizes the results for a freshness window.
package cover

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a resolved entry, including a miss, stays fresh.
const DefaultTTL = 24 * time.Hour

// DefaultFetchTimeout bounds a shared catalog lookup. Callers stop waiting
// when their own context ends; the lookup itself runs until this deadline.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher looks up the raw cover link for an identifier. It returns "" with a
// nil error when the catalog has no cover.
type Fetcher interface {
	FetchCover(ctx context.Context, isbn string) (string, error)
}

type entry struct {
	url        string
	found      bool
	resolvedAt time.Time
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Fetches int64 `json:"fetches"`
}

// Cache maps identifiers to cover URLs. Entries are never evicted; a stale
// entry is re-resolved on its next lookup.
type Cache struct {
	fetcher      Fetcher
	ttl          time.Duration
	fetchTimeout time.Duration
	now          func() time.Time
	logger       *slog.Logger

	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group

	hits    atomic.Int64
	misses  atomic.Int64
	fetches atomic.Int64
}

type Option func(*Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithFetchTimeout(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewCache(fetcher Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher:      fetcher,
		ttl:          DefaultTTL,
		fetchTimeout: DefaultFetchTimeout,
		now:          time.Now,
		logger:       slog.Default(),
		entries:      make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the cover URL for identifier. ok is false when no cover is
// available: empty identifier, unknown to the catalog, or the lookup failed.
// Failures are cached like misses until the entry goes stale.
//
// Concurrent callers for one identifier share a single catalog request that
// is detached from any one caller's context. A caller whose ctx ends gets
// ok == false without affecting the others, and the shared result is still
// cached.
func (c *Cache) Resolve(ctx context.Context, identifier string) (url string, ok bool) {
	key := strings.TrimSpace(identifier)
	if key == "" {
		return "", false
	}

	if e, fresh := c.lookup(key); fresh {
		c.hits.Add(1)
		return e.url, e.found
	}
	c.misses.Add(1)
	if ctx.Err() != nil {
		return "", false
	}

	ch := c.group.DoChan(key, func() (any, error) {
		// Another caller may have stored a fresh entry while we waited.
		if e, fresh := c.lookup(key); fresh {
			return e, nil
		}
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()
		return c.fetch(fctx, key), nil
	})

	select {
	case <-ctx.Done():
		c.logger.Debug("cover lookup abandoned by caller", "isbn", key, "error", ctx.Err())
		return "", false
	case res := <-ch:
		e := res.Val.(entry)
		return e.url, e.found
	}
}

func (c *Cache) lookup(key string) (entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return entry{}, false
	}
	return e, c.now().Sub(e.resolvedAt) < c.ttl
}

func (c *Cache) fetch(ctx context.Context, key string) entry {
	c.fetches.Add(1)
	raw, err := c.fetcher.FetchCover(ctx, key)

	e := entry{resolvedAt: c.now()}
	switch {
	case err != nil:
		c.logger.Warn("cover lookup failed", "isbn", key, "error", err)
	case raw == "":
		c.logger.Debug("no cover in catalog", "isbn", key)
	default:
		e.url = SecureURL(raw)
		e.found = true
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return e
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	n := len(c.entries)
	c.mu.Unlock()
	return Stats{
		Entries: n,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Fetches: c.fetches.Load(),
	}
}

// SecureURL rewrites an http:// URL to https://. Other values are returned
// unchanged.
func SecureURL(u string) string {
	const insecure = "http://"
	if len(u) >= len(insecure) && strings.EqualFold(u[:len(insecure)], insecure) {
		return "https://" + u[len(insecure):]
	}
	return u
}
