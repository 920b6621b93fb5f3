package cover

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Shelf turns identifiers into the ordered list of image URLs handed to the
// display layer.
type Shelf struct {
	cache       *Cache
	placeholder string
	concurrency int
}

func NewShelf(cache *Cache, placeholder string, concurrency int) *Shelf {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Shelf{cache: cache, placeholder: placeholder, concurrency: concurrency}
}

// Placeholder is the URL substituted for identifiers without a cover.
func (s *Shelf) Placeholder() string {
	return s.placeholder
}

// Render resolves identifiers in input order. Identifiers without a cover
// get the placeholder. The result has the same length and order as the
// input; duplicates are kept.
func (s *Shelf) Render(ctx context.Context, identifiers []string) []string {
	out := make([]string, len(identifiers))
	for i, id := range identifiers {
		if u, ok := s.cache.Resolve(ctx, id); ok {
			out[i] = u
		} else {
			out[i] = s.placeholder
		}
	}
	return out
}

// Prefetch warms the cache for identifiers with up to s.concurrency lookups in
// flight. Each distinct identifier is resolved at most once per call.
func (s *Shelf) Prefetch(ctx context.Context, identifiers []string) {
	if s.concurrency <= 1 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	seen := make(map[string]struct{}, len(identifiers))
	for _, id := range identifiers {
		key := strings.TrimSpace(id)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		g.Go(func() error {
			s.cache.Resolve(gctx, key)
			return nil
		})
	}
	_ = g.Wait()
}

// RenderAll prefetches concurrently, then renders in order.
func (s *Shelf) RenderAll(ctx context.Context, identifiers []string) []string {
	s.Prefetch(ctx, identifiers)
	return s.Render(ctx, identifiers)
}
