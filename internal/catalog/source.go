package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/logger"
	"github.com/osse101/PantryBook_Go/internal/metrics"
)

// Source fetches ingredient catalog entries from the backend.
// An empty term means the whole catalog.
type Source interface {
	SearchIngredients(ctx context.Context, term string) ([]domain.IngredientRef, error)
}

// CachedSource is a Source shared by all sessions. Results are cached per
// term for a TTL and concurrent fetches of the same term share one backend call.
type CachedSource struct {
	next  Source
	cache *expirable.LRU[string, []domain.IngredientRef]
	group singleflight.Group
}

// NewCachedSource wraps next with an LRU of the given size and TTL
func NewCachedSource(next Source, size int, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next:  next,
		cache: expirable.NewLRU[string, []domain.IngredientRef](size, nil, ttl),
	}
}

// SearchIngredients implements Source
func (c *CachedSource) SearchIngredients(ctx context.Context, term string) ([]domain.IngredientRef, error) {
	if refs, ok := c.cache.Get(term); ok {
		metrics.RecordCatalogLookup(true)
		return clone(refs), nil
	}
	metrics.RecordCatalogLookup(false)

	v, err, shared := c.group.Do(term, func() (interface{}, error) {
		refs, err := c.next.SearchIngredients(ctx, term)
		if err != nil {
			return nil, err
		}
		c.cache.Add(term, refs)
		return refs, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ingredient catalog: %w", err)
	}

	logger.FromContext(ctx).Debug("Catalog fetched", "term", term, "shared", shared)
	return clone(v.([]domain.IngredientRef)), nil
}

// Invalidate drops every cached result so the next call reaches the backend
func (c *CachedSource) Invalidate() {
	c.cache.Purge()
}

// Len returns the number of cached terms
func (c *CachedSource) Len() int {
	return c.cache.Len()
}

func clone(refs []domain.IngredientRef) []domain.IngredientRef {
	out := make([]domain.IngredientRef, len(refs))
	copy(out, refs)
	return out
}

// CheckHealth reports whether the catalog can be served, from cache or backend
func (c *CachedSource) CheckHealth(ctx context.Context) error {
	_, err := c.SearchIngredients(ctx, "")
	return err
}
