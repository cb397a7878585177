// Package catalog provides the searchable ingredient catalog used to pick
// recipe ingredients.
package catalog

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/osse101/PantryBook_Go/internal/domain"
)

// Index holds the catalog entries fetched for one editing session and
// filters them locally. Entries keep the order the backend returned.
type Index struct {
	source Source

	mu      sync.RWMutex
	entries []domain.IngredientRef
	loaded  bool
}

// NewIndex creates an empty Index over source
func NewIndex(source Source) *Index {
	return &Index{source: source}
}

// Refresh re-fetches the full catalog. On failure the previous entries are kept.
func (i *Index) Refresh(ctx context.Context) error {
	refs, err := i.source.SearchIngredients(ctx, "")
	if err != nil {
		return err
	}

	i.mu.Lock()
	i.entries = refs
	i.loaded = true
	i.mu.Unlock()
	return nil
}

// Loaded reports whether a Refresh has succeeded
func (i *Index) Loaded() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.loaded
}

// Search returns the entries whose name contains term, ignoring case.
// An empty term returns every entry.
func (i *Index) Search(term string) []domain.IngredientRef {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if term == "" {
		return clone(i.entries)
	}

	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]domain.IngredientRef, 0, len(i.entries))
	for _, ref := range i.entries {
		if strings.Contains(fold.String(ref.Name), needle) {
			out = append(out, ref)
		}
	}
	return out
}

// Lookup returns the entry with the given id
func (i *Index) Lookup(id string) (domain.IngredientRef, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	for _, ref := range i.entries {
		if ref.ID == id {
			return ref, true
		}
	}
	return domain.IngredientRef{}, false
}

// Len returns the number of fetched entries
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}
