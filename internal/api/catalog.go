package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/osse101/PantryBook_Go/internal/domain"
)

// SearchIngredients reads the ingredient catalog, optionally narrowed by a
// backend-side search term. An empty term returns the whole catalog.
func (c *APIClient) SearchIngredients(ctx context.Context, term string) ([]domain.IngredientRef, error) {
	path := domain.PathCatalogIngredients
	if term != "" {
		params := url.Values{}
		params.Set("search", term)
		path += "?" + params.Encode()
	}

	var env dataEnvelope[[]domain.IngredientRef]
	if err := c.getJSON(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}
