package api

import (
	"context"
	"net/http"

	"github.com/osse101/PantryBook_Go/internal/domain"
)

// ListRecipes retrieves the user's recipes
func (c *APIClient) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	var env dataEnvelope[[]domain.Recipe]
	if err := c.getJSON(ctx, http.MethodGet, domain.PathUserRecipes, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// CreateRecipe stores a new recipe
func (c *APIClient) CreateRecipe(ctx context.Context, draft domain.RecipeDraft) error {
	return c.getJSON(ctx, http.MethodPost, domain.PathUserRecipes, draft, nil)
}
