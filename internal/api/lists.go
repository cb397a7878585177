package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/osse101/PantryBook_Go/internal/domain"
)

func listPath(kind domain.ListKind) (string, error) {
	switch kind {
	case domain.ListIngredients:
		return domain.PathUserIngredients, nil
	case domain.ListShopping:
		return domain.PathUserShoppingList, nil
	default:
		return "", fmt.Errorf("%w: %d", domain.ErrUnknownTab, kind)
	}
}

// GetList retrieves the user's ingredient list or shopping list
func (c *APIClient) GetList(ctx context.Context, kind domain.ListKind) ([]domain.ListItem, error) {
	path, err := listPath(kind)
	if err != nil {
		return nil, err
	}

	var env dataEnvelope[[]domain.ListItem]
	if err := c.getJSON(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// AddToList appends items to the user's list
func (c *APIClient) AddToList(ctx context.Context, kind domain.ListKind, items []domain.ListItemInput) error {
	path, err := listPath(kind)
	if err != nil {
		return err
	}
	return c.getJSON(ctx, http.MethodPost, path, items, nil)
}

// DeleteFromList removes the given ids from the user's list
func (c *APIClient) DeleteFromList(ctx context.Context, kind domain.ListKind, ids []string) error {
	path, err := listPath(kind)
	if err != nil {
		return err
	}

	body := make([]domain.ListItemID, len(ids))
	for i, id := range ids {
		body[i] = domain.ListItemID{ID: id}
	}
	return c.getJSON(ctx, http.MethodDelete, path+"/", body, nil)
}
