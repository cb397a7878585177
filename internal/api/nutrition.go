package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/osse101/PantryBook_Go/internal/domain"
)

type nutritionResponse struct {
	NutritionalValues map[string]float64 `json:"nutritional_values"`
}

// ComputeNutrition asks the nutrition service for the nutrient totals of the given items
func (c *APIClient) ComputeNutrition(ctx context.Context, items []domain.NutritionItem) (map[string]float64, error) {
	if items == nil {
		items = []domain.NutritionItem{}
	}

	var out nutritionResponse
	if err := c.getJSON(ctx, http.MethodPost, domain.PathNutrition, items, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNutritionUnavailable, err)
	}
	if out.NutritionalValues == nil {
		return map[string]float64{}, nil
	}
	return out.NutritionalValues, nil
}
