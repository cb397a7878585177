package domain

import "time"

// RecipeIngredient is one ingredient line of a recipe as the backend stores it.
// Quantity is kept as the user typed it.
type RecipeIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// RecipeDraft is the wire form posted to the recipe storage endpoint
type RecipeDraft struct {
	Name              string             `json:"name"`
	Ingredients       []RecipeIngredient `json:"ingredients"`
	PreparationMethod []string           `json:"preparationMethod"`
	PreparationTime   int                `json:"preparationTime"`
	NutritionalValues map[string]float64 `json:"nutritionalValues,omitempty"`
}

// Recipe is a persisted recipe record returned by the backend
type Recipe struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Ingredients       []RecipeIngredient `json:"ingredients"`
	PreparationMethod []string           `json:"preparationMethod"`
	PreparationTime   int                `json:"preparationTime"`
	NutritionalValues map[string]float64 `json:"nutritionalValues,omitempty"`
	CreatedAt         time.Time          `json:"createdAt,omitempty"`
}
