package recipe

import (
	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/nutrition"
)

// Event types emitted by the Editor
const (
	EventStateChanged     = "editor.state_changed"
	EventNutritionUpdated = "editor.nutrition_updated"
	EventNutritionFailed  = "editor.nutrition_failed"
	EventSubmitSucceeded  = "editor.submit_succeeded"
	EventSubmitFailed     = "editor.submit_failed"
	EventRecipesRefreshed = "editor.recipes_refreshed"
	EventCatalogFailed    = "editor.catalog_refresh_failed"
)

// Notifier receives editor events for delivery to the front end
type Notifier interface {
	Notify(eventType string, payload interface{})
}

// NopNotifier discards every event
type NopNotifier struct{}

func (NopNotifier) Notify(string, interface{}) {}

// StateChangedPayload is sent on EventStateChanged
type StateChangedPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NutritionPayload is sent on EventNutritionUpdated
type NutritionPayload struct {
	Values []nutrition.LabeledValue `json:"values"`
}

// SubmitPayload is sent on EventSubmitSucceeded and EventSubmitFailed
type SubmitPayload struct {
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

// RecipesPayload is sent on EventRecipesRefreshed
type RecipesPayload struct {
	Recipes []domain.Recipe `json:"recipes"`
}

// ErrorPayload carries a failure message
type ErrorPayload struct {
	Error string `json:"error"`
}
