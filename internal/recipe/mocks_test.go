package recipe

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/PantryBook_Go/internal/domain"
)

type MockRecipeStore struct {
	mock.Mock
}

func (m *MockRecipeStore) CreateRecipe(ctx context.Context, draft domain.RecipeDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockRecipeStore) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recipe), args.Error(1)
}

type MockNutritionService struct {
	mock.Mock
}

func (m *MockNutritionService) ComputeNutrition(ctx context.Context, items []domain.NutritionItem) (map[string]float64, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

type MockCatalogSource struct {
	mock.Mock
}

func (m *MockCatalogSource) SearchIngredients(ctx context.Context, term string) ([]domain.IngredientRef, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IngredientRef), args.Error(1)
}

type recordedEvent struct {
	Type    string
	Payload interface{}
}

// recordingNotifier keeps every event in order
type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingNotifier) Notify(eventType string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{Type: eventType, Payload: payload})
}

func (r *recordingNotifier) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
