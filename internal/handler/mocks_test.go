package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/PantryBook_Go/internal/domain"
)

// MockBackend mocks every backend interface a session depends on
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) SearchIngredients(ctx context.Context, term string) ([]domain.IngredientRef, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IngredientRef), args.Error(1)
}

func (m *MockBackend) CreateRecipe(ctx context.Context, draft domain.RecipeDraft) error {
	return m.Called(ctx, draft).Error(0)
}

func (m *MockBackend) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recipe), args.Error(1)
}

func (m *MockBackend) ComputeNutrition(ctx context.Context, items []domain.NutritionItem) (map[string]float64, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

func (m *MockBackend) GetList(ctx context.Context, kind domain.ListKind) ([]domain.ListItem, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ListItem), args.Error(1)
}

func (m *MockBackend) AddToList(ctx context.Context, kind domain.ListKind, items []domain.ListItemInput) error {
	return m.Called(ctx, kind, items).Error(0)
}

func (m *MockBackend) DeleteFromList(ctx context.Context, kind domain.ListKind, ids []string) error {
	return m.Called(ctx, kind, ids).Error(0)
}
