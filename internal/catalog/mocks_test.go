package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/PantryBook_Go/internal/domain"
)

// MockSource is a testify mock of Source
type MockSource struct {
	mock.Mock
}

func (m *MockSource) SearchIngredients(ctx context.Context, term string) ([]domain.IngredientRef, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IngredientRef), args.Error(1)
}
