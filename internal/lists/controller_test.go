package lists

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/selection"
)

type MockListStore struct {
	mock.Mock
}

func (m *MockListStore) GetList(ctx context.Context, kind domain.ListKind) ([]domain.ListItem, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ListItem), args.Error(1)
}

func (m *MockListStore) AddToList(ctx context.Context, kind domain.ListKind, items []domain.ListItemInput) error {
	return m.Called(ctx, kind, items).Error(0)
}

func (m *MockListStore) DeleteFromList(ctx context.Context, kind domain.ListKind, ids []string) error {
	return m.Called(ctx, kind, ids).Error(0)
}

var (
	pantry = []domain.ListItem{
		{ID: "1", Name: "ovo"},
		{ID: "2", Name: "Arroz"},
		{ID: "3", Name: "açúcar"},
	}
	shopping = []domain.ListItem{
		{ID: "9", Name: "Leite"},
		{ID: "8", Name: "Banana"},
	}
)

func loadedController(t *testing.T, store *MockListStore) *Controller {
	t.Helper()
	c := NewController(store, nil)
	require.NoError(t, c.SwitchTab(context.Background(), domain.ListIngredients))
	return c
}

func TestController_TabSwitchResetsCheckedWithoutResurrecting(t *testing.T) {
	store := &MockListStore{}
	store.On("GetList", mock.Anything, domain.ListIngredients).Return(pantry, nil)
	store.On("GetList", mock.Anything, domain.ListShopping).Return(shopping, nil)

	c := loadedController(t, store)
	require.NoError(t, c.Toggle("1", true))
	require.NoError(t, c.Toggle("2", true))
	require.True(t, c.RemoveVisible())

	require.NoError(t, c.SwitchTab(context.Background(), domain.ListShopping))
	assert.Empty(t, c.Checked())
	assert.False(t, c.RemoveVisible())
	assert.Equal(t, "shopping", c.View().Tab)

	require.NoError(t, c.SwitchTab(context.Background(), domain.ListIngredients))
	assert.Empty(t, c.Checked(), "checked ids from before the switch must not come back")
}

func TestController_ToggleChecksOnlyListedItems(t *testing.T) {
	store := &MockListStore{}
	store.On("GetList", mock.Anything, domain.ListIngredients).Return(pantry, nil)
	c := loadedController(t, store)

	require.NoError(t, c.Toggle("3", true))
	require.NoError(t, c.Toggle("1", true))
	require.NoError(t, c.Toggle("3", true))
	assert.Equal(t, []string{"3", "1"}, c.Checked())

	assert.ErrorIs(t, c.Toggle("42", true), domain.ErrInvalidInput)

	require.NoError(t, c.Toggle("3", false))
	require.NoError(t, c.Toggle("42", false))
	assert.Equal(t, []string{"1"}, c.Checked())
}

func TestController_VisibleFiltersByPrefixAndSorts(t *testing.T) {
	store := &MockListStore{}
	store.On("GetList", mock.Anything, domain.ListIngredients).Return(pantry, nil)
	c := loadedController(t, store)

	names := func(items []domain.ListItem) []string {
		var out []string
		for _, i := range items {
			out = append(out, i.Name)
		}
		return out
	}

	assert.Equal(t, []string{"açúcar", "Arroz", "ovo"}, names(c.Visible()))

	c.SetFilter("AR")
	assert.Equal(t, []string{"Arroz"}, names(c.Visible()))

	c.SetFilter("vo")
	assert.Empty(t, c.Visible(), "filter matches prefixes only")
}

func TestController_DeleteRequiresConfirmation(t *testing.T) {
	store := &MockListStore{}
	store.On("GetList", mock.Anything, domain.ListIngredients).Return(pantry, nil).Once()
	c := loadedController(t, store)

	_, err := c.RequestDelete()
	assert.ErrorIs(t, err, domain.ErrNothingChecked)
	assert.ErrorIs(t, c.ConfirmDelete(context.Background()), domain.ErrNoPendingDelete)

	require.NoError(t, c.Toggle("1", true))
	require.NoError(t, c.Toggle("3", true))

	ids, err := c.RequestDelete()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids)
	assert.True(t, c.View().PendingDelete)

	require.NoError(t, c.AbortDelete())
	assert.False(t, c.View().PendingDelete)
	assert.Equal(t, []string{"1", "3"}, c.Checked())
	assert.ErrorIs(t, c.AbortDelete(), domain.ErrNoPendingDelete)

	store.AssertNotCalled(t, "DeleteFromList", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_UncheckingEverythingCancelsPendingDelete(t *testing.T) {
	store := &MockListStore{}
	store.On("GetList", mock.Anything, domain.ListIngredients).Return(pantry, nil).Once()
	c := loadedController(t, store)

	require.NoError(t, c.Toggle("1", true))
	_, err := c.RequestDelete()
	require.NoError(t, err)

	require.NoError(t, c.Toggle("1", false))
	assert.False(t, c.RemoveVisible())
	assert.False(t, c.View().PendingDelete)

	assert.ErrorIs(t, c.ConfirmDelete(context.Background()), domain.ErrNoPendingDelete)
	store.AssertNotCalled(t, "DeleteFromList", mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestController_ConfirmDeleteClearsAndRefetches(t *testing.T) {
	store := &MockListStore{}
	store.On("GetList", mock.Anything, domain.ListIngredients).Return(pantry, nil).Once()
	store.On("DeleteFromList", mock.Anything, domain.ListIngredients, []string{"1", "3"}).Return(nil).Once()
	store.On("GetList", mock.Anything, domain.ListIngredients).Return(pantry[1:2], nil).Once()

	c := loadedController(t, store)
	require.NoError(t, c.Toggle("1", true))
	require.NoError(t, c.Toggle("3", true))
	_, err := c.RequestDelete()
	require.NoError(t, err)

	require.NoError(t, c.ConfirmDelete(context.Background()))

	assert.Empty(t, c.Checked())
	assert.Equal(t, []domain.ListItem{{ID: "2", Name: "Arroz"}}, c.Visible())
	store.AssertExpectations(t)
}

func TestController_ConfirmDeleteFailureKeepsChecked(t *testing.T) {
	store := &MockListStore{}
	store.On("GetList", mock.Anything, domain.ListIngredients).Return(pantry, nil).Once()
	store.On("DeleteFromList", mock.Anything, domain.ListIngredients, []string{"2"}).
		Return(&domain.APIError{StatusCode: 502}).Once()

	c := loadedController(t, store)
	require.NoError(t, c.Toggle("2", true))
	_, err := c.RequestDelete()
	require.NoError(t, err)

	err = c.ConfirmDelete(context.Background())
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))

	assert.Equal(t, []string{"2"}, c.Checked())
	assert.False(t, c.View().PendingDelete)
	store.AssertExpectations(t)
}

func TestController_RefreshPrunesVanishedChecks(t *testing.T) {
	store := &MockListStore{}
	store.On("GetList", mock.Anything, domain.ListIngredients).Return(pantry, nil).Once()
	store.On("GetList", mock.Anything, domain.ListIngredients).Return(pantry[:1], nil).Once()

	c := loadedController(t, store)
	require.NoError(t, c.Toggle("1", true))
	require.NoError(t, c.Toggle("2", true))

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, []string{"1"}, c.Checked())
}

func TestController_SlowFetchOfLeftTabIsDropped(t *testing.T) {
	store := &MockListStore{}
	started := make(chan struct{})
	release := make(chan struct{})
	store.On("GetList", mock.Anything, domain.ListIngredients).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(pantry, nil).Once()
	store.On("GetList", mock.Anything, domain.ListShopping).Return(shopping, nil).Once()

	c := NewController(store, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, c.SwitchTab(context.Background(), domain.ListIngredients))
	}()
	<-started

	require.NoError(t, c.SwitchTab(context.Background(), domain.ListShopping))
	close(release)
	wg.Wait()

	assert.Equal(t, domain.ListShopping, c.Tab())
	assert.Len(t, c.Visible(), 2)
	assert.Equal(t, "Banana", c.Visible()[0].Name)
}

func TestController_SaveAdded(t *testing.T) {
	store := &MockListStore{}
	store.On("GetList", mock.Anything, domain.ListShopping).Return(shopping, nil).Once()
	store.On("AddToList", mock.Anything, domain.ListShopping, []domain.ListItemInput{
		{Name: "Café", ID: "c1"},
		{Name: "Pão", ID: "p1"},
	}).Return(nil).Once()
	store.On("GetList", mock.Anything, domain.ListShopping).
		Return(append(shopping, domain.ListItem{ID: "c1", Name: "Café"}, domain.ListItem{ID: "p1", Name: "Pão"}), nil).Once()

	c := NewController(store, nil)
	require.NoError(t, c.SwitchTab(context.Background(), domain.ListShopping))

	assert.ErrorIs(t, c.SaveAdded(context.Background()), domain.ErrNothingPicked)

	c.PickForAdd(domain.IngredientRef{ID: "c1", Name: "Café"})
	c.PickForAdd(domain.IngredientRef{ID: "x", Name: "Sal"})
	c.PickForAdd(domain.IngredientRef{ID: "p1", Name: "Pão"})
	c.PickForAdd(domain.IngredientRef{ID: "c1", Name: "Café"})
	assert.True(t, c.UnpickForAdd("x"))
	assert.False(t, c.UnpickForAdd("x"))
	assert.Equal(t, []selection.Entry{{Key: "c1", Name: "Café"}, {Key: "p1", Name: "Pão"}}, c.Picked())

	require.NoError(t, c.SaveAdded(context.Background()))
	assert.Empty(t, c.Picked())
	assert.Len(t, c.Visible(), 4)
	store.AssertExpectations(t)
}

func TestController_FetchFailureKeepsTab(t *testing.T) {
	store := &MockListStore{}
	store.On("GetList", mock.Anything, domain.ListShopping).Return(nil, errors.New("timeout"))

	c := NewController(store, nil)
	err := c.SwitchTab(context.Background(), domain.ListShopping)
	require.Error(t, err)

	view := c.View()
	assert.Equal(t, "shopping", view.Tab)
	assert.False(t, view.Loaded)
	assert.ErrorIs(t, c.SwitchTab(context.Background(), domain.ListKind(7)), domain.ErrUnknownTab)
}
