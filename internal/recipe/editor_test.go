package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PantryBook_Go/internal/catalog"
	"github.com/osse101/PantryBook_Go/internal/domain"
)

var (
	flour = domain.IngredientRef{ID: "1", Name: "Flour"}
	water = domain.IngredientRef{ID: "2", Name: "Water"}
	salt  = domain.IngredientRef{ID: "3", Name: "Salt"}
)

type editorFixture struct {
	editor    *Editor
	store     *MockRecipeStore
	nutrition *MockNutritionService
	source    *MockCatalogSource
	events    *recordingNotifier
}

func newFixture(t *testing.T, policy Policy) *editorFixture {
	t.Helper()
	f := &editorFixture{
		store:     &MockRecipeStore{},
		nutrition: &MockNutritionService{},
		source:    &MockCatalogSource{},
		events:    &recordingNotifier{},
	}
	f.source.On("SearchIngredients", mock.Anything, "").
		Return([]domain.IngredientRef{flour, water, salt}, nil).Maybe()
	f.editor = NewEditor(catalog.NewIndex(f.source), f.store, f.nutrition, f.events, policy)
	return f
}

func (f *editorFixture) open(t *testing.T) {
	t.Helper()
	require.NoError(t, f.editor.Open(context.Background()))
	require.Equal(t, StateOpenEmpty, f.editor.State())
}

func (f *editorFixture) composeBread(t *testing.T) {
	t.Helper()
	e := f.editor
	require.NoError(t, e.PickIngredient(flour))
	require.NoError(t, e.SetQuantity("1", "200"))
	require.NoError(t, e.AddStep("Mix"))
	require.NoError(t, e.SetPreparationTime(10))
	require.NoError(t, e.SetName("Bread"))
}

func TestEditor_BreadScenario(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)
	f.composeBread(t)

	require.NoError(t, f.editor.Validate())

	want := domain.RecipeDraft{
		Name:              "Bread",
		Ingredients:       []domain.RecipeIngredient{{Name: "Flour", Quantity: "200"}},
		PreparationMethod: []string{"Mix"},
		PreparationTime:   10,
	}
	assert.Equal(t, want, f.editor.Draft())

	f.store.On("CreateRecipe", mock.Anything, want).Return(nil).Once()
	f.store.On("ListRecipes", mock.Anything).Return([]domain.Recipe{{ID: "r1", Name: "Bread"}}, nil).Once()

	require.NoError(t, f.editor.Submit(context.Background()))

	assert.Equal(t, StateClosed, f.editor.State())
	assert.Equal(t, "Bread", f.editor.Recipes()[0].Name)
	assert.Empty(t, f.editor.Draft().Ingredients)
	f.store.AssertExpectations(t)
	assert.Contains(t, f.events.types(), EventSubmitSucceeded)
	assert.Contains(t, f.events.types(), EventRecipesRefreshed)
}

func TestEditor_ValidatePreparationTime(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)
	f.composeBread(t)

	require.NoError(t, f.editor.SetPreparationTime(0))
	err := f.editor.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDraft)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []FieldError{{Field: "preparationTime", Rule: "gt"}}, verr.Fields)

	require.NoError(t, f.editor.SetPreparationTime(25))
	assert.NoError(t, f.editor.Validate())
}

func TestEditor_ValidateReportsEveryMissingField(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)
	require.NoError(t, f.editor.SetName("   "))

	var verr *ValidationError
	require.True(t, errors.As(f.editor.Validate(), &verr))

	fields := map[string]string{}
	for _, fe := range verr.Fields {
		fields[fe.Field] = fe.Rule
	}
	assert.Equal(t, map[string]string{
		"name":              "notblank",
		"ingredients":       "min",
		"preparationMethod": "min",
		"preparationTime":   "gt",
	}, fields)
}

func TestEditor_RequireNutritionPolicy(t *testing.T) {
	f := newFixture(t, Policy{RequireNutrition: true})
	f.open(t)
	f.composeBread(t)

	err := f.editor.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidDraft)
	assert.Contains(t, err.Error(), "nutritionalValues")

	f.nutrition.On("ComputeNutrition", mock.Anything, []domain.NutritionItem{{ID: "1", Name: "Flour", Quantity: 200}}).
		Return(map[string]float64{"energy_kcal": 728}, nil).Once()

	values, err := f.editor.RecomputeNutrition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 728.0, values["energy_kcal"])
	assert.NoError(t, f.editor.Validate())
	assert.Equal(t, map[string]float64{"energy_kcal": 728}, f.editor.Draft().NutritionalValues)
}

func TestEditor_InvalidSubmitDoesNotCallBackend(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)

	err := f.editor.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidDraft)
	assert.Equal(t, StateOpenEditing, f.editor.State())
	f.store.AssertNotCalled(t, "CreateRecipe", mock.Anything, mock.Anything)
}

func TestEditor_SubmitFailurePreservesDraft(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)
	f.composeBread(t)

	backendErr := &domain.APIError{Method: "POST", Path: domain.PathUserRecipes, StatusCode: 500}
	f.store.On("CreateRecipe", mock.Anything, mock.Anything).Return(backendErr).Once()

	err := f.editor.Submit(context.Background())
	require.Error(t, err)

	var apiErr *domain.APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, StateOpenEditing, f.editor.State())
	assert.Equal(t, "Bread", f.editor.Draft().Name)
	assert.Len(t, f.editor.Draft().Ingredients, 1)
	assert.Contains(t, f.events.types(), EventSubmitFailed)
	f.store.AssertNotCalled(t, "ListRecipes", mock.Anything)
}

func TestEditor_EditsRequireOpenEditor(t *testing.T) {
	f := newFixture(t, Policy{})

	assert.ErrorIs(t, f.editor.PickIngredient(flour), domain.ErrEditorClosed)
	assert.ErrorIs(t, f.editor.AddStep("Mix"), domain.ErrEditorClosed)
	assert.ErrorIs(t, f.editor.SetName("x"), domain.ErrEditorClosed)
	assert.ErrorIs(t, f.editor.Cancel(), domain.ErrEditorClosed)
	assert.ErrorIs(t, f.editor.Submit(context.Background()), domain.ErrEditorClosed)
	_, err := f.editor.RecomputeNutrition(context.Background())
	assert.ErrorIs(t, err, domain.ErrEditorClosed)
}

func TestEditor_FirstEditMovesToEditing(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)

	require.NoError(t, f.editor.AddStep("Mix"))
	assert.Equal(t, StateOpenEditing, f.editor.State())
	assert.Equal(t, []string{EventStateChanged, EventStateChanged}, f.events.types())
}

func TestEditor_QuantitiesFollowIngredients(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)
	e := f.editor

	require.NoError(t, e.PickIngredient(flour))
	require.NoError(t, e.PickIngredient(water))
	require.NoError(t, e.PickIngredient(flour))
	require.NoError(t, e.SetQuantity("2", "300"))
	require.NoError(t, e.RemoveIngredient("1"))
	require.NoError(t, e.RemoveIngredient("1"))

	view := e.View()
	assert.Equal(t, []IngredientView{{ID: "2", Name: "Water", Quantity: "300"}}, view.Ingredients)

	err := e.SetQuantity("1", "5")
	assert.ErrorIs(t, err, domain.ErrIngredientNotPicked)

	require.NoError(t, e.PickIngredient(flour))
	q := e.View().Ingredients[1]
	assert.Equal(t, "", q.Quantity, "re-picked ingredient starts with an empty quantity")
}

func TestEditor_SameNameDifferentIDsKeepSeparateQuantities(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)
	e := f.editor

	require.NoError(t, e.PickIngredient(domain.IngredientRef{ID: "a", Name: "Milk"}))
	require.NoError(t, e.PickIngredient(domain.IngredientRef{ID: "b", Name: "Milk"}))
	require.NoError(t, e.SetQuantity("a", "100"))
	require.NoError(t, e.SetQuantity("b", "250"))

	assert.Equal(t, []domain.RecipeIngredient{
		{Name: "Milk", Quantity: "100"},
		{Name: "Milk", Quantity: "250"},
	}, e.Draft().Ingredients)
}

func TestEditor_CompositionEditInvalidatesNutrition(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)
	f.composeBread(t)

	f.nutrition.On("ComputeNutrition", mock.Anything, mock.Anything).
		Return(map[string]float64{"protein_g": 20}, nil)

	_, err := f.editor.RecomputeNutrition(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, f.editor.Nutrition())

	require.NoError(t, f.editor.SetName("Sourdough"))
	assert.NotEmpty(t, f.editor.Nutrition(), "renaming is not a composition edit")

	require.NoError(t, f.editor.AddStep("Rest"))
	assert.Empty(t, f.editor.Nutrition())
}

func TestEditor_NoOpEditsKeepNutrition(t *testing.T) {
	f := newFixture(t, Policy{RequireNutrition: true})
	f.open(t)
	f.composeBread(t)

	f.nutrition.On("ComputeNutrition", mock.Anything, mock.Anything).
		Return(map[string]float64{"protein_g": 20}, nil).Once()
	_, err := f.editor.RecomputeNutrition(context.Background())
	require.NoError(t, err)
	require.NoError(t, f.editor.Validate())

	tests := []struct {
		name string
		edit func() error
	}{
		{"blank step", func() error { return f.editor.AddStep("   ") }},
		{"duplicate pick", func() error { return f.editor.PickIngredient(flour) }},
		{"remove absent ingredient", func() error { return f.editor.RemoveIngredient(salt.ID) }},
		{"unchanged quantity", func() error { return f.editor.SetQuantity(flour.ID, "200") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.edit())
			assert.NotEmpty(t, f.editor.Nutrition())
			assert.NoError(t, f.editor.Validate())
		})
	}

	assert.Equal(t, []string{"Mix"}, f.editor.Draft().PreparationMethod)
	assert.Len(t, f.editor.Draft().Ingredients, 1)
}

func TestEditor_CloseDuringSubmitStaysClosed(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)
	f.composeBread(t)

	f.store.On("CreateRecipe", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { f.editor.Close() }).
		Return(&domain.APIError{Method: "POST", Path: domain.PathUserRecipes, StatusCode: 503}).Once()

	err := f.editor.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateClosed, f.editor.State())
	assert.ErrorIs(t, f.editor.AddStep("Bake"), domain.ErrEditorClosed)
}

func TestEditor_RecomputeFailureKeepsSnapshot(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)
	f.composeBread(t)

	f.nutrition.On("ComputeNutrition", mock.Anything, mock.Anything).
		Return(map[string]float64{"fat_g": 2}, nil).Once()
	f.nutrition.On("ComputeNutrition", mock.Anything, mock.Anything).
		Return(nil, domain.ErrNutritionUnavailable).Once()

	_, err := f.editor.RecomputeNutrition(context.Background())
	require.NoError(t, err)
	_, err = f.editor.RecomputeNutrition(context.Background())
	assert.ErrorIs(t, err, domain.ErrNutritionUnavailable)

	assert.Equal(t, "Gordura", f.editor.Nutrition()[0].Label)
	assert.Equal(t, StateOpenEditing, f.editor.State())
	assert.Contains(t, f.events.types(), EventNutritionFailed)
}

func TestEditor_CancelDropsInFlightRecompute(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)
	f.composeBread(t)

	started := make(chan struct{})
	release := make(chan struct{})
	f.nutrition.On("ComputeNutrition", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(map[string]float64{"fat_g": 9}, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := f.editor.RecomputeNutrition(context.Background())
		done <- err
	}()

	<-started
	require.NoError(t, f.editor.Cancel())
	close(release)

	assert.ErrorIs(t, <-done, domain.ErrStaleResult)
	assert.Equal(t, StateClosed, f.editor.State())
	assert.Empty(t, f.editor.Nutrition())
	assert.NotContains(t, f.events.types(), EventNutritionUpdated)
}

func TestEditor_CancelDiscardsDraft(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)
	f.composeBread(t)

	require.NoError(t, f.editor.Cancel())
	assert.Equal(t, StateClosed, f.editor.State())

	f.open(t)
	draft := f.editor.Draft()
	assert.Empty(t, draft.Name)
	assert.Empty(t, draft.Ingredients)
	assert.Empty(t, draft.PreparationMethod)
	assert.Zero(t, draft.PreparationTime)
}

func TestEditor_OpenWithCatalogFailureStillOpens(t *testing.T) {
	store := &MockRecipeStore{}
	source := &MockCatalogSource{}
	source.On("SearchIngredients", mock.Anything, "").Return(nil, errors.New("offline"))

	e := NewEditor(catalog.NewIndex(source), store, &MockNutritionService{}, nil, Policy{})

	err := e.Open(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateOpenEmpty, e.State())

	refs, err := e.SearchCatalog("")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestEditor_SearchAndPickByID(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)

	refs, err := f.editor.SearchCatalog("wat")
	require.NoError(t, err)
	assert.Equal(t, []domain.IngredientRef{water}, refs)

	require.NoError(t, f.editor.PickIngredientByID("3"))
	assert.ErrorIs(t, f.editor.PickIngredientByID("404"), domain.ErrInvalidInput)
	assert.Equal(t, "Salt", f.editor.View().Ingredients[0].Name)
}

func TestEditor_RemoveStepOutOfRangeLeavesState(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)

	err := f.editor.RemoveStep(0)
	assert.ErrorIs(t, err, domain.ErrStepIndexOutOfRange)
	assert.Equal(t, StateOpenEmpty, f.editor.State())
}

func TestEditor_ViewCanSubmit(t *testing.T) {
	f := newFixture(t, Policy{})
	f.open(t)
	assert.False(t, f.editor.View().CanSubmit)

	f.composeBread(t)
	view := f.editor.View()
	assert.True(t, view.CanSubmit)
	assert.Equal(t, "open_editing", view.State)
}
