// Package recipe implements the recipe composition workflow: an editor that
// assembles a draft from catalog picks, quantities, preparation steps and a
// nutrition summary, validates it and submits it to the backend.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/osse101/PantryBook_Go/internal/catalog"
	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/logger"
	"github.com/osse101/PantryBook_Go/internal/metrics"
	"github.com/osse101/PantryBook_Go/internal/nutrition"
	"github.com/osse101/PantryBook_Go/internal/selection"
)

// RecipeStore persists recipes on the backend
type RecipeStore interface {
	CreateRecipe(ctx context.Context, draft domain.RecipeDraft) error
	ListRecipes(ctx context.Context) ([]domain.Recipe, error)
}

// Policy holds the validation rules that vary between deployments
type Policy struct {
	// RequireNutrition rejects drafts without a computed nutrition summary
	RequireNutrition bool
}

// Editor owns the composition state of one recipe draft.
// All methods are safe for concurrent use; backend calls run without the
// editor lock held.
type Editor struct {
	catalog  *catalog.Index
	store    RecipeStore
	snapshot *nutrition.Snapshot
	notifier Notifier
	policy   Policy

	mu          sync.Mutex
	state       State
	ingredients *selection.Set[selection.Entry]
	quantities  *selection.QuantityMap
	steps       StepSequence
	name        string
	prepTime    int
	recipes     []domain.Recipe

	sessionCtx context.Context
	cancel     context.CancelFunc
}

// NewEditor creates a closed Editor
func NewEditor(idx *catalog.Index, store RecipeStore, nutritionSvc nutrition.Service, notifier Notifier, policy Policy) *Editor {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Editor{
		catalog:     idx,
		store:       store,
		snapshot:    nutrition.NewSnapshot(nutritionSvc),
		notifier:    notifier,
		policy:      policy,
		state:       StateClosed,
		ingredients: selection.NewEntrySet(),
		quantities:  selection.NewQuantityMap(),
	}
}

// State returns the current lifecycle state
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Open starts a fresh draft and refreshes the catalog. A failed refresh is
// returned but the editor stays open with whatever catalog it already had.
func (e *Editor) Open(ctx context.Context) error {
	e.mu.Lock()
	if e.state == StateSubmitting {
		e.mu.Unlock()
		return domain.ErrEditorBusy
	}
	e.resetLocked()
	if e.cancel != nil {
		e.cancel()
	}
	e.sessionCtx, e.cancel = context.WithCancel(context.WithoutCancel(ctx))
	e.setStateLocked(StateOpenEmpty)
	e.mu.Unlock()

	if err := e.catalog.Refresh(ctx); err != nil {
		logger.FromContext(ctx).Warn("Catalog refresh failed on open", "error", err)
		e.notifier.Notify(EventCatalogFailed, ErrorPayload{Error: err.Error()})
		return fmt.Errorf("editor opened without a fresh catalog: %w", err)
	}
	return nil
}

// Cancel discards the draft and closes the editor. In-flight recomputes are
// cancelled and their results dropped.
func (e *Editor) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateClosed:
		return domain.ErrEditorClosed
	case StateSubmitting:
		return domain.ErrEditorBusy
	}
	e.closeLocked()
	return nil
}

// Close releases the session context regardless of state
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.resetLocked()
	e.state = StateClosed
}

// SearchCatalog filters the loaded catalog by term
func (e *Editor) SearchCatalog(term string) ([]domain.IngredientRef, error) {
	e.mu.Lock()
	state := e.state
	e.mu.Unlock()
	if state == StateClosed {
		return nil, domain.ErrEditorClosed
	}
	return e.catalog.Search(term), nil
}

// PickIngredient adds ref to the draft. Picking an ingredient twice is a no-op.
func (e *Editor) PickIngredient(ref domain.IngredientRef) error {
	return e.edit(func() (bool, error) {
		if !e.ingredients.Add(selection.Entry{Key: ref.ID, Name: ref.Name}) {
			return false, nil
		}
		e.quantities.OnItemAdded(ref.ID)
		return true, nil
	})
}

// PickIngredientByID adds the catalog entry with the given id
func (e *Editor) PickIngredientByID(id string) error {
	ref, ok := e.catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: unknown ingredient %q", domain.ErrInvalidInput, id)
	}
	return e.PickIngredient(ref)
}

// RemoveIngredient drops an ingredient and its quantity. Removing an absent
// ingredient is a no-op.
func (e *Editor) RemoveIngredient(id string) error {
	return e.edit(func() (bool, error) {
		if !e.ingredients.Remove(id) {
			return false, nil
		}
		e.quantities.OnItemRemoved(id)
		return true, nil
	})
}

// SetQuantity stores the free-text quantity for a picked ingredient
func (e *Editor) SetQuantity(id, value string) error {
	return e.edit(func() (bool, error) {
		prev, _ := e.quantities.Get(id)
		if !e.quantities.Set(id, value) {
			return false, fmt.Errorf("%w: %s", domain.ErrIngredientNotPicked, id)
		}
		return prev != value, nil
	})
}

// AddStep appends a preparation step; blank steps are ignored
func (e *Editor) AddStep(step string) error {
	return e.edit(func() (bool, error) {
		return e.steps.Append(step), nil
	})
}

// RemoveStep removes the step at index i
func (e *Editor) RemoveStep(i int) error {
	return e.edit(func() (bool, error) {
		if err := e.steps.RemoveAt(i); err != nil {
			return false, err
		}
		return true, nil
	})
}

// SetName sets the recipe name
func (e *Editor) SetName(name string) error {
	return e.edit(func() (bool, error) {
		e.name = name
		return false, nil
	})
}

// SetPreparationTime sets the preparation time in minutes
func (e *Editor) SetPreparationTime(minutes int) error {
	return e.edit(func() (bool, error) {
		e.prepTime = minutes
		return false, nil
	})
}

// edit applies fn atomically. fn reports whether it changed the composition
// (ingredients, quantities or steps); only then is the nutrition snapshot
// invalidated. A failing fn leaves the state machine untouched.
func (e *Editor) edit(fn func() (bool, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateClosed:
		return domain.ErrEditorClosed
	case StateSubmitting:
		return domain.ErrEditorBusy
	}

	changed, err := fn()
	if err != nil {
		return err
	}
	if changed {
		e.snapshot.Invalidate()
	}
	if e.state == StateOpenEmpty {
		e.setStateLocked(StateOpenEditing)
	}
	return nil
}

// RecomputeNutrition asks the nutrition service for the current composition.
// domain.ErrStaleResult means a later edit or recompute superseded this one.
func (e *Editor) RecomputeNutrition(ctx context.Context) (nutrition.Values, error) {
	e.mu.Lock()
	if !e.state.IsOpen() {
		state := e.state
		e.mu.Unlock()
		if state == StateSubmitting {
			return nil, domain.ErrEditorBusy
		}
		return nil, domain.ErrEditorClosed
	}
	items := e.nutritionItemsLocked()
	ticket := e.snapshot.Begin()
	sessionCtx := e.sessionCtx
	e.mu.Unlock()

	ctx, stop := mergeCancel(ctx, sessionCtx)
	defer stop()

	values, err := e.snapshot.Run(ctx, ticket, items)
	switch {
	case err == nil:
		e.notifier.Notify(EventNutritionUpdated, NutritionPayload{Values: nutrition.Label(values)})
	case !errors.Is(err, domain.ErrStaleResult):
		e.notifier.Notify(EventNutritionFailed, ErrorPayload{Error: err.Error()})
	}
	return values, err
}

// Nutrition returns the applied nutrition values with display labels
func (e *Editor) Nutrition() []nutrition.LabeledValue {
	return e.snapshot.Labeled()
}

// Validate reports why the current draft cannot be submitted, or nil
func (e *Editor) Validate() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return validateDraft(e.checkLocked())
}

// Draft serializes the current composition to its wire form
func (e *Editor) Draft() domain.RecipeDraft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draftLocked()
}

// Submit validates and stores the draft. On success the editor closes and
// the recipe list is refreshed; on failure the draft is kept for another try.
func (e *Editor) Submit(ctx context.Context) error {
	log := logger.FromContext(ctx)

	e.mu.Lock()
	switch e.state {
	case StateClosed:
		e.mu.Unlock()
		return domain.ErrEditorClosed
	case StateSubmitting:
		e.mu.Unlock()
		return domain.ErrEditorBusy
	}
	if err := validateDraft(e.checkLocked()); err != nil {
		e.setStateLocked(StateOpenEditing)
		e.mu.Unlock()
		metrics.RecordSubmission(metrics.OutcomeInvalid)
		return err
	}
	draft := e.draftLocked()
	e.setStateLocked(StateSubmitting)
	e.mu.Unlock()

	if err := e.store.CreateRecipe(ctx, draft); err != nil {
		log.Warn("Recipe submit failed", "recipe", draft.Name, "error", err)
		metrics.RecordSubmission(metrics.OutcomeFailed)

		// Close may have run while the request was in flight
		e.mu.Lock()
		if e.state == StateSubmitting {
			e.setStateLocked(StateOpenEditing)
		}
		e.mu.Unlock()

		e.notifier.Notify(EventSubmitFailed, SubmitPayload{Name: draft.Name, Error: err.Error()})
		return fmt.Errorf("failed to submit recipe: %w", err)
	}

	log.Info("Recipe submitted", "recipe", draft.Name, "ingredients", len(draft.Ingredients))
	metrics.RecordSubmission(metrics.OutcomeSuccess)

	e.mu.Lock()
	e.closeLocked()
	e.mu.Unlock()

	e.notifier.Notify(EventSubmitSucceeded, SubmitPayload{Name: draft.Name})

	if _, err := e.RefreshRecipes(ctx); err != nil {
		log.Warn("Recipe list refresh after submit failed", "error", err)
	}
	return nil
}

// Recipes returns the last fetched recipe list
func (e *Editor) Recipes() []domain.Recipe {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Recipe, len(e.recipes))
	copy(out, e.recipes)
	return out
}

// RefreshRecipes fetches the user's recipes. The editor may be in any state.
func (e *Editor) RefreshRecipes(ctx context.Context) ([]domain.Recipe, error) {
	recipes, err := e.store.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	e.mu.Lock()
	e.recipes = recipes
	e.mu.Unlock()

	e.notifier.Notify(EventRecipesRefreshed, RecipesPayload{Recipes: recipes})
	return recipes, nil
}

// View is a point-in-time copy of the editor for display
type View struct {
	State       string                   `json:"state"`
	Name        string                   `json:"name"`
	Ingredients []IngredientView         `json:"ingredients"`
	Steps       []string                 `json:"steps"`
	PrepTime    int                      `json:"preparationTime"`
	Nutrition   []nutrition.LabeledValue `json:"nutrition"`
	CanSubmit   bool                     `json:"canSubmit"`
}

// IngredientView is one picked ingredient with its raw quantity text
type IngredientView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// View returns the current state for display
func (e *Editor) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := View{
		State:       e.state.String(),
		Name:        e.name,
		Ingredients: make([]IngredientView, 0, e.ingredients.Len()),
		Steps:       e.steps.Steps(),
		PrepTime:    e.prepTime,
		Nutrition:   e.snapshot.Labeled(),
	}
	for _, entry := range e.ingredients.Entries() {
		q, _ := e.quantities.Get(entry.Key)
		v.Ingredients = append(v.Ingredients, IngredientView{ID: entry.Key, Name: entry.Name, Quantity: q})
	}
	v.CanSubmit = e.state.IsOpen() && validateDraft(e.checkLocked()) == nil
	return v
}

func (e *Editor) setStateLocked(to State) {
	from := e.state
	if from == to {
		return
	}
	e.state = to
	e.notifier.Notify(EventStateChanged, StateChangedPayload{From: from.String(), To: to.String()})
}

func (e *Editor) closeLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.resetLocked()
	e.setStateLocked(StateClosed)
}

func (e *Editor) resetLocked() {
	e.ingredients.Clear()
	e.quantities.Clear()
	e.steps.Clear()
	e.name = ""
	e.prepTime = 0
	e.snapshot.Invalidate()
}

func (e *Editor) nutritionItemsLocked() []domain.NutritionItem {
	entries := e.ingredients.Entries()
	items := make([]domain.NutritionItem, 0, len(entries))
	for _, entry := range entries {
		q, _ := e.quantities.Get(entry.Key)
		items = append(items, domain.NutritionItem{
			ID:       entry.Key,
			Name:     entry.Name,
			Quantity: selection.ParseQuantity(q),
		})
	}
	return items
}

func (e *Editor) draftLocked() domain.RecipeDraft {
	entries := e.ingredients.Entries()
	draft := domain.RecipeDraft{
		Name:              strings.TrimSpace(e.name),
		Ingredients:       make([]domain.RecipeIngredient, 0, len(entries)),
		PreparationMethod: e.steps.Steps(),
		PreparationTime:   e.prepTime,
	}
	for _, entry := range entries {
		q, _ := e.quantities.Get(entry.Key)
		draft.Ingredients = append(draft.Ingredients, domain.RecipeIngredient{Name: entry.Name, Quantity: q})
	}
	if values := e.snapshot.Values(); len(values) > 0 {
		draft.NutritionalValues = values
	}
	return draft
}

func (e *Editor) checkLocked() draftCheck {
	return draftCheck{
		Name:              e.name,
		Ingredients:       e.ingredients.Keys(),
		PreparationMethod: e.steps.Steps(),
		PreparationTime:   e.prepTime,
		NutritionalValues: e.snapshot.Values(),
		requireNutrition:  e.policy.RequireNutrition,
	}
}

// mergeCancel returns a context cancelled when either parent is done
func mergeCancel(ctx, other context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(ctx)
	if other == nil {
		return merged, cancel
	}
	stop := context.AfterFunc(other, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}
