// Package lists manages the user's ingredient list and shopping list: one
// active tab at a time, checkbox selection, confirmed bulk delete and adding
// picked catalog ingredients.
package lists

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/PantryBook_Go/internal/catalog"
	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/logger"
	"github.com/osse101/PantryBook_Go/internal/metrics"
	"github.com/osse101/PantryBook_Go/internal/selection"
)

// ListStore reads and writes the user's lists on the backend
type ListStore interface {
	GetList(ctx context.Context, kind domain.ListKind) ([]domain.ListItem, error)
	AddToList(ctx context.Context, kind domain.ListKind, items []domain.ListItemInput) error
	DeleteFromList(ctx context.Context, kind domain.ListKind, ids []string) error
}

// Controller is the state of the two-tab list screen for one session.
//
// The checked set belongs to the active tab and is emptied whenever the tab
// changes. Every fetch carries a sequence number so a slow response for a
// tab the user already left is dropped instead of replacing the current list.
type Controller struct {
	store    ListStore
	notifier Notifier

	mu            sync.Mutex
	tab           domain.ListKind
	items         []domain.ListItem
	loaded        bool
	filter        string
	checked       *selection.Set[selection.Entry]
	picked        *selection.Set[selection.Entry]
	pendingDelete bool
	seq           uint64
}

// NewController creates a Controller showing the ingredient list. Nothing is
// fetched until SwitchTab or Refresh is called.
func NewController(store ListStore, notifier Notifier) *Controller {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Controller{
		store:    store,
		notifier: notifier,
		tab:      domain.ListIngredients,
		checked:  selection.NewEntrySet(),
		picked:   selection.NewEntrySet(),
	}
}

// Tab returns the active tab
func (c *Controller) Tab() domain.ListKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tab
}

// SwitchTab activates tab, resets its selection and fetches its list
func (c *Controller) SwitchTab(ctx context.Context, tab domain.ListKind) error {
	if tab != domain.ListIngredients && tab != domain.ListShopping {
		return fmt.Errorf("%w: %d", domain.ErrUnknownTab, tab)
	}

	c.mu.Lock()
	c.tab = tab
	c.items = nil
	c.loaded = false
	c.filter = ""
	c.checked.Clear()
	c.picked.Clear()
	c.pendingDelete = false
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Refresh re-fetches the active tab's list. The checked set is kept, minus
// ids that no longer exist.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	tab := c.tab
	c.mu.Unlock()

	items, err := c.store.GetList(ctx, tab)
	if err != nil {
		logger.FromContext(ctx).Warn("List fetch failed", "tab", tab.String(), "error", err)
		c.notifier.Notify(EventListLoadFailed, FailurePayload{Tab: tab.String(), Error: err.Error()})
		return fmt.Errorf("failed to fetch %s list: %w", tab, err)
	}

	c.mu.Lock()
	if seq != c.seq || tab != c.tab {
		c.mu.Unlock()
		logger.FromContext(ctx).Debug("Dropping superseded list fetch", "tab", tab.String())
		return nil
	}
	c.items = items
	c.loaded = true
	c.pruneCheckedLocked()
	c.mu.Unlock()

	c.notifier.Notify(EventListLoaded, ListPayload{Tab: tab.String(), Items: items})
	return nil
}

// Toggle marks or unmarks an item of the active list
func (c *Controller) Toggle(id string, checked bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !checked {
		c.checked.Remove(id)
		if c.checked.Len() == 0 {
			c.pendingDelete = false
		}
		return nil
	}
	item, ok := c.findLocked(id)
	if !ok {
		return fmt.Errorf("%w: item %q is not in the %s list", domain.ErrInvalidInput, id, c.tab)
	}
	c.checked.Add(selection.Entry{Key: item.ID, Name: item.Name})
	return nil
}

// Checked returns the checked ids in the order they were checked
func (c *Controller) Checked() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checked.Keys()
}

// RemoveVisible reports whether the remove action should be shown
func (c *Controller) RemoveVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checked.Len() > 0
}

// SetFilter sets the name prefix used by Visible
func (c *Controller) SetFilter(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = text
}

// Visible returns the active list filtered by name prefix, ignoring case,
// sorted alphabetically
func (c *Controller) Visible() []domain.ListItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibleLocked()
}

func (c *Controller) visibleLocked() []domain.ListItem {
	out := make([]domain.ListItem, 0, len(c.items))
	for _, item := range c.items {
		if catalog.HasFoldedPrefix(item.Name, c.filter) {
			out = append(out, item)
		}
	}
	catalog.SortByName(out, func(i domain.ListItem) string { return i.Name })
	return out
}

// RequestDelete asks for confirmation of a bulk delete of the checked items
func (c *Controller) RequestDelete() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.checked.Len() == 0 {
		return nil, domain.ErrNothingChecked
	}
	c.pendingDelete = true
	return c.checked.Keys(), nil
}

// AbortDelete dismisses a pending confirmation. The checked set is kept.
func (c *Controller) AbortDelete() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.pendingDelete {
		return domain.ErrNoPendingDelete
	}
	c.pendingDelete = false
	return nil
}

// ConfirmDelete deletes every checked item, clears the checked set and
// refetches the list. A failed delete keeps the checked set.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	log := logger.FromContext(ctx)

	c.mu.Lock()
	if !c.pendingDelete {
		c.mu.Unlock()
		return domain.ErrNoPendingDelete
	}
	c.pendingDelete = false
	tab := c.tab
	ids := c.checked.Keys()
	c.mu.Unlock()

	if len(ids) == 0 {
		return domain.ErrNothingChecked
	}

	if err := c.store.DeleteFromList(ctx, tab, ids); err != nil {
		log.Warn("Bulk delete failed", "tab", tab.String(), "count", len(ids), "error", err)
		return fmt.Errorf("failed to delete from %s list: %w", tab, err)
	}

	metrics.RecordListDelete(tab.String(), len(ids))
	log.Info("Deleted list items", "tab", tab.String(), "count", len(ids))

	c.mu.Lock()
	if c.tab == tab {
		for _, id := range ids {
			c.checked.Remove(id)
		}
	}
	c.mu.Unlock()

	c.notifier.Notify(EventItemsDeleted, ChangePayload{Tab: tab.String(), IDs: ids})
	return c.Refresh(ctx)
}

// PickForAdd stages a catalog ingredient to be added to the active list
func (c *Controller) PickForAdd(ref domain.IngredientRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.picked.Add(selection.Entry{Key: ref.ID, Name: ref.Name})
}

// UnpickForAdd drops a staged ingredient
func (c *Controller) UnpickForAdd(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.picked.Remove(id)
}

// Picked returns the staged ingredients in pick order
func (c *Controller) Picked() []selection.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.picked.Entries()
}

// SaveAdded adds the staged ingredients to the active list and refetches it
func (c *Controller) SaveAdded(ctx context.Context) error {
	c.mu.Lock()
	if c.picked.Len() == 0 {
		c.mu.Unlock()
		return domain.ErrNothingPicked
	}
	tab := c.tab
	entries := c.picked.Entries()
	c.mu.Unlock()

	inputs := make([]domain.ListItemInput, len(entries))
	ids := make([]string, len(entries))
	for i, e := range entries {
		inputs[i] = domain.ListItemInput{Name: e.Name, ID: e.Key}
		ids[i] = e.Key
	}

	if err := c.store.AddToList(ctx, tab, inputs); err != nil {
		return fmt.Errorf("failed to add to %s list: %w", tab, err)
	}

	c.mu.Lock()
	if c.tab == tab {
		for _, id := range ids {
			c.picked.Remove(id)
		}
	}
	c.mu.Unlock()

	c.notifier.Notify(EventItemsAdded, ChangePayload{Tab: tab.String(), IDs: ids})
	return c.Refresh(ctx)
}

// View is a point-in-time copy of the list screen for display
type View struct {
	Tab           string            `json:"tab"`
	Loaded        bool              `json:"loaded"`
	Filter        string            `json:"filter"`
	Items         []domain.ListItem `json:"items"`
	Checked       []string          `json:"checked"`
	RemoveVisible bool              `json:"removeVisible"`
	PendingDelete bool              `json:"pendingDelete"`
	Picked        []selection.Entry `json:"picked"`
}

// View returns the current state for display
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Tab:           c.tab.String(),
		Loaded:        c.loaded,
		Filter:        c.filter,
		Items:         c.visibleLocked(),
		Checked:       c.checked.Keys(),
		RemoveVisible: c.checked.Len() > 0,
		PendingDelete: c.pendingDelete,
		Picked:        c.picked.Entries(),
	}
}

func (c *Controller) findLocked(id string) (domain.ListItem, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.ListItem{}, false
}

func (c *Controller) pruneCheckedLocked() {
	for _, id := range c.checked.Keys() {
		if _, ok := c.findLocked(id); !ok {
			c.checked.Remove(id)
		}
	}
	if c.checked.Len() == 0 {
		c.pendingDelete = false
	}
}
