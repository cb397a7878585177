package domain

// IngredientRef identifies an entry of the ingredient catalog.
// Two refs with the same ID are the same ingredient; names are compared verbatim.
type IngredientRef struct {
	ID   string `json:"_id"`
	Name string `json:"Descrip"`
}

// ListItem is an entry of the user's ingredient list or shopping list
type ListItem struct {
	ID   string `json:"id"`
	Name string `json:"descrip"`
}

// ListItemInput is the body element used when adding items to a user list
type ListItemInput struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// ListItemID is the body element used when deleting items from a user list
type ListItemID struct {
	ID string `json:"id"`
}

// ListKind selects which user list a call targets
type ListKind int

const (
	ListIngredients ListKind = iota
	ListShopping
)

// String returns the list kind name used in logs and metrics labels
func (k ListKind) String() string {
	switch k {
	case ListIngredients:
		return ListKindIngredients
	case ListShopping:
		return ListKindShopping
	default:
		return "unknown"
	}
}

// ParseListKind converts a list kind name back into a ListKind
func ParseListKind(s string) (ListKind, bool) {
	switch s {
	case ListKindIngredients:
		return ListIngredients, true
	case ListKindShopping:
		return ListShopping, true
	default:
		return 0, false
	}
}
