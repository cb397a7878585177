package lists

import "github.com/osse101/PantryBook_Go/internal/domain"

// Event types emitted by the Controller
const (
	EventListLoaded     = "lists.loaded"
	EventItemsDeleted   = "lists.items_deleted"
	EventItemsAdded     = "lists.items_added"
	EventListLoadFailed = "lists.load_failed"
)

// Notifier receives list events for delivery to the front end
type Notifier interface {
	Notify(eventType string, payload interface{})
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, interface{}) {}

// ListPayload is sent on EventListLoaded
type ListPayload struct {
	Tab   string            `json:"tab"`
	Items []domain.ListItem `json:"items"`
}

// ChangePayload is sent when items are added to or deleted from a list
type ChangePayload struct {
	Tab string   `json:"tab"`
	IDs []string `json:"ids"`
}

// FailurePayload is sent on EventListLoadFailed
type FailurePayload struct {
	Tab   string `json:"tab"`
	Error string `json:"error"`
}
