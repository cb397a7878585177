package sse

import "github.com/osse101/PantryBook_Go/internal/metrics"

// SessionNotifier publishes the events of one session to the hub.
// It satisfies the Notifier interfaces of the recipe and lists packages.
type SessionNotifier struct {
	hub       *Hub
	sessionID string
}

// ForSession returns a notifier bound to sessionID
func (h *Hub) ForSession(sessionID string) *SessionNotifier {
	return &SessionNotifier{hub: h, sessionID: sessionID}
}

// Notify publishes one event
func (n *SessionNotifier) Notify(eventType string, payload interface{}) {
	metrics.RecordSessionEvent(eventType)
	n.hub.Publish(n.sessionID, eventType, payload)
}

// SessionEndedPayload is sent when a session is closed or expires
type SessionEndedPayload struct {
	Reason string `json:"reason"`
}
