// Package session keeps one recipe editor and one list controller per
// front-end user and serializes the operations on each.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/PantryBook_Go/internal/catalog"
	"github.com/osse101/PantryBook_Go/internal/concurrency"
	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/lists"
	"github.com/osse101/PantryBook_Go/internal/logger"
	"github.com/osse101/PantryBook_Go/internal/metrics"
	"github.com/osse101/PantryBook_Go/internal/nutrition"
	"github.com/osse101/PantryBook_Go/internal/recipe"
	"github.com/osse101/PantryBook_Go/internal/sse"
)

// Deps are the collaborators shared by every session
type Deps struct {
	Catalog   catalog.Source
	Recipes   recipe.RecipeStore
	Nutrition nutrition.Service
	Lists     lists.ListStore
	Hub       *sse.Hub
	Policy    recipe.Policy
}

// Session is the state owned by one front-end user
type Session struct {
	ID        string
	CreatedAt time.Time
	Catalog   *catalog.Index
	Editor    *recipe.Editor
	Lists     *lists.Controller

	notify func(eventType string, payload interface{})
}

// Registry holds the live sessions. Sessions idle for longer than the TTL
// expire and the least recently used one is evicted when the registry is full.
type Registry struct {
	deps     Deps
	sessions *expirable.LRU[string, *Session]
	locks    *concurrency.LockManager
}

// NewRegistry creates a Registry holding at most size sessions
func NewRegistry(deps Deps, size int, ttl time.Duration) *Registry {
	r := &Registry{
		deps:  deps,
		locks: concurrency.NewLockManager(),
	}
	r.sessions = expirable.NewLRU[string, *Session](size, r.onEvict, ttl)
	return r
}

func (r *Registry) onEvict(id string, s *Session) {
	s.Editor.Close()
	s.notify(sse.EventTypeSessionEnded, sse.SessionEndedPayload{Reason: "closed"})
	r.locks.Forget(id)
	metrics.ActiveSessions.Dec()
	logger.Info("Session ended", logger.AttrKeySessionID, id)
}

// Create starts a new session
func (r *Registry) Create(ctx context.Context) *Session {
	id := uuid.New().String()

	var editorNotifier recipe.Notifier
	var listNotifier lists.Notifier
	notify := func(string, interface{}) {}
	if r.deps.Hub != nil {
		n := r.deps.Hub.ForSession(id)
		editorNotifier, listNotifier, notify = n, n, n.Notify
	}

	idx := catalog.NewIndex(r.deps.Catalog)
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		Catalog:   idx,
		Editor:    recipe.NewEditor(idx, r.deps.Recipes, r.deps.Nutrition, editorNotifier, r.deps.Policy),
		Lists:     lists.NewController(r.deps.Lists, listNotifier),
		notify:    notify,
	}

	r.sessions.Add(id, s)
	metrics.ActiveSessions.Inc()
	logger.FromContext(ctx).Info("Session created", logger.AttrKeySessionID, id)
	return s
}

// Get returns a live session and extends its lifetime
func (r *Registry) Get(id string) (*Session, error) {
	s, ok := r.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	r.sessions.Add(id, s)
	return s, nil
}

// Exists reports whether id names a live session
func (r *Registry) Exists(id string) bool {
	return r.sessions.Contains(id)
}

// Do runs fn on the session while holding its lock, so operations on one
// session never interleave
func (r *Registry) Do(ctx context.Context, id string, fn func(ctx context.Context, s *Session) error) error {
	return r.locks.WithLock(id, func() error {
		s, err := r.Get(id)
		if err != nil {
			return err
		}
		return fn(logger.WithSessionID(ctx, id), s)
	})
}

// Delete ends a session
func (r *Registry) Delete(id string) error {
	return r.locks.WithLock(id, func() error {
		if !r.sessions.Remove(id) {
			return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
		}
		return nil
	})
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	return r.sessions.Len()
}

// Close ends every session
func (r *Registry) Close() {
	r.sessions.Purge()
}
