package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/PantryBook_Go/internal/logger"
	"github.com/osse101/PantryBook_Go/internal/session"
	"github.com/osse101/PantryBook_Go/internal/worker"
)

// URL parameter names
const (
	ParamSessionID    = "sessionID"
	ParamIngredientID = "ingredientID"
	ParamStepIndex    = "index"
)

// Query parameter names
const (
	QueryTerm  = "term"
	QueryAsync = "async"
)

// SessionHandlers serves the session server API
type SessionHandlers struct {
	registry *session.Registry
	pool     *worker.Pool
}

// NewSessionHandlers creates the handlers. pool may be nil, in which case
// nutrition recomputes always run inline.
func NewSessionHandlers(registry *session.Registry, pool *worker.Pool) *SessionHandlers {
	return &SessionHandlers{registry: registry, pool: pool}
}

// CreateSessionResponse is returned when a session starts
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

// HandleCreateSession starts a session
func (h *SessionHandlers) HandleCreateSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := h.registry.Create(r.Context())
		respondJSON(w, http.StatusCreated, CreateSessionResponse{SessionID: s.ID})
	}
}

// HandleDeleteSession ends a session
func (h *SessionHandlers) HandleDeleteSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.registry.Delete(chi.URLParam(r, ParamSessionID)); err != nil {
			respondServiceError(w, r, "Delete session", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionDeleted})
	}
}

// ResolveSession extracts the session id for the SSE stream
func (h *SessionHandlers) ResolveSession(r *http.Request) (string, bool) {
	id := chi.URLParam(r, ParamSessionID)
	return id, h.registry.Exists(id)
}

// HandleSearchCatalog searches the ingredient catalog outside the editor,
// for the list add flow. The catalog is loaded on first use.
func (h *SessionHandlers) HandleSearchCatalog() http.HandlerFunc {
	return h.sessionOp("Search catalog", http.StatusOK, func(ctx context.Context, r *http.Request, s *session.Session) (interface{}, error) {
		if !s.Catalog.Loaded() {
			if err := s.Catalog.Refresh(ctx); err != nil {
				return nil, err
			}
		}
		return s.Catalog.Search(r.URL.Query().Get(QueryTerm)), nil
	})
}

// sessionOp runs op under the session lock and writes its result as JSON
func (h *SessionHandlers) sessionOp(opName string, status int, op func(ctx context.Context, r *http.Request, s *session.Session) (interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var out interface{}
		err := h.registry.Do(r.Context(), chi.URLParam(r, ParamSessionID), func(ctx context.Context, s *session.Session) error {
			var err error
			out, err = op(ctx, r, s)
			return err
		})
		if err != nil {
			respondServiceError(w, r, opName, err)
			return
		}
		logger.FromContext(r.Context()).Debug(opName+" completed", logger.AttrKeySessionID, chi.URLParam(r, ParamSessionID))
		respondJSON(w, status, out)
	}
}

// decodeOp decodes and validates a REQ body and then behaves like sessionOp
func decodeOp[REQ any](h *SessionHandlers, opName string, op func(ctx context.Context, s *session.Session, req REQ) (interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req REQ
		if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
			return
		}
		h.sessionOp(opName, http.StatusOK, func(ctx context.Context, _ *http.Request, s *session.Session) (interface{}, error) {
			return op(ctx, s, req)
		})(w, r)
	}
}
