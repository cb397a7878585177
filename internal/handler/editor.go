package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/logger"
	"github.com/osse101/PantryBook_Go/internal/session"
	"github.com/osse101/PantryBook_Go/internal/worker"
)

// PickIngredientRequest adds a catalog ingredient to the draft.
// Name may be omitted when the id is in the loaded catalog.
type PickIngredientRequest struct {
	ID   string `json:"id" validate:"required,max=64"`
	Name string `json:"name" validate:"max=200"`
}

// SetQuantityRequest sets the free-text quantity of a picked ingredient
type SetQuantityRequest struct {
	Quantity string `json:"quantity" validate:"max=32,excludesall=\x00"`
}

// AddStepRequest appends a preparation step
type AddStepRequest struct {
	Step string `json:"step" validate:"notblank,max=1000,excludesall=\x00"`
}

// SetNameRequest renames the draft
type SetNameRequest struct {
	Name string `json:"name" validate:"max=200,excludesall=\x00"`
}

// SetPreparationTimeRequest sets the preparation time in minutes
type SetPreparationTimeRequest struct {
	Minutes int `json:"minutes" validate:"min=0,max=10080"`
}

// HandleOpenEditor starts a new draft. A catalog failure still opens the
// editor and is reported in the message.
func (h *SessionHandlers) HandleOpenEditor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp DataResponse
		err := h.registry.Do(r.Context(), chi.URLParam(r, ParamSessionID), func(ctx context.Context, s *session.Session) error {
			if err := s.Editor.Open(ctx); err != nil {
				if s.Editor.State().IsOpen() {
					logger.FromContext(ctx).Warn("Editor opened with stale catalog", "error", err)
					resp.Message = MsgCatalogUnavailable
				} else {
					return err
				}
			}
			resp.Data = s.Editor.View()
			return nil
		})
		if err != nil {
			respondServiceError(w, r, "Open editor", err)
			return
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

// HandleCancelEditor discards the draft
func (h *SessionHandlers) HandleCancelEditor() http.HandlerFunc {
	return h.sessionOp("Cancel editor", http.StatusOK, func(_ context.Context, _ *http.Request, s *session.Session) (interface{}, error) {
		if err := s.Editor.Cancel(); err != nil {
			return nil, err
		}
		return s.Editor.View(), nil
	})
}

// HandleGetEditor returns the editor state
func (h *SessionHandlers) HandleGetEditor() http.HandlerFunc {
	return h.sessionOp("Get editor", http.StatusOK, func(_ context.Context, _ *http.Request, s *session.Session) (interface{}, error) {
		return s.Editor.View(), nil
	})
}

// HandleEditorCatalog searches the catalog loaded when the editor opened
func (h *SessionHandlers) HandleEditorCatalog() http.HandlerFunc {
	return h.sessionOp("Search editor catalog", http.StatusOK, func(_ context.Context, r *http.Request, s *session.Session) (interface{}, error) {
		return s.Editor.SearchCatalog(r.URL.Query().Get(QueryTerm))
	})
}

// HandlePickIngredient adds an ingredient to the draft
func (h *SessionHandlers) HandlePickIngredient() http.HandlerFunc {
	return decodeOp(h, "Pick ingredient", func(_ context.Context, s *session.Session, req PickIngredientRequest) (interface{}, error) {
		var err error
		if req.Name == "" {
			err = s.Editor.PickIngredientByID(req.ID)
		} else {
			err = s.Editor.PickIngredient(domain.IngredientRef{ID: req.ID, Name: req.Name})
		}
		if err != nil {
			return nil, err
		}
		return s.Editor.View(), nil
	})
}

// HandleRemoveIngredient drops an ingredient from the draft
func (h *SessionHandlers) HandleRemoveIngredient() http.HandlerFunc {
	return h.sessionOp("Remove ingredient", http.StatusOK, func(_ context.Context, r *http.Request, s *session.Session) (interface{}, error) {
		if err := s.Editor.RemoveIngredient(chi.URLParam(r, ParamIngredientID)); err != nil {
			return nil, err
		}
		return s.Editor.View(), nil
	})
}

// HandleSetQuantity sets an ingredient's quantity
func (h *SessionHandlers) HandleSetQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, ParamIngredientID)
		decodeOp(h, "Set quantity", func(_ context.Context, s *session.Session, req SetQuantityRequest) (interface{}, error) {
			if err := s.Editor.SetQuantity(id, req.Quantity); err != nil {
				return nil, err
			}
			return s.Editor.View(), nil
		})(w, r)
	}
}

// HandleAddStep appends a preparation step
func (h *SessionHandlers) HandleAddStep() http.HandlerFunc {
	return decodeOp(h, "Add step", func(_ context.Context, s *session.Session, req AddStepRequest) (interface{}, error) {
		if err := s.Editor.AddStep(req.Step); err != nil {
			return nil, err
		}
		return s.Editor.View(), nil
	})
}

// HandleRemoveStep removes the step at the index in the path
func (h *SessionHandlers) HandleRemoveStep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := GetIntPathParam(r, w, ParamStepIndex)
		if !ok {
			return
		}
		h.sessionOp("Remove step", http.StatusOK, func(_ context.Context, _ *http.Request, s *session.Session) (interface{}, error) {
			if err := s.Editor.RemoveStep(index); err != nil {
				return nil, err
			}
			return s.Editor.View(), nil
		})(w, r)
	}
}

// HandleSetName renames the draft
func (h *SessionHandlers) HandleSetName() http.HandlerFunc {
	return decodeOp(h, "Set name", func(_ context.Context, s *session.Session, req SetNameRequest) (interface{}, error) {
		if err := s.Editor.SetName(req.Name); err != nil {
			return nil, err
		}
		return s.Editor.View(), nil
	})
}

// HandleSetPreparationTime sets the preparation time
func (h *SessionHandlers) HandleSetPreparationTime() http.HandlerFunc {
	return decodeOp(h, "Set preparation time", func(_ context.Context, s *session.Session, req SetPreparationTimeRequest) (interface{}, error) {
		if err := s.Editor.SetPreparationTime(req.Minutes); err != nil {
			return nil, err
		}
		return s.Editor.View(), nil
	})
}

// HandleRecomputeNutrition recomputes the nutrition summary. With
// ?async=true the work is queued and the result arrives as an SSE event.
func (h *SessionHandlers) HandleRecomputeNutrition() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		async, _ := strconv.ParseBool(GetOptionalQueryParam(r, QueryAsync, "false"))
		if async && h.pool != nil {
			h.enqueueRecompute(w, r)
			return
		}

		h.sessionOp("Recompute nutrition", http.StatusOK, func(ctx context.Context, _ *http.Request, s *session.Session) (interface{}, error) {
			if _, err := s.Editor.RecomputeNutrition(ctx); err != nil {
				return nil, err
			}
			return s.Editor.View(), nil
		})(w, r)
	}
}

func (h *SessionHandlers) enqueueRecompute(w http.ResponseWriter, r *http.Request) {
	s, err := h.registry.Get(chi.URLParam(r, ParamSessionID))
	if err != nil {
		respondServiceError(w, r, "Queue nutrition recompute", err)
		return
	}
	if !s.Editor.State().IsOpen() {
		respondServiceError(w, r, "Queue nutrition recompute", domain.ErrEditorClosed)
		return
	}

	job := &worker.RecomputeJob{
		SessionID: s.ID,
		RequestID: logger.GetRequestID(r.Context()),
		Editor:    s.Editor,
	}
	if err := h.pool.Enqueue(job); err != nil {
		logger.FromContext(r.Context()).Warn("Recompute not queued", "error", err)
		if errors.Is(err, worker.ErrQueueFull) {
			respondError(w, http.StatusTooManyRequests, ErrMsgBusy)
			return
		}
		respondError(w, http.StatusServiceUnavailable, ErrMsgBusy)
		return
	}
	respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgRecomputeQueued})
}

// HandleSubmit validates and stores the draft
func (h *SessionHandlers) HandleSubmit() http.HandlerFunc {
	return h.sessionOp("Submit recipe", http.StatusCreated, func(ctx context.Context, _ *http.Request, s *session.Session) (interface{}, error) {
		if err := s.Editor.Submit(ctx); err != nil {
			return nil, err
		}
		return s.Editor.Recipes(), nil
	})
}

// HandleGetRecipes fetches the user's recipes
func (h *SessionHandlers) HandleGetRecipes() http.HandlerFunc {
	return h.sessionOp("Get recipes", http.StatusOK, func(ctx context.Context, _ *http.Request, s *session.Session) (interface{}, error) {
		return s.Editor.RefreshRecipes(ctx)
	})
}
