package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/session"
)

// SwitchTabRequest selects the active list
type SwitchTabRequest struct {
	Tab string `json:"tab" validate:"required,listtab"`
}

// SetFilterRequest sets the list name filter
type SetFilterRequest struct {
	Filter string `json:"filter" validate:"max=100"`
}

// ToggleRequest checks or unchecks a list item
type ToggleRequest struct {
	ID      string `json:"id" validate:"required,max=64"`
	Checked bool   `json:"checked"`
}

// PickForAddRequest stages a catalog ingredient for adding to the list
type PickForAddRequest struct {
	ID   string `json:"id" validate:"required,max=64"`
	Name string `json:"name" validate:"notblank,max=200"`
}

// DeleteRequestResponse lists the ids awaiting confirmation
type DeleteRequestResponse struct {
	IDs []string `json:"ids"`
}

// HandleGetLists returns the list screen, fetching the active tab on first use
func (h *SessionHandlers) HandleGetLists() http.HandlerFunc {
	return h.sessionOp("Get lists", http.StatusOK, func(ctx context.Context, _ *http.Request, s *session.Session) (interface{}, error) {
		if !s.Lists.View().Loaded {
			if err := s.Lists.Refresh(ctx); err != nil {
				return nil, err
			}
		}
		return s.Lists.View(), nil
	})
}

// HandleSwitchTab changes the active list
func (h *SessionHandlers) HandleSwitchTab() http.HandlerFunc {
	return decodeOp(h, "Switch tab", func(ctx context.Context, s *session.Session, req SwitchTabRequest) (interface{}, error) {
		tab, _ := domain.ParseListKind(strings.ToLower(req.Tab))
		if err := s.Lists.SwitchTab(ctx, tab); err != nil {
			return nil, err
		}
		return s.Lists.View(), nil
	})
}

// HandleSetFilter filters the active list by name prefix
func (h *SessionHandlers) HandleSetFilter() http.HandlerFunc {
	return decodeOp(h, "Set filter", func(_ context.Context, s *session.Session, req SetFilterRequest) (interface{}, error) {
		s.Lists.SetFilter(req.Filter)
		return s.Lists.View(), nil
	})
}

// HandleToggle checks or unchecks an item
func (h *SessionHandlers) HandleToggle() http.HandlerFunc {
	return decodeOp(h, "Toggle item", func(_ context.Context, s *session.Session, req ToggleRequest) (interface{}, error) {
		if err := s.Lists.Toggle(req.ID, req.Checked); err != nil {
			return nil, err
		}
		return s.Lists.View(), nil
	})
}

// HandleRequestDelete asks for confirmation of a bulk delete
func (h *SessionHandlers) HandleRequestDelete() http.HandlerFunc {
	return h.sessionOp("Request delete", http.StatusOK, func(_ context.Context, _ *http.Request, s *session.Session) (interface{}, error) {
		ids, err := s.Lists.RequestDelete()
		if err != nil {
			return nil, err
		}
		return DeleteRequestResponse{IDs: ids}, nil
	})
}

// HandleConfirmDelete deletes the checked items
func (h *SessionHandlers) HandleConfirmDelete() http.HandlerFunc {
	return h.sessionOp("Confirm delete", http.StatusOK, func(ctx context.Context, _ *http.Request, s *session.Session) (interface{}, error) {
		if err := s.Lists.ConfirmDelete(ctx); err != nil {
			return nil, err
		}
		return s.Lists.View(), nil
	})
}

// HandleAbortDelete dismisses the pending confirmation
func (h *SessionHandlers) HandleAbortDelete() http.HandlerFunc {
	return h.sessionOp("Abort delete", http.StatusOK, func(_ context.Context, _ *http.Request, s *session.Session) (interface{}, error) {
		if err := s.Lists.AbortDelete(); err != nil {
			return nil, err
		}
		return s.Lists.View(), nil
	})
}

// HandlePickForAdd stages an ingredient
func (h *SessionHandlers) HandlePickForAdd() http.HandlerFunc {
	return decodeOp(h, "Pick for add", func(_ context.Context, s *session.Session, req PickForAddRequest) (interface{}, error) {
		s.Lists.PickForAdd(domain.IngredientRef{ID: req.ID, Name: strings.TrimSpace(req.Name)})
		return s.Lists.View(), nil
	})
}

// HandleUnpickForAdd drops a staged ingredient
func (h *SessionHandlers) HandleUnpickForAdd() http.HandlerFunc {
	return h.sessionOp("Unpick for add", http.StatusOK, func(_ context.Context, r *http.Request, s *session.Session) (interface{}, error) {
		s.Lists.UnpickForAdd(chi.URLParam(r, ParamIngredientID))
		return s.Lists.View(), nil
	})
}

// HandleSaveAdded adds the staged ingredients to the active list
func (h *SessionHandlers) HandleSaveAdded() http.HandlerFunc {
	return h.sessionOp("Save added", http.StatusOK, func(ctx context.Context, _ *http.Request, s *session.Session) (interface{}, error) {
		if err := s.Lists.SaveAdded(ctx); err != nil {
			return nil, err
		}
		return s.Lists.View(), nil
	})
}
