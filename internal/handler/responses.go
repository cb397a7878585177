package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/logger"
	"github.com/osse101/PantryBook_Go/internal/recipe"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// DraftErrorResponse lists the fields that keep a draft from being submitted
type DraftErrorResponse struct {
	Error  string              `json:"error"`
	Fields []recipe.FieldError `json:"fields"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode before writing headers so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and writes the matching user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())

	var verr *recipe.ValidationError
	if errors.As(err, &verr) {
		log.Debug(opName+" rejected", "error", err)
		respondJSON(w, http.StatusUnprocessableEntity, DraftErrorResponse{
			Error:  ErrMsgInvalidDraft,
			Fields: verr.Fields,
		})
		return
	}

	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err, "status", status)
	} else {
		log.Warn(opName+" failed", "error", err, "status", status)
	}
	respondError(w, status, message)
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// State errors become 404/409, bad input 400, and anything the backend or
// nutrition service caused 502.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	var apiErr *domain.APIError

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFound
	case errors.Is(err, domain.ErrIngredientNotPicked):
		return http.StatusNotFound, ErrMsgIngredientNotPicked
	case errors.Is(err, domain.ErrStepIndexOutOfRange):
		return http.StatusNotFound, ErrMsgStepNotFound

	case errors.Is(err, domain.ErrEditorClosed):
		return http.StatusConflict, ErrMsgEditorClosed
	case errors.Is(err, domain.ErrEditorBusy):
		return http.StatusConflict, ErrMsgEditorBusy
	case errors.Is(err, domain.ErrStaleResult):
		return http.StatusConflict, ErrMsgStaleResult
	case errors.Is(err, domain.ErrNothingChecked):
		return http.StatusConflict, ErrMsgNothingChecked
	case errors.Is(err, domain.ErrNoPendingDelete):
		return http.StatusConflict, ErrMsgNoPendingDelete
	case errors.Is(err, domain.ErrNothingPicked):
		return http.StatusConflict, ErrMsgNothingPicked

	case errors.Is(err, domain.ErrInvalidDraft):
		return http.StatusUnprocessableEntity, ErrMsgInvalidDraft
	case errors.Is(err, domain.ErrUnknownTab):
		return http.StatusBadRequest, ErrMsgUnknownTab
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInput

	case errors.Is(err, domain.ErrNutritionUnavailable):
		return http.StatusBadGateway, ErrMsgNutritionUnavailable
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusBadGateway, ErrMsgBackendAuthError
	case errors.Is(err, domain.ErrBackendUnavailable), errors.As(err, &apiErr):
		return http.StatusBadGateway, ErrMsgBackendError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrMsgBackendTimeout
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
