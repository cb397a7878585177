package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Editor errors
	ErrMsgEditorClosed         = "recipe editor is closed"
	ErrMsgEditorBusy           = "recipe editor is submitting"
	ErrMsgInvalidDraft         = "invalid recipe draft"
	ErrMsgIngredientNotPicked  = "ingredient is not part of the draft"
	ErrMsgStepIndexOutOfRange  = "step index out of range"
	ErrMsgNutritionUnavailable = "nutrition computation failed"
	ErrMsgStaleResult          = "result superseded by a newer request"

	// List errors
	ErrMsgNothingChecked  = "no items checked"
	ErrMsgNoPendingDelete = "no delete awaiting confirmation"
	ErrMsgNothingPicked   = "no items picked"
	ErrMsgUnknownTab      = "unknown list tab"

	// Session errors
	ErrMsgSessionNotFound = "session not found"

	// Backend errors
	ErrMsgBackendUnavailable = "backend unavailable"
	ErrMsgUnauthorized       = "unauthorized"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrEditorClosed         = errors.New(ErrMsgEditorClosed)
	ErrEditorBusy           = errors.New(ErrMsgEditorBusy)
	ErrInvalidDraft         = errors.New(ErrMsgInvalidDraft)
	ErrIngredientNotPicked  = errors.New(ErrMsgIngredientNotPicked)
	ErrStepIndexOutOfRange  = errors.New(ErrMsgStepIndexOutOfRange)
	ErrNutritionUnavailable = errors.New(ErrMsgNutritionUnavailable)
	ErrStaleResult          = errors.New(ErrMsgStaleResult)

	ErrNothingChecked  = errors.New(ErrMsgNothingChecked)
	ErrNoPendingDelete = errors.New(ErrMsgNoPendingDelete)
	ErrNothingPicked   = errors.New(ErrMsgNothingPicked)
	ErrUnknownTab      = errors.New(ErrMsgUnknownTab)

	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)

	ErrBackendUnavailable = errors.New(ErrMsgBackendUnavailable)
	ErrUnauthorized       = errors.New(ErrMsgUnauthorized)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// APIError is returned when the backend answers with a non-success status
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error: %s %s returned %d", e.Method, e.Path, e.StatusCode)
}

// HTTPStatusCode exposes the backend status for retry classification
func (e *APIError) HTTPStatusCode() int {
	return e.StatusCode
}

// Unwrap maps authentication failures onto ErrUnauthorized
func (e *APIError) Unwrap() error {
	if e.StatusCode == 401 || e.StatusCode == 403 {
		return ErrUnauthorized
	}
	return nil
}
