package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query and path parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidPathParam  = "Invalid %s path parameter"

	// Session messages
	ErrMsgSessionNotFound = "Session not found"

	// Editor messages
	ErrMsgEditorClosed        = "The recipe editor is not open"
	ErrMsgEditorBusy          = "The recipe is being submitted"
	ErrMsgInvalidDraft        = "The recipe is incomplete"
	ErrMsgIngredientNotPicked = "That ingredient is not part of the recipe"
	ErrMsgStepNotFound        = "That step does not exist"
	ErrMsgStaleResult         = "A newer request replaced this one"

	// List messages
	ErrMsgNothingChecked  = "Select at least one item"
	ErrMsgNoPendingDelete = "There is no delete waiting for confirmation"
	ErrMsgNothingPicked   = "Pick at least one ingredient"
	ErrMsgUnknownTab      = "Unknown list"

	// Backend messages
	ErrMsgBackendError         = "The server could not complete the request. Please try again."
	ErrMsgBackendAuthError     = "The server rejected our credentials"
	ErrMsgNutritionUnavailable = "Nutrition information is unavailable right now"
	ErrMsgBackendTimeout       = "The server took too long to answer"

	// Worker messages
	ErrMsgBusy = "Too many background requests. Please try again."

	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidInput       = "Invalid input"
)

// Success messages
const (
	MsgCatalogUnavailable = "Editor opened, but the ingredient catalog could not be refreshed"
	MsgRecomputeQueued    = "Nutrition recompute queued"
	MsgSessionDeleted     = "Session deleted"
)
