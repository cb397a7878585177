package api

import "time"

// Retry configuration
const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond
	maxErrorBodyBytes = 4096
)

// Header values
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	ContentTypeJSON     = "application/json"
	BearerPrefix        = "Bearer "
)

// Log messages
const (
	LogMsgRetrying       = "Retrying API request"
	LogMsgRequestFailed  = "API request failed"
	LogMsgServerError    = "Server error, will retry"
	LogMsgRequestDone    = "API request completed"
	LogMsgTokenLookupErr = "Failed to obtain API token"
)
