package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Backend client metric names
const (
	MetricNameBackendRequestsTotal   = "backend_requests_total"
	MetricNameBackendRequestDuration = "backend_request_duration_seconds"
	MetricNameBackendRetries         = "backend_retries_total"
)

// Core metric names
const (
	MetricNameSessionEvents       = "session_events_total"
	MetricNameActiveSessions      = "active_sessions"
	MetricNameNutritionRecomputes = "nutrition_recomputes_total"
	MetricNameRecipeSubmissions   = "recipe_submissions_total"
	MetricNameListItemsDeleted    = "list_items_deleted_total"
	MetricNameCatalogCacheLookups = "catalog_cache_lookups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Backend client metric help text
const (
	HelpTextBackendRequestsTotal   = "Total number of calls made to the backend API"
	HelpTextBackendRequestDuration = "Backend API call latency in seconds, retries included"
	HelpTextBackendRetries         = "Total number of retried backend API attempts"
)

// Core metric help text
const (
	HelpTextSessionEvents       = "Total number of session events emitted"
	HelpTextActiveSessions      = "Current number of open editing sessions"
	HelpTextNutritionRecomputes = "Nutrition recompute requests by outcome"
	HelpTextRecipeSubmissions   = "Recipe draft submissions by outcome"
	HelpTextListItemsDeleted    = "Items removed from user lists by bulk delete"
	HelpTextCatalogCacheLookups = "Catalog cache lookups by result"
)

// ============================================================================
// Labels and values
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelEndpoint = "endpoint"
	LabelType     = "type"
	LabelOutcome  = "outcome"
	LabelList     = "list"
	LabelResult   = "result"
)

// Outcome label values
const (
	OutcomeApplied = "applied"
	OutcomeStale   = "stale"
	OutcomeFailed  = "failed"
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	ResultHit      = "hit"
	ResultMiss     = "miss"
)

// HTTPLatencyBuckets are the histogram buckets used for latency metrics
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
