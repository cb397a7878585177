package config

import "time"

// Environment variable names
const (
	EnvPort             = "PORT"
	EnvAPIBaseURL       = "API_BASE_URL"
	EnvAPIToken         = "API_TOKEN"
	EnvAPIKey           = "API_KEY"
	EnvTrustedProxies   = "TRUSTED_PROXIES"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
	EnvLogDir           = "LOG_DIR"
	EnvEnvironment      = "ENVIRONMENT"
	EnvServiceName      = "SERVICE_NAME"
	EnvVersion          = "VERSION"
	EnvHTTPTimeout      = "HTTP_TIMEOUT"
	EnvHTTPMaxRetries   = "HTTP_MAX_RETRIES"
	EnvCatalogCacheSize = "CATALOG_CACHE_SIZE"
	EnvCatalogCacheTTL  = "CATALOG_CACHE_TTL"
	EnvSessionCacheSize = "SESSION_CACHE_SIZE"
	EnvSessionTTL       = "SESSION_TTL"
	EnvRequireNutrition = "REQUIRE_NUTRITION"
	EnvWorkerCount      = "WORKER_COUNT"
	EnvWorkerQueueSize  = "WORKER_QUEUE_SIZE"
	EnvSchemaVersion    = "ENV_SCHEMA_VERSION"
)

// Defaults
const (
	DefaultPort             = 8080
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultEnvironment      = "dev"
	DefaultServiceName      = "pantrybook"
	DefaultVersion          = "dev"
	DefaultHTTPTimeout      = 10 * time.Second
	DefaultHTTPMaxRetries   = 3
	DefaultCatalogCacheSize = 64
	DefaultCatalogCacheTTL  = 5 * time.Minute
	DefaultSessionCacheSize = 1024
	DefaultSessionTTL       = 2 * time.Hour
	DefaultWorkerCount      = 4
	DefaultWorkerQueueSize  = 64
)
