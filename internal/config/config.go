package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	APIBaseURL     string // Backend the client core talks to
	APIToken       string // Static bearer token; empty means unauthenticated calls
	APIKey         string // Key front ends send to the session server; empty disables the check
	TrustedProxies []string
	LogLevel       string
	LogFormat      string
	LogDir         string // When set, logs are also written to a rotating set of files here
	Environment    string
	ServiceName    string
	Version        string

	HTTPTimeout    time.Duration
	HTTPMaxRetries int

	CatalogCacheSize int
	CatalogCacheTTL  time.Duration
	SessionCacheSize int
	SessionTTL       time.Duration

	// RequireNutrition makes a computed nutrition snapshot part of draft validity
	RequireNutrition bool

	WorkerCount     int
	WorkerQueueSize int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:       strings.TrimRight(getEnv(EnvAPIBaseURL, ""), "/"),
		APIToken:         getEnv(EnvAPIToken, ""),
		APIKey:           getEnv(EnvAPIKey, ""),
		TrustedProxies:   getEnvAsList(EnvTrustedProxies),
		LogLevel:         strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:        strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		LogDir:           getEnv(EnvLogDir, ""),
		Environment:      getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName:      getEnv(EnvServiceName, DefaultServiceName),
		Version:          getEnv(EnvVersion, DefaultVersion),
		HTTPTimeout:      getEnvAsDuration(EnvHTTPTimeout, DefaultHTTPTimeout),
		HTTPMaxRetries:   getEnvAsInt(EnvHTTPMaxRetries, DefaultHTTPMaxRetries),
		CatalogCacheSize: getEnvAsInt(EnvCatalogCacheSize, DefaultCatalogCacheSize),
		CatalogCacheTTL:  getEnvAsDuration(EnvCatalogCacheTTL, DefaultCatalogCacheTTL),
		SessionCacheSize: getEnvAsInt(EnvSessionCacheSize, DefaultSessionCacheSize),
		SessionTTL:       getEnvAsDuration(EnvSessionTTL, DefaultSessionTTL),
		RequireNutrition: getEnvAsBool(EnvRequireNutrition, false),
		WorkerCount:      getEnvAsInt(EnvWorkerCount, DefaultWorkerCount),
		WorkerQueueSize:  getEnvAsInt(EnvWorkerQueueSize, DefaultWorkerQueueSize),
	}

	portStr := getEnv(EnvPort, strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL environment variable must be set")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping empty elements
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
