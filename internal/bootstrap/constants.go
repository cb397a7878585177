package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "pantrybook_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingPantryBook  = "Starting PantryBook session server"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Backend Client
// =============================================================================

const (
	// BackendRetryDelay is the base delay between retries of idempotent backend calls
	BackendRetryDelay = 200 * time.Millisecond
)

// =============================================================================
// Scheduled Jobs
// =============================================================================

const (
	JobNameCatalogWarm = "catalog_warm"

	// MinCatalogWarmInterval disables warming for very short cache lifetimes
	MinCatalogWarmInterval = 10 * time.Second
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgStoppingWorkers      = "Stopping worker pool..."
	LogMsgClosingSessions      = "Closing sessions..."
	LogMsgStoppingHub          = "Stopping event hub..."
)

// Component names reported by /readyz
const (
	ReadinessCatalog = "catalog"
	ReadinessJobs    = "jobs"
)
