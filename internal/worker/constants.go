package worker

import "time"

// Log messages
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgPoolStarted     = "Worker pool started"
	LogMsgPoolStopped     = "Worker pool stopped"
	LogMsgCatalogWarmed   = "Ingredient catalog warmed"
)

// DefaultJobTimeout bounds a single job when the job does not set its own deadline
const DefaultJobTimeout = 30 * time.Second

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
