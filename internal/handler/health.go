package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/osse101/PantryBook_Go/internal/logger"
)

// ReadinessTimeout bounds the whole readiness probe, not each check
const ReadinessTimeout = 2 * time.Second

const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)

// HealthResponse is returned by /healthz and /readyz. Components is only
// filled in by readiness.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// HealthChecker is implemented by anything readiness should wait on
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HandleHealthz answers as long as the process serves HTTP
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK})
	}
}

// HandleReadyz runs every named check and reports 503 if any fails.
// Check errors are logged, never returned to the caller.
func HandleReadyz(checks map[string]HealthChecker) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()
		log := logger.FromContext(ctx)

		resp := HealthResponse{Status: HealthStatusOK, Components: make(map[string]string, len(names))}
		for _, name := range names {
			if err := checks[name].CheckHealth(ctx); err != nil {
				log.Warn("Readiness check failed", "component", name, "error", err)
				resp.Components[name] = HealthStatusUnavailable
				resp.Status = HealthStatusUnavailable
				continue
			}
			resp.Components[name] = HealthStatusOK
		}

		status := http.StatusOK
		if resp.Status != HealthStatusOK {
			status = http.StatusServiceUnavailable
		}
		respondJSON(w, status, resp)
	}
}
