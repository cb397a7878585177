package worker

import (
	"context"
	"errors"

	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/logger"
	"github.com/osse101/PantryBook_Go/internal/nutrition"
)

// Recomputer is the part of the recipe editor a RecomputeJob drives
type Recomputer interface {
	RecomputeNutrition(ctx context.Context) (nutrition.Values, error)
}

// RecomputeJob recomputes a session's nutrition summary in the background.
// The result reaches the front end through the editor's notifier.
type RecomputeJob struct {
	SessionID string
	RequestID string
	Editor    Recomputer
}

// Process implements Job
func (j *RecomputeJob) Process(ctx context.Context) error {
	ctx = logger.WithSessionID(ctx, j.SessionID)
	if j.RequestID != "" {
		ctx = logger.WithRequestID(ctx, j.RequestID)
	}

	_, err := j.Editor.RecomputeNutrition(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrStaleResult), errors.Is(err, domain.ErrEditorClosed):
		logger.FromContext(ctx).Debug("Background recompute superseded", "reason", err)
		return nil
	default:
		return err
	}
}
