package worker

import (
	"context"
	"fmt"

	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/logger"
)

// CatalogWarmer is the part of the cached catalog a CatalogWarmJob drives
type CatalogWarmer interface {
	Invalidate()
	SearchIngredients(ctx context.Context, term string) ([]domain.IngredientRef, error)
}

// CatalogWarmJob refetches the full ingredient catalog so editors opening
// after it runs hit a fresh cache entry
type CatalogWarmJob struct {
	Catalog CatalogWarmer
}

// Process implements Job
func (j *CatalogWarmJob) Process(ctx context.Context) error {
	j.Catalog.Invalidate()
	refs, err := j.Catalog.SearchIngredients(ctx, "")
	if err != nil {
		return fmt.Errorf("catalog warm-up failed: %w", err)
	}
	logger.FromContext(ctx).Debug(LogMsgCatalogWarmed, "ingredients", len(refs))
	return nil
}
