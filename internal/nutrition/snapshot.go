// Package nutrition keeps the nutrient totals computed for a recipe draft.
package nutrition

import (
	"context"
	"sync"

	"github.com/osse101/PantryBook_Go/internal/catalog"
	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/logger"
	"github.com/osse101/PantryBook_Go/internal/metrics"
)

// Service computes nutrient totals for a set of ingredients
type Service interface {
	ComputeNutrition(ctx context.Context, items []domain.NutritionItem) (map[string]float64, error)
}

// Values maps a nutrient code to its computed amount
type Values map[string]float64

// LabeledValue is a nutrient value projected for display
type LabeledValue struct {
	Code  string  `json:"code"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Snapshot holds the last applied nutrition result for one draft.
//
// Every Recompute takes a token from a monotonically increasing counter and
// Invalidate bumps a generation. A response is applied only when its token is
// still the latest issued and the generation has not moved, so a slow response
// can never overwrite a newer one or resurrect values after an edit.
type Snapshot struct {
	service Service

	mu         sync.Mutex
	values     Values
	latest     uint64
	generation uint64
}

// NewSnapshot creates an empty Snapshot backed by service
func NewSnapshot(service Service) *Snapshot {
	return &Snapshot{service: service, values: Values{}}
}

// Invalidate clears the stored values and discards any in-flight result
func (s *Snapshot) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.values = Values{}
}

// Ticket identifies one recompute request
type Ticket struct {
	token      uint64
	generation uint64
}

// Begin issues a ticket for a recompute of the current composition. Callers
// that build the request items under their own lock take the ticket under
// that same lock so an edit made afterwards always supersedes it.
func (s *Snapshot) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return Ticket{token: s.latest, generation: s.generation}
}

// Recompute requests fresh values for items. It returns domain.ErrStaleResult
// when a newer Recompute or an Invalidate happened while the request was in
// flight. On service failure the previous values stay in place.
func (s *Snapshot) Recompute(ctx context.Context, items []domain.NutritionItem) (Values, error) {
	return s.Run(ctx, s.Begin(), items)
}

// Run performs the recompute for a ticket obtained from Begin
func (s *Snapshot) Run(ctx context.Context, t Ticket, items []domain.NutritionItem) (Values, error) {
	log := logger.FromContext(ctx)

	result, err := s.service.ComputeNutrition(ctx, items)

	s.mu.Lock()
	defer s.mu.Unlock()

	if t.token != s.latest || t.generation != s.generation || ctx.Err() != nil {
		metrics.RecordRecompute(metrics.OutcomeStale)
		log.Debug("Discarding stale nutrition result", "token", t.token, "latest", s.latest)
		return nil, domain.ErrStaleResult
	}
	if err != nil {
		metrics.RecordRecompute(metrics.OutcomeFailed)
		log.Warn("Nutrition recompute failed", "error", err)
		return nil, err
	}

	s.values = cloneValues(result)
	metrics.RecordRecompute(metrics.OutcomeApplied)
	log.Debug("Nutrition recompute applied", "token", t.token, "nutrients", len(s.values))
	return cloneValues(s.values), nil
}

// Values returns a copy of the stored values
func (s *Snapshot) Values() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneValues(s.values)
}

// IsEmpty reports whether no result is currently applied
func (s *Snapshot) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values) == 0
}

// Labeled returns the stored values with display labels, ordered by label
func (s *Snapshot) Labeled() []LabeledValue {
	return Label(s.Values())
}

// Label projects values to display labels, ordered by label
func Label(values Values) []LabeledValue {
	out := make([]LabeledValue, 0, len(values))
	for code, v := range values {
		out = append(out, LabeledValue{Code: code, Label: domain.NutrientLabel(code), Value: v})
	}
	catalog.SortByName(out, func(l LabeledValue) string { return l.Label })
	return out
}

func cloneValues(in map[string]float64) Values {
	out := make(Values, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
