package recipe

import (
	"fmt"
	"strings"

	"github.com/osse101/PantryBook_Go/internal/domain"
)

// StepSequence is the ordered list of preparation steps
type StepSequence struct {
	steps []string
}

// Append adds a trimmed step. Blank steps are ignored and false is returned.
func (s *StepSequence) Append(step string) bool {
	step = strings.TrimSpace(step)
	if step == "" {
		return false
	}
	s.steps = append(s.steps, step)
	return true
}

// RemoveAt removes the step at index i, shifting later steps left
func (s *StepSequence) RemoveAt(i int) error {
	if i < 0 || i >= len(s.steps) {
		return fmt.Errorf("%w: %d (have %d)", domain.ErrStepIndexOutOfRange, i, len(s.steps))
	}
	s.steps = append(s.steps[:i], s.steps[i+1:]...)
	return nil
}

// Steps returns a copy of the steps in preparation order
func (s *StepSequence) Steps() []string {
	out := make([]string, len(s.steps))
	copy(out, s.steps)
	return out
}

// Len returns the number of steps
func (s *StepSequence) Len() int {
	return len(s.steps)
}

// Clear removes every step
func (s *StepSequence) Clear() {
	s.steps = nil
}
