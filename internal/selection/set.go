// Package selection holds the ordered, deduplicated pick sets used while
// composing a recipe and while checking items of a user list, plus the
// per-item quantity map that follows set membership.
package selection

// Entry is a chosen item keyed by its stable id
type Entry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Set is an insertion-ordered collection with at most one element per key.
// Set is not safe for concurrent use; callers serialize access.
type Set[E any] struct {
	keyOf func(E) string
	order []string
	items map[string]E
}

// New creates an empty Set using keyOf to identify elements
func New[E any](keyOf func(E) string) *Set[E] {
	return &Set[E]{
		keyOf: keyOf,
		items: make(map[string]E),
	}
}

// NewEntrySet creates a Set of Entry keyed by Entry.Key
func NewEntrySet() *Set[Entry] {
	return New(func(e Entry) string { return e.Key })
}

// Add appends e unless an element with the same key is present.
// It reports whether the set changed.
func (s *Set[E]) Add(e E) bool {
	key := s.keyOf(e)
	if _, ok := s.items[key]; ok {
		return false
	}
	s.items[key] = e
	s.order = append(s.order, key)
	return true
}

// Remove deletes the element with key. Absent keys are a no-op.
// It reports whether the set changed.
func (s *Set[E]) Remove(key string) bool {
	if _, ok := s.items[key]; !ok {
		return false
	}
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether key is present
func (s *Set[E]) Contains(key string) bool {
	_, ok := s.items[key]
	return ok
}

// Get returns the element stored under key
func (s *Set[E]) Get(key string) (E, bool) {
	e, ok := s.items[key]
	return e, ok
}

// Entries returns the elements in first-insertion order
func (s *Set[E]) Entries() []E {
	out := make([]E, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.items[k])
	}
	return out
}

// Keys returns the keys in first-insertion order
func (s *Set[E]) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of elements
func (s *Set[E]) Len() int {
	return len(s.order)
}

// Clear removes every element
func (s *Set[E]) Clear() {
	s.order = nil
	s.items = make(map[string]E)
}
