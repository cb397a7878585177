package selection

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// QuantityMap stores the free-text quantity typed for each picked item,
// keyed by the item's stable id. Its key set mirrors the pick Set.
type QuantityMap struct {
	values map[string]string
}

// NewQuantityMap creates an empty QuantityMap
func NewQuantityMap() *QuantityMap {
	return &QuantityMap{values: make(map[string]string)}
}

// OnItemAdded starts tracking key with an empty quantity.
// An existing quantity is kept.
func (q *QuantityMap) OnItemAdded(key string) {
	if _, ok := q.values[key]; !ok {
		q.values[key] = ""
	}
}

// OnItemRemoved stops tracking key
func (q *QuantityMap) OnItemRemoved(key string) {
	delete(q.values, key)
}

// Set stores value verbatim. Untracked keys are rejected so the map
// never holds quantities for items that are not picked.
func (q *QuantityMap) Set(key, value string) bool {
	if _, ok := q.values[key]; !ok {
		return false
	}
	q.values[key] = value
	return true
}

// Get returns the stored quantity
func (q *QuantityMap) Get(key string) (string, bool) {
	v, ok := q.values[key]
	return v, ok
}

// Keys returns the tracked keys in sorted order
func (q *QuantityMap) Keys() []string {
	keys := make([]string, 0, len(q.values))
	for k := range q.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of tracked keys
func (q *QuantityMap) Len() int {
	return len(q.values)
}

// Clear drops every quantity
func (q *QuantityMap) Clear() {
	q.values = make(map[string]string)
}

// ParseQuantity coerces a typed quantity to an integer.
// Blank or non-numeric input yields 0; decimals are truncated.
func ParseQuantity(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0
	}
	return int(f)
}
