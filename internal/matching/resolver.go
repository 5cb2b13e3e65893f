// Package matching attaches disposition milestones and sales rows to leads.
package matching

import "github.com/rpattn/leadrecon/internal/domain"

// KeyStrategy is one tier of a prioritized lookup: a key extracted from the
// lead and the table it is looked up in.
type KeyStrategy[V any] struct {
	Name    string
	LeadKey func(domain.Lead) string
	Lookup  map[string]V
}

// Resolver tries its strategies in order until one hits.
type Resolver[V any] struct {
	strategies []KeyStrategy[V]
}

// NewResolver creates a resolver over the given strategies, highest priority first.
func NewResolver[V any](strategies ...KeyStrategy[V]) *Resolver[V] {
	return &Resolver[V]{strategies: strategies}
}

// Resolve returns the first value found for lead and the name of the strategy
// that produced it. Empty keys never match.
func (r *Resolver[V]) Resolve(lead domain.Lead) (V, string, bool) {
	for _, strategy := range r.strategies {
		key := strategy.LeadKey(lead)
		if key == "" {
			continue
		}
		if value, ok := strategy.Lookup[key]; ok {
			return value, strategy.Name, true
		}
	}
	var zero V
	return zero, "", false
}

// FirstWins builds a lookup table keeping the first value seen for each
// non-empty key. Later duplicates are dropped.
func FirstWins[T, V any](rows []T, key func(T) string, value func(T) V) map[string]V {
	lookup := make(map[string]V, len(rows))
	for _, row := range rows {
		k := key(row)
		if k == "" {
			continue
		}
		if _, exists := lookup[k]; exists {
			continue
		}
		lookup[k] = value(row)
	}
	return lookup
}
