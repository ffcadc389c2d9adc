// Package registry answers whether a fighter name exists in the reference
// fighter list, using case and whitespace insensitive comparison.
package registry

import "strings"

// Normalize collapses internal whitespace, trims and lower-cases name.
func Normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Registry is an immutable set of normalized fighter names.
type Registry struct {
	names map[string]struct{}
}

// New builds a registry from full names.
func New(names []string) *Registry {
	r := &Registry{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if key := Normalize(n); key != "" {
			r.names[key] = struct{}{}
		}
	}
	return r
}

// IsKnown reports whether name is in the registry.
func (r *Registry) IsKnown(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.names[Normalize(name)]
	return ok
}

// Len is the number of distinct names.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Unknown returns the subset of names that are not in the registry, in input order.
func (r *Registry) Unknown(names []string) []string {
	var out []string
	for _, n := range names {
		if strings.TrimSpace(n) == "" || !r.IsKnown(n) {
			out = append(out, n)
		}
	}
	return out
}
