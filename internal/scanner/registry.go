package scanner

import "strings"

// Registry holds the available scanner adapters keyed by name. It is
// populated once at startup and read-only afterwards, so it needs no
// locking even when scans run concurrently.
type Registry struct {
	adapters map[string]Adapter
	names    []string // registration order, for stable listing
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under its own name. Re-registering a name
// replaces the previous adapter.
func (r *Registry) Register(a Adapter) {
	name := a.Name()
	if _, exists := r.adapters[name]; !exists {
		r.names = append(r.names, name)
	}
	r.adapters[name] = a
}

// Get looks up an adapter by name, falling back to a case-insensitive
// match.
func (r *Registry) Get(name string) (Adapter, bool) {
	if a, ok := r.adapters[name]; ok {
		return a, true
	}
	for key, a := range r.adapters {
		if strings.EqualFold(key, name) {
			return a, true
		}
	}
	return nil, false
}

// Names returns the adapter names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// ClosestMatches suggests registered names resembling the given one,
// for "did you mean" hints on a failed lookup. Matching is by common
// prefix or substring, case-insensitive, capped at n suggestions.
func (r *Registry) ClosestMatches(name string, n int) []string {
	if n <= 0 {
		return nil
	}
	needle := strings.ToLower(name)
	var matches []string
	for _, candidate := range r.names {
		c := strings.ToLower(candidate)
		if strings.Contains(c, needle) || strings.Contains(needle, c) {
			matches = append(matches, candidate)
			if len(matches) == n {
				break
			}
		}
	}
	return matches
}
