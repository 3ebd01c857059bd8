package target

import "strings"

// Registry holds the static catalogue of benchmark targets in registration
// order. Identifiers are non-empty and pairwise distinct.
type Registry struct {
	targets []Target
}

// NewRegistry builds the full target catalogue. All targets share the same
// delegate, hub directory and iteration config.
func NewRegistry(d Delegate, hubDir string, cfg Config) *Registry {
	return &Registry{targets: []Target{
		NewProviderResolution(d, hubDir, cfg),
		NewRequestTransformation(d, hubDir, cfg),
		NewMiddlewarePipeline(d, hubDir, cfg),
		NewCacheOperations(d, hubDir, cfg),
		NewStreamParsing(d, hubDir, cfg),
	}}
}

// All returns every registered target in registration order.
func (r *Registry) All() []Target {
	return r.targets
}

// ByPrefix returns the targets whose id starts with prefix, preserving order.
func (r *Registry) ByPrefix(prefix string) []Target {
	var matched []Target
	for _, t := range r.targets {
		if strings.HasPrefix(t.ID(), prefix) {
			matched = append(matched, t)
		}
	}
	return matched
}

// ByIDs returns the targets matching the given ids, in registration order
// regardless of the order ids were passed in.
func (r *Registry) ByIDs(ids []string) []Target {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[strings.TrimSpace(id)] = true
	}

	var matched []Target
	for _, t := range r.targets {
		if want[t.ID()] {
			matched = append(matched, t)
		}
	}
	return matched
}

// IDs returns the registered identifiers in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.targets))
	for _, t := range r.targets {
		ids = append(ids, t.ID())
	}
	return ids
}
