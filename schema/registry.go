package schema

import (
	"fmt"
	"sort"
)

// Registry holds named schema descriptors for lookup during generation.
// Descriptors are registered once at definition time; the registry is then
// read-only for the duration of a generation pass. Registration is not safe
// for concurrent use with lookups.
type Registry struct {
	schemas map[string]*Schema
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Add registers a schema descriptor under its name. Registering a second
// descriptor under an already-claimed name is a definition error.
func (r *Registry) Add(schemas ...*Schema) error {
	for _, s := range schemas {
		if existing, ok := r.schemas[s.Name()]; ok && existing != s {
			return fmt.Errorf("schema registry: name %q registered twice", s.Name())
		}
		r.schemas[s.Name()] = s
	}
	return nil
}

// Get returns the schema registered under the given name.
func (r *Registry) Get(name string) (*Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Names returns all registered names in ascending order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Closure resolves the transitive reference closure of the given roots.
// It returns the resolved schemas sorted by name and the names that could
// not be resolved. Unresolved names are reported, never an error; whether
// they are fatal is the renderer's decision.
func (r *Registry) Closure(roots RefSet) ([]*Schema, []string) {
	resolved := make(map[string]*Schema)
	var missing RefSet = RefSet{}

	pending := roots.Sorted()
	for len(pending) > 0 {
		name := pending[0]
		pending = pending[1:]

		if _, done := resolved[name]; done || missing.Contains(name) {
			continue
		}
		s, ok := r.schemas[name]
		if !ok {
			missing.Add(name)
			continue
		}
		resolved[name] = s
		pending = append(pending, s.Refs().Sorted()...)
	}

	names := make([]string, 0, len(resolved))
	for name := range resolved {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*Schema, len(names))
	for i, name := range names {
		out[i] = resolved[name]
	}
	return out, missing.Sorted()
}
