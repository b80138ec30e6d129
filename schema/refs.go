package schema

import "sort"

// RefSet is a set of schema descriptor names. Iteration order over the set
// is undefined; callers that need determinism use Sorted.
type RefSet map[string]struct{}

// Add inserts a name into the set.
func (s RefSet) Add(name string) {
	s[name] = struct{}{}
}

// Union inserts every name from other into the set.
func (s RefSet) Union(other RefSet) {
	for name := range other {
		s[name] = struct{}{}
	}
}

// Contains reports whether the set holds the given name.
func (s RefSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the set's names in ascending order.
func (s RefSet) Sorted() []string {
	if len(s) == 0 {
		return nil
	}
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Mapper is implemented by descriptor values that can project themselves
// into a plain nested map. Values lacking this capability are skipped by
// the generation pass rather than failing it.
type Mapper interface {
	ToMap() map[string]any
}

// RefSource is implemented by descriptor values that can report the schema
// names they reference.
type RefSource interface {
	Refs() RefSet
}

// refsFromFieldMap collects schema names from the serialized map form of a
// field, descending into list and one_of variants.
func refsFromFieldMap(m map[string]any, refs RefSet) {
	switch m["type"] {
	case "ref":
		if target, ok := m["ref"].(string); ok && target != "" {
			refs.Add(target)
		}
	case "list", "one_of":
		of, _ := m["of"].([]any)
		for _, v := range of {
			if vm, ok := v.(map[string]any); ok {
				refsFromFieldMap(vm, refs)
			}
		}
	}
}
