package schema

import "fmt"

// NamedField pairs a field with its declared name. Schema accessors return
// named fields in a deterministic order.
type NamedField struct {
	Name  string
	Field Field
}

// Builder accumulates schema field declarations and freezes them into an
// immutable Schema via Build. A Builder is single-use and not safe for
// concurrent use; descriptors are expected to be constructed once at
// definition time.
type Builder struct {
	name   string
	desc   string
	order  []string
	fields map[string]Field
}

// New returns a builder for a schema descriptor with the given name.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		fields: make(map[string]Field),
	}
}

// Description sets the schema description.
func (b *Builder) Description(desc string) *Builder {
	b.desc = desc
	return b
}

// Field declares a field. Declaring the same name twice keeps the last
// declared spec and the original declaration position.
func (b *Builder) Field(name string, f Field) *Builder {
	if _, ok := b.fields[name]; !ok {
		b.order = append(b.order, name)
	}
	b.fields[name] = f
	return b
}

// Build validates the accumulated declarations and returns the immutable
// schema descriptor. Malformed field declarations surface here.
func (b *Builder) Build() (*Schema, error) {
	if b.name == "" {
		return nil, fmt.Errorf("schema: descriptor name must not be empty")
	}
	for _, name := range b.order {
		if name == "" {
			return nil, fmt.Errorf("schema %s: field name must not be empty", b.name)
		}
		if err := b.fields[name].Validate(); err != nil {
			return nil, fmt.Errorf("schema %s, field %s: %w", b.name, name, err)
		}
	}

	s := &Schema{
		name:   b.name,
		desc:   b.desc,
		order:  make([]string, len(b.order)),
		fields: make(map[string]Field, len(b.fields)),
	}
	copy(s.order, b.order)
	for name, f := range b.fields {
		s.fields[name] = f
	}
	return s, nil
}

// MustBuild is like Build but panics on error. Intended for static
// definitions where a malformed declaration is a programming error.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Schema is an immutable named descriptor: a name, an optional description,
// and an ordered mapping of field names to fields. Schemas are constructed
// once via a Builder and looked up by name during generation.
type Schema struct {
	name   string
	desc   string
	order  []string
	fields map[string]Field
}

// Name returns the descriptor name.
func (s *Schema) Name() string { return s.name }

// Description returns the descriptor description, or the empty string.
func (s *Schema) Description() string { return s.desc }

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []NamedField {
	out := make([]NamedField, len(s.order))
	for i, name := range s.order {
		out[i] = NamedField{Name: name, Field: s.fields[name]}
	}
	return out
}

// Field returns the field declared under the given name.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Refs returns the set of schema names referenced by any field of this
// descriptor, directly or nested inside list and one-of variants.
func (s *Schema) Refs() RefSet {
	refs := RefSet{}
	for _, name := range s.order {
		fm := s.fields[name].ToMap()
		refsFromFieldMap(fm, refs)
	}
	return refs
}

// ToMap projects the schema into its plain map form with keys name,
// description and fields. The projection is pure and idempotent.
func (s *Schema) ToMap() map[string]any {
	fields := make(map[string]any, len(s.fields))
	for name, f := range s.fields {
		fields[name] = f.ToMap()
	}
	m := map[string]any{
		"name":   s.name,
		"fields": fields,
	}
	if s.desc != "" {
		m["description"] = s.desc
	}
	return m
}
