package schema

import "fmt"

// Kind identifies a primitive field type.
type Kind string

// Primitive kinds supported by the field model. UUID, Date and DateTime map
// to string types with a format in rendered output.
const (
	String   Kind = "string"
	Integer  Kind = "integer"
	Number   Kind = "number"
	Boolean  Kind = "boolean"
	UUID     Kind = "uuid"
	Date     Kind = "date"
	DateTime Kind = "datetime"
)

type fieldVariant int

const (
	fieldPrimitive fieldVariant = iota
	fieldRef
	fieldList
	fieldOneOf
)

// Field is a tagged variant describing one value shape: a primitive kind,
// a named reference to another schema descriptor, a list, or a one-of union.
// The zero value is a primitive with an empty kind; use the constructors.
//
// Fields are immutable values. The fluent modifiers return copies, so a
// Field can be declared once and reused across descriptors.
type Field struct {
	variant  fieldVariant
	kind     Kind
	ref      string
	of       []Field
	desc     string
	required bool

	// err records a malformed construction. It is surfaced when the field
	// is attached to a descriptor and that descriptor is built.
	err error
}

// Primitive returns a field of the given primitive kind.
func Primitive(kind Kind) Field {
	f := Field{variant: fieldPrimitive, kind: kind}
	switch kind {
	case String, Integer, Number, Boolean, UUID, Date, DateTime:
	default:
		f.err = fmt.Errorf("schema: unknown primitive kind %q", kind)
	}
	return f
}

// Ref returns a field referencing the schema descriptor with the given name.
// The reference is by name only and is resolved later against a Registry.
func Ref(target string) Field {
	f := Field{variant: fieldRef, ref: target}
	if target == "" {
		f.err = fmt.Errorf("schema: reference target must not be empty")
	}
	return f
}

// List returns a field describing a list whose elements match one of the
// given variants. A single variant describes a homogeneous list; multiple
// variants describe a heterogeneous one. At least one variant is required.
func List(of ...Field) Field {
	f := Field{variant: fieldList, of: of}
	f.err = validateOf("list", of)
	return f
}

// OneOf returns a field describing a discriminated union of the given
// variants. At least one variant is required.
func OneOf(of ...Field) Field {
	f := Field{variant: fieldOneOf, of: of}
	f.err = validateOf("one_of", of)
	return f
}

func validateOf(variant string, of []Field) error {
	if len(of) == 0 {
		return fmt.Errorf("schema: %s requires at least one variant", variant)
	}
	for _, v := range of {
		if v.err != nil {
			return v.err
		}
	}
	return nil
}

// Description returns a copy of the field with the given description.
func (f Field) Description(desc string) Field {
	f.desc = desc
	return f
}

// Required returns a copy of the field marked as required.
func (f Field) Required() Field {
	f.required = true
	return f
}

// IsRef reports whether the field is a reference, and if so to what.
func (f Field) IsRef() (string, bool) {
	return f.ref, f.variant == fieldRef
}

// Validate reports a malformed construction, such as an empty variant list
// or an unknown primitive kind. Builders call this for every attached field.
func (f Field) Validate() error {
	return f.err
}

// Refs returns the set of schema names reachable from this field: the target
// itself for a reference, the union over all variants for lists and one-of
// unions, and the empty set for primitives.
func (f Field) Refs() RefSet {
	refs := RefSet{}
	switch f.variant {
	case fieldRef:
		refs.Add(f.ref)
	case fieldList, fieldOneOf:
		for _, v := range f.of {
			refs.Union(v.Refs())
		}
	}
	return refs
}

// ToMap projects the field into its plain map form. The projection is pure:
// repeated calls yield structurally identical results.
func (f Field) ToMap() map[string]any {
	m := map[string]any{}
	switch f.variant {
	case fieldPrimitive:
		m["type"] = string(f.kind)
	case fieldRef:
		m["type"] = "ref"
		m["ref"] = f.ref
	case fieldList:
		m["type"] = "list"
		m["of"] = variantMaps(f.of)
	case fieldOneOf:
		m["type"] = "one_of"
		m["of"] = variantMaps(f.of)
	}
	if f.desc != "" {
		m["desc"] = f.desc
	}
	if f.required {
		m["required"] = true
	}
	return m
}

func variantMaps(of []Field) []any {
	out := make([]any, len(of))
	for i, v := range of {
		out[i] = v.ToMap()
	}
	return out
}
