package schema

import (
	"errors"
	"fmt"
)

// ErrContentType is returned by content descriptor accessors when the
// requested content type was never declared.
var ErrContentType = errors.New("content type not declared")

// contentVariant holds the declarations for one content type.
type contentVariant struct {
	schema    Field
	hasSchema bool
	exOrder   []string
	examples  map[string]any
}

// ContentBuilder accumulates request/response body declarations and freezes
// them into an immutable Content via Build. Every content-type-scoped
// declaration names its content type explicitly; there is no ambient
// "current content type" state.
type ContentBuilder struct {
	desc       string
	headersRef string
	hdrOrder   []string
	headers    map[string]Field
	ctOrder    []string
	variants   map[string]*contentVariant
	errs       []error
}

// NewContent returns a builder for a content descriptor.
func NewContent() *ContentBuilder {
	return &ContentBuilder{
		headers:  make(map[string]Field),
		variants: make(map[string]*contentVariant),
	}
}

// Description sets the top-level body description.
func (b *ContentBuilder) Description(desc string) *ContentBuilder {
	b.desc = desc
	return b
}

// Header declares a named header shared across all content-type variants.
func (b *ContentBuilder) Header(name string, f Field) *ContentBuilder {
	if name == "" {
		b.errs = append(b.errs, fmt.Errorf("content: header name must not be empty"))
		return b
	}
	if _, ok := b.headers[name]; !ok {
		b.hdrOrder = append(b.hdrOrder, name)
	}
	b.headers[name] = f
	return b
}

// HeadersRef declares the shared headers as a reference to a schema
// descriptor. Mutually exclusive with Header declarations.
func (b *ContentBuilder) HeadersRef(target string) *ContentBuilder {
	if target == "" {
		b.errs = append(b.errs, fmt.Errorf("content: headers reference target must not be empty"))
		return b
	}
	b.headersRef = target
	return b
}

// Schema declares the schema for a content type. A single field is used
// as-is; multiple fields declare a homogeneous-or-heterogeneous list, the
// same as Schema(contentType, List(fields...)). Redeclaring the schema for
// a content type keeps the last declaration.
func (b *ContentBuilder) Schema(contentType string, fields ...Field) *ContentBuilder {
	v, ok := b.variant(contentType)
	if !ok {
		return b
	}
	switch len(fields) {
	case 0:
		b.errs = append(b.errs, fmt.Errorf("content %s: schema requires at least one field", contentType))
	case 1:
		v.schema = fields[0]
		v.hasSchema = true
	default:
		v.schema = List(fields...)
		v.hasSchema = true
	}
	return b
}

// Example declares a named example payload for a content type. Example
// names must be unique within one content type; duplicates surface as a
// build error.
func (b *ContentBuilder) Example(contentType, name string, value any) *ContentBuilder {
	v, ok := b.variant(contentType)
	if !ok {
		return b
	}
	if name == "" {
		b.errs = append(b.errs, fmt.Errorf("content %s: example name must not be empty", contentType))
		return b
	}
	if _, dup := v.examples[name]; dup {
		b.errs = append(b.errs, fmt.Errorf("content %s: duplicate example %q", contentType, name))
		return b
	}
	v.exOrder = append(v.exOrder, name)
	v.examples[name] = value
	return b
}

// variant returns the accumulator for a content type, registering the
// content type on first mention so declaration order is preserved.
func (b *ContentBuilder) variant(contentType string) (*contentVariant, bool) {
	if contentType == "" {
		b.errs = append(b.errs, fmt.Errorf("content: content type must not be empty"))
		return nil, false
	}
	v, ok := b.variants[contentType]
	if !ok {
		v = &contentVariant{examples: make(map[string]any)}
		b.variants[contentType] = v
		b.ctOrder = append(b.ctOrder, contentType)
	}
	return v, true
}

// Build validates the accumulated declarations and returns the immutable
// content descriptor. Malformed declarations are fatal for the descriptor
// and surface here.
func (b *ContentBuilder) Build() (*Content, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if b.headersRef != "" && len(b.hdrOrder) > 0 {
		return nil, fmt.Errorf("content: named headers and a headers reference are mutually exclusive")
	}
	for _, name := range b.hdrOrder {
		if err := b.headers[name].Validate(); err != nil {
			return nil, fmt.Errorf("content, header %s: %w", name, err)
		}
	}
	for _, ct := range b.ctOrder {
		v := b.variants[ct]
		if v.hasSchema {
			if err := v.schema.Validate(); err != nil {
				return nil, fmt.Errorf("content %s: %w", ct, err)
			}
		}
	}

	c := &Content{
		desc:       b.desc,
		headersRef: b.headersRef,
		hdrOrder:   append([]string(nil), b.hdrOrder...),
		headers:    make(map[string]Field, len(b.headers)),
		ctOrder:    append([]string(nil), b.ctOrder...),
		variants:   make(map[string]contentVariant, len(b.variants)),
	}
	for name, f := range b.headers {
		c.headers[name] = f
	}
	for ct, v := range b.variants {
		examples := make(map[string]any, len(v.examples))
		for name, value := range v.examples {
			examples[name] = value
		}
		c.variants[ct] = contentVariant{
			schema:    v.schema,
			hasSchema: v.hasSchema,
			exOrder:   append([]string(nil), v.exOrder...),
			examples:  examples,
		}
	}
	return c, nil
}

// MustBuild is like Build but panics on error.
func (b *ContentBuilder) MustBuild() *Content {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

// Content is an immutable request/response body descriptor: an optional
// description, optional shared headers, and one or more content-type
// variants each holding a schema field and named examples.
type Content struct {
	desc       string
	headersRef string
	hdrOrder   []string
	headers    map[string]Field
	ctOrder    []string
	variants   map[string]contentVariant
}

// Description returns the body description, or the empty string.
func (c *Content) Description() string { return c.desc }

// ContentTypes returns the declared content types in declaration order.
// Renderers rely on this order to keep generated output diffable.
func (c *Content) ContentTypes() []string {
	return append([]string(nil), c.ctOrder...)
}

// Headers returns the shared named headers in declaration order. Empty when
// the headers were declared as a reference.
func (c *Content) Headers() []NamedField {
	out := make([]NamedField, len(c.hdrOrder))
	for i, name := range c.hdrOrder {
		out[i] = NamedField{Name: name, Field: c.headers[name]}
	}
	return out
}

// HeadersRef returns the headers schema reference target, if declared.
func (c *Content) HeadersRef() (string, bool) {
	return c.headersRef, c.headersRef != ""
}

// SchemaFor returns the schema field declared for the given content type.
func (c *Content) SchemaFor(contentType string) (Field, error) {
	v, ok := c.variants[contentType]
	if !ok || !v.hasSchema {
		return Field{}, fmt.Errorf("%w: %q", ErrContentType, contentType)
	}
	return v.schema, nil
}

// ExamplesFor returns the named examples declared for the given content type.
func (c *Content) ExamplesFor(contentType string) (map[string]any, error) {
	v, ok := c.variants[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrContentType, contentType)
	}
	out := make(map[string]any, len(v.examples))
	for name, value := range v.examples {
		out[name] = value
	}
	return out, nil
}

// ExampleNames returns the example names for a content type in declaration
// order.
func (c *Content) ExampleNames(contentType string) []string {
	v, ok := c.variants[contentType]
	if !ok {
		return nil
	}
	return append([]string(nil), v.exOrder...)
}

// ToMap projects the descriptor into its plain map form with keys
// description, headers and content. The projection is pure: repeated calls
// yield structurally identical results.
func (c *Content) ToMap() map[string]any {
	m := map[string]any{}
	if c.desc != "" {
		m["description"] = c.desc
	}

	if c.headersRef != "" {
		m["headers"] = Ref(c.headersRef).ToMap()
	} else if len(c.hdrOrder) > 0 {
		headers := make(map[string]any, len(c.headers))
		for name, f := range c.headers {
			headers[name] = f.ToMap()
		}
		m["headers"] = headers
	}

	content := make(map[string]any, len(c.variants))
	for ct, v := range c.variants {
		entry := map[string]any{}
		if v.hasSchema {
			entry["schema"] = v.schema.ToMap()
		}
		if len(v.examples) > 0 {
			examples := make(map[string]any, len(v.examples))
			for name, value := range v.examples {
				examples[name] = value
			}
			entry["examples"] = examples
		}
		content[ct] = entry
	}
	m["content"] = content

	return m
}

// Refs walks the descriptor's map form and returns the set of schema names
// it touches: the headers reference target when headers are a reference,
// plus every name reachable from any content-type schema. The result is a
// set with no ordering guarantee; callers sort before external use.
func (c *Content) Refs() RefSet {
	refs := RefSet{}
	m := c.ToMap()

	if headers, ok := m["headers"].(map[string]any); ok {
		if headers["type"] == "ref" {
			if target, ok := headers["ref"].(string); ok {
				refs.Add(target)
			}
		}
	}

	content, _ := m["content"].(map[string]any)
	for _, entry := range content {
		em, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if fm, ok := em["schema"].(map[string]any); ok {
			refsFromFieldMap(fm, refs)
		}
	}

	return refs
}
