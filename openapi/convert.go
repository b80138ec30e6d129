package openapi

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/opsb/rolodex"
	"github.com/opsb/rolodex/schema"
)

// kindTypeMap maps primitive field kinds to OpenAPI type and format.
var kindTypeMap = map[string][2]string{
	"string":   {"string", ""},
	"integer":  {"integer", ""},
	"number":   {"number", ""},
	"boolean":  {"boolean", ""},
	"uuid":     {"string", "uuid"},
	"date":     {"string", "date"},
	"datetime": {"string", "date-time"},
}

const refPrefix = "#/components/schemas/"

// schemaFromField converts a field descriptor into a Schema Object by
// walking its serialized map form.
func schemaFromField(f schema.Field) *SchemaObject {
	return schemaFromMap(f.ToMap())
}

func schemaFromMap(m map[string]any) *SchemaObject {
	kind, _ := m["type"].(string)

	var obj *SchemaObject
	switch kind {
	case "ref":
		target, _ := m["ref"].(string)
		// A $ref carries no sibling keywords in OpenAPI 3.0.
		return &SchemaObject{Ref: refPrefix + target}
	case "list":
		obj = &SchemaObject{Type: "array", Items: variantSchema(m["of"])}
	case "one_of":
		obj = variantSchema(m["of"])
	default:
		typeFormat, ok := kindTypeMap[kind]
		if !ok {
			return nil
		}
		obj = &SchemaObject{Type: typeFormat[0], Format: typeFormat[1]}
	}

	if desc, ok := m["desc"].(string); ok {
		obj.Description = desc
	}
	return obj
}

// variantSchema renders a variant list: a single variant inlines, multiple
// variants become a oneOf union.
func variantSchema(of any) *SchemaObject {
	variants, _ := of.([]any)

	var objs []*SchemaObject
	for _, v := range variants {
		vm, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if obj := schemaFromMap(vm); obj != nil {
			objs = append(objs, obj)
		}
	}

	switch len(objs) {
	case 0:
		return nil
	case 1:
		return objs[0]
	default:
		return &SchemaObject{OneOf: objs}
	}
}

// componentSchema converts a schema descriptor into an object Schema
// Object for the components section. Required property names keep field
// declaration order.
func componentSchema(s *schema.Schema) *SchemaObject {
	obj := &SchemaObject{
		Type:        "object",
		Description: s.Description(),
	}

	fields := s.Fields()
	if len(fields) > 0 {
		obj.Properties = make(map[string]*SchemaObject, len(fields))
	}
	for _, nf := range fields {
		fm := nf.Field.ToMap()
		prop := schemaFromMap(fm)
		if prop == nil {
			continue
		}
		obj.Properties[nf.Name] = prop
		if required, _ := fm["required"].(bool); required {
			obj.Required = append(obj.Required, nf.Name)
		}
	}
	return obj
}

// mediaTypes renders a content descriptor's variants in declaration order.
func mediaTypes(c *schema.Content) map[string]*MediaType {
	out := make(map[string]*MediaType, len(c.ContentTypes()))
	for _, ct := range c.ContentTypes() {
		mt := &MediaType{}
		if f, err := c.SchemaFor(ct); err == nil {
			mt.Schema = schemaFromField(f)
		}
		if names := c.ExampleNames(ct); len(names) > 0 {
			examples, _ := c.ExamplesFor(ct)
			mt.Examples = make(map[string]*Example, len(names))
			for _, name := range names {
				mt.Examples[name] = &Example{Value: examples[name]}
			}
		}
		out[ct] = mt
	}
	return out
}

// responseHeaders renders a content descriptor's shared headers. A headers
// reference is expanded against the registry; an unresolved target is
// skipped rather than failing the pass.
func responseHeaders(c *schema.Content, reg *schema.Registry) map[string]*Header {
	var fields []schema.NamedField

	if target, ok := c.HeadersRef(); ok {
		s, found := reg.Get(target)
		if !found {
			return nil
		}
		fields = s.Fields()
	} else {
		fields = c.Headers()
	}

	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]*Header, len(fields))
	for _, nf := range fields {
		fm := nf.Field.ToMap()
		h := &Header{Schema: schemaFromMap(fm)}
		if desc, ok := fm["desc"].(string); ok {
			h.Description = desc
			if h.Schema != nil {
				h.Schema.Description = ""
			}
		}
		if required, _ := fm["required"].(bool); required {
			h.Required = true
		}
		out[nf.Name] = h
	}
	return out
}

// bodyContent renders a record body or response value. Content descriptors
// render fully; a plain string renders as an application/json reference;
// values without the schema capability yield nil and are skipped.
func bodyContent(value any) map[string]*MediaType {
	switch v := value.(type) {
	case *schema.Content:
		return mediaTypes(v)
	case string:
		if v == "" {
			return nil
		}
		return map[string]*MediaType{
			"application/json": {Schema: &SchemaObject{Ref: refPrefix + v}},
		}
	default:
		return nil
	}
}

// operation renders one documentation record into an Operation Object.
func operation(r *rolodex.Route, reg *schema.Registry) *Operation {
	op := &Operation{
		OperationID: r.Name,
		Description: r.Description,
		Tags:        r.Tags,
		Parameters:  parameters(r),
	}

	if content := bodyContent(r.Body); content != nil {
		op.RequestBody = &RequestBody{Content: content}
		if c, ok := r.Body.(*schema.Content); ok {
			op.RequestBody.Description = c.Description()
		}
	}

	if len(r.Responses) > 0 {
		op.Responses = make(map[string]*Response, len(r.Responses))
		for key, value := range r.Responses {
			op.Responses[key] = response(key, value, reg)
		}
	}

	return op
}

// response renders one status entry. The description falls back to the
// HTTP status text, the same default the host framework uses.
func response(key string, value any, reg *schema.Registry) *Response {
	resp := &Response{Description: statusDescription(key)}

	if c, ok := value.(*schema.Content); ok {
		if desc := c.Description(); desc != "" {
			resp.Description = desc
		}
		resp.Headers = responseHeaders(c, reg)
	}
	resp.Content = bodyContent(value)

	return resp
}

func statusDescription(key string) string {
	if key == "default" {
		return "Default response"
	}
	if code, err := strconv.Atoi(key); err == nil {
		if text := http.StatusText(code); text != "" {
			return text
		}
	}
	return key
}

// parameters renders path, query and header parameters. Path parameters
// keep template order; query and header parameters are sorted by name so
// repeated runs yield identical documents.
func parameters(r *rolodex.Route) []*Parameter {
	var params []*Parameter

	for _, pp := range r.PathParams {
		p := paramFromValue(pp.Name, "path", pp.Field)
		p.Required = true
		params = append(params, p)
	}
	params = append(params, sortedParams(r.QueryParams, "query")...)
	params = append(params, sortedParams(r.Headers, "header")...)

	return params
}

func sortedParams(values map[string]any, in string) []*Parameter {
	if len(values) == 0 {
		return nil
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]*Parameter, 0, len(names))
	for _, name := range names {
		params = append(params, paramFromValue(name, in, values[name]))
	}
	return params
}

// paramFromValue renders one parameter. Field descriptors carry their own
// type and description; a plain string is a description on a string-typed
// parameter; anything else renders as an untyped string parameter.
func paramFromValue(name, in string, value any) *Parameter {
	p := &Parameter{Name: name, In: in}

	switch v := value.(type) {
	case schema.Field:
		fm := v.ToMap()
		p.Schema = schemaFromMap(fm)
		if desc, ok := fm["desc"].(string); ok {
			p.Description = desc
			if p.Schema != nil {
				p.Schema.Description = ""
			}
		}
		if required, _ := fm["required"].(bool); required {
			p.Required = true
		}
	case string:
		p.Description = v
		p.Schema = &SchemaObject{Type: "string"}
	default:
		p.Schema = &SchemaObject{Type: "string"}
	}

	return p
}

// assign places an operation on the path item slot for its HTTP verb.
// Unknown verbs are dropped.
func assign(item *PathItem, verb string, op *Operation) {
	switch verb {
	case http.MethodGet:
		item.Get = op
	case http.MethodPut:
		item.Put = op
	case http.MethodPost:
		item.Post = op
	case http.MethodDelete:
		item.Delete = op
	case http.MethodOptions:
		item.Options = op
	case http.MethodHead:
		item.Head = op
	case http.MethodPatch:
		item.Patch = op
	case http.MethodTrace:
		item.Trace = op
	}
}
