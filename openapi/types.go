package openapi

// Document is the root of a rendered OpenAPI v3.0 document.
//
// See: https://spec.openapis.org/oas/v3.0.3#openapi-object
type Document struct {
	OpenAPI    string               `json:"openapi" yaml:"openapi"`
	Info       Info                 `json:"info" yaml:"info"`
	Servers    []Server             `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths" yaml:"paths"`
	Components *Components          `json:"components,omitempty" yaml:"components,omitempty"`
	Tags       []Tag                `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Info provides metadata about the API.
//
// See: https://spec.openapis.org/oas/v3.0.3#info-object
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// Server represents a server base URL.
//
// See: https://spec.openapis.org/oas/v3.0.3#server-object
type Server struct {
	URL string `json:"url" yaml:"url"`
}

// PathItem describes the operations available on a single path.
//
// See: https://spec.openapis.org/oas/v3.0.3#path-item-object
type PathItem struct {
	Get     *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put     *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post    *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
	Trace   *Operation `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// Operation describes a single API operation on a path.
//
// See: https://spec.openapis.org/oas/v3.0.3#operation-object
type Operation struct {
	Tags        []string             `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string               `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters  []*Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody         `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]*Response `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// Parameter describes a single operation parameter. The "in" field holds
// the parameter location: "query", "header" or "path".
//
// See: https://spec.openapis.org/oas/v3.0.3#parameter-object
type Parameter struct {
	Name        string        `json:"name" yaml:"name"`
	In          string        `json:"in" yaml:"in"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      *SchemaObject `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// RequestBody describes a single request body.
//
// See: https://spec.openapis.org/oas/v3.0.3#request-body-object
type RequestBody struct {
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// Response describes a single response from an API operation. The
// description field is required by the specification.
//
// See: https://spec.openapis.org/oas/v3.0.3#response-object
type Response struct {
	Description string                `json:"description" yaml:"description"`
	Headers     map[string]*Header    `json:"headers,omitempty" yaml:"headers,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType describes one content-type variant of a body.
//
// See: https://spec.openapis.org/oas/v3.0.3#media-type-object
type MediaType struct {
	Schema   *SchemaObject       `json:"schema,omitempty" yaml:"schema,omitempty"`
	Examples map[string]*Example `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Example represents a named example value.
//
// See: https://spec.openapis.org/oas/v3.0.3#example-object
type Example struct {
	Value any `json:"value,omitempty" yaml:"value,omitempty"`
}

// Header describes a single response header.
//
// See: https://spec.openapis.org/oas/v3.0.3#header-object
type Header struct {
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      *SchemaObject `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// SchemaObject is the subset of the OpenAPI Schema Object the renderer
// emits: references, primitives with formats, arrays, objects and oneOf
// unions.
//
// See: https://spec.openapis.org/oas/v3.0.3#schema-object
type SchemaObject struct {
	Ref         string                   `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string                   `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string                   `json:"format,omitempty" yaml:"format,omitempty"`
	Description string                   `json:"description,omitempty" yaml:"description,omitempty"`
	Items       *SchemaObject            `json:"items,omitempty" yaml:"items,omitempty"`
	Properties  map[string]*SchemaObject `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required    []string                 `json:"required,omitempty" yaml:"required,omitempty"`
	OneOf       []*SchemaObject          `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
}

// Components holds the reusable schema objects referenced from operations.
//
// See: https://spec.openapis.org/oas/v3.0.3#components-object
type Components struct {
	Schemas map[string]*SchemaObject `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// Tag adds metadata to a tag used by operations.
//
// See: https://spec.openapis.org/oas/v3.0.3#tag-object
type Tag struct {
	Name string `json:"name" yaml:"name"`
}
