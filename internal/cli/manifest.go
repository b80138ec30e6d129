package cli

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/opsb/rolodex"
	"github.com/opsb/rolodex/router"
	"github.com/opsb/rolodex/schema"
)

// Manifest is the YAML document the generate command consumes: API info,
// pipeline defaults, schema declarations and the route table.
type Manifest struct {
	Title       string                         `yaml:"title"`
	Description string                         `yaml:"description"`
	Version     string                         `yaml:"version"`
	Locale      string                         `yaml:"locale"`
	Servers     []string                       `yaml:"servers"`
	PipeThrough map[string]rolodex.PipeThrough `yaml:"pipe_through"`
	Schemas     map[string]schemaSpec          `yaml:"schemas"`
	Routes      []routeSpec                    `yaml:"routes"`
}

type schemaSpec struct {
	Description string               `yaml:"description"`
	Fields      map[string]fieldSpec `yaml:"fields"`
}

// fieldSpec is one field declaration. A bare scalar is shorthand: a known
// kind name declares a typed field, any other string is a description.
type fieldSpec struct {
	Type     string      `yaml:"type"`
	Ref      string      `yaml:"ref"`
	Of       []fieldSpec `yaml:"of"`
	Desc     string      `yaml:"desc"`
	Required bool        `yaml:"required"`
}

func (f *fieldSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		if _, ok := fieldKinds[s]; ok {
			f.Type = s
		} else {
			f.Desc = s
		}
		return nil
	}
	type plain fieldSpec
	return node.Decode((*plain)(f))
}

var fieldKinds = map[string]schema.Kind{
	"string":   schema.String,
	"integer":  schema.Integer,
	"number":   schema.Number,
	"boolean":  schema.Boolean,
	"uuid":     schema.UUID,
	"date":     schema.Date,
	"datetime": schema.DateTime,
}

type routeSpec struct {
	Path        string               `yaml:"path"`
	Verb        string               `yaml:"verb"`
	Name        string               `yaml:"name"`
	PipeThrough []string             `yaml:"pipe_through"`
	Description any                  `yaml:"description"`
	Headers     map[string]fieldSpec `yaml:"headers"`
	QueryParams map[string]fieldSpec `yaml:"query_params"`
	Body        string               `yaml:"body"`
	Responses   map[string]any       `yaml:"responses"`
	Tags        []string             `yaml:"tags"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newUsageError(fmt.Sprintf("read manifest %q: %v", path, err))
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, newUsageError(fmt.Sprintf("parse manifest %q: %v", path, err))
	}
	return &m, nil
}

// Config translates the manifest into a generation config. The processor
// and writer are left for the caller to wire.
func (m *Manifest) Config() (*rolodex.Config, error) {
	reg := schema.NewRegistry()
	for _, name := range sortedKeys(m.Schemas) {
		s, err := buildSchema(name, m.Schemas[name])
		if err != nil {
			return nil, err
		}
		if err := reg.Add(s); err != nil {
			return nil, err
		}
	}

	table := router.NewTable()
	for i, rs := range m.Routes {
		if rs.Path == "" || rs.Verb == "" {
			return nil, newUsageError(fmt.Sprintf("route %d: path and verb are required", i))
		}
		route := table.Handle(rs.Verb, rs.Path).
			Name(rs.Name).
			PipeThrough(rs.PipeThrough...).
			Description(rs.Description).
			Tags(rs.Tags...)

		if rs.Body != "" {
			route.Body(rs.Body)
		}
		if err := applyParams(route.Header, rs.Headers); err != nil {
			return nil, fmt.Errorf("route %s %s: %w", rs.Verb, rs.Path, err)
		}
		if err := applyParams(route.QueryParam, rs.QueryParams); err != nil {
			return nil, fmt.Errorf("route %s %s: %w", rs.Verb, rs.Path, err)
		}
		for key, value := range rs.Responses {
			switch v := value.(type) {
			case nil:
				route.Response(key, nil)
			case string:
				route.Response(key, v)
			default:
				return nil, newUsageError(fmt.Sprintf("route %s %s: response %q: want a schema name or null", rs.Verb, rs.Path, key))
			}
		}
	}

	return &rolodex.Config{
		Title:       m.Title,
		Description: m.Description,
		Version:     m.Version,
		Locale:      m.Locale,
		Servers:     m.Servers,
		PipeThrough: m.PipeThrough,
		Source:      table,
		Registry:    reg,
	}, nil
}

// buildSchema converts one schema declaration. Fields build in name order
// so repeated runs over the same manifest yield identical documents.
func buildSchema(name string, spec schemaSpec) (*schema.Schema, error) {
	b := schema.New(name).Description(spec.Description)
	for _, fieldName := range sortedKeys(spec.Fields) {
		f, err := toField(spec.Fields[fieldName])
		if err != nil {
			return nil, newUsageError(fmt.Sprintf("schema %s, field %s: %v", name, fieldName, err))
		}
		b.Field(fieldName, f)
	}
	s, err := b.Build()
	if err != nil {
		return nil, newUsageError(fmt.Sprintf("schema %s: %v", name, err))
	}
	return s, nil
}

func toField(spec fieldSpec) (schema.Field, error) {
	var f schema.Field

	switch spec.Type {
	case "ref":
		if spec.Ref == "" {
			return f, fmt.Errorf("ref requires a target")
		}
		f = schema.Ref(spec.Ref)
	case "list", "one_of":
		variants := make([]schema.Field, 0, len(spec.Of))
		for _, vs := range spec.Of {
			v, err := toField(vs)
			if err != nil {
				return f, err
			}
			variants = append(variants, v)
		}
		if spec.Type == "list" {
			f = schema.List(variants...)
		} else {
			f = schema.OneOf(variants...)
		}
	case "":
		f = schema.Primitive(schema.String)
	default:
		kind, ok := fieldKinds[spec.Type]
		if !ok {
			return f, fmt.Errorf("unknown type %q", spec.Type)
		}
		f = schema.Primitive(kind)
	}

	if spec.Desc != "" {
		f = f.Description(spec.Desc)
	}
	if spec.Required {
		f = f.Required()
	}
	return f, nil
}

// applyParams feeds parameter declarations into a route builder method. A
// description-only spec passes through as a plain string.
func applyParams(set func(string, any) *router.Route, params map[string]fieldSpec) error {
	for _, name := range sortedKeys(params) {
		spec := params[name]
		if spec.Type == "" && spec.Ref == "" && len(spec.Of) == 0 && !spec.Required && spec.Desc != "" {
			set(name, spec.Desc)
			continue
		}
		f, err := toField(spec)
		if err != nil {
			return newUsageError(fmt.Sprintf("parameter %s: %v", name, err))
		}
		set(name, f)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
