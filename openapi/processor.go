package openapi

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/opsb/rolodex"
	"github.com/opsb/rolodex/schema"
)

// Format selects the serialization of the generated document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Version is the OpenAPI specification version of generated documents.
const Version = "3.0.3"

// Processor renders documentation records into an OpenAPI document. It
// streams the document in three stages: Init emits everything up to the
// paths section, each Process call emits one path item, and Finalize
// closes the paths section and emits components and tags.
//
// The processor accumulates the schema references and tag names seen
// across Process calls; a single Processor value covers one generation
// pass and must not be reused.
type Processor struct {
	format Format

	refs schema.RefSet
	tags schema.RefSet
}

// NewProcessor returns a processor emitting the given format.
func NewProcessor(format Format) *Processor {
	return &Processor{
		format: format,
		refs:   schema.RefSet{},
		tags:   schema.RefSet{},
	}
}

var _ rolodex.Processor = (*Processor)(nil)

// Init emits the document head: the openapi version, the info block and
// the server list, opening the paths section.
func (p *Processor) Init(cfg *rolodex.Config) ([]byte, error) {
	head := headDoc{
		OpenAPI: Version,
		Info: Info{
			Title:       cfg.Title,
			Description: cfg.Description,
			Version:     cfg.Version,
		},
	}
	for _, url := range cfg.Servers {
		head.Servers = append(head.Servers, Server{URL: url})
	}

	if p.format == FormatYAML {
		out, err := yaml.Marshal(head)
		if err != nil {
			return nil, fmt.Errorf("openapi: marshal head: %w", err)
		}
		return append(out, []byte("paths:\n")...), nil
	}

	out, err := json.Marshal(head)
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal head: %w", err)
	}
	// Reopen the object so path fragments can stream into it.
	out = out[:len(out)-1]
	return append(out, []byte(`,"paths":{`)...), nil
}

// headDoc is the document prefix emitted by Init. It mirrors Document up
// to the paths section so the head serializes with the same field order.
type headDoc struct {
	OpenAPI string   `json:"openapi" yaml:"openapi"`
	Info    Info     `json:"info" yaml:"info"`
	Servers []Server `json:"servers,omitempty" yaml:"servers,omitempty"`
}

// Process emits the path item for one path group and records the schema
// references and tags its routes carry.
func (p *Processor) Process(group rolodex.PathGroup, reg *schema.Registry, cfg *rolodex.Config) ([]byte, error) {
	item := &PathItem{}
	for _, r := range group.Routes {
		assign(item, r.Verb, operation(r, reg))

		p.refs.Union(r.Refs())
		for _, tag := range r.Tags {
			p.tags.Add(tag)
		}
	}

	if p.format == FormatYAML {
		fragment, err := yaml.Marshal(map[string]*PathItem{group.Path: item})
		if err != nil {
			return nil, fmt.Errorf("openapi: marshal path %s: %w", group.Path, err)
		}
		return indent(fragment), nil
	}

	key, err := json.Marshal(group.Path)
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal path %s: %w", group.Path, err)
	}
	value, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal path %s: %w", group.Path, err)
	}

	fragment := append(key, ':')
	return append(fragment, value...), nil
}

// Separator joins consecutive path fragments.
func (p *Processor) Separator() []byte {
	if p.format == FormatYAML {
		return nil
	}
	return []byte(",")
}

// Finalize closes the paths section and emits the components and tags
// built from the references seen during the pass. Schemas are resolved
// transitively against the registry; unresolved names are reported by the
// generation pass and simply absent here.
func (p *Processor) Finalize(cfg *rolodex.Config) ([]byte, error) {
	tail := tailDoc{}

	reg := cfg.Registry
	if reg == nil {
		reg = schema.NewRegistry()
	}
	schemas, _ := reg.Closure(p.refs)
	if len(schemas) > 0 {
		tail.Components = &Components{
			Schemas: make(map[string]*SchemaObject, len(schemas)),
		}
		for _, s := range schemas {
			tail.Components.Schemas[s.Name()] = componentSchema(s)
		}
	}
	// Tags collected across the pass render sorted, like components.
	for _, name := range p.tags.Sorted() {
		tail.Tags = append(tail.Tags, Tag{Name: name})
	}

	if p.format == FormatYAML {
		if tail.Components == nil && tail.Tags == nil {
			return nil, nil
		}
		out, err := yaml.Marshal(tail)
		if err != nil {
			return nil, fmt.Errorf("openapi: marshal tail: %w", err)
		}
		return out, nil
	}

	out := []byte("}")
	if tail.Components != nil {
		encoded, err := json.Marshal(tail.Components)
		if err != nil {
			return nil, fmt.Errorf("openapi: marshal components: %w", err)
		}
		out = append(out, []byte(`,"components":`)...)
		out = append(out, encoded...)
	}
	if tail.Tags != nil {
		encoded, err := json.Marshal(tail.Tags)
		if err != nil {
			return nil, fmt.Errorf("openapi: marshal tags: %w", err)
		}
		out = append(out, []byte(`,"tags":`)...)
		out = append(out, encoded...)
	}
	return append(out, '}'), nil
}

// tailDoc is the document suffix emitted by Finalize.
type tailDoc struct {
	Components *Components `json:"components,omitempty" yaml:"components,omitempty"`
	Tags       []Tag       `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// indent shifts a YAML fragment under the paths key.
func indent(fragment []byte) []byte {
	lines := bytes.Split(bytes.TrimRight(fragment, "\n"), []byte("\n"))
	var out []byte
	for _, line := range lines {
		if len(line) > 0 {
			out = append(out, ' ', ' ')
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}
