package rolodex

import (
	"regexp"
	"strings"

	"github.com/opsb/rolodex/schema"
)

// PathParam is a parameter parsed from a route path template, typed by its
// macro (e.g. "{id:uuid}") or overridden by the route's annotation.
type PathParam struct {
	Name  string
	Field schema.Field
}

// Route is the immutable documentation record for one route. It is built
// once per route during a generation pass and never shared across routes
// or mutated afterwards.
type Route struct {
	Path        string
	Verb        string
	Name        string
	Pipelines   []string
	Description string
	Headers     map[string]any
	QueryParams map[string]any
	PathParams  []PathParam
	Body        any
	Responses   map[string]any
	Tags        []string
	Metadata    map[string]any
}

// pathMacroKinds maps path template macros to primitive field kinds.
// Unknown macros fall back to string.
var pathMacroKinds = map[string]schema.Kind{
	"uuid":     schema.UUID,
	"int":      schema.Integer,
	"float":    schema.Number,
	"date":     schema.Date,
	"slug":     schema.String,
	"alpha":    schema.String,
	"alphanum": schema.String,
	"hex":      schema.String,
	"domain":   schema.String,
}

// pathVarRegexp matches route variables in the form {name} or {name:macro}.
var pathVarRegexp = regexp.MustCompile(`\{([^}]+)\}`)

// NewRoute builds the documentation record for one route entry. The
// construction is a pure function of the entry and the config: pipe-through
// defaults are merged left to right, then the route's own annotations are
// overlaid on top.
func NewRoute(entry RouteEntry, cfg *Config) *Route {
	ann := entry.Annotation
	if ann == nil {
		ann = &Annotation{}
	}

	merged := MergePipeThrough(entry.Pipelines, cfg.PipeThrough)
	path, params := parsePath(entry.Path, ann.PathParams)

	r := &Route{
		Path:        path,
		Verb:        strings.ToUpper(entry.Verb),
		Name:        entry.Name,
		Pipelines:   append([]string(nil), entry.Pipelines...),
		Description: ResolveDescription(ann.Description, cfg.Locale),
		Headers:     mergeSection(merged["headers"], ann.Headers),
		QueryParams: mergeSection(merged["query_params"], ann.QueryParams),
		PathParams:  params,
		Body:        mergeBody(merged["body"], ann.Body),
		Tags:        append([]string(nil), ann.Tags...),
		Metadata:    ann.Metadata,
	}

	if len(ann.Responses) > 0 {
		r.Responses = make(map[string]any, len(ann.Responses))
		for key, value := range ann.Responses {
			r.Responses[key] = value
		}
	}

	return r
}

// ResolveDescription coerces an annotation description to a plain string.
// A locale-keyed map is resolved against the configured locale; a lookup
// miss or an absent value yields the empty string, never an error.
func ResolveDescription(desc any, locale string) string {
	switch d := desc.(type) {
	case string:
		return d
	case map[string]string:
		return d[locale]
	case map[string]any:
		if s, ok := d[locale].(string); ok {
			return s
		}
	}
	return ""
}

// Refs collects the schema names referenced by the record's body and
// responses. Values exposing the schema.RefSource capability contribute
// their reference sets; plain strings are treated as direct schema names;
// anything else is skipped rather than failing the pass.
func (r *Route) Refs() schema.RefSet {
	refs := schema.RefSet{}
	collectValueRefs(r.Body, refs)
	for _, value := range r.Responses {
		collectValueRefs(value, refs)
	}
	return refs
}

func collectValueRefs(value any, refs schema.RefSet) {
	switch v := value.(type) {
	case nil:
	case string:
		if v != "" {
			refs.Add(v)
		}
	case schema.RefSource:
		refs.Union(v.Refs())
	}
}

// mergeBody resolves the record body from the pipe-through default and the
// route's own declaration. Map fragments deep-merge; a descriptor or ref
// name replaces the default outright.
func mergeBody(defaults, own any) any {
	ownMap, ownIsMap := own.(map[string]any)
	defMap, defIsMap := defaults.(map[string]any)

	switch {
	case own == nil:
		return defaults
	case ownIsMap && defIsMap:
		return deepMerge(deepMerge(map[string]any{}, defMap), ownMap)
	default:
		return own
	}
}

// parsePath extracts typed parameters from a route path template and
// normalizes the template to plain {name} placeholders. Annotation
// overrides replace the macro-derived field spec by parameter name.
func parsePath(tpl string, overrides map[string]schema.Field) (string, []PathParam) {
	var params []PathParam

	path := pathVarRegexp.ReplaceAllStringFunc(tpl, func(match string) string {
		inner := match[1 : len(match)-1]
		name, macro, _ := strings.Cut(inner, ":")

		field, ok := overrides[name]
		if !ok {
			kind := schema.String
			if k, known := pathMacroKinds[macro]; known {
				kind = k
			}
			field = schema.Primitive(kind).Required()
		}

		params = append(params, PathParam{Name: name, Field: field})
		return "{" + name + "}"
	})

	return path, params
}
