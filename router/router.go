package router

import (
	"net/http"
	"strings"

	"github.com/opsb/rolodex"
	"github.com/opsb/rolodex/schema"
)

// Table is an ordered, documentation-oriented route table. Routes are
// registered through verb helpers and annotated through the returned
// builder; Routes enumerates them in declaration order for a generation
// pass.
//
// Table is not an HTTP router: it records what the application's routes
// look like, not how requests are dispatched.
type Table struct {
	routes []*Route
}

// NewTable returns an empty route table.
func NewTable() *Table {
	return &Table{}
}

// Handle registers a route for an arbitrary verb and returns its builder.
func (t *Table) Handle(verb, path string) *Route {
	r := &Route{verb: verb, path: path}
	t.routes = append(t.routes, r)
	return r
}

// Get registers a GET route.
func (t *Table) Get(path string) *Route {
	return t.Handle(http.MethodGet, path)
}

// Post registers a POST route.
func (t *Table) Post(path string) *Route {
	return t.Handle(http.MethodPost, path)
}

// Put registers a PUT route.
func (t *Table) Put(path string) *Route {
	return t.Handle(http.MethodPut, path)
}

// Patch registers a PATCH route.
func (t *Table) Patch(path string) *Route {
	return t.Handle(http.MethodPatch, path)
}

// Delete registers a DELETE route.
func (t *Table) Delete(path string) *Route {
	return t.Handle(http.MethodDelete, path)
}

// Options registers an OPTIONS route.
func (t *Table) Options(path string) *Route {
	return t.Handle(http.MethodOptions, path)
}

// Head registers a HEAD route.
func (t *Table) Head(path string) *Route {
	return t.Handle(http.MethodHead, path)
}

// Scope returns a registration scope that prefixes paths and applies
// pipelines to every route declared through it. Scopes nest; a nested
// scope appends its prefix and pipelines to its parent's.
func (t *Table) Scope(prefix string, pipelines ...string) *Scope {
	return &Scope{table: t, prefix: prefix, pipelines: pipelines}
}

// Routes enumerates the registered routes in declaration order.
func (t *Table) Routes() []rolodex.RouteEntry {
	entries := make([]rolodex.RouteEntry, len(t.routes))
	for i, r := range t.routes {
		entries[i] = r.entry()
	}
	return entries
}

var _ rolodex.RouteSource = (*Table)(nil)

// Scope is a registration context sharing a path prefix and pipeline set.
type Scope struct {
	table     *Table
	prefix    string
	pipelines []string
}

// Scope returns a nested scope under this one.
func (s *Scope) Scope(prefix string, pipelines ...string) *Scope {
	return &Scope{
		table:     s.table,
		prefix:    s.prefix + prefix,
		pipelines: append(append([]string(nil), s.pipelines...), pipelines...),
	}
}

// Handle registers a route under the scope's prefix and pipelines.
func (s *Scope) Handle(verb, path string) *Route {
	return s.table.Handle(verb, joinPath(s.prefix, path)).PipeThrough(s.pipelines...)
}

// Get registers a GET route under the scope.
func (s *Scope) Get(path string) *Route {
	return s.Handle(http.MethodGet, path)
}

// Post registers a POST route under the scope.
func (s *Scope) Post(path string) *Route {
	return s.Handle(http.MethodPost, path)
}

// Put registers a PUT route under the scope.
func (s *Scope) Put(path string) *Route {
	return s.Handle(http.MethodPut, path)
}

// Patch registers a PATCH route under the scope.
func (s *Scope) Patch(path string) *Route {
	return s.Handle(http.MethodPatch, path)
}

// Delete registers a DELETE route under the scope.
func (s *Scope) Delete(path string) *Route {
	return s.Handle(http.MethodDelete, path)
}

func joinPath(prefix, path string) string {
	if prefix == "" {
		return path
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(path, "/")
}

// Route is a registered route under annotation. All builder methods
// return the route for chaining; the annotation is read once, when the
// table is enumerated.
type Route struct {
	verb      string
	path      string
	name      string
	pipelines []string
	ann       rolodex.Annotation
}

// Name sets the route name, used as the operation identifier.
func (r *Route) Name(name string) *Route {
	r.name = name
	return r
}

// PipeThrough appends pipeline identifiers. Order matters: later
// pipelines win when their defaults collide.
func (r *Route) PipeThrough(pipelines ...string) *Route {
	r.pipelines = append(r.pipelines, pipelines...)
	return r
}

// Description sets the route description: a plain string or a
// locale-keyed map of strings.
func (r *Route) Description(desc any) *Route {
	r.ann.Description = desc
	return r
}

// Header documents a request header. The value is a schema.Field
// descriptor or a plain string description.
func (r *Route) Header(name string, value any) *Route {
	if r.ann.Headers == nil {
		r.ann.Headers = map[string]any{}
	}
	r.ann.Headers[name] = value
	return r
}

// QueryParam documents a query parameter. The value is a schema.Field
// descriptor or a plain string description.
func (r *Route) QueryParam(name string, value any) *Route {
	if r.ann.QueryParams == nil {
		r.ann.QueryParams = map[string]any{}
	}
	r.ann.QueryParams[name] = value
	return r
}

// PathParam overrides the field spec of a path template parameter.
func (r *Route) PathParam(name string, f schema.Field) *Route {
	if r.ann.PathParams == nil {
		r.ann.PathParams = map[string]schema.Field{}
	}
	r.ann.PathParams[name] = f
	return r
}

// Body sets the request body descriptor: a *schema.Content or the name
// of a registered schema.
func (r *Route) Body(body any) *Route {
	r.ann.Body = body
	return r
}

// Response documents a response under a status code key ("200",
// "default"). The value is a *schema.Content, a registered schema name,
// or nil for a bodyless response.
func (r *Route) Response(key string, value any) *Route {
	if r.ann.Responses == nil {
		r.ann.Responses = map[string]any{}
	}
	r.ann.Responses[key] = value
	return r
}

// Tags appends documentation tags.
func (r *Route) Tags(tags ...string) *Route {
	r.ann.Tags = append(r.ann.Tags, tags...)
	return r
}

// Meta attaches an opaque metadata value, available to route filters.
func (r *Route) Meta(key string, value any) *Route {
	if r.ann.Metadata == nil {
		r.ann.Metadata = map[string]any{}
	}
	r.ann.Metadata[key] = value
	return r
}

func (r *Route) entry() rolodex.RouteEntry {
	ann := r.ann
	return rolodex.RouteEntry{
		Path:       r.path,
		Verb:       r.verb,
		Name:       r.name,
		Pipelines:  append([]string(nil), r.pipelines...),
		Annotation: &ann,
	}
}
