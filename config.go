package rolodex

import (
	"io"
	"log/slog"

	"github.com/opsb/rolodex/schema"
)

// RouteSource produces the ordered route entries of the host application.
// Package router provides the in-repo implementation; any enumerable route
// table can satisfy it.
type RouteSource interface {
	Routes() []RouteEntry
}

// RouteEntry is one raw route-table entry: where a request goes and which
// annotation payload documents it.
type RouteEntry struct {
	Path       string
	Verb       string
	Name       string
	Pipelines  []string
	Annotation *Annotation
}

// Annotation is the raw documentation payload attached to a route. All
// fields are optional; absent values render as empty, never as errors.
type Annotation struct {
	// Description is a plain string or a locale-keyed map of strings.
	// A locale map is resolved against Config.Locale; a lookup miss
	// yields an empty description.
	Description any

	// Headers and QueryParams document request parameters. Values are
	// schema.Field descriptors, or plain strings used as descriptions.
	Headers     map[string]any
	QueryParams map[string]any

	// PathParams override the field spec of path template parameters
	// by name.
	PathParams map[string]schema.Field

	// Body is the request body descriptor: a *schema.Content, the name of
	// a registered schema, or nil.
	Body any

	// Responses maps a status code key (e.g. "200", "default") to a
	// *schema.Content, the name of a registered schema, or nil for a
	// bodyless response.
	Responses map[string]any

	Tags     []string
	Metadata map[string]any
}

// Processor renders documentation records into output bytes. Init produces
// the document prelude, Process one fragment per path group, and Finalize
// the closing bytes; fragments are joined with Separator. Implementations
// may accumulate state across Process calls (the OpenAPI processor collects
// referenced schemas for its components section).
type Processor interface {
	Init(cfg *Config) ([]byte, error)
	Process(group PathGroup, reg *schema.Registry, cfg *Config) ([]byte, error)
	Separator() []byte
	Finalize(cfg *Config) ([]byte, error)
}

// PathGroup aggregates the documentation records sharing one path, in route
// declaration order.
type PathGroup struct {
	Path   string
	Routes []*Route
}

// Writer is an output sink. Generate calls Init once, then Write one or
// more times, then Close exactly once, even when the pass fails partway.
type Writer interface {
	Init(cfg *Config) error
	Write(p []byte) error
	Close() error
}

// RouteFilter inspects a built documentation record; a record is dropped
// from the pass when any configured filter returns true.
type RouteFilter func(*Route) bool

// Config holds everything a generation pass needs.
type Config struct {
	// Title, Description and Version populate the document info block.
	Title       string
	Description string
	Version     string

	// Locale selects the variant of locale-keyed route descriptions.
	Locale string

	// Servers lists the base URLs rendered into the document.
	Servers []string

	// PipeThrough maps pipeline identifiers to their default bundles.
	// A nil table disables the feature entirely.
	PipeThrough map[string]PipeThrough

	// Filters drop routes from the pass. Optional.
	Filters []RouteFilter

	// Workers bounds the per-route record construction pool.
	// Zero selects the worker package default.
	Workers int

	// Logger receives progress output. Nil discards it.
	Logger *slog.Logger

	Source    RouteSource
	Registry  *schema.Registry
	Processor Processor
	Writer    Writer
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (c *Config) registry() *schema.Registry {
	if c.Registry != nil {
		return c.Registry
	}
	return schema.NewRegistry()
}
