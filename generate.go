package rolodex

import (
	"context"
	"errors"
	"fmt"

	"github.com/opsb/rolodex/schema"
	"github.com/opsb/rolodex/worker"
)

// Result reports what a completed generation pass produced: the records it
// rendered, the schema closure it resolved, and any reference whose target
// was never registered. Unresolved names are reported, not fatal; it is the
// consumer's call whether a document with dangling references is usable.
type Result struct {
	Routes     []*Route
	Schemas    []*schema.Schema
	Unresolved []string
	Written    int
}

// ErrConfig reports an unusable generation config.
var ErrConfig = errors.New("rolodex: invalid config")

// Generate runs one documentation generation pass. Records are built per
// route on a worker pool (pure, no shared state), reduced single-threaded
// into the registry closure, and rendered through the processor into the
// writer. The pass is fail-fast: any record, processor or writer error
// aborts it and no partial output is considered valid. The writer always
// receives exactly one Close, even on failure.
func Generate(ctx context.Context, cfg *Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	log := cfg.logger()

	entries := cfg.Source.Routes()
	log.Info("building documentation records", "routes", len(entries))

	records, err := worker.Map(ctx, cfg.Workers, entries, func(_ context.Context, entry RouteEntry) (*Route, error) {
		return NewRoute(entry, cfg), nil
	})
	if err != nil {
		return nil, err
	}
	records = applyFilters(records, cfg.Filters)

	// Reduce step: fold every record's references into one accumulator,
	// then resolve the transitive closure against the registry.
	roots := schema.RefSet{}
	for _, record := range records {
		roots.Union(record.Refs())
	}
	schemas, unresolved := cfg.registry().Closure(roots)
	if len(unresolved) > 0 {
		log.Warn("unresolved schema references", "names", unresolved)
	}

	result := &Result{
		Routes:     records,
		Schemas:    schemas,
		Unresolved: unresolved,
	}

	if err := render(result, cfg); err != nil {
		return nil, err
	}

	log.Info("generation complete", "paths", len(groupByPath(records)), "bytes", result.Written)
	return result, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg == nil:
		return fmt.Errorf("%w: nil", ErrConfig)
	case cfg.Source == nil:
		return fmt.Errorf("%w: route source required", ErrConfig)
	case cfg.Processor == nil:
		return fmt.Errorf("%w: processor required", ErrConfig)
	case cfg.Writer == nil:
		return fmt.Errorf("%w: writer required", ErrConfig)
	}
	return nil
}

func applyFilters(records []*Route, filters []RouteFilter) []*Route {
	if len(filters) == 0 {
		return records
	}
	kept := records[:0]
	for _, record := range records {
		drop := false
		for _, filter := range filters {
			if filter(record) {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, record)
		}
	}
	return kept
}

// groupByPath aggregates records by path, preserving first-seen path order
// and route order within each group.
func groupByPath(records []*Route) []PathGroup {
	index := make(map[string]int)
	var groups []PathGroup
	for _, record := range records {
		i, ok := index[record.Path]
		if !ok {
			i = len(groups)
			index[record.Path] = i
			groups = append(groups, PathGroup{Path: record.Path})
		}
		groups[i].Routes = append(groups[i].Routes, record)
	}
	return groups
}

// render streams the document: writer init, processor prelude, per-path
// fragments joined by the processor separator, processor closing bytes,
// writer close. Single writer, strict ordering, exactly one Close.
func render(result *Result, cfg *Config) (err error) {
	if err := cfg.Writer.Init(cfg); err != nil {
		return fmt.Errorf("writer init: %w", err)
	}
	defer func() {
		// A failed pass must not leave partial output behind; sinks that
		// stage output expose Abort to discard it before the final Close.
		if err != nil {
			if a, ok := cfg.Writer.(interface{ Abort() }); ok {
				a.Abort()
			}
		}
		closeErr := cfg.Writer.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("writer close: %w", closeErr)
		}
	}()

	write := func(p []byte) error {
		if len(p) == 0 {
			return nil
		}
		if err := cfg.Writer.Write(p); err != nil {
			return fmt.Errorf("writer: %w", err)
		}
		result.Written += len(p)
		return nil
	}

	prelude, err := cfg.Processor.Init(cfg)
	if err != nil {
		return fmt.Errorf("processor init: %w", err)
	}
	if err := write(prelude); err != nil {
		return err
	}

	reg := cfg.registry()
	sep := cfg.Processor.Separator()
	for i, group := range groupByPath(result.Routes) {
		fragment, err := cfg.Processor.Process(group, reg, cfg)
		if err != nil {
			return fmt.Errorf("processor %s: %w", group.Path, err)
		}
		if i > 0 {
			if err := write(sep); err != nil {
				return err
			}
		}
		if err := write(fragment); err != nil {
			return err
		}
	}

	closing, err := cfg.Processor.Finalize(cfg)
	if err != nil {
		return fmt.Errorf("processor finalize: %w", err)
	}
	return write(closing)
}
