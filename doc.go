// Package rolodex generates API specification documents from an
// application's route table and per-route documentation annotations.
//
// A generation pass is driven by a Config naming a route source, a schema
// registry, a processor and a writer:
//
//	reg := schema.NewRegistry()
//	reg.Add(userSchema, orderSchema)
//
//	table := router.NewTable()
//	table.Get("/users/{id:uuid}").
//	    Name("getUser").
//	    PipeThrough("api").
//	    Description("Fetch a single user").
//	    Response("200", userResponse)
//
//	cfg := &rolodex.Config{
//	    Title:    "Example API",
//	    Version:  "1.0.0",
//	    Source:   table,
//	    Registry: reg,
//	    Processor: openapi.NewProcessor(openapi.FormatJSON),
//	    Writer:    &writer.FileWriter{Path: "openapi.json"},
//	}
//	result, err := rolodex.Generate(ctx, cfg)
//
// The pass enumerates routes, builds one immutable documentation record per
// route on a worker pool, folds the records' schema references into the
// registry's transitive closure, and streams the rendered document to the
// writer: processor prelude, per-path fragments joined by the processor's
// separator, processor closing bytes, then exactly one writer close.
//
// Pipelines name pipe-through bundles configured on the Config: default
// headers, query parameters and body fragments merged left-to-right into
// each record, with the route's own annotations winning over the defaults.
//
// Descriptors come from package schema; the in-repo route table lives in
// package router, the OpenAPI renderer in package openapi, and output sinks
// in package writer. Any value satisfying the RouteSource, Processor and
// Writer interfaces can replace them.
package rolodex
