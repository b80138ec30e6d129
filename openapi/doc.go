// Package openapi renders documentation records into OpenAPI v3.0.3
// documents, in JSON or YAML.
//
// See: https://spec.openapis.org/oas/v3.0.3
//
// The package implements the generation pipeline's processor contract:
// the document streams out in three stages. Init emits everything up to
// the paths section, each Process call emits the path item for one path
// group, and Finalize closes the paths section and emits the components
// and tags collected during the pass.
//
// # Usage
//
// Wire a processor into a generation config and run the pass:
//
//	cfg := &rolodex.Config{
//	    Title:     "My API",
//	    Version:   "1.0.0",
//	    Source:    table,
//	    Registry:  registry,
//	    Processor: openapi.NewProcessor(openapi.FormatJSON),
//	    Writer:    &writer.FileWriter{Path: "openapi.json"},
//	}
//	result, err := rolodex.Generate(ctx, cfg)
//
// # Schema Mapping
//
// Field descriptors map to Schema Objects as follows:
//
//   - string/integer/number/boolean -> the matching JSON type
//   - uuid     -> {type: string, format: uuid}
//   - date     -> {type: string, format: date}
//   - datetime -> {type: string, format: date-time}
//   - list     -> {type: array, items: ...}
//   - one_of   -> {oneOf: [...]}
//   - ref      -> {$ref: "#/components/schemas/Name"}
//
// # Components
//
// Schemas referenced by route bodies and responses are resolved
// transitively against the registry and emitted under
// #/components/schemas, sorted by name. References with no registered
// schema are reported by the generation pass and left out of the
// document.
//
// # Parameters
//
// Path parameters keep the order of the path template and are always
// required. Query and header parameters are sorted by name so repeated
// runs over the same route table produce byte-identical documents.
//
// # Response Descriptions
//
// Response descriptions default to the HTTP status text of the response
// key ("200" -> "OK"); a content descriptor's description overrides the
// default.
package openapi
