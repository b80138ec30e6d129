// Package schema provides the declarative descriptor model used to describe
// API payloads: fields, named schema descriptors, and request/response
// content descriptors.
//
// # Fields
//
// A Field describes one value shape. It is either a primitive, a named
// reference to another schema descriptor, a list, or a one-of union:
//
//	schema.Primitive(schema.String).Description("display name")
//	schema.Ref("User")
//	schema.List(schema.Ref("Order"))
//	schema.OneOf(schema.Primitive(schema.String), schema.Ref("User"))
//
// References are weak: a Field stores the target name only, never the
// resolved descriptor, so reference cycles cannot occur at this layer.
// Resolution happens later against a Registry.
//
// # Schema Descriptors
//
// Schema descriptors are built with a mutable builder and frozen by Build
// into an immutable value:
//
//	user, err := schema.New("User").
//	    Description("A user of the system").
//	    Field("id", schema.Primitive(schema.UUID).Required()).
//	    Field("name", schema.Primitive(schema.String)).
//	    Build()
//
// Declaring the same field name twice keeps the last declared spec and the
// original declaration position. This is intentional, not an error.
//
// # Content Descriptors
//
// Content descriptors describe request or response bodies with one or more
// content-type variants. Every content-type-scoped declaration names its
// content type explicitly:
//
//	body, err := schema.NewContent().
//	    Description("The created user").
//	    Schema("application/json", schema.Ref("User")).
//	    Example("application/json", "alice", map[string]any{"name": "Alice"}).
//	    Build()
//
// Content types are reported by ContentTypes in declaration order so that
// generated documents are diffable.
//
// # Serialization and References
//
// ToMap projects a descriptor into a plain nested map; the projection is
// pure and idempotent. Refs walks that map form and collects the set of
// distinct schema names a descriptor touches. The resolver never fails on
// an unknown name; resolution outcomes are the Registry's concern.
package schema
