// Package router provides the in-repo route table: an ordered set of
// routes registered through verb helpers and annotated through a fluent
// builder.
//
//	table := router.NewTable()
//
//	api := table.Scope("/api", "api")
//	api.Get("/users/{id:uuid}").
//	    Name("getUser").
//	    Description("Fetch a single user").
//	    QueryParam("expand", schema.Primitive(schema.String)).
//	    Response("200", userResponse).
//	    Tags("users")
//
// Table satisfies the generation pipeline's route source contract; any
// other enumerable route table can replace it.
//
// Path templates use {name} or {name:macro} placeholders. Macros type
// the resulting path parameter (uuid, int, float, date, slug, alpha,
// alphanum, hex, domain); unknown macros fall back to string.
package router
