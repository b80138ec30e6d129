package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsb/rolodex"
	"github.com/opsb/rolodex/schema"
)

func TestSchemaFromField(t *testing.T) {
	t.Run("primitive kinds", func(t *testing.T) {
		tests := []struct {
			kind   schema.Kind
			typ    string
			format string
		}{
			{schema.String, "string", ""},
			{schema.Integer, "integer", ""},
			{schema.Number, "number", ""},
			{schema.Boolean, "boolean", ""},
			{schema.UUID, "string", "uuid"},
			{schema.Date, "string", "date"},
			{schema.DateTime, "string", "date-time"},
		}
		for _, tt := range tests {
			obj := schemaFromField(schema.Primitive(tt.kind))
			require.NotNil(t, obj, "kind %s", tt.kind)
			assert.Equal(t, tt.typ, obj.Type)
			assert.Equal(t, tt.format, obj.Format)
		}
	})

	t.Run("description", func(t *testing.T) {
		obj := schemaFromField(schema.Primitive(schema.String).Description("a name"))
		require.NotNil(t, obj)
		assert.Equal(t, "a name", obj.Description)
	})

	t.Run("ref", func(t *testing.T) {
		obj := schemaFromField(schema.Ref("User"))
		require.NotNil(t, obj)
		assert.Equal(t, "#/components/schemas/User", obj.Ref)
		assert.Empty(t, obj.Type)
	})

	t.Run("list of primitive", func(t *testing.T) {
		obj := schemaFromField(schema.List(schema.Primitive(schema.Integer)))
		require.NotNil(t, obj)
		assert.Equal(t, "array", obj.Type)
		require.NotNil(t, obj.Items)
		assert.Equal(t, "integer", obj.Items.Type)
	})

	t.Run("list of refs becomes oneOf items", func(t *testing.T) {
		obj := schemaFromField(schema.List(schema.Ref("Cat"), schema.Ref("Dog")))
		require.NotNil(t, obj)
		assert.Equal(t, "array", obj.Type)
		require.NotNil(t, obj.Items)
		require.Len(t, obj.Items.OneOf, 2)
		assert.Equal(t, "#/components/schemas/Cat", obj.Items.OneOf[0].Ref)
		assert.Equal(t, "#/components/schemas/Dog", obj.Items.OneOf[1].Ref)
	})

	t.Run("one_of union", func(t *testing.T) {
		obj := schemaFromField(schema.OneOf(
			schema.Primitive(schema.String),
			schema.Ref("User"),
		))
		require.NotNil(t, obj)
		require.Len(t, obj.OneOf, 2)
		assert.Equal(t, "string", obj.OneOf[0].Type)
		assert.Equal(t, "#/components/schemas/User", obj.OneOf[1].Ref)
	})

	t.Run("single variant one_of inlines", func(t *testing.T) {
		obj := schemaFromField(schema.OneOf(schema.Primitive(schema.Boolean)))
		require.NotNil(t, obj)
		assert.Empty(t, obj.OneOf)
		assert.Equal(t, "boolean", obj.Type)
	})
}

func TestComponentSchema(t *testing.T) {
	s := schema.New("User").
		Description("A user account").
		Field("id", schema.Primitive(schema.UUID).Required()).
		Field("name", schema.Primitive(schema.String).Required()).
		Field("email", schema.Primitive(schema.String)).
		MustBuild()

	obj := componentSchema(s)
	assert.Equal(t, "object", obj.Type)
	assert.Equal(t, "A user account", obj.Description)
	require.Len(t, obj.Properties, 3)
	assert.Equal(t, "string", obj.Properties["id"].Type)
	assert.Equal(t, "uuid", obj.Properties["id"].Format)
	assert.Equal(t, []string{"id", "name"}, obj.Required)
}

func TestMediaTypes(t *testing.T) {
	content := schema.NewContent().
		Schema("application/json", schema.Ref("User")).
		Example("application/json", "alice", map[string]any{"name": "Alice"}).
		Schema("application/xml", schema.Primitive(schema.String)).
		MustBuild()

	mts := mediaTypes(content)
	require.Len(t, mts, 2)

	jsonMT := mts["application/json"]
	require.NotNil(t, jsonMT)
	assert.Equal(t, "#/components/schemas/User", jsonMT.Schema.Ref)
	require.Contains(t, jsonMT.Examples, "alice")
	assert.Equal(t, map[string]any{"name": "Alice"}, jsonMT.Examples["alice"].Value)

	xmlMT := mts["application/xml"]
	require.NotNil(t, xmlMT)
	assert.Equal(t, "string", xmlMT.Schema.Type)
	assert.Empty(t, xmlMT.Examples)
}

func TestResponseHeaders(t *testing.T) {
	reg := schema.NewRegistry()
	require.NoError(t, reg.Add(schema.New("RateLimitHeaders").
		Field("X-Rate-Limit", schema.Primitive(schema.Integer).Description("Requests remaining")).
		MustBuild()))

	t.Run("inline headers", func(t *testing.T) {
		content := schema.NewContent().
			Header("X-Request-ID", schema.Primitive(schema.UUID).Required()).
			Schema("application/json", schema.Ref("User")).
			MustBuild()

		headers := responseHeaders(content, reg)
		require.Len(t, headers, 1)
		h := headers["X-Request-ID"]
		require.NotNil(t, h)
		assert.True(t, h.Required)
		assert.Equal(t, "uuid", h.Schema.Format)
	})

	t.Run("headers ref expands against registry", func(t *testing.T) {
		content := schema.NewContent().
			HeadersRef("RateLimitHeaders").
			Schema("application/json", schema.Ref("User")).
			MustBuild()

		headers := responseHeaders(content, reg)
		require.Len(t, headers, 1)
		h := headers["X-Rate-Limit"]
		require.NotNil(t, h)
		assert.Equal(t, "Requests remaining", h.Description)
		assert.Equal(t, "integer", h.Schema.Type)
	})

	t.Run("unresolved headers ref is skipped", func(t *testing.T) {
		content := schema.NewContent().
			HeadersRef("Missing").
			Schema("application/json", schema.Ref("User")).
			MustBuild()

		assert.Nil(t, responseHeaders(content, reg))
	})
}

func TestResponse(t *testing.T) {
	reg := schema.NewRegistry()

	t.Run("status text fallback", func(t *testing.T) {
		resp := response("404", nil, reg)
		assert.Equal(t, "Not Found", resp.Description)
		assert.Empty(t, resp.Content)
	})

	t.Run("default key", func(t *testing.T) {
		resp := response("default", nil, reg)
		assert.Equal(t, "Default response", resp.Description)
	})

	t.Run("content description overrides", func(t *testing.T) {
		content := schema.NewContent().
			Description("The requested user").
			Schema("application/json", schema.Ref("User")).
			MustBuild()

		resp := response("200", content, reg)
		assert.Equal(t, "The requested user", resp.Description)
		require.Contains(t, resp.Content, "application/json")
	})

	t.Run("string value is a json ref", func(t *testing.T) {
		resp := response("201", "User", reg)
		assert.Equal(t, "Created", resp.Description)
		require.Contains(t, resp.Content, "application/json")
		assert.Equal(t, "#/components/schemas/User", resp.Content["application/json"].Schema.Ref)
	})
}

func TestParameters(t *testing.T) {
	cfg := &rolodex.Config{}
	r := rolodex.NewRoute(rolodex.RouteEntry{
		Path: "/users/{id:uuid}/posts/{slug}",
		Verb: "get",
		Annotation: &rolodex.Annotation{
			QueryParams: map[string]any{
				"page":  schema.Primitive(schema.Integer).Description("Page number"),
				"limit": schema.Primitive(schema.Integer),
			},
			Headers: map[string]any{
				"X-Tenant-ID": "Tenant selector",
			},
		},
	}, cfg)

	params := parameters(r)
	require.Len(t, params, 5)

	// Path params keep template order and are required.
	assert.Equal(t, "id", params[0].Name)
	assert.Equal(t, "path", params[0].In)
	assert.True(t, params[0].Required)
	assert.Equal(t, "uuid", params[0].Schema.Format)
	assert.Equal(t, "slug", params[1].Name)

	// Query params sorted by name.
	assert.Equal(t, "limit", params[2].Name)
	assert.Equal(t, "query", params[2].In)
	assert.Equal(t, "page", params[3].Name)
	assert.Equal(t, "Page number", params[3].Description)

	// Header param from a plain string description.
	assert.Equal(t, "X-Tenant-ID", params[4].Name)
	assert.Equal(t, "header", params[4].In)
	assert.Equal(t, "Tenant selector", params[4].Description)
	assert.Equal(t, "string", params[4].Schema.Type)
}

func TestAssign(t *testing.T) {
	item := &PathItem{}
	op := &Operation{OperationID: "get-user"}
	assign(item, "GET", op)
	assign(item, "DELETE", &Operation{OperationID: "delete-user"})
	assign(item, "BOGUS", &Operation{})

	assert.Same(t, op, item.Get)
	require.NotNil(t, item.Delete)
	assert.Nil(t, item.Post)
}
