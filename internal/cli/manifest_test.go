package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsb/rolodex/schema"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rolodex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManifest(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, ErrUsage)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadManifest(writeManifest(t, "routes: [unclosed"))
		assert.ErrorIs(t, err, ErrUsage)
	})

	t.Run("full document", func(t *testing.T) {
		m, err := LoadManifest(writeManifest(t, testManifest))
		require.NoError(t, err)
		assert.Equal(t, "Example API", m.Title)
		assert.Contains(t, m.PipeThrough, "api")
		assert.Contains(t, m.Schemas, "User")
		require.Len(t, m.Routes, 1)
	})
}

func TestManifestConfig(t *testing.T) {
	t.Run("schemas registered", func(t *testing.T) {
		m, err := LoadManifest(writeManifest(t, testManifest))
		require.NoError(t, err)

		cfg, err := m.Config()
		require.NoError(t, err)

		s, ok := cfg.Registry.Get("User")
		require.True(t, ok)
		assert.Equal(t, "A user account", s.Description())

		id, ok := s.Field("id")
		require.True(t, ok)
		assert.Contains(t, id.ToMap(), "required")
	})

	t.Run("routes enumerate", func(t *testing.T) {
		m, err := LoadManifest(writeManifest(t, testManifest))
		require.NoError(t, err)

		cfg, err := m.Config()
		require.NoError(t, err)

		entries := cfg.Source.Routes()
		require.Len(t, entries, 1)
		assert.Equal(t, "getUser", entries[0].Name)
		assert.Equal(t, []string{"api"}, entries[0].Pipelines)
		require.NotNil(t, entries[0].Annotation)
		assert.Equal(t, "User", entries[0].Annotation.Responses["200"])
		assert.Nil(t, entries[0].Annotation.Responses["404"])
	})

	t.Run("route without verb", func(t *testing.T) {
		m := &Manifest{Routes: []routeSpec{{Path: "/x"}}}
		_, err := m.Config()
		assert.ErrorIs(t, err, ErrUsage)
	})

	t.Run("unknown field type", func(t *testing.T) {
		m := &Manifest{Schemas: map[string]schemaSpec{
			"Bad": {Fields: map[string]fieldSpec{"x": {Type: "nonsense"}}},
		}}
		_, err := m.Config()
		assert.ErrorIs(t, err, ErrUsage)
	})
}

func TestToField(t *testing.T) {
	t.Run("primitive with modifiers", func(t *testing.T) {
		f, err := toField(fieldSpec{Type: "uuid", Desc: "identifier", Required: true})
		require.NoError(t, err)
		m := f.ToMap()
		assert.Equal(t, "uuid", m["type"])
		assert.Equal(t, "identifier", m["desc"])
		assert.Equal(t, true, m["required"])
	})

	t.Run("ref", func(t *testing.T) {
		f, err := toField(fieldSpec{Type: "ref", Ref: "User"})
		require.NoError(t, err)
		target, ok := f.IsRef()
		require.True(t, ok)
		assert.Equal(t, "User", target)
	})

	t.Run("ref without target", func(t *testing.T) {
		_, err := toField(fieldSpec{Type: "ref"})
		assert.Error(t, err)
	})

	t.Run("list of variants", func(t *testing.T) {
		f, err := toField(fieldSpec{Type: "list", Of: []fieldSpec{{Type: "string"}, {Type: "ref", Ref: "Tag"}}})
		require.NoError(t, err)
		assert.Equal(t, schema.RefSet{"Tag": {}}, f.Refs())
	})

	t.Run("empty type defaults to string", func(t *testing.T) {
		f, err := toField(fieldSpec{Desc: "free text"})
		require.NoError(t, err)
		assert.Equal(t, "string", f.ToMap()["type"])
	})
}

func TestFieldSpecScalarShorthand(t *testing.T) {
	m, err := LoadManifest(writeManifest(t, `
schemas:
  Thing:
    fields:
      id: uuid
routes:
  - path: /things
    verb: get
    query_params:
      expand: Related records to embed
`))
	require.NoError(t, err)

	// Known kind name becomes a typed field.
	assert.Equal(t, "uuid", m.Schemas["Thing"].Fields["id"].Type)

	// Anything else is a description.
	qp := m.Routes[0].QueryParams["expand"]
	assert.Empty(t, qp.Type)
	assert.Equal(t, "Related records to embed", qp.Desc)

	cfg, err := m.Config()
	require.NoError(t, err)
	entries := cfg.Source.Routes()
	require.Len(t, entries, 1)
	assert.Equal(t, "Related records to embed", entries[0].Annotation.QueryParams["expand"])
}
