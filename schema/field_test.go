package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveKinds(t *testing.T) {
	for _, kind := range []Kind{String, Integer, Number, Boolean, UUID, Date, DateTime} {
		t.Run(string(kind), func(t *testing.T) {
			f := Primitive(kind)
			require.NoError(t, f.Validate())
			assert.Equal(t, map[string]any{"type": string(kind)}, f.ToMap())
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		assert.Error(t, Primitive("decimal").Validate())
	})
}

func TestFieldModifiers(t *testing.T) {
	base := Primitive(String)

	f := base.Description("display name").Required()
	assert.Equal(t, map[string]any{
		"type":     "string",
		"desc":     "display name",
		"required": true,
	}, f.ToMap())

	// Modifiers return copies; the original is untouched.
	assert.Equal(t, map[string]any{"type": "string"}, base.ToMap())
}

func TestRefField(t *testing.T) {
	f := Ref("User")
	require.NoError(t, f.Validate())

	target, ok := f.IsRef()
	assert.True(t, ok)
	assert.Equal(t, "User", target)

	assert.Equal(t, map[string]any{"type": "ref", "ref": "User"}, f.ToMap())

	t.Run("empty target", func(t *testing.T) {
		assert.Error(t, Ref("").Validate())
	})
}

func TestListField(t *testing.T) {
	t.Run("homogeneous", func(t *testing.T) {
		f := List(Ref("Order"))
		require.NoError(t, f.Validate())
		assert.Equal(t, map[string]any{
			"type": "list",
			"of":   []any{map[string]any{"type": "ref", "ref": "Order"}},
		}, f.ToMap())
	})

	t.Run("heterogeneous", func(t *testing.T) {
		f := List(Primitive(String), Ref("User"))
		require.NoError(t, f.Validate())
		assert.Equal(t, []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "ref", "ref": "User"},
		}, f.ToMap()["of"])
	})

	t.Run("empty", func(t *testing.T) {
		assert.Error(t, List().Validate())
	})

	t.Run("malformed variant propagates", func(t *testing.T) {
		assert.Error(t, List(Ref("")).Validate())
	})
}

func TestOneOfField(t *testing.T) {
	f := OneOf(Primitive(String), Primitive(Integer))
	require.NoError(t, f.Validate())
	assert.Equal(t, "one_of", f.ToMap()["type"])

	assert.Error(t, OneOf().Validate())
}

func TestFieldRefs(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  []string
	}{
		{"primitive", Primitive(String), nil},
		{"ref", Ref("User"), []string{"User"}},
		{"list", List(Ref("A"), Ref("B"), Primitive(String)), []string{"A", "B"}},
		{"one_of", OneOf(Ref("A"), List(Ref("C"))), []string{"A", "C"}},
		{"duplicates collapse", List(Ref("A"), Ref("A")), []string{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.Refs().Sorted())
		})
	}
}

func TestFieldToMapIdempotent(t *testing.T) {
	f := List(Ref("User"), Primitive(UUID).Required()).Description("owners")
	assert.Equal(t, f.ToMap(), f.ToMap())
}
