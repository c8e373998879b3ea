package schema

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSameDocumentPointer(t *testing.T) {
	store := NewStore(MapSource{
		"root.json": []byte(`{
			"definitions": {"Pos": {"type": "array"}},
			"properties": {"pos": {"$ref": "#/definitions/Pos"}}
		}`),
	})
	root, err := store.Load("root.json")
	require.NoError(t, err)
	ctx := Context{Node: root, Path: "root.json"}

	resolved, ok, err := NewResolver(store).Resolve("#/definitions/Pos", ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"array"}, resolved.Node.TypeNames())
	assert.Equal(t, ctx, resolved.Doc)
}

func TestResolveRootReference(t *testing.T) {
	store := NewStore(MapSource{
		"root.json": []byte(`{"type": "object"}`),
	})
	root, err := store.Load("root.json")
	require.NoError(t, err)
	ctx := Context{Node: root, Path: "root.json"}

	resolved, ok, err := NewResolver(store).Resolve("#", ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, root, resolved.Node)
}

func TestResolveCrossFile(t *testing.T) {
	store := NewStore(MapSource{
		"source/components.schema.json": []byte(`{"properties": {}}`),
		"source/geometry.schema.json": []byte(`{
			"definitions": {"Vec3": {"type": "array"}}
		}`),
	})
	root, err := store.Load("source/components.schema.json")
	require.NoError(t, err)
	ctx := Context{Node: root, Path: "source/components.schema.json"}
	resolver := NewResolver(store)

	t.Run("whole document", func(t *testing.T) {
		resolved, ok, err := resolver.Resolve("geometry.schema.json", ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "source/geometry.schema.json", resolved.Doc.Path)
		assert.Same(t, resolved.Node, resolved.Doc.Node)
	})

	t.Run("with fragment", func(t *testing.T) {
		resolved, ok, err := resolver.Resolve("geometry.schema.json#/definitions/Vec3", ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []string{"array"}, resolved.Node.TypeNames())
		assert.Equal(t, "source/geometry.schema.json", resolved.Doc.Path)
	})

	t.Run("missing fragment target", func(t *testing.T) {
		_, ok, err := resolver.Resolve("geometry.schema.json#/definitions/Nope", ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestResolvePathNormalization(t *testing.T) {
	store := NewStore(MapSource{
		"a/entity.json": []byte(`{"properties": {}}`),
		"b/item.json":   []byte(`{"properties": {}}`),
		"shared/common.json": []byte(`{
			"definitions": {"Id": {"type": "string"}}
		}`),
	})
	resolver := NewResolver(store)

	fromA, err := store.Load("a/entity.json")
	require.NoError(t, err)
	fromB, err := store.Load("b/item.json")
	require.NoError(t, err)

	// Two distinct relative spellings of the same target must land on
	// the same memoized document.
	r1, ok, err := resolver.Resolve("../shared/common.json#/definitions/Id",
		Context{Node: fromA, Path: "a/entity.json"})
	require.NoError(t, err)
	require.True(t, ok)
	r2, ok, err := resolver.Resolve("./../shared/common.json#/definitions/Id",
		Context{Node: fromB, Path: "b/item.json"})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Same(t, r1.Doc.Node, r2.Doc.Node)
	assert.Equal(t, "shared/common.json", r1.Doc.Path)
	assert.Equal(t, r1.Doc.Path, r2.Doc.Path)
}

func TestResolveMissingDocumentDegrades(t *testing.T) {
	store := NewStore(MapSource{
		"root.json": []byte(`{"properties": {}}`),
	})
	root, err := store.Load("root.json")
	require.NoError(t, err)

	_, ok, err := NewResolver(store).Resolve("gone.json#/definitions/X",
		Context{Node: root, Path: "root.json"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveCorruptDocumentFails(t *testing.T) {
	store := NewStore(MapSource{
		"root.json":   []byte(`{"properties": {}}`),
		"broken.json": []byte(`{"definitions": `),
	})
	root, err := store.Load("root.json")
	require.NoError(t, err)

	_, ok, err := NewResolver(store).Resolve("broken.json#/definitions/X",
		Context{Node: root, Path: "root.json"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaParse))
	assert.False(t, ok)
}

func TestResolveEmptyRef(t *testing.T) {
	store := NewStore(MapSource{"root.json": []byte(`{}`)})
	root, err := store.Load("root.json")
	require.NoError(t, err)

	_, ok, err := NewResolver(store).Resolve("", Context{Node: root, Path: "root.json"})
	require.NoError(t, err)
	assert.False(t, ok)
}
