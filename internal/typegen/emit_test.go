package typegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemats/schemats/internal/diagnostic"
	"github.com/schemats/schemats/internal/schema"
	"github.com/schemats/schemats/internal/testutil"
)

func TestTypeName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"minecraft:behavior.float", "MinecraftBehaviorFloat"},
		{"minecraft:health", "MinecraftHealth"},
		{"hp", "Hp"},
		{"foo_bar-baz2", "FooBarBaz2"},
		{"Already Caps", "AlreadyCaps"},
		{"", "Component"},
		{"___", "Component"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeName(tt.key))
		})
	}
}

func TestRenderHeader(t *testing.T) {
	out := Render(nil, Provenance{
		Source:     "https://example.com/corpus.git",
		Revision:   "v1.2.0",
		RootSchema: "source/components.schema.json",
	})

	assert.True(t, strings.HasPrefix(out, strings.Join([]string{
		"// Code generated by schemats; DO NOT EDIT.",
		"// Source: https://example.com/corpus.git",
		"// Revision: v1.2.0",
		"// Root schema: source/components.schema.json",
		"",
	}, "\n")))
}

func TestRenderOmitsEmptyRevision(t *testing.T) {
	out := Render(nil, Provenance{Source: "local", RootSchema: "root.json"})
	assert.NotContains(t, out, "// Revision:")
}

const compileFixture = `
-- source/components.schema.json --
{
  "properties": {
    "minecraft:health": {
      "title": "Health",
      "description": "Hit points.",
      "type": "object",
      "properties": {
        "value": {"type": "number"},
        "max": {"type": "number"}
      },
      "required": ["value"]
    },
    "minecraft:variant": {
      "enum": ["cold", "warm"]
    },
    "minecraft:position": {"$ref": "geometry.schema.json#/definitions/Vec3"}
  }
}
-- source/geometry.schema.json --
{
  "definitions": {
    "Vec3": {
      "type": "array",
      "items": [{"type": "number"}, {"type": "number"}, {"type": "number"}]
    }
  }
}
`

const compileWant = `// Code generated by schemats; DO NOT EDIT.
// Source: https://example.com/corpus.git
// Revision: v1.2.0
// Root schema: source/components.schema.json

/**
 * Health
 * Hit points.
 */
export type MinecraftHealth = {
  value: number;
  max?: number;
};

export type MinecraftVariant = "cold" | "warm";

export type MinecraftPosition = [number, number, number];

export interface Components {
  "minecraft:health"?: MinecraftHealth;
  "minecraft:variant"?: MinecraftVariant;
  "minecraft:position"?: MinecraftPosition;
  [component: string]: unknown;
}
`

func TestCompile(t *testing.T) {
	store := schema.NewStore(testutil.SourceFromTxtar(t, compileFixture))
	diags := diagnostic.NewCollector(false, false)

	result, err := Compile(store, "source/components.schema.json", Provenance{
		Source:     "https://example.com/corpus.git",
		Revision:   "v1.2.0",
		RootSchema: "source/components.schema.json",
	}, diags)
	require.NoError(t, err)

	assert.Equal(t, compileWant, result.Output)
	assert.Empty(t, diags.Diagnostics())
	require.Len(t, result.Components, 3)
	assert.Equal(t, "minecraft:health", result.Components[0].Key)
	assert.Equal(t, "MinecraftHealth", result.Components[0].Name)
}

func TestCompileIsDeterministic(t *testing.T) {
	prov := Provenance{Source: "local", RootSchema: "source/components.schema.json"}

	run := func() string {
		store := schema.NewStore(testutil.SourceFromTxtar(t, compileFixture))
		result, err := Compile(store, "source/components.schema.json", prov,
			diagnostic.NewCollector(false, false))
		require.NoError(t, err)
		return result.Output
	}

	assert.Equal(t, run(), run())
}

func TestCompileWarnsOnEmptyComponent(t *testing.T) {
	store := schema.NewStore(schema.MapSource{
		"root.json": []byte(`{
			"properties": {"opaque": {"description": "no shape"}}
		}`),
	})
	diags := diagnostic.NewCollector(false, false)

	result, err := Compile(store, "root.json", Provenance{Source: "local", RootSchema: "root.json"}, diags)
	require.NoError(t, err)

	assert.Contains(t, result.Output, "export type Opaque = unknown;")
	require.Len(t, diags.Diagnostics(), 1)
	assert.Equal(t, diagnostic.CategoryComponentEmpty, diags.Diagnostics()[0].Category)
}

func TestCompileMissingRootFails(t *testing.T) {
	store := schema.NewStore(schema.MapSource{})

	_, err := Compile(store, "absent.json", Provenance{}, diagnostic.NewCollector(false, false))
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrSchemaNotFound)
}

func TestCompileStrictPromotesWarnings(t *testing.T) {
	store := schema.NewStore(schema.MapSource{
		"root.json": []byte(`{
			"properties": {"broken": {"$ref": "missing.json#/definitions/X"}}
		}`),
	})
	diags := diagnostic.NewCollector(true, false)

	_, err := Compile(store, "root.json", Provenance{Source: "local", RootSchema: "root.json"}, diags)
	require.NoError(t, err)
	assert.True(t, diags.HasErrors())
}
