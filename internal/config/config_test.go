package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ".schemats-cache", cfg.Source.CacheDir)
	assert.Equal(t, "source/components.schema.json", cfg.RootSchema)
	assert.Equal(t, "dist/components.d.ts", cfg.Output)
	assert.False(t, cfg.Strict)
	assert.False(t, cfg.Quiet)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "schemats.json", `{
		"source": {
			"url": "https://github.com/example/schemas.git",
			"revision": "v1.21.0"
		},
		"strict": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/example/schemas.git", cfg.Source.URL)
	assert.Equal(t, "v1.21.0", cfg.Source.Revision)
	assert.True(t, cfg.Strict)
	// Unset fields keep their defaults.
	assert.Equal(t, "source/components.schema.json", cfg.RootSchema)
	assert.Equal(t, "dist/components.d.ts", cfg.Output)
	assert.Equal(t, ".schemats-cache", cfg.Source.CacheDir)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "schemats.yaml", `
source:
  url: ./local-schemas
rootSchema: schemas/root.json
output: gen/components.d.ts
quiet: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./local-schemas", cfg.Source.URL)
	assert.Equal(t, "schemas/root.json", cfg.RootSchema)
	assert.Equal(t, "gen/components.d.ts", cfg.Output)
	assert.True(t, cfg.Quiet)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "schemats.json", `{"source": `)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoadInvalid(t *testing.T) {
	path := writeConfig(t, "schemats.json", `{"output": "dist/components.d.ts"}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source.url")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.Source.URL = "./schemas"
		return cfg
	}

	t.Run("ok", func(t *testing.T) {
		cfg := valid()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing url", func(t *testing.T) {
		cfg := valid()
		cfg.Source.URL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing root schema", func(t *testing.T) {
		cfg := valid()
		cfg.RootSchema = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing output", func(t *testing.T) {
		cfg := valid()
		cfg.Output = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("wrong output extension", func(t *testing.T) {
		cfg := valid()
		cfg.Output = "dist/components.js"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), ".ts")
	})
}
