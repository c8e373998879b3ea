// Package config loads the schemats configuration file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Config represents the schemats configuration.
type Config struct {
	Source     SourceConfig `json:"source" yaml:"source"`
	RootSchema string       `json:"rootSchema" yaml:"rootSchema"`
	Output     string       `json:"output" yaml:"output"`

	// Strict promotes compiler warnings to errors; Quiet suppresses them.
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty"`
	Quiet  bool `json:"quiet,omitempty" yaml:"quiet,omitempty"`
}

// SourceConfig identifies the schema corpus to compile.
type SourceConfig struct {
	// URL is a go-getter source string: a local directory, a git URL, or
	// an archive URL.
	URL string `json:"url" yaml:"url"`

	// Revision pins the corpus to a fixed ref so output is reproducible.
	Revision string `json:"revision,omitempty" yaml:"revision,omitempty"`

	// CacheDir holds fetched corpora keyed by source and revision.
	CacheDir string `json:"cacheDir,omitempty" yaml:"cacheDir,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			CacheDir: ".schemats-cache",
		},
		RootSchema: "source/components.schema.json",
		Output:     "dist/components.d.ts",
	}
}

// Load reads and parses a schemats config file. JSON is the primary
// format; .yaml/.yml files are accepted as well.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %q", path)
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse config file %q", path)
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config in %q", path)
	}
	return &config, nil
}

// Validate checks the config for logical errors.
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return errors.New("source.url must not be empty")
	}
	if c.RootSchema == "" {
		return errors.New("rootSchema must not be empty")
	}
	if c.Output == "" {
		return errors.New("output must not be empty")
	}
	ext := filepath.Ext(c.Output)
	if ext != ".ts" {
		return errors.Newf("output must have a .ts extension, got %q", ext)
	}
	return nil
}
