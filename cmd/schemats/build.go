package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/schemats/schemats/internal/config"
	"github.com/schemats/schemats/internal/diagnostic"
	"github.com/schemats/schemats/internal/fetch"
	"github.com/schemats/schemats/internal/schema"
	"github.com/schemats/schemats/internal/typegen"
)

type buildOptions struct {
	configPath string
	source     string
	revision   string
	rootSchema string
	output     string
	strict     bool
	quiet      bool
	verbosity  int
}

func newBuildCommand() *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Fetch the schema corpus and compile the declaration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to schemats config file")
	cmd.Flags().StringVar(&opts.source, "source", "", "Schema corpus source (overrides config)")
	cmd.Flags().StringVar(&opts.revision, "revision", "", "Pinned corpus revision (overrides config)")
	cmd.Flags().StringVar(&opts.rootSchema, "root", "", "Root schema path inside the corpus (overrides config)")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "Output declaration file (overrides config)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat compiler warnings as errors")
	cmd.Flags().BoolVar(&opts.quiet, "quiet", false, "Suppress compiler warnings")
	cmd.Flags().CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity")

	return cmd
}

func runBuild(cmd *cobra.Command, opts buildOptions) error {
	logger, err := newLogger(opts.verbosity)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	corpus, err := fetch.Resolve(cmd.Context(), cfg.Source.URL, cfg.Source.Revision, cfg.Source.CacheDir, logger)
	if err != nil {
		return err
	}

	store := schema.NewStore(schema.DirSource{Root: corpus.Dir})
	diags := diagnostic.NewCollector(cfg.Strict, cfg.Quiet)
	prov := typegen.Provenance{
		Source:     cfg.Source.URL,
		Revision:   cfg.Source.Revision,
		RootSchema: cfg.RootSchema,
	}

	result, err := typegen.Compile(store, cfg.RootSchema, prov, diags)
	if err != nil {
		return err
	}

	if report := diags.FormatAll(); report != "" {
		fmt.Fprint(cmd.ErrOrStderr(), report)
	}
	if diags.HasErrors() {
		return errors.Newf("compilation failed: %s", diags.Summary())
	}

	if err := writeFileAtomic(cfg.Output, []byte(result.Output)); err != nil {
		return err
	}

	logger.Infow("build complete",
		"components", len(result.Components),
		"output", cfg.Output,
		"issues", diags.Summary(),
	)
	return nil
}

// resolveConfig loads the config file (or defaults) and applies flag
// overrides.
func resolveConfig(opts buildOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		defaults := config.DefaultConfig()
		cfg = &defaults
	}

	if opts.source != "" {
		cfg.Source.URL = opts.source
	}
	if opts.revision != "" {
		cfg.Source.Revision = opts.revision
	}
	if opts.rootSchema != "" {
		cfg.RootSchema = opts.rootSchema
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	if opts.strict {
		cfg.Strict = true
	}
	if opts.quiet {
		cfg.Quiet = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// writeFileAtomic writes the artifact via temp file and rename so a
// failed build never leaves a truncated declaration file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create output directory %s", dir)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "write output temp file %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "rename output file %s", path)
	}
	return nil
}
