package main

import (
	"github.com/spf13/cobra"

	"github.com/schemats/schemats/internal/fetch"
)

func newFetchCommand() *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Prefetch the schema corpus into the local cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			logger.Infow("corpus available",
				"dir", corpus.Dir,
				"fetched", corpus.Fetched,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to schemats config file")
	cmd.Flags().StringVar(&opts.source, "source", "", "Schema corpus source (overrides config)")
	cmd.Flags().StringVar(&opts.revision, "revision", "", "Pinned corpus revision (overrides config)")
	cmd.Flags().CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity")

	return cmd
}
