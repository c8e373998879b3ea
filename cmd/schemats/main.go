// Command schemats compiles a versioned JSON Schema corpus into
// TypeScript declaration text.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "0.3.0-dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "schemats:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "schemats",
		Short:         "Compile a JSON Schema corpus into TypeScript declarations",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBuildCommand(), newFetchCommand())
	return root
}

// newLogger builds the CLI logger. Verbosity 0 logs warnings and above,
// 1 adds info, 2+ adds debug.
func newLogger(verbosity int) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	switch {
	case verbosity <= 0:
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case verbosity == 1:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
