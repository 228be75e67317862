// Package cmdutil provides shared command utilities for the generation
// commands. It centralizes flag group management, run orchestration and
// output formatting helpers.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/idsr/indgen/internal/config"
)

// PathFlags holds the file location flags shared by generate and diff.
type PathFlags struct {
	Metadata string
	UIDPool  string
	Output   string
}

// AddTo registers the path flags on the given cobra command.
func (f *PathFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Metadata, "metadata", "m", "",
		"Metadata snapshot to read (env: INDGEN_METADATA)")
	cmd.Flags().StringVar(&f.UIDPool, "uid-pool", "",
		"Identifier pool file (env: INDGEN_UID_POOL)")
	cmd.Flags().StringVarP(&f.Output, "output", "o", "",
		"Output document (env: INDGEN_OUTPUT)")
}

// Resolve resolves the flag values against env, config and defaults.
func (f *PathFlags) Resolve(cfg *config.Config) config.ResolvedPaths {
	return config.ResolvePaths(config.PathFlags{
		Metadata: f.Metadata,
		Output:   f.Output,
		UIDPool:  f.UIDPool,
	}, cfg)
}

// RunFlags holds flags controlling a generation run.
type RunFlags struct {
	UIDStart    int
	MetricsFile string
}

// AddTo registers the run flags on the given cobra command.
func (f *RunFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.UIDStart, "uid-start", -1,
		"First identifier pool index to use (default: from config)")
	cmd.Flags().StringVar(&f.MetricsFile, "metrics-file", "",
		"Write run metrics in Prometheus text format to this file")
}
