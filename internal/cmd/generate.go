package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idsr/indgen/internal/cmdtypes"
	"github.com/idsr/indgen/internal/cmdutil"
	"github.com/idsr/indgen/internal/output"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		pf          cmdutil.PathFlags
		rf          cmdutil.RunFlags
		dryRunFlag  bool
		summaryFlag bool
	)

	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate program indicators from templates",
		Long: `Generate one program indicator per selected disease and incident status
for every configured template, and write them to the output document.

Identifiers are taken in order from the identifier pool. The output file
is only replaced once every indicator has been generated.

Examples:
  # Generate with paths from config or defaults
  indgen generate

  # Use a different snapshot and pool, starting at pool index 24
  indgen generate -m ./export.json --uid-pool ./uid.json --uid-start 24

  # Preview without writing
  indgen generate --dry-run --summary`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runGenerate(c, cfg, &pf, &rf, dryRunFlag, summaryFlag)
		},
	}

	pf.AddTo(c)
	rf.AddTo(c)
	c.Flags().BoolVar(&dryRunFlag, "dry-run", false,
		"Generate without writing the output document")
	c.Flags().BoolVar(&summaryFlag, "summary", false,
		"Print a table of the generated indicators")

	return c
}

func runGenerate(c *cobra.Command, cfg *cmdtypes.GlobalConfig, pf *cmdutil.PathFlags, rf *cmdutil.RunFlags, dryRun, summary bool) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts, err := cmdutil.PrepareRun(cmdutil.PrepareRunOpts{Config: cfg, Paths: pf, Run: rf})
	if err != nil {
		return err
	}

	result, err := cmdutil.ExecuteRun(ctx, opts, cmdutil.ExecuteRunOpts{
		DryRun:      dryRun,
		MetricsFile: rf.MetricsFile,
	})
	if err != nil {
		return err
	}

	out := c.OutOrStdout()
	runLog := output.RunLogger(opts.RunID)
	runLog.Debug(cmdutil.SelectionSummary(result))

	if summary || dryRun {
		cmdutil.WriteSummary(out, result)
	}

	if dryRun {
		runLog.Info("dry run, output not written", "path", opts.OutputPath)
		return nil
	}

	fmt.Fprintln(out, output.FormatCheckmark(
		fmt.Sprintf("Indicators created successfully! Total: %d", len(result.Indicators))))
	runLog.Info("wrote output document", "path", opts.OutputPath, "next-uid-start", result.NextUIDStart)
	return nil
}
