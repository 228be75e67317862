package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/idsr/indgen/internal/cmdtypes"
	"github.com/idsr/indgen/internal/cmdutil"
	"github.com/idsr/indgen/internal/diff"
	oerrors "github.com/idsr/indgen/internal/errors"
	"github.com/idsr/indgen/internal/metadata"
	"github.com/idsr/indgen/internal/output"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		pf cmdutil.PathFlags
		rf cmdutil.RunFlags
	)

	c := &cobra.Command{
		Use:   "diff",
		Short: "Compare a fresh generation with the existing output",
		Long: `Generate indicators in memory and compare them with the existing output
document. Indicators are matched by name. Identifiers and timestamps are
ignored since they change on every run.

Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runDiff(c, cfg, &pf, &rf)
		},
	}

	pf.AddTo(c)
	rf.AddTo(c)

	return c
}

func runDiff(c *cobra.Command, cfg *cmdtypes.GlobalConfig, pf *cmdutil.PathFlags, rf *cmdutil.RunFlags) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts, err := cmdutil.PrepareRun(cmdutil.PrepareRunOpts{Config: cfg, Paths: pf, Run: rf})
	if err != nil {
		return err
	}

	result, err := cmdutil.ExecuteRun(ctx, opts, cmdutil.ExecuteRunOpts{
		DryRun:      true,
		MetricsFile: rf.MetricsFile,
	})
	if err != nil {
		return err
	}

	var previous []metadata.Indicator
	doc, err := metadata.LoadDocument(opts.OutputPath)
	switch {
	case err == nil:
		previous = doc.ProgramIndicators
	case errors.Is(err, fs.ErrNotExist):
		output.Debug("no existing output document", "path", opts.OutputPath)
	default:
		cmdutil.PrintRunError("reading existing output failed", err)
		return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}

	changes, err := diff.Compare(previous, result.Indicators, output.IsTTY())
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("comparing documents: %w", err)}
	}

	out := c.OutOrStdout()
	for _, name := range changes.Added {
		fmt.Fprintln(out, output.FormatIndicatorLine(name, output.StatusAdded))
	}
	for _, name := range changes.Removed {
		fmt.Fprintln(out, output.FormatIndicatorLine(name, output.StatusRemoved))
	}
	for _, m := range changes.Modified {
		fmt.Fprintln(out, output.FormatIndicatorLine(m.Name, output.StatusModified))
		fmt.Fprint(out, output.IndentDiff(m.Diff, "    "))
	}
	fmt.Fprintln(out, output.StyleSummary.Render(changes.Summary()))

	return nil
}
