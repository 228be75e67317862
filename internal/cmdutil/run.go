package cmdutil

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/idsr/indgen/internal/cmdtypes"
	oerrors "github.com/idsr/indgen/internal/errors"
	"github.com/idsr/indgen/internal/metrics"
	"github.com/idsr/indgen/internal/output"
	"github.com/idsr/indgen/internal/pipeline"
)

// PrepareRunOpts holds the inputs for PrepareRun.
type PrepareRunOpts struct {
	// Config is the global configuration populated at startup.
	Config *cmdtypes.GlobalConfig
	Paths  *PathFlags
	Run    *RunFlags
}

// PrepareRun validates configuration, resolves file locations and builds
// the pipeline options shared by generate and diff.
//
// On failure it returns an *ExitError with the appropriate exit code and
// Printed flag.
func PrepareRun(opts PrepareRunOpts) (pipeline.Options, error) {
	if opts.Config == nil {
		return pipeline.Options{}, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("configuration not loaded")}
	}

	cfg, err := opts.Config.RequireConfig()
	if err != nil {
		PrintRunError("configuration invalid", err)
		return pipeline.Options{}, &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}

	var paths PathFlags
	if opts.Paths != nil {
		paths = *opts.Paths
	}
	resolved := paths.Resolve(cfg)

	output.Debug("resolved paths",
		"metadata", resolved.Metadata.Value,
		"metadata-source", resolved.Metadata.Source,
		"uid-pool", resolved.UIDPool.Value,
		"uid-pool-source", resolved.UIDPool.Source,
		"output", resolved.Output.Value,
		"output-source", resolved.Output.Source,
	)

	runOpts := pipeline.OptionsFromConfig(cfg, resolved)
	runOpts.RunID = uuid.NewString()
	if opts.Run != nil && opts.Run.UIDStart >= 0 {
		runOpts.UIDStart = opts.Run.UIDStart
	}
	return runOpts, nil
}

// ExecuteRunOpts controls ExecuteRun.
type ExecuteRunOpts struct {
	// DryRun builds indicators without writing the output document.
	DryRun bool

	// MetricsFile, when set, receives the run metrics in text format.
	MetricsFile string
}

// ExecuteRun runs the pipeline behind a spinner and records run metrics.
// On failure it prints the error and returns an *ExitError with Printed set.
func ExecuteRun(ctx context.Context, opts pipeline.Options, exec ExecuteRunOpts) (*pipeline.Result, error) {
	rec := metrics.NewRecorder()
	opts.Metrics = rec
	started := time.Now()

	title := "Generating program indicators"
	if exec.DryRun {
		title = "Building program indicators"
	}

	var result *pipeline.Result
	err := output.RunWithSpinner(ctx, title, func() error {
		var runErr error
		if exec.DryRun {
			result, runErr = pipeline.Build(ctx, opts)
		} else {
			result, runErr = pipeline.Run(ctx, opts)
		}
		return runErr
	})

	rec.Finish(started, err == nil)
	if exec.MetricsFile != "" {
		if werr := rec.WriteTextfile(exec.MetricsFile); werr != nil {
			output.Warn("writing metrics file", "path", exec.MetricsFile, "error", werr)
		}
	}

	if err != nil {
		PrintRunError("generation failed", err)
		return nil, &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}
	return result, nil
}
