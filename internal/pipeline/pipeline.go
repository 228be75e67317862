// Package pipeline runs a generation: load the snapshot, select options,
// expand templates and write the output document.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idsr/indgen/internal/config"
	oerrors "github.com/idsr/indgen/internal/errors"
	"github.com/idsr/indgen/internal/generator"
	"github.com/idsr/indgen/internal/metadata"
	"github.com/idsr/indgen/internal/metrics"
	"github.com/idsr/indgen/internal/output"
	"github.com/idsr/indgen/internal/selection"
	"github.com/idsr/indgen/internal/uid"
)

// Stages reported in metrics and errors.
const (
	StageLoad     = "load"
	StageSelect   = "select"
	StageGenerate = "generate"
	StageWrite    = "write"
)

// Options configures a run.
type Options struct {
	// RunID tags the run's log lines.
	RunID string

	MetadataPath string
	UIDPoolPath  string
	OutputPath   string

	// UIDStart is the first pool index to use.
	UIDStart int

	Templates  []string
	Criteria   selection.Criteria
	Attributes generator.Attributes

	// Clock overrides time.Now for created/lastUpdated.
	Clock func() time.Time

	// Metrics receives run statistics when set.
	Metrics *metrics.Recorder
}

// OptionsFromConfig builds run options from configuration and resolved paths.
func OptionsFromConfig(cfg *config.Config, paths config.ResolvedPaths) Options {
	return Options{
		MetadataPath: paths.Metadata.Value,
		UIDPoolPath:  paths.UIDPool.Value,
		OutputPath:   paths.Output.Value,
		UIDStart:     cfg.UIDPool.Start,
		Templates:    cfg.Templates,
		Criteria: selection.Criteria{
			DiseaseOptionSet: cfg.OptionSets.Disease,
			StatusOptionSet:  cfg.OptionSets.Status,
			Diseases:         cfg.Vocabulary.Diseases,
			Statuses:         cfg.Vocabulary.Statuses,
			Strict:           cfg.Matching.StrictNames,
		},
		Attributes: generator.Attributes{
			Disease: cfg.Attributes.Disease,
			Status:  cfg.Attributes.Status,
		},
	}
}

// Validate checks that all required options are set.
func (o Options) Validate() error {
	switch {
	case o.MetadataPath == "":
		return oerrors.Wrap(oerrors.ErrConfiguration, "metadata path is required")
	case o.UIDPoolPath == "":
		return oerrors.Wrap(oerrors.ErrConfiguration, "identifier pool path is required")
	case len(o.Templates) == 0:
		return oerrors.Wrap(oerrors.ErrConfiguration, "at least one template is required")
	}
	return nil
}

// Result is the outcome of a run.
type Result struct {
	Indicators []metadata.Indicator
	Selection  selection.Selection

	// IDsUsed is how many pool entries the run consumed.
	IDsUsed int

	// NextUIDStart is the pool index a following run should start at.
	NextUIDStart int

	// Written is set once the output document has been persisted.
	Written bool
}

// Boundaries returns the number of generated boundary records.
func (r *Result) Boundaries() int {
	n := 0
	for _, ind := range r.Indicators {
		n += len(ind.AnalyticsPeriodBoundaries)
	}
	return n
}

// Build runs every phase except the write and returns the generated
// indicators.
//
// Phase sequence:
//  1. LOAD:     metadata.Load() and uid.LoadPool(), pool checked against the snapshot
//  2. SELECT:   selection.Select() → disease and status options
//  3. GENERATE: generator.Generate() → []metadata.Indicator
//
// Any error aborts the run.
func Build(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := runLogger(opts.RunID)

	// Phase 1: LOAD
	md, err := metadata.Load(opts.MetadataPath)
	if err != nil {
		return nil, fail(opts, StageLoad, err)
	}
	pool, err := uid.LoadPool(opts.UIDPoolPath, opts.UIDStart)
	if err != nil {
		return nil, fail(opts, StageLoad, err)
	}
	if taken := pool.Conflicts(md.Identifiers()); len(taken) > 0 {
		return nil, fail(opts, StageLoad, &oerrors.DetailError{
			Type:     "identifier pool overlaps snapshot",
			Message:  fmt.Sprintf("%d unused pool entries already exist in the snapshot, first %q", len(taken), taken[0]),
			Location: opts.UIDPoolPath,
			Hint:     "Regenerate the pool with `indgen uid generate --metadata " + opts.MetadataPath + "`",
			Cause:    oerrors.ErrConfiguration,
		})
	}
	logger.Debug("snapshot loaded",
		"options", len(md.Options),
		"programIndicators", len(md.ProgramIndicators),
		"pool", pool.Remaining(),
	)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Phase 2: SELECT
	sel, err := selection.Select(md, opts.Criteria)
	if err != nil {
		return nil, fail(opts, StageSelect, err)
	}
	logger.Debug("options selected",
		"diseases", len(sel.Diseases),
		"statuses", len(sel.Statuses),
	)
	for _, attr := range []string{opts.Attributes.Disease, opts.Attributes.Status} {
		if _, ok := md.Attribute(attr); !ok && len(md.TrackedEntityAttributes) > 0 {
			logger.Warn("tracked entity attribute not in snapshot", "attribute", attr)
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Phase 3: GENERATE
	var genOpts []generator.Option
	if opts.Clock != nil {
		genOpts = append(genOpts, generator.WithClock(opts.Clock))
	}
	gen := generator.New(opts.Attributes, pool, genOpts...)

	indicators, err := gen.Generate(opts.Templates, md, sel)
	if err != nil {
		return nil, fail(opts, StageGenerate, err)
	}

	result := &Result{
		Indicators:   indicators,
		Selection:    sel,
		IDsUsed:      pool.Used(),
		NextUIDStart: pool.Position(),
	}
	logger.Debug("indicators generated",
		"indicators", len(indicators),
		"boundaries", result.Boundaries(),
		"identifiers", result.IDsUsed,
	)

	if opts.Metrics != nil {
		for _, tmpl := range opts.Templates {
			opts.Metrics.Indicators(tmpl, sel.Combinations())
		}
		opts.Metrics.Boundaries(result.Boundaries())
		opts.Metrics.Identifiers(result.IDsUsed)
	}

	return result, nil
}

// Run builds the indicators and writes them to opts.OutputPath. The output
// file is only touched after generation has fully succeeded.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.OutputPath == "" {
		return nil, oerrors.Wrap(oerrors.ErrConfiguration, "output path is required")
	}

	result, err := Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Phase 4: WRITE
	doc := metadata.Document{ProgramIndicators: result.Indicators}
	if err := metadata.WriteFile(opts.OutputPath, doc); err != nil {
		return nil, fail(opts, StageWrite, err)
	}
	result.Written = true

	runLogger(opts.RunID).Debug("output written", "path", opts.OutputPath)
	return result, nil
}

func fail(opts Options, stage string, err error) error {
	if opts.Metrics != nil {
		opts.Metrics.Failure(stage)
	}
	output.Debug("run failed", "stage", stage, "error", err)
	return err
}

func runLogger(runID string) *log.Logger {
	if runID == "" {
		runID = "-"
	}
	return output.RunLogger(runID)
}
