package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idsr/indgen/internal/cmdtypes"
	"github.com/idsr/indgen/internal/config"
	oerrors "github.com/idsr/indgen/internal/errors"
	"github.com/idsr/indgen/internal/metadata"
	"github.com/idsr/indgen/internal/output"
	"github.com/idsr/indgen/internal/uid"
)

// NewUIDCmd creates the uid command group.
func NewUIDCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "uid",
		Short: "Identifier pool management",
		Long:  `Commands for creating identifier pools used by generate.`,
	}

	c.AddCommand(NewUIDGenerateCmd(cfg))

	return c
}

// NewUIDGenerateCmd creates the uid generate command.
func NewUIDGenerateCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		countFlag    int
		outFlag      string
		metadataFlag string
		forceFlag    bool
	)

	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate a pool of identifiers",
		Long: `Generate a pool of random 11-character identifiers.

Identifiers already used in a metadata snapshot can be excluded with
--metadata. Without --out the pool is printed to stdout.

Examples:
  # Write 500 identifiers to uid.json
  indgen uid generate --count 500 --out uid.json

  # Avoid clashes with an existing export
  indgen uid generate --count 500 --out uid.json --metadata export.json`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runUIDGenerate(c, countFlag, outFlag, metadataFlag, forceFlag)
		},
	}

	c.Flags().IntVarP(&countFlag, "count", "n", 100, "Number of identifiers to generate")
	c.Flags().StringVar(&outFlag, "out", "", "Pool file to write (default: stdout)")
	c.Flags().StringVarP(&metadataFlag, "metadata", "m", "", "Snapshot whose identifiers must not be reused")
	c.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite an existing pool file")

	return c
}

func runUIDGenerate(c *cobra.Command, count int, out, metadataPath string, force bool) error {
	if count <= 0 {
		return oerrors.NewExitError(
			fmt.Errorf("--count must be positive, got %d: %w", count, oerrors.ErrConfiguration),
			oerrors.ExitConfigurationError,
		)
	}

	var exclude []string
	if metadataPath != "" {
		md, err := metadata.Load(metadataPath)
		if err != nil {
			return oerrors.NewExitError(err, oerrors.ExitCodeFromError(err))
		}
		exclude = md.Identifiers()
		output.Debug("excluding snapshot identifiers", "count", len(exclude))
	}

	codes, err := uid.Generate(count, exclude...)
	if err != nil {
		return oerrors.NewExitError(err, oerrors.ExitGeneralError)
	}

	if out == "" {
		data, err := json.MarshalIndent(uid.File{Codes: codes}, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding pool: %w", err)
		}
		fmt.Fprintln(c.OutOrStdout(), string(data))
		return nil
	}

	exists, err := config.FileExists(out)
	if err != nil {
		return oerrors.NewExitError(oerrors.NewIOError(out, err), oerrors.ExitIOError)
	}
	if exists && !force {
		return oerrors.NewExitError(
			fmt.Errorf("pool file already exists at %s (use --force to overwrite)", out),
			oerrors.ExitGeneralError,
		)
	}

	if err := uid.WritePool(out, codes); err != nil {
		return oerrors.NewExitError(err, oerrors.ExitCodeFromError(err))
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(fmt.Sprintf("Wrote %d identifiers to %s", len(codes), out)))
	return nil
}
