package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idsr/indgen/internal/cmdtypes"
	"github.com/idsr/indgen/internal/config"
	oerrors "github.com/idsr/indgen/internal/errors"
	"github.com/idsr/indgen/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the indgen CLI.`,
	}

	c.AddCommand(NewConfigInitCmd(cfg))
	c.AddCommand(NewConfigVetCmd(cfg))

	return c
}

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var forceFlag bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new indgen configuration file",
		Long: `Create a new indgen configuration file with default values.

The configuration file is created at ~/.indgen/config.yaml by default.
Use --config flag to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, cfg, forceFlag)
		},
	}

	c.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite existing config file")

	return c
}

func runConfigInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	expandedPath, err := config.ExpandPath(cfg.ConfigPath.Value)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.FileExists(expandedPath)
	if err != nil {
		return oerrors.NewExitError(oerrors.NewIOError(expandedPath, err), oerrors.ExitIOError)
	}
	if exists && !force {
		return oerrors.NewExitError(
			fmt.Errorf("config file already exists at %s (use --force to overwrite)", expandedPath),
			oerrors.ExitGeneralError,
		)
	}

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0o755); err != nil {
		return oerrors.NewExitError(oerrors.NewIOError(filepath.Dir(expandedPath), err), oerrors.ExitIOError)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	header := []byte("# indgen configuration\n" +
		"# Environment variables (INDGEN_*) and flags override these values.\n" +
		"# Set a vocabulary list to [] to disable it; null or an absent key uses the defaults.\n\n")
	data = append(header, data...)

	if err := os.WriteFile(expandedPath, data, 0o644); err != nil {
		return oerrors.NewExitError(oerrors.NewIOError(expandedPath, err), oerrors.ExitIOError)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file created: "+expandedPath))
	return nil
}

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the indgen configuration file",
		Long: `Validate the indgen configuration file against the internal schema.

Environment overrides are applied before validation, so this checks the
configuration a run would actually use.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	expandedPath, err := config.ExpandPath(cfg.ConfigPath.Value)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.FileExists(expandedPath)
	if err != nil {
		return oerrors.NewExitError(oerrors.NewIOError(expandedPath, err), oerrors.ExitIOError)
	}
	if !exists {
		return oerrors.NewExitError(
			fmt.Errorf("config file not found: %s: %w", expandedPath, oerrors.ErrNotFound),
			oerrors.ExitConfigurationError,
		)
	}

	if _, err := cfg.RequireConfig(); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			errOut := c.ErrOrStderr()
			fmt.Fprintln(errOut, "Error: config validation failed")
			fmt.Fprintf(errOut, "  File: %s\n\n", expandedPath)
			for _, e := range verrs {
				fmt.Fprintf(errOut, "  %s: %s\n", e.Field, e.Message)
			}
			return &oerrors.ExitError{Code: oerrors.ExitConfigurationError, Err: err, Printed: true}
		}
		return oerrors.NewExitError(err, oerrors.ExitCodeFromError(err))
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file is valid: %s\n", expandedPath)
	return nil
}
