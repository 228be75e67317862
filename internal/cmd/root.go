// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/idsr/indgen/internal/cmdtypes"
	"github.com/idsr/indgen/internal/config"
	"github.com/idsr/indgen/internal/output"
)

// NewRootCmd creates the root command for the indgen CLI.
func NewRootCmd() *cobra.Command {
	var (
		configFlag     string
		verboseFlag    bool
		timestampsFlag bool
	)
	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "indgen",
		Short: "Program indicator generator",
		Long: `indgen expands template program indicators into one indicator per
disease and incident status, filtered on the matching tracked entity
attributes, and writes them as a metadata import document.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			cfg.Verbose = verboseFlag
			return initializeGlobals(c, cfg, configFlag, timestampsFlag)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: INDGEN_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewGenerateCmd(cfg))
	rootCmd.AddCommand(NewDiffCmd(cfg))
	rootCmd.AddCommand(NewUIDCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(c *cobra.Command, cfg *cmdtypes.GlobalConfig, configFlag string, timestampsFlag bool) error {
	configPath, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return err
	}
	cfg.ConfigPath = configPath

	// Load errors are kept, not returned: config and version work without
	// a valid file.
	loaded, err := config.NewLoader().Load(configPath.Value)
	cfg.Config = loaded
	cfg.LoadErr = err

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: cfg.Verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if loaded != nil && loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if err != nil {
		output.Debug("config load error", "error", err)
	}
	output.Debug("initializing CLI",
		"config", configPath.Value,
		"config-source", configPath.Source,
	)

	return nil
}
