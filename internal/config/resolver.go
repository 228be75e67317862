package config

import (
	"os"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// Environment variables consulted during resolution.
const (
	EnvConfig   = "INDGEN_CONFIG"
	EnvMetadata = "INDGEN_METADATA"
	EnvOutput   = "INDGEN_OUTPUT"
	EnvUIDPool  = "INDGEN_UID_POOL"
)

// ResolvedValue is a resolved string value and its source.
type ResolvedValue struct {
	Value  string
	Source ConfigSource

	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveOptions contains the candidate values for a single setting.
type ResolveOptions struct {
	FlagValue    string
	EnvVar       string
	ConfigValue  string
	DefaultValue string
}

// Resolve picks a value using precedence: flag > env > config > default.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{Shadowed: make(map[ConfigSource]string)}

	var envValue string
	if opts.EnvVar != "" {
		envValue = os.Getenv(opts.EnvVar)
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.DefaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		if c.source != SourceDefault {
			result.Shadowed[c.source] = c.value
		}
	}

	return result
}

// ResolvedPaths holds the resolved file locations for a run.
type ResolvedPaths struct {
	Metadata ResolvedValue
	Output   ResolvedValue
	UIDPool  ResolvedValue
}

// PathFlags holds the raw path flag values.
type PathFlags struct {
	Metadata string
	Output   string
	UIDPool  string
}

// ResolvePaths resolves all file locations for a run against cfg.
// cfg may be nil, in which case only flags, env and defaults apply.
func ResolvePaths(flags PathFlags, cfg *Config) ResolvedPaths {
	var metadata, out, pool string
	if cfg != nil {
		metadata, out, pool = cfg.Metadata, cfg.Output, cfg.UIDPool.Path
	}

	return ResolvedPaths{
		Metadata: Resolve(ResolveOptions{
			FlagValue:    flags.Metadata,
			EnvVar:       EnvMetadata,
			ConfigValue:  metadata,
			DefaultValue: DefaultMetadataPath,
		}),
		Output: Resolve(ResolveOptions{
			FlagValue:    flags.Output,
			EnvVar:       EnvOutput,
			ConfigValue:  out,
			DefaultValue: DefaultOutputPath,
		}),
		UIDPool: Resolve(ResolveOptions{
			FlagValue:    flags.UIDPool,
			EnvVar:       EnvUIDPool,
			ConfigValue:  pool,
			DefaultValue: DefaultUIDPoolPath,
		}),
	}
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) INDGEN_CONFIG env, (3) ~/.indgen/config.yaml default
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}

	return Resolve(ResolveOptions{
		FlagValue:    flagValue,
		EnvVar:       EnvConfig,
		DefaultValue: paths.ConfigFile,
	}), nil
}
