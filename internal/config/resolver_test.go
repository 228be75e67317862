package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_FlagPrecedence(t *testing.T) {
	t.Setenv(EnvMetadata, "/env/metadata.json")

	result := Resolve(ResolveOptions{
		FlagValue:    "/flag/metadata.json",
		EnvVar:       EnvMetadata,
		ConfigValue:  "/config/metadata.json",
		DefaultValue: DefaultMetadataPath,
	})

	assert.Equal(t, "/flag/metadata.json", result.Value)
	assert.Equal(t, SourceFlag, result.Source)
	assert.Equal(t, "/env/metadata.json", result.Shadowed[SourceEnv])
	assert.Equal(t, "/config/metadata.json", result.Shadowed[SourceConfig])
	assert.NotContains(t, result.Shadowed, SourceDefault)
}

func TestResolve_EnvPrecedence(t *testing.T) {
	t.Setenv(EnvOutput, "/env/indicators.json")

	result := Resolve(ResolveOptions{
		EnvVar:       EnvOutput,
		ConfigValue:  "/config/indicators.json",
		DefaultValue: DefaultOutputPath,
	})

	assert.Equal(t, "/env/indicators.json", result.Value)
	assert.Equal(t, SourceEnv, result.Source)
	assert.Equal(t, "/config/indicators.json", result.Shadowed[SourceConfig])
}

func TestResolve_ConfigFallback(t *testing.T) {
	t.Setenv(EnvUIDPool, "")

	result := Resolve(ResolveOptions{
		EnvVar:       EnvUIDPool,
		ConfigValue:  "/config/uid.json",
		DefaultValue: DefaultUIDPoolPath,
	})

	assert.Equal(t, "/config/uid.json", result.Value)
	assert.Equal(t, SourceConfig, result.Source)
	assert.Empty(t, result.Shadowed)
}

func TestResolve_Default(t *testing.T) {
	result := Resolve(ResolveOptions{DefaultValue: DefaultUIDPoolPath})

	assert.Equal(t, DefaultUIDPoolPath, result.Value)
	assert.Equal(t, SourceDefault, result.Source)
}

func TestResolve_NothingSet(t *testing.T) {
	result := Resolve(ResolveOptions{})

	assert.Empty(t, result.Value)
	assert.Empty(t, result.Source)
}

func TestResolvePaths_NilConfig(t *testing.T) {
	t.Setenv(EnvMetadata, "")
	t.Setenv(EnvOutput, "")
	t.Setenv(EnvUIDPool, "")

	paths := ResolvePaths(PathFlags{Output: "out.json"}, nil)

	assert.Equal(t, DefaultMetadataPath, paths.Metadata.Value)
	assert.Equal(t, SourceDefault, paths.Metadata.Source)
	assert.Equal(t, "out.json", paths.Output.Value)
	assert.Equal(t, SourceFlag, paths.Output.Source)
	assert.Equal(t, DefaultUIDPoolPath, paths.UIDPool.Value)
}

func TestResolvePaths_FromConfig(t *testing.T) {
	t.Setenv(EnvMetadata, "")
	t.Setenv(EnvOutput, "")
	t.Setenv(EnvUIDPool, "")

	cfg := &Config{Metadata: "snap.json", UIDPool: UIDPoolConfig{Path: "pool.json"}}
	paths := ResolvePaths(PathFlags{}, cfg)

	assert.Equal(t, "snap.json", paths.Metadata.Value)
	assert.Equal(t, SourceConfig, paths.Metadata.Source)
	assert.Equal(t, "pool.json", paths.UIDPool.Value)
	assert.Equal(t, SourceDefault, paths.Output.Source)
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv(EnvConfig, "")

	result, err := ResolveConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, SourceDefault, result.Source)
	assert.Equal(t, "config.yaml", filepath.Base(result.Value))

	t.Setenv(EnvConfig, "/env/config.yaml")
	result, err = ResolveConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, "/env/config.yaml", result.Value)
	assert.Equal(t, SourceEnv, result.Source)

	result, err = ResolveConfigPath("/flag/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/flag/config.yaml", result.Value)
	assert.Equal(t, SourceFlag, result.Source)
}
