package cmdutil

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idsr/indgen/internal/config"
)

func TestPathFlags_AddTo(t *testing.T) {
	var pf PathFlags
	cmd := &cobra.Command{Use: "test"}
	pf.AddTo(cmd)

	mdFlag := cmd.Flags().Lookup("metadata")
	require.NotNil(t, mdFlag)
	assert.Equal(t, "m", mdFlag.Shorthand)
	assert.Equal(t, "", mdFlag.DefValue)

	poolFlag := cmd.Flags().Lookup("uid-pool")
	require.NotNil(t, poolFlag)
	assert.Equal(t, "", poolFlag.DefValue)

	outFlag := cmd.Flags().Lookup("output")
	require.NotNil(t, outFlag)
	assert.Equal(t, "o", outFlag.Shorthand)
}

func TestRunFlags_AddTo(t *testing.T) {
	var rf RunFlags
	cmd := &cobra.Command{Use: "test"}
	rf.AddTo(cmd)

	startFlag := cmd.Flags().Lookup("uid-start")
	require.NotNil(t, startFlag)
	assert.Equal(t, "-1", startFlag.DefValue)
	assert.Equal(t, "int", startFlag.Value.Type())

	require.NotNil(t, cmd.Flags().Lookup("metrics-file"))
}

func TestPathFlags_Resolve(t *testing.T) {
	t.Setenv(config.EnvMetadata, "")
	t.Setenv(config.EnvOutput, "")
	t.Setenv(config.EnvUIDPool, "")

	pf := PathFlags{Metadata: "/tmp/snapshot.json"}
	cfg := &config.Config{Output: "/tmp/out.json"}

	paths := pf.Resolve(cfg)

	assert.Equal(t, "/tmp/snapshot.json", paths.Metadata.Value)
	assert.Equal(t, config.SourceFlag, paths.Metadata.Source)
	assert.Equal(t, "/tmp/out.json", paths.Output.Value)
	assert.Equal(t, config.SourceConfig, paths.Output.Source)
	assert.Equal(t, config.DefaultUIDPoolPath, paths.UIDPool.Value)
	assert.Equal(t, config.SourceDefault, paths.UIDPool.Source)
}
