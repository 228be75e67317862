package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idsr/indgen/internal/config"
	oerrors "github.com/idsr/indgen/internal/errors"
	"github.com/idsr/indgen/internal/testutil"
)

// workspace holds the files a command test runs against.
type workspace struct {
	dir      string
	config   string
	metadata string
	pool     string
	output   string
}

func newWorkspace(t *testing.T, poolSize int) workspace {
	t.Helper()
	testutil.ClearEnv(t, config.EnvConfig, config.EnvMetadata, config.EnvOutput, config.EnvUIDPool)

	dir := t.TempDir()
	ws := workspace{
		dir:      dir,
		config:   filepath.Join(dir, "config.yaml"),
		metadata: testutil.MetadataFixture(t),
		pool:     testutil.WritePool(t, dir, poolSize),
		output:   filepath.Join(dir, "indicators.json"),
	}
	return ws
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, ws workspace, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", ws.config, "--timestamps=false"}, args...))

	err := root.Execute()
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T: %v", err, err)
	return exitErr.Code
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "indgen", root.Use)
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, root.PersistentFlags().Lookup("timestamps"))

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"generate", "diff", "uid", "config", "version"})
}

func TestRoot_BrokenConfigDoesNotBlockVersion(t *testing.T) {
	ws := newWorkspace(t, 1)
	require.NoError(t, os.WriteFile(ws.config, []byte("templates: [unclosed"), 0o644))

	out, err := execute(t, ws, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "indgen version")
}

func TestRoot_BrokenConfigFailsGenerate(t *testing.T) {
	ws := newWorkspace(t, 20)
	require.NoError(t, os.WriteFile(ws.config, []byte("templates: [unclosed"), 0o644))

	_, err := execute(t, ws, "generate", "-m", ws.metadata, "--uid-pool", ws.pool, "-o", ws.output)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitParseError, exitCode(t, err))
	assert.NoFileExists(t, ws.output)
}
