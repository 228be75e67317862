package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/idsr/indgen/internal/errors"
	"github.com/idsr/indgen/internal/uid"
)

func TestUIDGenerate_Stdout(t *testing.T) {
	ws := newWorkspace(t, 1)

	out, err := execute(t, ws, "uid", "generate", "--count", "7")
	require.NoError(t, err)

	var f uid.File
	require.NoError(t, json.Unmarshal([]byte(out), &f))
	require.Len(t, f.Codes, 7)
	for _, c := range f.Codes {
		assert.True(t, uid.IsValid(c), c)
	}
}

func TestUIDGenerate_WritesPool(t *testing.T) {
	ws := newWorkspace(t, 1)
	path := filepath.Join(ws.dir, "pool.json")

	_, err := execute(t, ws, "uid", "generate", "-n", "30", "--out", path, "-m", ws.metadata)
	require.NoError(t, err)

	pool, err := uid.LoadPool(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, pool.Remaining())
}

func TestUIDGenerate_RefusesOverwrite(t *testing.T) {
	ws := newWorkspace(t, 1)
	before, err := os.ReadFile(ws.pool)
	require.NoError(t, err)

	_, err = execute(t, ws, "uid", "generate", "--out", ws.pool)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitGeneralError, exitCode(t, err))

	after, err := os.ReadFile(ws.pool)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = execute(t, ws, "uid", "generate", "--out", ws.pool, "--force")
	require.NoError(t, err)
}

func TestUIDGenerate_InvalidCount(t *testing.T) {
	ws := newWorkspace(t, 1)

	_, err := execute(t, ws, "uid", "generate", "--count", "0")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitConfigurationError, exitCode(t, err))
}
