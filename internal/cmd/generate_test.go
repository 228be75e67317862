package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/idsr/indgen/internal/errors"
	"github.com/idsr/indgen/internal/metadata"
)

func TestNewGenerateCmd(t *testing.T) {
	cmd := NewGenerateCmd(nil)

	assert.Equal(t, "generate", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	for _, name := range []string{"metadata", "uid-pool", "output", "uid-start", "metrics-file", "dry-run", "summary"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
}

func TestGenerate_WritesOutput(t *testing.T) {
	ws := newWorkspace(t, 20)

	out, err := execute(t, ws, "generate", "-m", ws.metadata, "--uid-pool", ws.pool, "-o", ws.output)
	require.NoError(t, err)
	assert.Contains(t, out, "Indicators created successfully! Total: 4")

	doc, err := metadata.LoadDocument(ws.output)
	require.NoError(t, err)
	require.Len(t, doc.ProgramIndicators, 4)
	assert.Equal(t, "Suspected cases - COVID19 - Watch", doc.ProgramIndicators[0].Name)
	assert.Equal(t, `A{cDLJoNCWHHs}=="WATCH" && A{jLvbkuvPdZ6}=="COVID19"`, doc.ProgramIndicators[0].Filter)
}

func TestGenerate_ConfigFileApplies(t *testing.T) {
	ws := newWorkspace(t, 20)
	cfg := "metadata: " + ws.metadata + "\n" +
		"output: " + ws.output + "\n" +
		"uidPool:\n  path: " + ws.pool + "\n  start: 0\n" +
		"vocabulary:\n  diseases: [COVID19]\n  statuses: []\n"
	require.NoError(t, os.WriteFile(ws.config, []byte(cfg), 0o644))

	out, err := execute(t, ws, "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 1")

	doc, err := metadata.LoadDocument(ws.output)
	require.NoError(t, err)
	require.Len(t, doc.ProgramIndicators, 1)
	assert.Equal(t, "Suspected cases - COVID19", doc.ProgramIndicators[0].Name)
	assert.Equal(t, `A{jLvbkuvPdZ6}=="COVID19"`, doc.ProgramIndicators[0].Filter)
}

func TestGenerate_DryRun(t *testing.T) {
	ws := newWorkspace(t, 20)

	out, err := execute(t, ws, "generate", "--dry-run",
		"-m", ws.metadata, "--uid-pool", ws.pool, "-o", ws.output)
	require.NoError(t, err)

	assert.Contains(t, out, "SHORT NAME")
	assert.Contains(t, out, "Suspected cases - COVID19 - Alert")
	assert.Contains(t, out, "next pool index 12")
	assert.NoFileExists(t, ws.output)
}

func TestGenerate_PoolExhausted(t *testing.T) {
	ws := newWorkspace(t, 5)
	require.NoError(t, os.WriteFile(ws.output, []byte("previous"), 0o644))

	_, err := execute(t, ws, "generate", "-m", ws.metadata, "--uid-pool", ws.pool, "-o", ws.output)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitPoolExhausted, exitCode(t, err))

	data, err := os.ReadFile(ws.output)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestGenerate_UIDStartOutOfRange(t *testing.T) {
	ws := newWorkspace(t, 5)

	_, err := execute(t, ws, "generate", "--uid-start", "9",
		"-m", ws.metadata, "--uid-pool", ws.pool, "-o", ws.output)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitConfigurationError, exitCode(t, err))
}

func TestGenerate_MissingMetadata(t *testing.T) {
	ws := newWorkspace(t, 20)

	_, err := execute(t, ws, "generate", "-m", filepath.Join(ws.dir, "missing.json"),
		"--uid-pool", ws.pool, "-o", ws.output)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitIOError, exitCode(t, err))
}

func TestGenerate_MetricsFile(t *testing.T) {
	ws := newWorkspace(t, 20)
	metricsPath := filepath.Join(ws.dir, "indgen.prom")

	_, err := execute(t, ws, "generate", "--metrics-file", metricsPath,
		"-m", ws.metadata, "--uid-pool", ws.pool, "-o", ws.output)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `indgen_indicators_generated_total{template="dr4OT0ql4cl"} 4`)
	assert.Contains(t, string(data), "indgen_identifiers_consumed_total 12")
}
