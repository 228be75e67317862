package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idsr/indgen/internal/metadata"
)

func indicators(t *testing.T, raw string) []metadata.Indicator {
	t.Helper()
	md, err := metadata.Decode(strings.NewReader(`{"programIndicators": ` + raw + `}`))
	require.NoError(t, err)
	return md.ProgramIndicators
}

func TestCompare_IgnoresVolatileFields(t *testing.T) {
	prev := indicators(t, `[{"id": "Aaaaaaaaaa1", "name": "Cases - AFP", "created": "2023-01-01T00:00:00.000Z",
		"analyticsPeriodBoundaries": [{"id": "Bbbbbbbbbb1", "lastUpdated": "2023-01-01T00:00:00.000Z", "boundaryTarget": "ENROLLMENT_DATE"}]}]`)
	next := indicators(t, `[{"id": "Cccccccccc1", "name": "Cases - AFP", "created": "2024-01-01T00:00:00.000Z",
		"analyticsPeriodBoundaries": [{"id": "Dddddddddd1", "lastUpdated": "2024-01-01T00:00:00.000Z", "boundaryTarget": "ENROLLMENT_DATE"}]}]`)

	result, err := Compare(prev, next, false)
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
	assert.Equal(t, "No changes", result.Summary())
}

func TestCompare_AddedRemovedModified(t *testing.T) {
	prev := indicators(t, `[
		{"name": "Cases - AFP", "filter": "A{x}==\"AFP\"", "aggregationType": "COUNT"},
		{"name": "Cases - Plague", "filter": "A{x}==\"PLAGUE\""}
	]`)
	next := indicators(t, `[
		{"name": "Cases - AFP", "filter": "A{x}==\"AFP\"", "aggregationType": "SUM"},
		{"name": "Cases - Cholera", "filter": "A{x}==\"CHOLERA\""}
	]`)

	result, err := Compare(prev, next, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"Cases - Cholera"}, result.Added)
	assert.Equal(t, []string{"Cases - Plague"}, result.Removed)
	require.Len(t, result.Modified, 1)
	assert.Equal(t, "Cases - AFP", result.Modified[0].Name)
	assert.Contains(t, result.Modified[0].Diff, "aggregationType")
	assert.Contains(t, result.Modified[0].Diff, "SUM")
	assert.Equal(t, "1 added, 1 removed, 1 modified", result.Summary())
}

func TestCompare_RepeatedNames(t *testing.T) {
	prev := indicators(t, `[{"name": "Same"}]`)
	next := indicators(t, `[{"name": "Same"}, {"name": "Same"}]`)

	result, err := Compare(prev, next, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Same #2"}, result.Added)
	assert.Empty(t, result.Modified)
}
