package selection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/idsr/indgen/internal/errors"
	"github.com/idsr/indgen/internal/metadata"
)

const (
	diseaseSet = "DFSpWpoNq5r"
	statusSet  = "BhYOdRU5xsg"
)

func opt(set, code, name string) metadata.Option {
	return metadata.Option{Code: code, Name: name, ID: code + "_id", OptionSet: metadata.Ref{ID: set}}
}

func snapshot() *metadata.Metadata {
	return &metadata.Metadata{
		Options: []metadata.Option{
			opt(statusSet, "RESPOND", "Respond"),
			opt(diseaseSet, "CHOLERA", "Cholera"),
			opt(diseaseSet, "BACT_MEN", "Bacterial meningitis "),
			opt(statusSet, "WATCH", "Watch"),
			opt(diseaseSet, "FLU", "Influenza"),
			opt("OtherSet001", "CHOLERA", "Cholera"),
			opt(diseaseSet, "WATCH", "WATCH"),
		},
	}
}

func criteria() Criteria {
	return Criteria{
		DiseaseOptionSet: diseaseSet,
		StatusOptionSet:  statusSet,
		Diseases:         []string{"Bacterial meningitis", "Cholera"},
		Statuses:         []string{"WATCH", "ALERT", "RESPOND"},
	}
}

func codes(opts []metadata.Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Code)
	}
	return out
}

func TestSelect_PreservesSnapshotOrder(t *testing.T) {
	sel, err := Select(snapshot(), criteria())
	require.NoError(t, err)

	assert.Equal(t, []string{"CHOLERA", "BACT_MEN"}, codes(sel.Diseases))
	assert.Equal(t, []string{"RESPOND", "WATCH"}, codes(sel.Statuses))
	assert.Equal(t, 4, sel.Combinations())
}

func TestSelect_DiseasesMatchByNameStatusesByCode(t *testing.T) {
	c := criteria()
	c.Diseases = []string{"CHOLERA"}
	c.Statuses = []string{"Watch"}

	_, err := Select(snapshot(), c)
	require.Error(t, err, "code-matching diseases or name-matching statuses selects nothing")
}

func TestSelect_OptionSetOrderMatters(t *testing.T) {
	c := criteria()
	c.DiseaseOptionSet, c.StatusOptionSet = c.StatusOptionSet, c.DiseaseOptionSet

	sel, err := Select(snapshot(), c)
	require.NoError(t, err)
	// only the disease-set option coded WATCH matches the status vocabulary
	assert.Empty(t, sel.Diseases)
	assert.Equal(t, []string{"WATCH"}, codes(sel.Statuses))
}

func TestSelect_TrailingWhitespace(t *testing.T) {
	c := criteria()
	c.Diseases = []string{"Bacterial meningitis "}

	sel, err := Select(snapshot(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{"BACT_MEN"}, codes(sel.Diseases))

	c.Diseases = []string{"Bacterial meningitis"}
	sel, err = Select(snapshot(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{"BACT_MEN"}, codes(sel.Diseases), "trimmed by default")

	c.Strict = true
	sel, err = Select(snapshot(), c)
	require.NoError(t, err)
	assert.Empty(t, sel.Diseases, "strict matching keeps the whitespace")
}

func TestSelect_OneSideEmpty(t *testing.T) {
	c := criteria()
	c.Statuses = nil

	sel, err := Select(snapshot(), c)
	require.NoError(t, err)
	assert.Empty(t, sel.Statuses)
	assert.Equal(t, 2, sel.Combinations())

	c = criteria()
	c.Diseases = []string{"Plague"}
	sel, err = Select(snapshot(), c)
	require.NoError(t, err)
	assert.Empty(t, sel.Diseases)
	assert.Equal(t, 2, sel.Combinations())
}

func TestSelect_BothEmpty(t *testing.T) {
	c := criteria()
	c.DiseaseOptionSet = "Unknown0001"
	c.StatusOptionSet = "Unknown0002"

	_, err := Select(snapshot(), c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrConfiguration))
	assert.Contains(t, err.Error(), "Unknown0001")
}
