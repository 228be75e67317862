// Package selection picks the disease and status options that indicators
// are generated for.
package selection

import (
	"strings"

	oerrors "github.com/idsr/indgen/internal/errors"
	"github.com/idsr/indgen/internal/metadata"
)

// Criteria describes which options to select.
type Criteria struct {
	// DiseaseOptionSet and StatusOptionSet are distinct option sets; the
	// disease set is matched by name, the status set by code.
	DiseaseOptionSet string
	StatusOptionSet  string

	Diseases []string
	Statuses []string

	// Strict compares names and codes exactly. Otherwise surrounding
	// whitespace is ignored on both sides.
	Strict bool
}

// Selection holds the selected options in snapshot order.
type Selection struct {
	Diseases []metadata.Option
	Statuses []metadata.Option
}

// Empty reports whether nothing was selected.
func (s Selection) Empty() bool {
	return len(s.Diseases) == 0 && len(s.Statuses) == 0
}

// Combinations returns how many indicators one template expands into.
func (s Selection) Combinations() int {
	switch {
	case len(s.Diseases) == 0:
		return len(s.Statuses)
	case len(s.Statuses) == 0:
		return len(s.Diseases)
	default:
		return len(s.Diseases) * len(s.Statuses)
	}
}

// Select partitions the snapshot options into diseases and statuses.
// It fails with a configuration error when both are empty.
func Select(md *metadata.Metadata, c Criteria) (Selection, error) {
	diseases := newVocabulary(c.Diseases, c.Strict)
	statuses := newVocabulary(c.Statuses, c.Strict)

	var sel Selection
	for _, opt := range md.Options {
		switch opt.OptionSet.ID {
		case c.DiseaseOptionSet:
			if diseases.contains(opt.Name) {
				sel.Diseases = append(sel.Diseases, opt)
			}
		case c.StatusOptionSet:
			if statuses.contains(opt.Code) {
				sel.Statuses = append(sel.Statuses, opt)
			}
		}
	}

	if sel.Empty() {
		return sel, oerrors.NewConfigurationError(
			"no options found for the given option set IDs",
			map[string]string{
				"Disease option set": c.DiseaseOptionSet,
				"Status option set":  c.StatusOptionSet,
			},
			"Check optionSets and vocabulary in the configuration against the metadata snapshot",
		)
	}
	return sel, nil
}

type vocabulary struct {
	terms  map[string]struct{}
	strict bool
}

func newVocabulary(terms []string, strict bool) vocabulary {
	v := vocabulary{terms: make(map[string]struct{}, len(terms)), strict: strict}
	for _, t := range terms {
		v.terms[v.normalize(t)] = struct{}{}
	}
	return v
}

func (v vocabulary) normalize(s string) string {
	if v.strict {
		return s
	}
	return strings.TrimSpace(s)
}

func (v vocabulary) contains(s string) bool {
	_, ok := v.terms[v.normalize(s)]
	return ok
}
