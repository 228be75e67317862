// Package diff compares a previously written indicator document with a
// freshly generated one.
package diff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"sigs.k8s.io/yaml"

	"github.com/idsr/indgen/internal/metadata"
)

// Result represents the differences between two indicator documents.
type Result struct {
	// Added indicators (in the new document only).
	Added []string

	// Removed indicators (in the previous document only).
	Removed []string

	// Modified indicators.
	Modified []Modified
}

// Modified is an indicator present in both documents with changes.
type Modified struct {
	// Name is the indicator name.
	Name string

	// Diff is the rendered dyff report.
	Diff string
}

// IsEmpty returns true if there are no changes.
func (r *Result) IsEmpty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Modified) == 0
}

// Summary returns a summary string of changes.
func (r *Result) Summary() string {
	if r.IsEmpty() {
		return "No changes"
	}

	parts := make([]string, 0, 3)
	if len(r.Added) > 0 {
		parts = append(parts, fmt.Sprintf("%d added", len(r.Added)))
	}
	if len(r.Removed) > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", len(r.Removed)))
	}
	if len(r.Modified) > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", len(r.Modified)))
	}

	return strings.Join(parts, ", ")
}

// volatileKeys change on every run and are masked before comparison.
var volatileKeys = []string{"id", "created", "lastUpdated"}

// Compare matches indicators by name and reports what changed between
// previous and next. Identifiers and timestamps are ignored.
func Compare(previous, next []metadata.Indicator, useColor bool) (*Result, error) {
	result := &Result{
		Added:    make([]string, 0),
		Removed:  make([]string, 0),
		Modified: make([]Modified, 0),
	}

	prevByKey := keyed(previous)
	nextByKey := keyed(next)

	for _, k := range nextByKey.order {
		prev, ok := prevByKey.items[k]
		if !ok {
			result.Added = append(result.Added, k)
			continue
		}

		d, err := compareIndicators(prev, nextByKey.items[k], useColor)
		if err != nil {
			return nil, fmt.Errorf("comparing %s: %w", k, err)
		}
		if d != "" {
			result.Modified = append(result.Modified, Modified{Name: k, Diff: d})
		}
	}

	for _, k := range prevByKey.order {
		if _, ok := nextByKey.items[k]; !ok {
			result.Removed = append(result.Removed, k)
		}
	}

	return result, nil
}

type index struct {
	order []string
	items map[string]metadata.Indicator
}

// keyed indexes indicators by name. Repeated names get a numeric suffix
// so every record takes part in the comparison.
func keyed(indicators []metadata.Indicator) index {
	idx := index{items: make(map[string]metadata.Indicator, len(indicators))}
	seen := make(map[string]int)
	for _, ind := range indicators {
		k := ind.Name
		seen[k]++
		if n := seen[k]; n > 1 {
			k = fmt.Sprintf("%s #%d", k, n)
		}
		idx.order = append(idx.order, k)
		idx.items[k] = ind
	}
	return idx
}

func compareIndicators(prev, next metadata.Indicator, useColor bool) (string, error) {
	prevYAML, err := serializeForDiff(prev)
	if err != nil {
		return "", fmt.Errorf("serializing previous indicator: %w", err)
	}
	nextYAML, err := serializeForDiff(next)
	if err != nil {
		return "", fmt.Errorf("serializing new indicator: %w", err)
	}
	return diffYAML(prevYAML, nextYAML, useColor)
}

// serializeForDiff renders an indicator as YAML with volatile fields
// removed from it and its boundaries.
func serializeForDiff(ind metadata.Indicator) ([]byte, error) {
	data, err := json.Marshal(ind)
	if err != nil {
		return nil, err
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	stripVolatile(obj)
	if boundaries, ok := obj["analyticsPeriodBoundaries"].([]interface{}); ok {
		for _, b := range boundaries {
			if m, ok := b.(map[string]interface{}); ok {
				stripVolatile(m)
			}
		}
	}

	return yaml.Marshal(obj)
}

func stripVolatile(obj map[string]interface{}) {
	for _, k := range volatileKeys {
		delete(obj, k)
	}
}

// diffYAML computes a YAML diff using dyff. Returns "" if equal.
func diffYAML(from, to []byte, useColor bool) (string, error) {
	fromInput, err := parseYAMLInput("previous", from)
	if err != nil {
		return "", fmt.Errorf("parsing previous YAML: %w", err)
	}
	toInput, err := parseYAMLInput("generated", to)
	if err != nil {
		return "", fmt.Errorf("parsing generated YAML: %w", err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderReport(report, useColor)
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

func renderReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
