// Package generator expands template program indicators into one
// indicator per disease and/or incident status.
package generator

import (
	"fmt"
	"time"

	oerrors "github.com/idsr/indgen/internal/errors"
	"github.com/idsr/indgen/internal/metadata"
	"github.com/idsr/indgen/internal/selection"
	"github.com/idsr/indgen/internal/uid"
)

// Attributes identifies the tracked entity attributes used in filters.
type Attributes struct {
	Disease string
	Status  string
}

// Generator builds indicators from templates. It is used for a single run.
type Generator struct {
	attrs Attributes
	ids   uid.Supplier
	now   func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the time source for created/lastUpdated.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator drawing identifiers from ids.
func New(attrs Attributes, ids uid.Supplier, opts ...Option) *Generator {
	g := &Generator{
		attrs: attrs,
		ids:   ids,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// reserver is implemented by suppliers that can check capacity up front.
type reserver interface {
	Reserve(n int) error
}

// Generate expands each template in templateIDs against sel. Results are
// concatenated in template order. Every template is resolved before any
// identifier is consumed.
func (g *Generator) Generate(templateIDs []string, md *metadata.Metadata, sel selection.Selection) ([]metadata.Indicator, error) {
	if sel.Empty() {
		return nil, oerrors.NewConfigurationError("no disease or status options selected", nil, "")
	}

	templates, err := ResolveTemplates(templateIDs, md)
	if err != nil {
		return nil, err
	}

	if r, ok := g.ids.(reserver); ok {
		if err := r.Reserve(RequiredIDs(templates, sel)); err != nil {
			return nil, err
		}
	}

	out := make([]metadata.Indicator, 0, len(templates)*sel.Combinations())
	for _, tmpl := range templates {
		generated, err := g.expand(tmpl, sel)
		if err != nil {
			return nil, fmt.Errorf("expanding template %s: %w", tmpl.ID, err)
		}
		out = append(out, generated...)
	}
	return out, nil
}

// ResolveTemplates looks up every template id in md, in order.
func ResolveTemplates(templateIDs []string, md *metadata.Metadata) ([]*metadata.Indicator, error) {
	templates := make([]*metadata.Indicator, 0, len(templateIDs))
	for _, id := range templateIDs {
		tmpl, ok := md.Indicator(id)
		if !ok {
			return nil, &oerrors.DetailError{
				Type:    "template not found",
				Message: fmt.Sprintf("template indicator with ID %s not found", id),
				Context: map[string]string{"Template": id},
				Hint:    "Check templates in the configuration against programIndicators in the metadata snapshot",
				Cause:   fmt.Errorf("%w: %w", oerrors.ErrConfiguration, oerrors.ErrNotFound),
			}
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// RequiredIDs returns how many identifiers expanding templates against
// sel consumes: one per indicator plus one per nested boundary.
func RequiredIDs(templates []*metadata.Indicator, sel selection.Selection) int {
	n := 0
	for _, tmpl := range templates {
		n += sel.Combinations() * (1 + len(tmpl.AnalyticsPeriodBoundaries))
	}
	return n
}

// variant is one disease/status combination of a template.
type variant struct {
	name      string
	shortName string
	filter    string
}

func (g *Generator) variants(templateName string, sel selection.Selection) []variant {
	var out []variant
	switch {
	case len(sel.Diseases) == 0:
		for _, status := range sel.Statuses {
			out = append(out, variant{
				name:      templateName + " - " + status.Name,
				shortName: templateName + " - " + status.Code,
				filter:    Predicate(g.attrs.Status, status.Code),
			})
		}
	case len(sel.Statuses) == 0:
		for _, disease := range sel.Diseases {
			out = append(out, variant{
				name:      templateName + " - " + disease.Name,
				shortName: templateName + " - " + disease.Code,
				filter:    Predicate(g.attrs.Disease, disease.Code),
			})
		}
	default:
		for _, disease := range sel.Diseases {
			for _, status := range sel.Statuses {
				out = append(out, variant{
					name:      templateName + " - " + disease.Name + " - " + status.Name,
					shortName: templateName + " - " + disease.Code + " - " + status.Code,
					filter: Conjunction(
						Predicate(g.attrs.Status, status.Code),
						Predicate(g.attrs.Disease, disease.Code),
					),
				})
			}
		}
	}
	return out
}

func (g *Generator) expand(tmpl *metadata.Indicator, sel selection.Selection) ([]metadata.Indicator, error) {
	variants := g.variants(tmpl.Name, sel)
	out := make([]metadata.Indicator, 0, len(variants))

	for _, v := range variants {
		ind := tmpl.Clone()

		id, err := g.ids.Next()
		if err != nil {
			return nil, err
		}
		ind.ID = id
		ind.Name = v.name
		ind.ShortName = v.shortName
		ind.Filter = v.filter

		ts := metadata.FormatTimestamp(g.now())
		ind.Created = ts
		ind.LastUpdated = ts

		for i := range ind.AnalyticsPeriodBoundaries {
			bid, err := g.ids.Next()
			if err != nil {
				return nil, err
			}
			b := &ind.AnalyticsPeriodBoundaries[i]
			b.ID = bid
			b.Created = ts
			b.LastUpdated = ts
		}

		out = append(out, ind)
	}
	return out, nil
}
