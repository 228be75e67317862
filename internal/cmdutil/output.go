package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/idsr/indgen/internal/config"
	oerrors "github.com/idsr/indgen/internal/errors"
	"github.com/idsr/indgen/internal/output"
	"github.com/idsr/indgen/internal/pipeline"
)

// PrintRunError prints a run error in a user-friendly format.
// Structured errors print a short summary line followed by their details.
// Validation errors print one line per field.
func PrintRunError(msg string, err error) {
	var detail *oerrors.DetailError
	var verrs config.ValidationErrors

	switch {
	case errors.As(err, &verrs):
		output.Error(msg)
		for _, v := range verrs {
			output.Details(fmt.Sprintf("  %s: %s", v.Field, v.Message))
		}
	case errors.As(err, &detail):
		output.Error(fmt.Sprintf("%s: %s", msg, detail.Type))
		output.Details(detail.Error())
	default:
		output.Error(msg, "error", err)
	}
}

// WriteSummary writes one table row per generated indicator.
func WriteSummary(w io.Writer, result *pipeline.Result) {
	tbl := output.NewTable("ID", "NAME", "SHORT NAME", "FILTER")
	for _, ind := range result.Indicators {
		tbl.Row(ind.ID, ind.Name, ind.ShortName, ind.Filter)
	}
	fmt.Fprintln(w, tbl.String())
	fmt.Fprintln(w, output.StyleDim.Render(fmt.Sprintf(
		"%d indicators, %d boundaries, %d identifiers used, next pool index %d",
		len(result.Indicators), result.Boundaries(), result.IDsUsed, result.NextUIDStart,
	)))
}

// SelectionSummary describes the selected diseases and statuses in one line.
func SelectionSummary(result *pipeline.Result) string {
	names := func(n int, get func(i int) string) string {
		if n == 0 {
			return "-"
		}
		parts := make([]string, n)
		for i := range parts {
			parts[i] = strings.TrimSpace(get(i))
		}
		return strings.Join(parts, ", ")
	}
	sel := result.Selection
	return fmt.Sprintf("diseases: %s; statuses: %s",
		names(len(sel.Diseases), func(i int) string { return sel.Diseases[i].Name }),
		names(len(sel.Statuses), func(i int) string { return sel.Statuses[i].Code }),
	)
}
