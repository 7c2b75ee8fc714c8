package classify

import (
	"fmt"
	"strings"

	"github.com/fbstats/fbrefscan/models"
	"github.com/fbstats/fbrefscan/pkg/stattable"
)

// Diagnostic describes one page table for troubleshooting: its position,
// shape, leading column labels, and every category it loosely resembles.
type Diagnostic struct {
	Index      int
	Rows       int
	Cols       int
	Labels     []string
	Candidates []models.Category
}

// Analyze produces diagnostics for all tables with at least a handful of
// rows, including the ones the classifier would skip.
func Analyze(tables []models.RawTable) []Diagnostic {
	var out []Diagnostic
	for _, t := range tables {
		if t.RowCount() < 5 {
			continue
		}

		d := Diagnostic{Index: t.Index, Rows: t.RowCount(), Cols: t.ColCount()}
		for i, h := range t.Header {
			if i >= 10 {
				break
			}
			d.Labels = append(d.Labels, stattable.FlattenLabel(h.Over, h.Under))
		}

		cols := labelText(t)
		for _, category := range models.FieldPlayerCategories {
			if looseMatch(category, cols) {
				d.Candidates = append(d.Candidates, category)
			}
		}
		out = append(out, d)
	}
	return out
}

// looseMatch is a wider net than matchesSignature, for diagnostics only:
// possession and playing_time drop their exclusion clauses so near-misses
// show up.
func looseMatch(category models.Category, cols string) bool {
	switch category {
	case models.CategoryPossession:
		return containsAnyOf(cols, []string{"possession", "touches", "carries", "take-ons", "dribbles", "targ", "succ", "tkld", "totdist", "prgdist"})
	case models.CategoryPlayingTime:
		return strings.Contains(cols, "playing time") || strings.Contains(cols, "starts")
	default:
		return matchesSignature(category, cols)
	}
}

// String renders a diagnostic in the form the diagnose command prints.
func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "table #%d: %d rows x %d cols\n", d.Index, d.Rows, d.Cols)
	fmt.Fprintf(&b, "  labels: %s\n", strings.Join(d.Labels, ", "))
	if len(d.Candidates) == 0 {
		b.WriteString("  candidates: none")
	} else {
		names := make([]string, len(d.Candidates))
		for i, c := range d.Candidates {
			names[i] = string(c)
		}
		fmt.Fprintf(&b, "  candidates: %s", strings.Join(names, ", "))
	}
	return b.String()
}
