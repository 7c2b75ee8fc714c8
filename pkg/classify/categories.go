// Package classify identifies which statistical category each table on a
// player page belongs to, using content sniffing over the column labels.
package classify

import (
	"strings"

	"github.com/fbstats/fbrefscan/models"
	"github.com/fbstats/fbrefscan/pkg/stattable"
)

// uniqueMarkers are column label fragments that, taken together, pin a
// table to one category. Used for candidate scoring and for the fallback
// pass when the primary signature does not fire.
var uniqueMarkers = map[models.Category][]string{
	models.CategoryGCA:         {"gca", "sca90", "goal creation", "shot creation"},
	models.CategoryPossession:  {"touches", "carries", "take-ons", "dribbles"},
	models.CategoryMisc:        {"recov", "aerial", "fls", "fld"},
	models.CategoryPlayingTime: {"starts", "mn/start", "compl", "min%"},
	models.CategoryDefense:     {"tkl", "tkl+int", "blocks", "challenges"},
	models.CategoryPassTypes:   {"live", "dead", "fk", "tb"},
	models.CategoryPassing:     {"cmp", "att", "cmp%", "totdist"},
	models.CategoryShooting:    {"sh", "sot", "sot%", "g/sh"},
	models.CategoryStandard:    {"gls", "ast", "g+a", "pk"},
}

// goalkeeperPatterns identify goalkeeper page tables. Matching is
// per-column, case-sensitive, against the under-level labels.
var goalkeeperPatterns = map[models.Category][]string{
	models.CategoryGoalkeeping:         {"GA", "Save%", "Saves", "SoTA", "CS"},
	models.CategoryAdvancedGoalkeeping: {"PSxG", "PSxG/SoT", "PSxG+/-", "PKA", "PKsv", "PKm"},
	models.CategoryStandard:            {"Gls", "Ast", "G+A", "PK", "PKatt"},
	models.CategoryShooting:            {"Sh", "SoT", "SoT%", "G/Sh", "G/SoT"},
	models.CategoryPassing:             {"Cmp", "Att", "Cmp%", "TotDist", "PrgDist", "PrgP"},
	models.CategoryPassTypes:           {"Live", "Dead", "FK", "TB", "Sw", "Crs", "TI", "CK"},
	models.CategoryGCA:                 {"GCA", "SCA", "GCA90", "SCA90"},
	models.CategoryDefense:             {"Tkl", "TklW", "Def 3rd", "Mid 3rd", "Att 3rd", "Blocks", "Int"},
	models.CategoryPossession:          {"Touches", "Def Pen", "Def 3rd", "Mid 3rd", "Att 3rd", "Live", "Carries", "Take-Ons"},
	models.CategoryPlayingTime:         {"MP", "Starts", "Min", "90s", "Mn/MP", "Min%", "Mn/Start"},
	models.CategoryMisc:                {"CrdY", "CrdR", "Fls", "Fld", "Recov", "Won", "Lost", "Won%"},
	models.CategoryMatchLogs:           {"Date", "Day", "Venue", "Result", "Opponent"},
}

// FieldPlayerNoPrefix and GoalkeeperNoPrefix name the categories whose
// columns keep their bare names through merging.
var (
	FieldPlayerNoPrefix = map[models.Category]bool{
		models.CategoryStandard: true,
	}
	GoalkeeperNoPrefix = map[models.Category]bool{
		models.CategoryStandard:            true,
		models.CategoryGoalkeeping:         true,
		models.CategoryAdvancedGoalkeeping: true,
	}
)

const (
	// minRows and minCols gate classification: anything smaller is page
	// furniture ("Last 5 Matches", scouting blurbs) and never a stats table.
	minRows = 10
	minCols = 10

	// minMarkerMatches is the fallback-pass threshold.
	minMarkerMatches = 2
)

// labelText concatenates every flattened column label into one lowercase
// string for substring sniffing.
func labelText(t models.RawTable) string {
	var b strings.Builder
	for i, h := range t.Header {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(stattable.FlattenLabel(h.Over, h.Under))
	}
	return strings.ToLower(b.String())
}

// underLabels returns the trimmed under-level labels, the way goalkeeper
// pattern matching sees columns.
func underLabels(t models.RawTable) []string {
	labels := make([]string, len(t.Header))
	for i, h := range t.Header {
		labels[i] = strings.TrimSpace(h.Under)
	}
	return labels
}

func eligible(t models.RawTable) bool {
	return t.RowCount() >= minRows && t.ColCount() >= minCols
}

func containsAnyOf(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func countMarkers(s string, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(s, m) {
			n++
		}
	}
	return n
}

// matchesSignature reports whether the table's label text satisfies the
// primary content signature for the category.
func matchesSignature(category models.Category, cols string) bool {
	switch category {
	case models.CategoryStandard:
		return (strings.Contains(cols, "season") || strings.Contains(cols, "squad")) &&
			strings.Contains(cols, "gls") && strings.Contains(cols, "ast")
	case models.CategoryShooting:
		return strings.Contains(cols, "shooting") ||
			(strings.Contains(cols, "sh") && strings.Contains(cols, "sot"))
	case models.CategoryPassing:
		return strings.Contains(cols, "passing") ||
			(strings.Contains(cols, "cmp") && strings.Contains(cols, "att"))
	case models.CategoryPassTypes:
		return strings.Contains(cols, "pass types") || strings.Contains(cols, "live")
	case models.CategoryGCA:
		return containsAnyOf(cols, []string{"gca", "sca", "goal creation", "shot creation", "gca90", "sca90", "passlive", "passdead"})
	case models.CategoryDefense:
		return strings.Contains(cols, "defense") || strings.Contains(cols, "tkl")
	case models.CategoryPlayingTime:
		// minutes tables share markers with possession; touches disambiguates
		return containsAnyOf(cols, []string{"mn/mp", "min%", "team success", "ppm"}) &&
			!strings.Contains(cols, "touches")
	case models.CategoryPossession:
		return strings.Contains(cols, "touches") &&
			containsAnyOf(cols, []string{"def pen", "def 3rd", "mid 3rd", "att 3rd", "dribbles"})
	case models.CategoryMisc:
		return containsAnyOf(cols, []string{"misc", "fls", "fld", "off", "crs", "tklw", "pkwon", "pkcon", "og", "recov", "aerial", "won", "lost"})
	default:
		return false
	}
}
