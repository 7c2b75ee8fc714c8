package stattable

import (
	"regexp"
	"strings"

	"github.com/fbstats/fbrefscan/models"
)

var (
	seasonStopWords = []string{"Season", "Club", "Total", "League"}
	compStopWords   = []string{"Comp", "Country", "Squad", "MP", "Min"}

	countryPrefix   = regexp.MustCompile(`^[a-z]+ `)
	compTierPrefix  = regexp.MustCompile(`^\d+\. `)
	squadCodePrefix = regexp.MustCompile(`^[a-z]{2,3}\s+`)
)

// Clean removes site furniture from a table: "Matches" link columns,
// aggregate banner rows repeated mid-table, and fully empty rows. It
// degrades rather than fails; malformed input yields fewer rows, never an
// error.
func Clean(t Table) Table {
	if len(t.Rows) == 0 {
		return t
	}

	var matchCols []int
	for i, c := range t.Columns {
		if strings.Contains(strings.ToLower(c.Name), "matches") {
			matchCols = append(matchCols, i)
		}
	}
	t = t.DropColumns(matchCols)

	if season := t.FindColumn(func(n string) bool { return strings.Contains(n, "Season") }); season >= 0 {
		var drop []int
		for i, row := range t.Rows {
			if containsAny(row[season], seasonStopWords) {
				drop = append(drop, i)
			}
		}
		t = t.DropRows(drop)
	}

	// The comp column repeats header words in banner rows. "Competition"
	// is a renamed data column and must not be matched here.
	comp := t.FindColumn(func(n string) bool {
		return strings.Contains(n, "Comp") && !strings.Contains(n, "Competition")
	})
	if comp >= 0 {
		var drop []int
		for i, row := range t.Rows {
			if containsAny(row[comp], compStopWords) {
				drop = append(drop, i)
			}
		}
		t = t.DropRows(drop)
	}

	var empty []int
	for i, row := range t.Rows {
		if rowEmpty(row) {
			empty = append(empty, i)
		}
	}
	return t.DropRows(empty)
}

// CleanSerialized is the strict variant applied to tables rebuilt from
// serialized output, where banner rows survive with a blank first cell
// and a literal "Country" in the fourth column.
func CleanSerialized(t Table) Table {
	if len(t.Rows) == 0 || len(t.Columns) < 4 {
		return t
	}
	var drop []int
	for i, row := range t.Rows {
		first := strings.TrimSpace(row[0])
		fourth := strings.TrimSpace(row[3])
		if (first == "" || first == "nan") && fourth == "Country" {
			drop = append(drop, i)
		}
	}
	return t.DropRows(drop)
}

// StripPlayingTime removes minutes/starts columns that the site repeats
// on every table. The playing_time table keeps its own.
func StripPlayingTime(t Table, category models.Category) Table {
	if category == models.CategoryPlayingTime {
		return t
	}
	var drop []int
	for i, c := range t.Columns {
		for _, pattern := range playingTimePatterns {
			if pattern.MatchString(c.Name) {
				drop = append(drop, i)
				break
			}
		}
	}
	return t.DropColumns(drop)
}

// Prefix appends "_<category>" to every non-identity column, so that
// same-named stat columns from different tables stay distinguishable
// after merging. Categories in noPrefix keep their names.
func Prefix(t Table, category models.Category, noPrefix map[models.Category]bool) Table {
	if noPrefix[category] {
		return t
	}
	cols := make([]ColumnSpec, len(t.Columns))
	copy(cols, t.Columns)
	for i := range cols {
		if !cols[i].Identity {
			cols[i].Name = cols[i].Name + "_" + string(category)
		}
	}
	return Table{Columns: cols, Rows: t.Rows}
}

// CleanCountryValues strips the lowercase flag code prefix from country
// cells ("eng ENG" -> "ENG") and blanks literal "nan".
func CleanCountryValues(t Table) Table {
	i := t.FindColumn(func(n string) bool { return n == "country" })
	if i < 0 {
		return t
	}
	t = t.Clone()
	for _, row := range t.Rows {
		row[i] = countryPrefix.ReplaceAllString(row[i], "")
		if row[i] == "nan" {
			row[i] = ""
		}
	}
	return t
}

// CleanCompetitionValues strips tier numbering from competition cells
// ("1. Ligue 1" -> "Ligue 1").
func CleanCompetitionValues(t Table) Table {
	i := t.FindColumn(func(n string) bool { return n == "competition" })
	if i < 0 {
		return t
	}
	t = t.Clone()
	for _, row := range t.Rows {
		row[i] = compTierPrefix.ReplaceAllString(row[i], "")
		row[i] = strings.ReplaceAll(row[i], "Jr. PL2 — Div. 1", "PL2 Div 1")
	}
	return t
}

// CleanSquadValues strips country code prefixes from squad cells
// ("eng Arsenal" -> "Arsenal").
func CleanSquadValues(t Table) Table {
	t = t.Clone()
	for i, c := range t.Columns {
		if !strings.Contains(strings.ToLower(c.Name), "squad") {
			continue
		}
		for _, row := range t.Rows {
			row[i] = squadCodePrefix.ReplaceAllString(row[i], "")
		}
	}
	return t
}

func containsAny(value string, words []string) bool {
	for _, w := range words {
		if strings.Contains(value, w) {
			return true
		}
	}
	return false
}

func rowEmpty(row []string) bool {
	for _, v := range row {
		v = strings.TrimSpace(v)
		if v != "" && v != "nan" {
			return false
		}
	}
	return true
}
