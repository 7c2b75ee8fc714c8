package stattable

import (
	"regexp"
	"strings"
)

var multiUnderscore = regexp.MustCompile(`_+`)

// FlattenLabel joins the two header levels into a single column name.
// Empty and "nan" levels are skipped, repeated underscores collapsed.
func FlattenLabel(over, under string) string {
	var parts []string
	for _, level := range []string{over, under} {
		level = strings.TrimSpace(level)
		if level == "" || level == "nan" {
			continue
		}
		parts = append(parts, level)
	}
	name := strings.Join(parts, "_")
	name = multiUnderscore.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

// FixUnnamed strips pandas-style "Unnamed: N_level_0_" placeholder
// prefixes, keeping the real label after the last underscore.
func FixUnnamed(name string) string {
	if strings.HasPrefix(name, "Unnamed:") && strings.Contains(name, "_level_0_") {
		parts := strings.Split(name, "_")
		return parts[len(parts)-1]
	}
	return name
}

// snakeSymbols maps statistical shorthand symbols to word fragments.
var snakeSymbols = []struct{ old, new string }{
	{"%", "_pct"},
	{"+", "_plus_"},
	{"-", "_minus_"},
	{"/", "_per_"},
	{"(", "_"},
	{")", "_"},
	{" ", "_"},
	{"&", "_and_"},
	{"#", "_num_"},
}

// SnakeCase converts a column name to snake_case, expanding symbols into
// words and applying the readability replacements. Idempotent.
func SnakeCase(name string) string {
	col := name
	for _, sym := range snakeSymbols {
		col = strings.ReplaceAll(col, sym.old, sym.new)
	}
	col = multiUnderscore.ReplaceAllString(col, "_")
	col = strings.Trim(col, "_")
	col = strings.ToLower(col)

	for _, r := range snakeCaseReplacements {
		col = strings.ReplaceAll(col, r.old, r.new)
	}
	return col
}

// ApplyFieldPlayerRenames performs the final column naming pass for a
// merged field player table: duplicate 90s columns dropped, identity and
// playing time columns renamed, category suffixes abbreviated, and
// everything converted to snake_case.
func ApplyFieldPlayerRenames(t Table) Table {
	var drop []int
	for i, c := range t.Columns {
		if duplicate90sColumns[c.Name] {
			drop = append(drop, i)
		}
	}
	t = t.DropColumns(drop)

	t = t.Rename(fieldPlayerBasicRenames)
	t = t.Rename(fieldPlayerPlayingTimeRenames)

	cols := make([]ColumnSpec, len(t.Columns))
	copy(cols, t.Columns)
	for i := range cols {
		for _, suffix := range fieldPlayerSuffixMap {
			if strings.HasSuffix(cols[i].Name, suffix.old) {
				cols[i].Name = strings.TrimSuffix(cols[i].Name, suffix.old) + suffix.new
				break
			}
		}
	}
	for i := range cols {
		cols[i].Name = SnakeCase(cols[i].Name)
	}
	return Table{Columns: cols, Rows: t.Rows}
}

// ApplyGoalkeeperRenames performs the final column naming pass for a
// merged goalkeeper table.
func ApplyGoalkeeperRenames(t Table) Table {
	t = t.Rename(goalkeeperBasicRenames)

	cols := make([]ColumnSpec, len(t.Columns))
	copy(cols, t.Columns)
	for i := range cols {
		cols[i].Name = SnakeCase(cols[i].Name)
	}
	t = Table{Columns: cols, Rows: t.Rows}

	t = t.DropNameDuplicates()

	// playing_time_mp duplicates matches_played from the goalkeeping table
	if t.FindColumn(func(n string) bool { return n == "matches_played" }) >= 0 {
		if i := t.FindColumn(func(n string) bool { return n == "playing_time_mp" }); i >= 0 {
			t = t.DropColumns([]int{i})
		}
	}

	return CleanSquadValues(t)
}
