// Package merge joins the per-category tables of a player page into one
// wide table keyed on season/squad/competition.
package merge

import (
	"log/slog"
	"strings"

	"github.com/fbstats/fbrefscan/models"
	"github.com/fbstats/fbrefscan/pkg/stattable"
)

// Strategy selects how non-base tables join onto the base table.
type Strategy int

const (
	// LeftJoin keeps only base rows; used for field players where the
	// standard table is authoritative.
	LeftJoin Strategy = iota
	// OuterJoin also keeps rows unique to the joined table; used for
	// goalkeepers whose goalkeeping table can cover extra seasons.
	OuterJoin
)

var keySubstrings = []string{"season", "squad", "comp"}

// Tables merges the processed per-category tables. The standard table is
// the base when present, otherwise the first category in order. Tables
// whose keys cannot be joined fall back to positional column append; one
// bad table never aborts the merge.
func Tables(processed map[models.Category]stattable.Table, order []models.Category, strategy Strategy, logger *slog.Logger) stattable.Table {
	if logger == nil {
		logger = slog.Default()
	}

	var present []models.Category
	for _, c := range order {
		if _, ok := processed[c]; ok {
			present = append(present, c)
		}
	}
	if len(present) == 0 {
		return stattable.Table{}
	}

	base := present[0]
	if _, ok := processed[models.CategoryStandard]; ok {
		base = models.CategoryStandard
	}

	merged := processed[base].Clone()
	keys := mergeKeyIndices(merged)
	logger.Debug("merge base selected", "category", base, "keys", len(keys), "rows", len(merged.Rows))

	for _, category := range present {
		if category == base {
			continue
		}
		right := processed[category]

		if len(keys) == 0 {
			merged = appendPositional(merged, right)
			continue
		}

		joined, ok := join(merged, right, keys, category, strategy)
		if !ok {
			logger.Warn("key join failed, appending positionally", "category", category)
			merged = appendPositional(merged, right)
		} else {
			merged = joined
		}
		keys = mergeKeyIndices(merged)
	}

	return merged
}

// Finalize drops the _dup collision columns and any remaining name
// duplicates after all joins are done.
func Finalize(t stattable.Table) stattable.Table {
	var drop []int
	for i, c := range t.Columns {
		if strings.Contains(c.Name, "_dup") {
			drop = append(drop, i)
		}
	}
	return t.DropColumns(drop).DropNameDuplicates()
}

// mergeKeyIndices finds the base columns usable as join keys.
func mergeKeyIndices(t stattable.Table) []int {
	var keys []int
	for i, c := range t.Columns {
		lower := strings.ToLower(c.Name)
		for _, sub := range keySubstrings {
			if strings.Contains(lower, sub) {
				keys = append(keys, i)
				break
			}
		}
	}
	return keys
}

// join merges right onto left over the shared key columns. Returns false
// when either side has duplicate key tuples, which would multiply rows.
func join(left, right stattable.Table, leftKeys []int, category models.Category, strategy Strategy) (stattable.Table, bool) {
	keyNames := make([]string, len(leftKeys))
	for i, k := range leftKeys {
		keyNames[i] = left.Columns[k].Name
	}

	rightKeys := make([]int, 0, len(keyNames))
	for _, name := range keyNames {
		idx := right.FindColumn(func(n string) bool { return n == name })
		if idx < 0 {
			return stattable.Table{}, false
		}
		rightKeys = append(rightKeys, idx)
	}

	rightByKey := make(map[string]int, len(right.Rows))
	for i, row := range right.Rows {
		k := keyOf(row, rightKeys)
		if _, dup := rightByKey[k]; dup {
			return stattable.Table{}, false
		}
		rightByKey[k] = i
	}
	if hasDuplicateKeys(left, leftKeys) {
		return stattable.Table{}, false
	}

	rightKeySet := make(map[int]bool, len(rightKeys))
	for _, k := range rightKeys {
		rightKeySet[k] = true
	}

	// non-key right columns come over, renamed on collision
	existing := make(map[string]bool, len(left.Columns))
	for _, c := range left.Columns {
		existing[c.Name] = true
	}
	var carryIdx []int
	cols := make([]stattable.ColumnSpec, 0, len(left.Columns)+len(right.Columns))
	cols = append(cols, left.Columns...)
	for i, c := range right.Columns {
		if rightKeySet[i] {
			continue
		}
		carryIdx = append(carryIdx, i)
		if existing[c.Name] {
			c.Name = c.Name + dupSuffix(category, strategy)
		}
		existing[c.Name] = true
		cols = append(cols, c)
	}

	matched := make(map[string]bool, len(left.Rows))
	rows := make([][]string, 0, len(left.Rows))
	for _, lrow := range left.Rows {
		k := keyOf(lrow, leftKeys)
		out := make([]string, 0, len(cols))
		out = append(out, lrow...)
		if ri, ok := rightByKey[k]; ok {
			matched[k] = true
			for _, ci := range carryIdx {
				out = append(out, right.Rows[ri][ci])
			}
		} else {
			for range carryIdx {
				out = append(out, "")
			}
		}
		rows = append(rows, out)
	}

	if strategy == OuterJoin {
		for _, rrow := range right.Rows {
			k := keyOf(rrow, rightKeys)
			if matched[k] {
				continue
			}
			out := make([]string, len(left.Columns))
			for i, lk := range leftKeys {
				out[lk] = rrow[rightKeys[i]]
			}
			for _, ci := range carryIdx {
				out = append(out, rrow[ci])
			}
			rows = append(rows, out)
		}
	}

	return stattable.Table{Columns: cols, Rows: rows}, true
}

func dupSuffix(category models.Category, strategy Strategy) string {
	if strategy == OuterJoin {
		return "_dup"
	}
	return "_dup_" + string(category)
}

// appendPositional concatenates right's columns beside left's, padding
// whichever side is shorter with empty cells.
func appendPositional(left, right stattable.Table) stattable.Table {
	cols := make([]stattable.ColumnSpec, 0, len(left.Columns)+len(right.Columns))
	cols = append(cols, left.Columns...)
	cols = append(cols, right.Columns...)

	n := len(left.Rows)
	if len(right.Rows) > n {
		n = len(right.Rows)
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, 0, len(cols))
		if i < len(left.Rows) {
			row = append(row, left.Rows[i]...)
		} else {
			row = append(row, make([]string, len(left.Columns))...)
		}
		if i < len(right.Rows) {
			row = append(row, right.Rows[i]...)
		} else {
			row = append(row, make([]string, len(right.Columns))...)
		}
		rows[i] = row
	}
	return stattable.Table{Columns: cols, Rows: rows}
}

func keyOf(row []string, keys []int) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		if k < len(row) {
			parts[i] = strings.TrimSpace(row[k])
		}
	}
	return strings.Join(parts, "\x1f")
}

func hasDuplicateKeys(t stattable.Table, keys []int) bool {
	seen := make(map[string]bool, len(t.Rows))
	for _, row := range t.Rows {
		k := keyOf(row, keys)
		if seen[k] {
			return true
		}
		seen[k] = true
	}
	return false
}
