// Package stattable implements the explicit column/row table model used
// between extraction and CSV output: header normalization, row cleaning,
// category prefixing, and the rename dictionaries.
package stattable

import (
	"github.com/fbstats/fbrefscan/models"
)

// ColumnSpec describes one column of a processed table. Identity columns
// (Season, Squad, Comp and friends) keep their names across categories
// and serve as merge keys.
type ColumnSpec struct {
	Name     string
	Category models.Category
	Identity bool
}

// Table is an ordered set of named columns plus string rows. Rows are
// always as wide as Columns.
type Table struct {
	Columns []ColumnSpec
	Rows    [][]string
}

// FromRaw converts an extracted RawTable into a Table for the given
// category: headers are flattened, pandas-style Unnamed labels fixed,
// and identity columns marked.
func FromRaw(raw models.RawTable, category models.Category) Table {
	cols := make([]ColumnSpec, len(raw.Header))
	for i, h := range raw.Header {
		name := FixUnnamed(FlattenLabel(h.Over, h.Under))
		cols[i] = ColumnSpec{
			Name:     name,
			Category: category,
			Identity: isIdentityName(name),
		}
	}

	rows := make([][]string, len(raw.Rows))
	for i, r := range raw.Rows {
		row := make([]string, len(cols))
		copy(row, r)
		rows[i] = row
	}
	return Table{Columns: cols, Rows: rows}
}

// ColumnNames returns the column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// FindColumn returns the index of the first column whose name satisfies
// match, or -1.
func (t Table) FindColumn(match func(name string) bool) int {
	for i, c := range t.Columns {
		if match(c.Name) {
			return i
		}
	}
	return -1
}

// DropColumns returns a copy of t without the columns at the given
// indices.
func (t Table) DropColumns(indices []int) Table {
	if len(indices) == 0 {
		return t
	}
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}

	var cols []ColumnSpec
	for i, c := range t.Columns {
		if !drop[i] {
			cols = append(cols, c)
		}
	}
	rows := make([][]string, len(t.Rows))
	for ri, r := range t.Rows {
		var row []string
		for i, v := range r {
			if !drop[i] {
				row = append(row, v)
			}
		}
		rows[ri] = row
	}
	return Table{Columns: cols, Rows: rows}
}

// DropRows returns a copy of t without the rows at the given indices.
func (t Table) DropRows(indices []int) Table {
	if len(indices) == 0 {
		return t
	}
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	var rows [][]string
	for i, r := range t.Rows {
		if !drop[i] {
			rows = append(rows, r)
		}
	}
	return Table{Columns: t.Columns, Rows: rows}
}

// Rename applies exact-name renames from the given dictionary.
func (t Table) Rename(renames map[string]string) Table {
	cols := make([]ColumnSpec, len(t.Columns))
	copy(cols, t.Columns)
	for i := range cols {
		if newName, ok := renames[cols[i].Name]; ok {
			cols[i].Name = newName
		}
	}
	return Table{Columns: cols, Rows: t.Rows}
}

// DropNameDuplicates removes columns whose name already appeared earlier,
// keeping the first occurrence.
func (t Table) DropNameDuplicates() Table {
	seen := make(map[string]bool, len(t.Columns))
	var drop []int
	for i, c := range t.Columns {
		if seen[c.Name] {
			drop = append(drop, i)
			continue
		}
		seen[c.Name] = true
	}
	return t.DropColumns(drop)
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	cols := make([]ColumnSpec, len(t.Columns))
	copy(cols, t.Columns)
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]string, len(r))
		copy(row, r)
		rows[i] = row
	}
	return Table{Columns: cols, Rows: rows}
}
