// Package models defines shared data structures for tables, classification
// results, and scrape configuration.
package models

// Category identifies a statistical table type on a player page.
type Category string

const (
	CategoryStandard            Category = "standard"
	CategoryShooting            Category = "shooting"
	CategoryPassing             Category = "passing"
	CategoryPassTypes           Category = "pass_types"
	CategoryGCA                 Category = "gca"
	CategoryDefense             Category = "defense"
	CategoryPossession          Category = "possession"
	CategoryPlayingTime         Category = "playing_time"
	CategoryMisc                Category = "misc"
	CategoryGoalkeeping         Category = "goalkeeping"
	CategoryAdvancedGoalkeeping Category = "advanced_goalkeeping"
	CategoryMatchLogs           Category = "match_logs"
)

// FieldPlayerCategories lists the table types expected on a field player
// page, in classification priority order.
var FieldPlayerCategories = []Category{
	CategoryStandard,
	CategoryShooting,
	CategoryPassing,
	CategoryPassTypes,
	CategoryGCA,
	CategoryDefense,
	CategoryPlayingTime,
	CategoryPossession,
	CategoryMisc,
}

// GoalkeeperCategories lists the table types considered on a goalkeeper
// page. Goalkeeping tables come first so they win merge ordering.
var GoalkeeperCategories = []Category{
	CategoryGoalkeeping,
	CategoryAdvancedGoalkeeping,
	CategoryStandard,
	CategoryShooting,
	CategoryPassing,
	CategoryPassTypes,
	CategoryGCA,
	CategoryDefense,
	CategoryPossession,
	CategoryPlayingTime,
	CategoryMisc,
	CategoryMatchLogs,
}

// HeaderLabel is one column of a two-level table header. Over is the
// grouping label (may be empty), Under the column label proper.
type HeaderLabel struct {
	Over  string
	Under string
}

// RawTable is a table as extracted from HTML, before any column
// normalization. Index is the table's position on the page.
type RawTable struct {
	Index  int
	Header []HeaderLabel
	Rows   [][]string
}

// RowCount returns the number of data rows.
func (t RawTable) RowCount() int { return len(t.Rows) }

// ColCount returns the number of columns.
func (t RawTable) ColCount() int { return len(t.Header) }

// ClassifiedTable pairs a raw table with the category it was classified
// as. Matches records how many category markers matched, for candidate
// ranking.
type ClassifiedTable struct {
	Table    RawTable
	Category Category
	Matches  int
}
