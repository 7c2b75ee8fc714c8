// Package htmltable extracts raw stat tables from fbref page HTML.
package htmltable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fbstats/fbrefscan/models"
)

// Extract parses every <table> in the document, in document order, into
// a RawTable. The table's position in the page is preserved as Index so
// classification decisions stay reproducible across fetches.
func Extract(html string) ([]models.RawTable, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return FromDocument(doc), nil
}

// FromDocument extracts tables from an already parsed document.
func FromDocument(doc *goquery.Document) []models.RawTable {
	var tables []models.RawTable
	doc.Find("table").Each(func(i int, sel *goquery.Selection) {
		t := models.RawTable{
			Index:  i,
			Header: extractHeader(sel),
			Rows:   extractRows(sel),
		}
		padRows(&t)
		tables = append(tables, t)
	})
	return tables
}

// extractHeader reads the thead into per-column labels. Stat tables
// carry a grouping row above the column row; both levels are kept so the
// flattened name can distinguish Performance_Gls from Expected_xG. A
// single header row yields under-level labels only.
func extractHeader(table *goquery.Selection) []models.HeaderLabel {
	rows := table.Find("thead tr")
	if rows.Length() == 0 {
		return nil
	}

	under := expandCells(rows.Last())
	var over []string
	if rows.Length() >= 2 {
		over = expandCells(rows.Eq(rows.Length() - 2))
	}

	header := make([]models.HeaderLabel, len(under))
	for i := range under {
		header[i].Under = under[i]
		if i < len(over) {
			header[i].Over = over[i]
		}
	}
	return header
}

// expandCells flattens one header row, repeating each cell's text across
// its colspan so labels line up with the data columns beneath.
func expandCells(row *goquery.Selection) []string {
	var out []string
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		text := strings.TrimSpace(cell.Text())
		span := 1
		if v, ok := cell.Attr("colspan"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 1 {
				span = n
			}
		}
		for i := 0; i < span; i++ {
			out = append(out, text)
		}
	})
	return out
}

// extractRows reads the tbody cell texts. Repeated in-body header rows
// come through as ordinary rows; the cleaning stage drops them by their
// banner values.
func extractRows(table *goquery.Selection) [][]string {
	var rows [][]string
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return rows
}

// padRows normalizes every row to the header width so downstream column
// access never goes out of range. Rows wider than the header keep their
// extra cells only when there is no header to define the width.
func padRows(t *models.RawTable) {
	width := len(t.Header)
	if width == 0 {
		for _, row := range t.Rows {
			if len(row) > width {
				width = len(row)
			}
		}
		if width == 0 {
			return
		}
		header := make([]models.HeaderLabel, width)
		t.Header = header
	}

	for i, row := range t.Rows {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			t.Rows[i] = padded
		case len(row) > width:
			t.Rows[i] = row[:width]
		}
	}
}
