package htmltable

import (
	"testing"
)

const playerPage = `<html><body>
<p>not a table</p>
<table id="stats_standard">
  <thead>
    <tr><th colspan="3"></th><th colspan="2">Performance</th></tr>
    <tr><th>Season</th><th>Squad</th><th>Comp</th><th>Gls</th><th>Ast</th></tr>
  </thead>
  <tbody>
    <tr><th>2022-2023</th><td>Arsenal</td><td>Premier League</td><td>4</td><td>2</td></tr>
    <tr><th>2023-2024</th><td>Arsenal</td><td>Premier League</td><td>7</td><td>5</td></tr>
  </tbody>
</table>
<table id="stats_shooting">
  <thead>
    <tr><th>Season</th><th>Sh</th><th>SoT</th></tr>
  </thead>
  <tbody>
    <tr><th>2023-2024</th><td>40</td></tr>
  </tbody>
</table>
</body></html>`

func TestExtract(t *testing.T) {
	tables, err := Extract(playerPage)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(tables))
	}

	std := tables[0]
	if std.Index != 0 {
		t.Errorf("first table index = %d, want 0", std.Index)
	}
	if std.ColCount() != 5 {
		t.Fatalf("standard table has %d columns, want 5", std.ColCount())
	}
	if std.Header[3].Over != "Performance" || std.Header[3].Under != "Gls" {
		t.Errorf("colspan not expanded: %+v", std.Header[3])
	}
	if std.Header[0].Over != "" {
		t.Errorf("empty over-header should stay empty, got %q", std.Header[0].Over)
	}
	if std.RowCount() != 2 {
		t.Fatalf("standard table has %d rows, want 2", std.RowCount())
	}
	if std.Rows[1][0] != "2023-2024" || std.Rows[1][3] != "7" {
		t.Errorf("row cells wrong: %v", std.Rows[1])
	}

	sh := tables[1]
	if sh.Index != 1 {
		t.Errorf("second table index = %d, want 1", sh.Index)
	}
	if sh.Header[1].Over != "" || sh.Header[1].Under != "Sh" {
		t.Errorf("single header row should fill under level only: %+v", sh.Header[1])
	}
}

func TestExtract_PadsShortRows(t *testing.T) {
	tables, err := Extract(playerPage)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	row := tables[1].Rows[0]
	if len(row) != 3 {
		t.Fatalf("short row not padded to header width: %v", row)
	}
	if row[2] != "" {
		t.Errorf("padding cell = %q, want empty", row[2])
	}
}

func TestExtract_NoTables(t *testing.T) {
	tables, err := Extract("<html><body><p>nothing here</p></body></html>")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("got %d tables, want 0", len(tables))
	}
}

func TestExtract_HeaderlessTable(t *testing.T) {
	tables, err := Extract(`<table><tbody>
		<tr><td>a</td><td>b</td></tr>
		<tr><td>c</td></tr>
	</tbody></table>`)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
	if tables[0].ColCount() != 2 {
		t.Errorf("headerless width = %d, want widest row 2", tables[0].ColCount())
	}
	if len(tables[0].Rows[1]) != 2 {
		t.Errorf("short row not padded: %v", tables[0].Rows[1])
	}
}
