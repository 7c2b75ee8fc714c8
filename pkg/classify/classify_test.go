package classify

import (
	"fmt"
	"testing"

	"github.com/fbstats/fbrefscan/models"
)

// makeTable builds a RawTable with the given under-level labels and a
// body of numbered dummy rows.
func makeTable(index, rows int, labels ...string) models.RawTable {
	header := make([]models.HeaderLabel, len(labels))
	for i, l := range labels {
		header[i] = models.HeaderLabel{Under: l}
	}
	body := make([][]string, rows)
	for i := range body {
		row := make([]string, len(labels))
		for j := range row {
			row[j] = fmt.Sprintf("v%d", i)
		}
		body[i] = row
	}
	return models.RawTable{Index: index, Header: header, Rows: body}
}

func identityLabels() []string {
	return []string{"Season", "Age", "Squad", "Country", "Comp", "LgRank"}
}

func standardTable(index, rows int) models.RawTable {
	return makeTable(index, rows, append(identityLabels(), "Gls", "Ast", "G+A", "PK")...)
}

func shootingTable(index, rows int) models.RawTable {
	return makeTable(index, rows, append(identityLabels(), "Sh", "SoT", "SoT%", "G/Sh")...)
}

func TestFieldPlayer_ClassifiesByContent(t *testing.T) {
	tables := []models.RawTable{
		standardTable(0, 14),
		shootingTable(1, 14),
	}

	got := FieldPlayer(tables)

	std, ok := got[models.CategoryStandard]
	if !ok {
		t.Fatal("standard table not classified")
	}
	if std.Table.Index != 0 {
		t.Errorf("standard at index %d, want 0", std.Table.Index)
	}

	sh, ok := got[models.CategoryShooting]
	if !ok {
		t.Fatal("shooting table not classified")
	}
	if sh.Table.Index != 1 {
		t.Errorf("shooting at index %d, want 1", sh.Table.Index)
	}
}

func TestFieldPlayer_SizeGate(t *testing.T) {
	tests := []struct {
		name  string
		table models.RawTable
	}{
		{name: "too few rows", table: standardTable(0, 9)},
		{name: "too few columns", table: makeTable(0, 20, "Season", "Squad", "Gls", "Ast")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FieldPlayer([]models.RawTable{tt.table})
			if len(got) != 0 {
				t.Errorf("undersized table was classified: %v", got)
			}
		})
	}
}

func TestFieldPlayer_OneTablePerCategory(t *testing.T) {
	// two standard-looking tables: the category takes the best one and
	// the second stays unclaimed rather than double-mapping
	tables := []models.RawTable{
		standardTable(0, 30),
		standardTable(1, 12),
	}

	got := FieldPlayer(tables)

	std := got[models.CategoryStandard]
	if std.Table.Index != 0 {
		t.Errorf("standard should pick the larger table, got index %d", std.Table.Index)
	}
	seen := make(map[int]models.Category)
	for category, ct := range got {
		if prev, dup := seen[ct.Table.Index]; dup {
			t.Errorf("table %d claimed by both %s and %s", ct.Table.Index, prev, category)
		}
		seen[ct.Table.Index] = category
	}
}

func TestFieldPlayer_FallbackByUniqueMarkers(t *testing.T) {
	// a minutes table without the Mn/MP or Min% labels misses the primary
	// playing_time signature but carries enough unique markers
	minutes := makeTable(3, 16,
		"Season", "Age", "Squad", "Country", "Comp", "LgRank",
		"Starts", "Mn/Start", "Compl", "Num1")

	got := FieldPlayer([]models.RawTable{standardTable(0, 16), minutes})

	pt, ok := got[models.CategoryPlayingTime]
	if !ok {
		t.Fatal("playing_time not found by fallback markers")
	}
	if pt.Table.Index != 3 {
		t.Errorf("playing_time at index %d, want 3", pt.Table.Index)
	}
	if pt.Matches < 2 {
		t.Errorf("fallback accepted %d markers, need at least 2", pt.Matches)
	}
}

func TestFieldPlayer_Deterministic(t *testing.T) {
	tables := []models.RawTable{
		standardTable(0, 14),
		shootingTable(1, 14),
		makeTable(2, 14, append(identityLabels(), "Touches", "Def Pen", "Carries", "Dribbles")...),
	}

	first := FieldPlayer(tables)
	for i := 0; i < 10; i++ {
		again := FieldPlayer(tables)
		if len(again) != len(first) {
			t.Fatalf("run %d classified %d categories, first run %d", i, len(again), len(first))
		}
		for category, ct := range first {
			if again[category].Table.Index != ct.Table.Index {
				t.Fatalf("run %d: %s moved from table %d to %d", i, category, ct.Table.Index, again[category].Table.Index)
			}
		}
	}
}

func TestScoreQuality(t *testing.T) {
	big := makeTable(0, 50, append(identityLabels(), "Touches", "Carries", "Take-Ons", "Dribbles")...)
	small := makeTable(1, 12, append(identityLabels(), "Touches", "Carries", "Num1", "Num2")...)

	bigScore := scoreQuality(big, models.CategoryPossession)
	smallScore := scoreQuality(small, models.CategoryPossession)

	if bigScore <= smallScore {
		t.Errorf("bigger table with more markers scored %v, smaller %v", bigScore, smallScore)
	}
	if bigScore > 100 {
		t.Errorf("score %v exceeds cap", bigScore)
	}
	if smallScore >= 60 {
		t.Errorf("small sparse table scored too high: %v", smallScore)
	}
}

func TestGoalkeeper_KeepsAllCandidates(t *testing.T) {
	keeper := makeTable(0, 15, append(identityLabels(), "GA", "SoTA", "Saves", "Save%", "CS")...)
	passing := makeTable(1, 15, append(identityLabels(), "Cmp", "Att", "Cmp%", "TotDist")...)

	got := Goalkeeper([]models.RawTable{keeper, passing})

	gk, ok := got[models.CategoryGoalkeeping]
	if !ok || len(gk) == 0 {
		t.Fatal("goalkeeping table not found")
	}
	if gk[0].Table.Index != 0 {
		t.Errorf("goalkeeping candidate index %d, want 0", gk[0].Table.Index)
	}
	if gk[0].Matches < 4 {
		t.Errorf("goalkeeping matches = %d, want >= 4", gk[0].Matches)
	}

	if _, ok := got[models.CategoryPassing]; !ok {
		t.Error("passing table not found")
	}

	best := BestGoalkeeper(got)
	if best[models.CategoryGoalkeeping].Table.Index != 0 {
		t.Error("BestGoalkeeper should pick the strongest candidate")
	}
}

func TestAnalyze(t *testing.T) {
	tables := []models.RawTable{
		standardTable(0, 14),
		makeTable(1, 3, "tiny"),
	}

	got := Analyze(tables)
	if len(got) != 1 {
		t.Fatalf("Analyze returned %d diagnostics, want 1 (tiny table skipped)", len(got))
	}
	d := got[0]
	if d.Index != 0 || d.Rows != 14 {
		t.Errorf("diagnostic = %+v", d)
	}
	foundStandard := false
	for _, c := range d.Candidates {
		if c == models.CategoryStandard {
			foundStandard = true
		}
	}
	if !foundStandard {
		t.Errorf("standard missing from candidates: %v", d.Candidates)
	}
}
