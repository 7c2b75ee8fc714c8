package stattable

import (
	"testing"

	"github.com/fbstats/fbrefscan/models"
)

func TestFlattenLabel(t *testing.T) {
	tests := []struct {
		name  string
		over  string
		under string
		want  string
	}{
		{
			name:  "both levels present",
			over:  "Performance",
			under: "Gls",
			want:  "Performance_Gls",
		},
		{
			name:  "empty over level skipped",
			over:  "",
			under: "Season",
			want:  "Season",
		},
		{
			name:  "nan level skipped",
			over:  "nan",
			under: "Squad",
			want:  "Squad",
		},
		{
			name:  "whitespace-only level skipped",
			over:  "   ",
			under: "Age",
			want:  "Age",
		},
		{
			name:  "underscores collapsed",
			over:  "Team_Success_",
			under: "_PPM",
			want:  "Team_Success_PPM",
		},
		{
			name:  "both empty",
			over:  "",
			under: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlattenLabel(tt.over, tt.under); got != tt.want {
				t.Errorf("FlattenLabel(%q, %q) = %q, want %q", tt.over, tt.under, got, tt.want)
			}
		})
	}
}

func TestFixUnnamed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "unnamed placeholder stripped",
			in:   "Unnamed: 0_level_0_Season",
			want: "Season",
		},
		{
			name: "unnamed with multi-part suffix keeps last segment",
			in:   "Unnamed: 3_level_0_Country",
			want: "Country",
		},
		{
			name: "regular name untouched",
			in:   "Performance_Gls",
			want: "Performance_Gls",
		},
		{
			name: "unnamed prefix without level marker untouched",
			in:   "Unnamed: something",
			want: "Unnamed: something",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixUnnamed(tt.in); got != tt.want {
				t.Errorf("FixUnnamed(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "percent sign", in: "Cmp%", want: "cmp_pct"},
		{name: "plus expands and gets readable name", in: "G+A", want: "goals_plus_assists"},
		{name: "minus with readable replacement", in: "G-PK", want: "goals_minus_penalties"},
		{name: "slash", in: "G/Sh", want: "g_per_sh"},
		{name: "minutes per match", in: "Mn/MP", want: "minutes_per_match"},
		{name: "take-ons collapses", in: "Take-Ons", want: "takeons"},
		{name: "third zones", in: "Def 3rd", want: "def_third"},
		{name: "parens and spaces", in: "Team Success (xG)_onxG", want: "team_success_xg_onxg"},
		{name: "hash symbol", in: "#OPA", want: "num_opa"},
		{name: "already snake_case is stable", in: "minutes_per_match", want: "minutes_per_match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SnakeCase(tt.in)
			if got != tt.want {
				t.Errorf("SnakeCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
			// converting twice must not change the result
			if again := SnakeCase(got); again != got {
				t.Errorf("SnakeCase not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestFromRaw_MarksIdentityColumns(t *testing.T) {
	raw := models.RawTable{
		Index: 4,
		Header: []models.HeaderLabel{
			{Over: "", Under: "Season"},
			{Over: "", Under: "Squad"},
			{Over: "Performance", Under: "Gls"},
		},
		Rows: [][]string{{"2023-2024", "Arsenal", "2"}},
	}

	table := FromRaw(raw, models.CategoryStandard)

	if got := table.Columns[0].Name; got != "Season" {
		t.Errorf("column 0 name = %q, want Season", got)
	}
	if !table.Columns[0].Identity || !table.Columns[1].Identity {
		t.Error("Season and Squad should be identity columns")
	}
	if table.Columns[2].Identity {
		t.Error("Performance_Gls should not be an identity column")
	}
	if table.Columns[2].Name != "Performance_Gls" {
		t.Errorf("column 2 name = %q, want Performance_Gls", table.Columns[2].Name)
	}
}

func TestApplyFieldPlayerRenames(t *testing.T) {
	table := Table{
		Columns: []ColumnSpec{
			{Name: "Season", Identity: true},
			{Name: "Comp", Identity: true},
			{Name: "90s_shooting"},
			{Name: "Gls_shooting"},
			{Name: "Min_playing_time"},
			{Name: "Cmp%_passing"},
		},
		Rows: [][]string{{"2023-2024", "1. Premier League", "10.0", "5", "900", "88.1"}},
	}

	got := ApplyFieldPlayerRenames(table)

	want := []string{"season", "competition", "gls_sh", "minutes", "cmp_pct_pass"}
	names := got.ColumnNames()
	if len(names) != len(want) {
		t.Fatalf("got %d columns %v, want %d", len(names), names, len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestApplyGoalkeeperRenames(t *testing.T) {
	table := Table{
		Columns: []ColumnSpec{
			{Name: "Season", Identity: true},
			{Name: "Squad", Identity: true},
			{Name: "GA"},
			{Name: "Save%"},
			{Name: "Save%"},
		},
		Rows: [][]string{{"2023-2024", "eng Arsenal", "28", "72.1", "72.1"}},
	}

	got := ApplyGoalkeeperRenames(table)

	want := []string{"season", "squad", "goals_against", "save_pct"}
	names := got.ColumnNames()
	if len(names) != len(want) {
		t.Fatalf("got columns %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, names[i], want[i])
		}
	}
	if got.Rows[0][1] != "Arsenal" {
		t.Errorf("squad value = %q, want country code stripped", got.Rows[0][1])
	}
}
