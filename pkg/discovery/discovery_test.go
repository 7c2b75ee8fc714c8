package discovery

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/fbstats/fbrefscan/models"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

const compsPage = `<html><body>
<div><h2>Domestic Leagues - 1st Tier</h2></div>
<div><table>
  <tbody>
    <tr><th>England</th><td><a href="/en/comps/9/Premier-League-Stats">Premier League</a></td></tr>
    <tr><th>England</th><td><a href="/en/comps/189/Womens-Super-League-Stats">Women's Super League (W)</a></td></tr>
    <tr><th>Spain</th><td><a href="/en/comps/12/La-Liga-Stats">La Liga</a></td></tr>
    <tr><th></th><td><a href="/en/comps/season/2026">2026 Calendar</a></td></tr>
  </tbody>
</table></div>
<div><h2>Domestic Leagues - 2nd Tier</h2></div>
<div><table>
  <tbody>
    <tr><th>England</th><td><a href="/en/comps/10/Championship-Stats">Championship</a></td></tr>
  </tbody>
</table></div>
</body></html>`

func TestExtractLeagues(t *testing.T) {
	doc := parseDoc(t, compsPage)

	got := ExtractLeagues(doc, []string{"1st", "2nd"}, "M")

	if len(got) != 3 {
		t.Fatalf("got %d leagues, want 3: %+v", len(got), got)
	}
	pl := got[0]
	if pl.ID != "9" || pl.Name != "Premier League" || pl.Country != "England" || pl.Tier != "1st" {
		t.Errorf("premier league = %+v", pl)
	}
	if pl.BaseURL != "https://fbref.com/en/comps/9/Premier-League-Stats" {
		t.Errorf("base URL = %q", pl.BaseURL)
	}
	if got[2].ID != "10" || got[2].Tier != "2nd" {
		t.Errorf("championship = %+v", got[2])
	}
	for _, l := range got {
		if strings.Contains(l.Name, "(W)") || strings.Contains(l.Name, "Women") {
			t.Errorf("women's league leaked into men's results: %+v", l)
		}
	}
}

func TestExtractLeagues_WomenFilter(t *testing.T) {
	doc := parseDoc(t, compsPage)

	got := ExtractLeagues(doc, []string{"1st"}, "W")

	if len(got) != 1 {
		t.Fatalf("got %d leagues, want 1: %+v", len(got), got)
	}
	if got[0].ID != "189" {
		t.Errorf("league = %+v", got[0])
	}
	if strings.Contains(got[0].Name, "(W)") {
		t.Errorf("gender marker not stripped from name: %q", got[0].Name)
	}
}

func TestExtractLeagues_TierFilter(t *testing.T) {
	doc := parseDoc(t, compsPage)

	got := ExtractLeagues(doc, []string{"2nd"}, "M")

	if len(got) != 1 || got[0].Name != "Championship" {
		t.Fatalf("got %+v, want only Championship", got)
	}
}

const leaguePage = `<html><body>
<select id="seasons">
  <option value="/en/comps/9/2024-2025/Premier-League-Stats">2024-2025</option>
  <option value="/en/comps/9/2023-2024/Premier-League-Stats">2023-2024</option>
</select>
<a href="/en/comps/season/2026">calendar</a>
<a href="/en/comps/9/2022-2023/Premier-League-Stats">2022-2023</a>
<a href="/en/comps/12/2025-2026/La-Liga-Stats">other league</a>
</body></html>`

func TestLatestSeasonURL(t *testing.T) {
	doc := parseDoc(t, leaguePage)

	got := LatestSeasonURL(doc, "https://fbref.com/en/comps/9/Premier-League-Stats")

	want := "https://fbref.com/en/comps/9/2024-2025/Premier-League-Stats"
	if got != want {
		t.Errorf("LatestSeasonURL = %q, want %q", got, want)
	}
}

func TestLatestSeasonURL_NoCandidatesFallsBack(t *testing.T) {
	doc := parseDoc(t, "<html><body><p>nothing</p></body></html>")

	base := "https://fbref.com/en/comps/9/Premier-League-Stats"
	if got := LatestSeasonURL(doc, base); got != base {
		t.Errorf("LatestSeasonURL = %q, want base URL", got)
	}
}

const standingsPage = `<html><body>
<table id="results2024202591_overall">
  <thead><tr><th>Rk</th><th>Squad</th><th>MP</th></tr></thead>
  <tbody>
    <tr><th>1</th><td><a href="/en/squads/18bb7c10/Arsenal-Stats">Arsenal</a></td><td>38</td></tr>
    <tr class="thead"><th>Rk</th><td>Squad</td><td>MP</td></tr>
    <tr><th>2</th><td><a href="/en/squads/b8fd03ef/Manchester-City-Stats">Manchester City</a></td><td>38</td></tr>
    <tr><th>3</th><td><a href="/en/squads/18bb7c10/Arsenal-Stats">Arsenal</a></td><td>38</td></tr>
  </tbody>
</table>
</body></html>`

func TestExtractTeams_ByTableID(t *testing.T) {
	doc := parseDoc(t, standingsPage)

	got, err := ExtractTeams(doc, "https://fbref.com/en/comps/9/2024-2025/Premier-League-Stats", "Premier League")
	if err != nil {
		t.Fatalf("ExtractTeams: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d teams, want 2 (duplicate dropped): %+v", len(got), got)
	}
	if got[0].Name != "Arsenal" || got[0].SquadURL != "https://fbref.com/en/squads/18bb7c10/Arsenal-Stats" {
		t.Errorf("first team = %+v", got[0])
	}
	if got[0].LeagueName != "Premier League" {
		t.Errorf("league name = %q", got[0].LeagueName)
	}
}

func TestExtractTeams_KeywordFallback(t *testing.T) {
	page := `<html><body>
	<table id="some_unknown_id">
	  <thead><tr><th>Squad</th><th>MP</th><th>W</th><th>D</th><th>L</th><th>Pts</th></tr></thead>
	  <tbody>
	    <tr><td><a href="/en/squads/abc123/Celtic-Stats">Celtic</a></td><td>38</td><td>30</td><td>5</td><td>3</td><td>95</td></tr>
	  </tbody>
	</table>
	</body></html>`
	doc := parseDoc(t, page)

	got, err := ExtractTeams(doc, "https://fbref.com/en/comps/40/Scottish-Premiership-Stats", "")
	if err != nil {
		t.Fatalf("ExtractTeams: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Celtic" {
		t.Errorf("teams = %+v", got)
	}
}

func TestExtractTeams_NoTableErrors(t *testing.T) {
	doc := parseDoc(t, "<html><body></body></html>")
	if _, err := ExtractTeams(doc, "https://fbref.com/en/comps/9/x", ""); err == nil {
		t.Error("expected error for missing standings table")
	}
}

const squadPage = `<html><body>
<table id="stats_standard_9">
  <thead><tr><th>Player</th><th>Nation</th><th>Pos</th><th>Age</th></tr></thead>
  <tbody>
    <tr><th><a href="/en/players/bc7dc64d/2023-2024/Bukayo-Saka-Stats">Bukayo Saka</a></th><td>eng ENG</td><td>FW,MF</td><td>22</td></tr>
    <tr><th><a href="/en/players/98ea5115/2023-2024/David-Raya-Stats">David Raya</a></th><td>es ESP</td><td>GK</td><td>28</td></tr>
    <tr class="thead"><th>Player</th><td>Nation</td><td>Pos</td><td>Age</td></tr>
    <tr><th><a href="/en/players/bc7dc64d/2023-2024/Bukayo-Saka-Stats">Bukayo Saka</a></th><td>eng ENG</td><td>FW</td><td>22</td></tr>
  </tbody>
</table>
</body></html>`

func TestExtractFieldPlayers(t *testing.T) {
	doc := parseDoc(t, squadPage)

	got := ExtractFieldPlayers(doc)

	if len(got) != 1 {
		t.Fatalf("got %d players, want 1 (keeper and duplicate excluded): %+v", len(got), got)
	}
	if got[0].Name != "Bukayo Saka" {
		t.Errorf("player name = %q", got[0].Name)
	}
	if !strings.Contains(got[0].URL, "/all_comps/") {
		t.Errorf("URL not converted to all competitions form: %q", got[0].URL)
	}
}

func TestExtractGoalkeepers(t *testing.T) {
	doc := parseDoc(t, squadPage)

	got := ExtractGoalkeepers(doc)

	if len(got) != 1 || got[0].Name != "David Raya" {
		t.Fatalf("goalkeepers = %+v", got)
	}
	if !strings.Contains(got[0].URL, "/all_comps/") {
		t.Errorf("URL not converted: %q", got[0].URL)
	}
}

func TestLeagueCache_RoundTripAndValidity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leagues.json")
	cache := NewLeagueCache(path, time.Hour)

	leagues := []models.League{
		{ID: "9", Name: "Premier League", Tier: "1st", Gender: "M",
			SeasonURL: "https://fbref.com/en/comps/9/2024-2025/Premier-League-Stats"},
		{ID: "12", Name: "La Liga", Tier: "1st", Gender: "M",
			SeasonURL: "https://fbref.com/en/comps/season/2026"},
	}
	if err := cache.Save(leagues); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := cache.Load()
	if len(got) != 1 {
		t.Fatalf("Load returned %d leagues, want 1 (invalid season URL filtered): %+v", len(got), got)
	}
	if got[0].ID != "9" {
		t.Errorf("league = %+v", got[0])
	}
}

func TestLeagueCache_MissingFile(t *testing.T) {
	cache := NewLeagueCache(filepath.Join(t.TempDir(), "absent.json"), time.Hour)
	if got := cache.Load(); got != nil {
		t.Errorf("Load on missing file = %+v, want nil", got)
	}
}
