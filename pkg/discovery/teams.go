package discovery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fbstats/fbrefscan/internal/common"
	"github.com/fbstats/fbrefscan/models"
)

var standingsKeywords = []string{"squad", "mp", "w", "d", "l", "gf", "ga", "gd", "pts", "matches played"}

// ExtractTeams reads the standings table of a league season page and
// returns every linked squad. fbref names the table after the season and
// league id, so a handful of id patterns are tried before falling back
// to sniffing header text.
func ExtractTeams(doc *goquery.Document, leagueURL, leagueName string) ([]models.Team, error) {
	table := findStandingsTable(doc, leagueURL)
	if table == nil {
		return nil, fmt.Errorf("no standings table on %s", leagueURL)
	}

	var teams []models.Team
	seen := make(map[string]bool)
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("thead") {
			return
		}
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}

		var link *goquery.Selection
		cells.EachWithBreak(func(i int, cell *goquery.Selection) bool {
			if i >= 4 {
				return false
			}
			a := cell.Find("a[href*='/squads/']").First()
			if a.Length() > 0 {
				link = a
				return false
			}
			return true
		})
		if link == nil {
			return
		}

		href, _ := link.Attr("href")
		name := strings.TrimSpace(link.Text())
		if href == "" || name == "" || seen[name] {
			return
		}
		seen[name] = true
		teams = append(teams, models.Team{
			Name:       name,
			SquadURL:   common.AbsoluteURL(href),
			LeagueName: leagueName,
		})
	})

	if len(teams) == 0 {
		return nil, fmt.Errorf("standings table on %s has no squad links", leagueURL)
	}
	return teams, nil
}

func findStandingsTable(doc *goquery.Document, leagueURL string) *goquery.Selection {
	for _, id := range standingsTableIDs(leagueURL) {
		if t := doc.Find("table#" + id).First(); t.Length() > 0 {
			return t
		}
	}

	// fallback: sniff header text for standings columns
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		var headers []string
		table.Find("th").EachWithBreak(func(i int, th *goquery.Selection) bool {
			if i >= 15 {
				return false
			}
			headers = append(headers, strings.ToLower(strings.TrimSpace(th.Text())))
			return true
		})
		headerText := " " + strings.Join(headers, " ") + " "

		matches := 0
		for _, keyword := range standingsKeywords {
			if strings.Contains(headerText, " "+keyword+" ") {
				matches++
			}
		}
		if matches >= 5 {
			found = table
			return false
		}
		return true
	})
	return found
}

// standingsTableIDs builds the candidate table ids for a season URL like
// /en/comps/9/2024-2025/Premier-League-Stats.
func standingsTableIDs(leagueURL string) []string {
	var season, leagueID string
	if _, rest, found := strings.Cut(leagueURL, "/comps/"); found {
		parts := strings.Split(rest, "/")
		if len(parts) >= 2 {
			leagueID = parts[0]
			if len(parts) >= 3 && strings.Contains(parts[1], "-") && strings.ContainsAny(parts[1], "0123456789") {
				season = strings.ReplaceAll(parts[1], "-", "")
			}
		}
	}

	var ids []string
	if season != "" && leagueID != "" {
		ids = append(ids,
			fmt.Sprintf("results%s%s1_overall", season, leagueID),
			fmt.Sprintf("results%s%s_overall", season, leagueID),
		)
	}
	if season != "" {
		ids = append(ids, fmt.Sprintf("results%s_overall", season))
	}
	if leagueID != "" {
		ids = append(ids, fmt.Sprintf("results%s_overall", leagueID))
	}
	return append(ids, "results_overall", "stats_squads_standard_for")
}
