// Package discovery finds leagues, seasons, teams, and player links on
// fbref so scrapes can fan out from a single league id.
package discovery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fbstats/fbrefscan/internal/common"
	"github.com/fbstats/fbrefscan/models"
)

const CompetitionsURL = "https://fbref.com/en/comps/"

// tierHeaders maps a tier key to its section heading on /en/comps/.
var tierHeaders = []struct {
	Tier   string
	Header string
}{
	{"1st", "Domestic Leagues - 1st Tier"},
	{"2nd", "Domestic Leagues - 2nd Tier"},
	{"3rd", "Domestic Leagues - 3rd Tier and Lower"},
}

// AllTiers lists every tier key ExtractLeagues understands.
func AllTiers() []string {
	out := make([]string, len(tierHeaders))
	for i, t := range tierHeaders {
		out[i] = t.Tier
	}
	return out
}

// ExtractLeagues pulls leagues out of the competitions page, one section
// per tier. Leagues without a numeric id are skipped; fbref also links
// season calendars under /comps/ and those are not leagues. gender is
// "M" or "W"; women's competitions carry a "(W)" or "Women" marker.
func ExtractLeagues(doc *goquery.Document, tiers []string, gender string) []models.League {
	wanted := make(map[string]bool, len(tiers))
	for _, t := range tiers {
		wanted[t] = true
	}

	var leagues []models.League
	for _, section := range tierHeaders {
		if !wanted[section.Tier] {
			continue
		}
		table := tableAfterHeading(doc, section.Header)
		if table == nil {
			continue
		}

		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			league, ok := leagueFromRow(row, section.Tier, gender)
			if ok {
				leagues = append(leagues, league)
			}
		})
	}
	return leagues
}

// tableAfterHeading finds the first table following a section heading in
// document order. The heading and its table usually sit in sibling
// wrapper divs, so the search climbs ancestors until a table turns up.
func tableAfterHeading(doc *goquery.Document, headerText string) *goquery.Selection {
	var heading *goquery.Selection
	doc.Find("h2, h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), headerText) {
			heading = s
			return false
		}
		return true
	})
	if heading == nil {
		return nil
	}

	for cur := heading; cur.Length() > 0; cur = cur.Parent() {
		var found *goquery.Selection
		cur.NextAll().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
			if sib.Is("table") {
				found = sib
				return false
			}
			if t := sib.Find("table").First(); t.Length() > 0 {
				found = t
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
		if cur.Is("body") || cur.Is("html") {
			break
		}
	}
	return nil
}

func leagueFromRow(row *goquery.Selection, tier, gender string) (models.League, bool) {
	cells := row.Find("td, th")
	if cells.Length() < 2 {
		return models.League{}, false
	}

	var (
		link    *goquery.Selection
		country string
	)
	cells.EachWithBreak(func(i int, cell *goquery.Selection) bool {
		if i >= 3 {
			return false
		}
		a := cell.Find("a[href*='/comps/']").First()
		if a.Length() == 0 {
			return true
		}
		link = a
		if prev := cell.Prev(); prev.Length() > 0 {
			country = strings.TrimSpace(prev.Text())
		}
		return false
	})
	if link == nil {
		return models.League{}, false
	}

	href, _ := link.Attr("href")
	if href == "" {
		return models.League{}, false
	}
	name := strings.TrimSpace(link.Text())

	if !matchesGender(name, gender) {
		return models.League{}, false
	}

	id := leagueIDFromURL(href)
	if id == "" {
		return models.League{}, false
	}

	if country == "" {
		country = "Unknown"
	}
	return models.League{
		ID:      id,
		Name:    cleanLeagueName(name),
		Country: country,
		Tier:    tier,
		Gender:  gender,
		BaseURL: common.AbsoluteURL(href),
	}, true
}

func matchesGender(name, gender string) bool {
	isWomens := strings.Contains(name, "(W)") || strings.Contains(name, "Women")
	if gender == "W" {
		return isWomens
	}
	return !isWomens
}

func cleanLeagueName(name string) string {
	name = strings.ReplaceAll(name, "(M)", "")
	name = strings.ReplaceAll(name, "(W)", "")
	return strings.TrimSpace(name)
}

// leagueIDFromURL returns the numeric id segment after /comps/, or ""
// when the segment is non-numeric.
func leagueIDFromURL(href string) string {
	_, rest, found := strings.Cut(href, "/comps/")
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(rest, "/")
	if id == "" || !isDigits(id) {
		return ""
	}
	return id
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
