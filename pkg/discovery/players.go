package discovery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fbstats/fbrefscan/internal/common"
	"github.com/fbstats/fbrefscan/models"
)

// maxFieldPlayers bounds roster extraction; a squad page lists the
// season's squad once, anything above this is repeated stat tables.
const maxFieldPlayers = 25

var rosterTableIDs = []string{"all_stats_standard", "stats_standard_9", "stats_standard", "stats_standard_combined"}

var rosterHeaderKeywords = []string{"player", "nation", "pos", "age", "mp", "starts"}

// ExtractFieldPlayers returns links to every non-goalkeeper in the squad,
// pointed at their all-competitions career page. When the standard table
// cannot be found, other stat tables on the page are scanned too.
func ExtractFieldPlayers(doc *goquery.Document) []models.PlayerLink {
	primary := findRosterTable(doc)
	if primary == nil {
		return nil
	}

	tables := []*goquery.Selection{primary}
	primaryID, _ := primary.Attr("id")
	doc.Find("table").Each(func(_ int, t *goquery.Selection) {
		id, _ := t.Attr("id")
		if id == "" || id == primaryID {
			return
		}
		for _, keyword := range []string{"stats_", "standard", "shooting", "passing", "defense"} {
			if strings.Contains(id, keyword) {
				tables = append(tables, t)
				return
			}
		}
	})

	var links []models.PlayerLink
	seen := make(map[string]bool)
	for _, table := range tables {
		collectPlayers(table, false, seen, &links)
		if len(links) >= maxFieldPlayers {
			break
		}
	}
	return links
}

// ExtractGoalkeepers returns links to the squad's goalkeepers only.
func ExtractGoalkeepers(doc *goquery.Document) []models.PlayerLink {
	table := findRosterTable(doc)
	if table == nil {
		return nil
	}

	var links []models.PlayerLink
	seen := make(map[string]bool)
	collectPlayers(table, true, seen, &links)
	return links
}

func collectPlayers(table *goquery.Selection, keepGoalkeepers bool, seen map[string]bool, links *[]models.PlayerLink) {
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("thead") {
			return
		}
		cells := row.Find("td, th")
		if cells.Length() < 4 {
			return
		}

		position := strings.ToUpper(strings.TrimSpace(cells.Eq(2).Text()))
		if strings.Contains(position, "GK") != keepGoalkeepers {
			return
		}

		playerCell := cells.Eq(0)
		a := playerCell.Find("a").First()
		href, _ := a.Attr("href")
		if href == "" || !strings.Contains(href, "/players/") {
			return
		}

		name := strings.TrimSpace(playerCell.Text())
		if name == "" || seen[name] {
			return
		}
		seen[name] = true

		*links = append(*links, models.PlayerLink{
			Name: name,
			URL:  common.ToAllCompsURL(href, name),
		})
	})
}

// findRosterTable locates the squad standard stats table by id, falling
// back to header sniffing when fbref renames it.
func findRosterTable(doc *goquery.Document) *goquery.Selection {
	for _, id := range rosterTableIDs {
		if t := doc.Find("table#" + id).First(); t.Length() > 0 {
			return t
		}
	}

	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		var headers []string
		table.Find("th, td").EachWithBreak(func(i int, cell *goquery.Selection) bool {
			if i >= 10 {
				return false
			}
			headers = append(headers, strings.TrimSpace(cell.Text()))
			return true
		})
		headerText := strings.ToLower(strings.Join(headers, " "))
		for _, keyword := range rosterHeaderKeywords {
			if strings.Contains(headerText, keyword) {
				found = table
				return false
			}
		}
		return true
	})
	return found
}
