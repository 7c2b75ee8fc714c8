package discovery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fbstats/fbrefscan/internal/common"
)

var yearPattern = regexp.MustCompile(`20\d{2}`)

// LatestSeasonURL picks the most recent season page for a league from
// its base page: first the seasons dropdown, then any season links. When
// nothing valid turns up the base URL is returned as-is, which fbref
// serves as the current season.
func LatestSeasonURL(doc *goquery.Document, baseURL string) string {
	baseID := leagueIDFromURL(baseURL)

	type candidate struct {
		year int
		url  string
	}
	var candidates []candidate

	add := func(raw string) {
		if raw == "" {
			return
		}
		full := common.AbsoluteURL(raw)
		if !validSeasonURL(full, baseID) {
			return
		}
		candidates = append(candidates, candidate{year: latestYear(full), url: full})
	}

	doc.Find("select#seasons option").Each(func(_ int, opt *goquery.Selection) {
		value, _ := opt.Attr("value")
		add(value)
	})
	doc.Find("a[href*='/comps/']").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		add(href)
	})

	if len(candidates) == 0 {
		return baseURL
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.year > best.year || (c.year == best.year && c.url > best.url) {
			best = c
		}
	}
	return best.url
}

// validSeasonURL requires a numeric league id matching the base league
// and a season segment containing a year. "/comps/season/2026" style
// calendar links fail the id check.
func validSeasonURL(url, baseID string) bool {
	_, rest, found := strings.Cut(url, "/comps/")
	if !found {
		return false
	}
	parts := strings.Split(rest, "/")
	if len(parts) < 2 {
		return false
	}
	if !isDigits(parts[0]) {
		return false
	}
	if baseID != "" && parts[0] != baseID {
		return false
	}
	if parts[1] == "season" {
		return false
	}
	return yearPattern.MatchString(strings.Join(parts[1:], "/"))
}

func latestYear(url string) int {
	best := 0
	for _, m := range yearPattern.FindAllString(url, -1) {
		if y, err := strconv.Atoi(m); err == nil && y > best {
			best = y
		}
	}
	return best
}
