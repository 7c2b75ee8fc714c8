// Package common holds URL helpers shared by the scrape commands.
package common

import (
	"net/url"
	"regexp"
	"strings"
)

const BaseURL = "https://fbref.com"

var (
	playerNamePattern = regexp.MustCompile(`/([^/]+)-Stats`)
	markdownLink      = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)
	validURLPattern   = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](/[^\s]*)?$`)
)

const allCompsURLSuffix = "Stats---All-Competitions"

// AbsoluteURL prefixes fbref-relative hrefs with the site host.
func AbsoluteURL(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return BaseURL + href
}

// PlayerNameFromURL recovers a display name from a player page URL.
// "/en/players/bc7dc64d/Bukayo-Saka-Stats" yields "Bukayo Saka".
func PlayerNameFromURL(playerURL string) string {
	m := playerNamePattern.FindStringSubmatch(playerURL)
	if m == nil {
		return "unknown_player"
	}
	return strings.ReplaceAll(m[1], "-", " ")
}

// ToAllCompsURL converts a player page URL into its all-competitions
// form, which carries the player's full career tables. Already converted
// URLs pass through unchanged.
func ToAllCompsURL(href, playerName string) string {
	if strings.Contains(href, "/all_comps/") {
		return AbsoluteURL(href)
	}

	rest := strings.SplitN(href, "/players/", 2)
	if len(rest) < 2 {
		return AbsoluteURL(href)
	}
	playerID := strings.SplitN(rest[1], "/", 2)[0]
	slug := strings.ReplaceAll(playerName, " ", "-")
	return BaseURL + "/en/players/" + playerID + "/all_comps/" + slug + "-" + allCompsURLSuffix
}

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste
// issues: whitespace, trailing punctuation, and markdown artifacts.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	if matches := markdownLink.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	trailingChars := []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"}
	for _, char := range trailingChars {
		cleaned = strings.TrimSuffix(cleaned, char)
	}

	leadingChars := []string{"(", "[", "<", "\"", "'"}
	for _, char := range leadingChars {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// ValidateURL reports whether a sanitized URL is a usable http(s) URL.
func ValidateURL(rawURL string) bool {
	if rawURL == "" || strings.Contains(rawURL, " ") {
		return false
	}
	if !validURLPattern.MatchString(rawURL) {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if parsed.Host == "" || strings.ContainsAny(parsed.Host, "{}[]<>\"'") {
		return false
	}
	return true
}
