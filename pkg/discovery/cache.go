package discovery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fbstats/fbrefscan/models"
)

// minCachedLeagues guards against serving a partial scrape from cache; a
// full discovery across three tiers finds well over this many leagues.
const minCachedLeagues = 50

type cacheFile struct {
	CachedAt time.Time       `json:"cached_at"`
	Leagues  []models.League `json:"leagues"`
}

// LeagueCache persists discovered league metadata as JSON.
type LeagueCache struct {
	path   string
	maxAge time.Duration
}

// NewLeagueCache builds a cache at path; maxAge zero means entries never
// expire.
func NewLeagueCache(path string, maxAge time.Duration) *LeagueCache {
	return &LeagueCache{path: path, maxAge: maxAge}
}

// Save writes the league set with the current timestamp.
func (c *LeagueCache) Save(leagues []models.League) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0750); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(cacheFile{CachedAt: time.Now(), Leagues: leagues}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal league cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write league cache: %w", err)
	}
	return nil
}

// Load returns the cached leagues, or nil when the cache is missing,
// stale, or holds only entries with unusable season URLs.
func (c *LeagueCache) Load() []models.League {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil
	}

	var cached cacheFile
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil
	}
	if cached.CachedAt.IsZero() {
		return nil
	}
	if c.maxAge > 0 && time.Since(cached.CachedAt) > c.maxAge {
		return nil
	}

	var valid []models.League
	for _, league := range cached.Leagues {
		if validCachedSeasonURL(league.SeasonURL) {
			valid = append(valid, league)
		}
	}
	return valid
}

// validCachedSeasonURL rejects entries whose season URL points at a
// calendar page or a non-numeric league id.
func validCachedSeasonURL(url string) bool {
	_, rest, found := strings.Cut(url, "/comps/")
	if !found {
		return false
	}
	parts := strings.Split(rest, "/")
	if len(parts) < 2 || !isDigits(parts[0]) {
		return false
	}
	return parts[1] != "season"
}
