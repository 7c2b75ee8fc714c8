package discovery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/fbstats/fbrefscan/models"
)

// PageSource fetches and parses a page. *fetcher.Fetcher satisfies it.
type PageSource interface {
	GetDocument(ctx context.Context, url string) (*goquery.Document, error)
}

// Service orchestrates league discovery with caching.
type Service struct {
	source PageSource
	cache  *LeagueCache
	logger *slog.Logger
}

// NewService builds a discovery service. cache may be nil to always hit
// the site.
func NewService(source PageSource, cache *LeagueCache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, cache: cache, logger: logger}
}

// DiscoverLeagues returns leagues for the requested tiers and gender,
// each with its latest season URL resolved. A fresh cache with a
// plausible league count short circuits the scrape; a suspiciously small
// cache forces a refresh.
func (s *Service) DiscoverLeagues(ctx context.Context, tiers []string, gender string, useCache bool) ([]models.League, error) {
	if len(tiers) == 0 {
		tiers = AllTiers()
	}

	if useCache && s.cache != nil {
		if cached := s.cache.Load(); cached != nil {
			filtered := filterLeagues(cached, tiers, gender)
			if len(filtered) >= minCachedLeagues {
				s.logger.Info("using cached leagues", "count", len(filtered))
				return filtered, nil
			}
			if len(filtered) > 0 {
				s.logger.Warn("cached league count too small, refreshing", "count", len(filtered))
			}
		}
	}

	doc, err := s.source.GetDocument(ctx, CompetitionsURL)
	if err != nil {
		return nil, fmt.Errorf("fetching competitions page: %w", err)
	}

	leagues := ExtractLeagues(doc, tiers, gender)
	s.logger.Info("leagues discovered", "count", len(leagues), "tiers", tiers, "gender", gender)

	for i := range leagues {
		leagues[i].SeasonURL = s.latestSeason(ctx, leagues[i])
	}

	if s.cache != nil {
		if err := s.cache.Save(leagues); err != nil {
			s.logger.Warn("failed to save league cache", "error", err)
		}
	}
	return leagues, nil
}

// latestSeason resolves a league's newest season page, falling back to
// the base URL when the page cannot be fetched.
func (s *Service) latestSeason(ctx context.Context, league models.League) string {
	doc, err := s.source.GetDocument(ctx, league.BaseURL)
	if err != nil {
		s.logger.Warn("could not resolve latest season, using base URL",
			"league", league.Name, "error", err)
		return league.BaseURL
	}
	url := LatestSeasonURL(doc, league.BaseURL)
	s.logger.Debug("latest season resolved", "league", league.Name, "url", url)
	return url
}

// Teams fetches a league's season page and extracts its squads.
func (s *Service) Teams(ctx context.Context, league models.League) ([]models.Team, error) {
	url := league.SeasonURL
	if url == "" {
		url = league.BaseURL
	}
	doc, err := s.source.GetDocument(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching league page: %w", err)
	}
	return ExtractTeams(doc, url, league.Name)
}

func filterLeagues(leagues []models.League, tiers []string, gender string) []models.League {
	wanted := make(map[string]bool, len(tiers))
	for _, t := range tiers {
		wanted[t] = true
	}
	var out []models.League
	for _, l := range leagues {
		if wanted[l.Tier] && l.Gender == gender {
			out = append(out, l)
		}
	}
	return out
}
