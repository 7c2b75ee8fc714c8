package pipeline

import (
	"context"
	"fmt"

	"github.com/fbstats/fbrefscan/models"
	"github.com/fbstats/fbrefscan/pkg/discovery"
)

// LeagueResult aggregates every squad of one league scrape.
type LeagueResult struct {
	League models.League
	Squads []SquadResult
	// SkippedSquads lists teams whose squad page could not be processed.
	SkippedSquads []string
}

// Totals sums the per-squad counters.
func (r LeagueResult) Totals() (total, succeeded, empty, failed, skipped int) {
	for _, s := range r.Squads {
		total += s.Total
		succeeded += s.Succeeded
		empty += s.Empty
		failed += s.Failed
		skipped += s.Skipped
	}
	return
}

// League scrapes all squads of a league. A squad whose page cannot be
// fetched or has no standings entry is skipped and recorded, so one bad
// team never sinks a 20-team run.
func (p *Pipeline) League(ctx context.Context, svc *discovery.Service, league models.League, opts SquadOptions) (LeagueResult, error) {
	teams, err := svc.Teams(ctx, league)
	if err != nil {
		return LeagueResult{League: league}, fmt.Errorf("extracting teams for %s: %w", league.Name, err)
	}
	p.logger.Info("league teams discovered", "league", league.Name, "teams", len(teams))

	result := LeagueResult{League: league}
	for _, team := range teams {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		squad, err := p.Squad(ctx, team.Name, team.SquadURL, opts)
		if err != nil {
			if ctx.Err() != nil {
				return result, err
			}
			p.logger.Warn("squad skipped", "team", team.Name, "error", err)
			result.SkippedSquads = append(result.SkippedSquads, team.Name)
			continue
		}
		result.Squads = append(result.Squads, squad)
	}
	return result, nil
}
