package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/fbstats/fbrefscan/models"
	"github.com/fbstats/fbrefscan/pkg/discovery"
)

// PlayerOutcome pairs a roster entry with its parse result.
type PlayerOutcome struct {
	Name    string
	URL     string
	Outcome models.ParseOutcome
}

// SquadResult aggregates one squad scrape.
type SquadResult struct {
	Team      string
	SquadURL  string
	Total     int
	Succeeded int
	Empty     int
	Failed    int
	Skipped   int
	Outcomes  []PlayerOutcome
}

// SquadOptions tune squad-level behavior.
type SquadOptions struct {
	// SkipExisting leaves players whose CSV is already on disk alone.
	SkipExisting bool
	// Delay is the pause between players, on top of the fetcher's own
	// rate limit.
	Delay time.Duration
	// GoalkeepersOnly scrapes just the keepers; FieldOnly just the rest.
	GoalkeepersOnly bool
	FieldOnly       bool
	// Limit caps the number of players scraped; 0 means no cap.
	Limit int
}

// Squad scrapes every player on a squad page. A roster that turns up no
// players is reported with zero totals, not as an error; fbref sometimes
// serves squad pages without stats tables early in a season.
func (p *Pipeline) Squad(ctx context.Context, teamName, squadURL string, opts SquadOptions) (SquadResult, error) {
	doc, err := p.fetch.GetDocument(ctx, squadURL)
	if err != nil {
		return SquadResult{Team: teamName, SquadURL: squadURL}, fmt.Errorf("fetching squad page: %w", err)
	}

	result := SquadResult{Team: teamName, SquadURL: squadURL}

	if !opts.GoalkeepersOnly {
		for _, link := range discovery.ExtractFieldPlayers(doc) {
			if opts.Limit > 0 && result.Total >= opts.Limit {
				return result, nil
			}
			if err := p.scrapeOne(ctx, link, false, opts, &result); err != nil {
				return result, err
			}
		}
	}
	if !opts.FieldOnly {
		for _, link := range discovery.ExtractGoalkeepers(doc) {
			if opts.Limit > 0 && result.Total >= opts.Limit {
				return result, nil
			}
			if err := p.scrapeOne(ctx, link, true, opts, &result); err != nil {
				return result, err
			}
		}
	}

	if result.Total == 0 {
		p.logger.Warn("no players found on squad page", "team", teamName, "url", squadURL)
	}
	return result, nil
}

func (p *Pipeline) scrapeOne(ctx context.Context, link models.PlayerLink, goalkeeper bool, opts SquadOptions, result *SquadResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result.Total++

	path := p.store.FieldPlayerPath(link.Name)
	if goalkeeper {
		path = p.store.GoalkeeperPath(link.Name)
	}
	if opts.SkipExisting && p.store.Exists(path) {
		p.logger.Debug("skipping existing player", "player", link.Name, "path", path)
		result.Skipped++
		result.Outcomes = append(result.Outcomes, PlayerOutcome{Name: link.Name, URL: link.URL, Outcome: models.SkippedOutcome(path)})
		return nil
	}

	var outcome models.ParseOutcome
	if goalkeeper {
		outcome = p.Goalkeeper(ctx, link.Name, link.URL)
	} else {
		outcome = p.FieldPlayer(ctx, link.Name, link.URL)
	}

	switch outcome.Kind {
	case models.OutcomeSuccess:
		result.Succeeded++
	case models.OutcomeEmpty:
		result.Empty++
	default:
		result.Failed++
		p.logger.Warn("player failed", "player", link.Name, "error_type", outcome.ErrorType, "error", outcome.Err)
	}
	result.Outcomes = append(result.Outcomes, PlayerOutcome{Name: link.Name, URL: link.URL, Outcome: outcome})

	if opts.Delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(opts.Delay):
		}
	}
	return nil
}
