// Package pipeline turns one fbref player page into one CSV: fetch,
// table classification, per-category cleanup, merge, final renames.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/fbstats/fbrefscan/models"
	"github.com/fbstats/fbrefscan/pkg/artifacts"
	"github.com/fbstats/fbrefscan/pkg/classify"
	"github.com/fbstats/fbrefscan/pkg/fetcher"
	"github.com/fbstats/fbrefscan/pkg/htmltable"
	"github.com/fbstats/fbrefscan/pkg/merge"
	"github.com/fbstats/fbrefscan/pkg/stattable"
)

// PageFetcher is the fetching surface the pipeline needs; satisfied by
// *fetcher.Fetcher.
type PageFetcher interface {
	GetHTML(ctx context.Context, url string) (string, error)
	GetDocument(ctx context.Context, url string) (*goquery.Document, error)
}

// Pipeline processes player pages into merged stat CSVs.
type Pipeline struct {
	fetch  PageFetcher
	store  *artifacts.Manager
	logger *slog.Logger
}

// New wires a pipeline. logger may be nil.
func New(fetch PageFetcher, store *artifacts.Manager, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{fetch: fetch, store: store, logger: logger}
}

// FieldPlayer scrapes one field player's all-competitions page. A page
// without a standard stats table fails; a page that cleans down to zero
// rows is reported empty, not failed.
func (p *Pipeline) FieldPlayer(ctx context.Context, playerName, playerURL string) models.ParseOutcome {
	tables, err := p.extractTables(ctx, playerURL)
	if err != nil {
		return fetchFailure(err)
	}

	classified := classify.FieldPlayer(tables)
	if _, ok := classified[models.CategoryStandard]; !ok {
		p.logger.Warn("no standard table on page", "player", playerName, "tables", len(tables))
		return models.FailureOutcome("no_standard_table", fmt.Errorf("no standard stats table on %s", playerURL))
	}

	processed := make(map[models.Category]stattable.Table, len(classified))
	for category, ct := range classified {
		processed[category] = prepareTable(ct.Table, category, classify.FieldPlayerNoPrefix)
	}

	merged := merge.Finalize(merge.Tables(processed, models.FieldPlayerCategories, merge.LeftJoin, p.logger))
	merged = stattable.ApplyFieldPlayerRenames(merged)
	merged = stattable.CleanCountryValues(merged)
	merged = stattable.CleanCompetitionValues(merged)
	merged = stattable.CleanSerialized(merged)

	return p.persist(merged, p.store.FieldPlayerPath(playerName), playerName)
}

// Goalkeeper scrapes one goalkeeper's all-competitions page.
func (p *Pipeline) Goalkeeper(ctx context.Context, playerName, playerURL string) models.ParseOutcome {
	tables, err := p.extractTables(ctx, playerURL)
	if err != nil {
		return fetchFailure(err)
	}

	classified := classify.BestGoalkeeper(classify.Goalkeeper(tables))
	if _, ok := classified[models.CategoryGoalkeeping]; !ok {
		p.logger.Warn("no goalkeeping table on page", "player", playerName, "tables", len(tables))
		return models.FailureOutcome("no_goalkeeping_table", fmt.Errorf("no goalkeeping stats table on %s", playerURL))
	}

	processed := make(map[models.Category]stattable.Table, len(classified))
	for category, ct := range classified {
		processed[category] = prepareTable(ct.Table, category, classify.GoalkeeperNoPrefix)
	}

	merged := merge.Finalize(merge.Tables(processed, models.GoalkeeperCategories, merge.OuterJoin, p.logger))
	merged = stattable.ApplyGoalkeeperRenames(merged)
	merged = stattable.CleanCountryValues(merged)
	merged = stattable.CleanCompetitionValues(merged)
	merged = stattable.CleanSerialized(merged)

	return p.persist(merged, p.store.GoalkeeperPath(playerName), playerName)
}

func (p *Pipeline) extractTables(ctx context.Context, url string) ([]models.RawTable, error) {
	html, err := p.fetch.GetHTML(ctx, url)
	if err != nil {
		return nil, err
	}
	return htmltable.Extract(html)
}

// prepareTable runs the per-category stages that happen before merging:
// banner row cleanup, playing-time column stripping, category prefixing.
func prepareTable(raw models.RawTable, category models.Category, noPrefix map[models.Category]bool) stattable.Table {
	t := stattable.FromRaw(raw, category)
	t = stattable.Clean(t)
	t = stattable.StripPlayingTime(t, category)
	return stattable.Prefix(t, category, noPrefix)
}

func (p *Pipeline) persist(t stattable.Table, path, playerName string) models.ParseOutcome {
	if len(t.Rows) == 0 {
		p.logger.Info("page cleaned down to zero rows", "player", playerName)
		return models.EmptyOutcome()
	}

	if err := p.store.WriteCSV(path, t); err != nil {
		return models.FailureOutcome("write_failed", err)
	}
	p.logger.Info("player written", "player", playerName, "rows", len(t.Rows), "columns", len(t.Columns), "path", path)
	return models.SuccessOutcome(len(t.Rows), len(t.Columns), path)
}

func fetchFailure(err error) models.ParseOutcome {
	switch {
	case errors.Is(err, fetcher.ErrRateLimited):
		return models.FailureOutcome("rate_limited", err)
	case errors.Is(err, fetcher.ErrBlocked):
		return models.FailureOutcome("blocked", err)
	default:
		return models.FailureOutcome("fetch_failed", err)
	}
}
