// Package run holds the CLI command actions: flag handling, wiring of
// fetcher, pipeline and tracking database, and run summaries.
package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/fbstats/fbrefscan/internal/common"
	"github.com/fbstats/fbrefscan/models"
	"github.com/fbstats/fbrefscan/pkg/artifacts"
	"github.com/fbstats/fbrefscan/pkg/caching"
	"github.com/fbstats/fbrefscan/pkg/classify"
	"github.com/fbstats/fbrefscan/pkg/db"
	"github.com/fbstats/fbrefscan/pkg/discovery"
	"github.com/fbstats/fbrefscan/pkg/fetcher"
	"github.com/fbstats/fbrefscan/pkg/htmltable"
	"github.com/fbstats/fbrefscan/pkg/pipeline"
)

// PlayerAction scrapes one player page into one CSV.
func PlayerAction(c *cli.Context) error {
	logger := newLogger(c)
	cfg := loadConfig(c, logger)
	outDir := outputDir(c, cfg)

	playerURL := targetURL(c)
	name := c.String("name")
	if name == "" {
		name = common.PlayerNameFromURL(playerURL)
	}
	playerURL = common.ToAllCompsURL(playerURL, name)

	database := openDatabase(c, logger)
	defer database.Close()

	runID, err := database.InsertRun("player", playerURL, outDir)
	if err != nil {
		logger.Error("failed to create run record", "error", err)
		os.Exit(2)
	}

	store := newStore(outDir, cfg, logger)
	p := pipeline.New(newFetcher(c, cfg, outDir, logger, database, runID), store, logger)

	var outcome models.ParseOutcome
	if c.Bool("goalkeeper") {
		outcome = p.Goalkeeper(context.Background(), name, playerURL)
	} else {
		outcome = p.FieldPlayer(context.Background(), name, playerURL)
	}

	po := pipeline.PlayerOutcome{Name: name, URL: playerURL, Outcome: outcome}
	if err := database.InsertRunResult(runID, resultFromOutcome(po)); err != nil {
		logger.Warn("failed to record player result", "error", err)
	}

	s := Summary{
		RunID:   GenerateRunID("player", playerURL),
		Command: "player",
		Target:  playerURL,
		Created: time.Now(),
		Players: 1,
	}
	countOutcome(&s, outcome)
	s.Failures = collectFailures([]pipeline.PlayerOutcome{po})
	finishRun(database, runID, outDir, s, logger)

	switch outcome.Kind {
	case models.OutcomeSuccess:
		fmt.Printf("%s: %d rows x %d columns\nResults: %s\n", name, outcome.Rows, outcome.Columns, outcome.FilePath)
	case models.OutcomeEmpty:
		// Zero yield counts as a failure so a scheduler retries it.
		fmt.Printf("%s: page parsed but produced no rows\n", name)
		os.Exit(1)
	default:
		fmt.Printf("%s: failed (%s)\n", name, outcome.ErrorType)
		os.Exit(2)
	}
	return nil
}

// SquadAction scrapes every player on a roster page.
func SquadAction(c *cli.Context) error {
	logger := newLogger(c)
	cfg := loadConfig(c, logger)
	outDir := outputDir(c, cfg)

	squadURL := targetURL(c)
	name := c.String("name")
	if name == "" {
		name = teamNameFromURL(squadURL)
	}

	database := openDatabase(c, logger)
	defer database.Close()

	runID, err := database.InsertRun("squad", squadURL, outDir)
	if err != nil {
		logger.Error("failed to create run record", "error", err)
		os.Exit(2)
	}

	store := newStore(outDir, cfg, logger)
	p := pipeline.New(newFetcher(c, cfg, outDir, logger, database, runID), store, logger)

	result, err := p.Squad(context.Background(), name, squadURL, squadOptions(c, cfg))
	if err != nil {
		logger.Error("squad scrape failed", "team", name, "error", err)
		os.Exit(2)
	}

	recordOutcomes(database, runID, result.Outcomes, logger)

	s := Summary{
		RunID:    GenerateRunID("squad", squadURL),
		Command:  "squad",
		Target:   squadURL,
		Created:  time.Now(),
		Players:  result.Total,
		Success:  result.Succeeded,
		Empty:    result.Empty,
		Failed:   result.Failed,
		Skipped:  result.Skipped,
		Failures: collectFailures(result.Outcomes),
	}
	dir := finishRun(database, runID, outDir, s, logger)

	fmt.Printf("%s: %d/%d players successful (%d empty, %d failed, %d skipped)\nResults: %s\n",
		name, result.Succeeded, result.Total, result.Empty, result.Failed, result.Skipped, dir)

	// A roster that enumerates nobody means the squad page changed shape
	// or the season has not started; treat it as a failed run so retries
	// fire.
	if result.Total == 0 {
		os.Exit(1)
	}
	exitForCounts(result.Total, result.Failed+result.Empty, result.Skipped)
	return nil
}

// LeagueAction scrapes every squad of one league page.
func LeagueAction(c *cli.Context) error {
	logger := newLogger(c)
	cfg := loadConfig(c, logger)
	outDir := outputDir(c, cfg)

	leagueURL := targetURL(c)
	name := c.String("name")
	if name == "" {
		name = teamNameFromURL(leagueURL)
	}

	database := openDatabase(c, logger)
	defer database.Close()

	runID, err := database.InsertRun("league", leagueURL, outDir)
	if err != nil {
		logger.Error("failed to create run record", "error", err)
		os.Exit(2)
	}

	store := newStore(outDir, cfg, logger)
	f := newFetcher(c, cfg, outDir, logger, database, runID)
	p := pipeline.New(f, store, logger)
	svc := discovery.NewService(f, nil, logger)

	league := models.League{Name: name, SeasonURL: leagueURL, BaseURL: leagueURL}
	result, err := p.League(context.Background(), svc, league, squadOptions(c, cfg))
	if err != nil {
		logger.Error("league scrape failed", "league", name, "error", err)
		os.Exit(2)
	}

	var failures []Failure
	for _, squad := range result.Squads {
		recordOutcomes(database, runID, squad.Outcomes, logger)
		failures = append(failures, collectFailures(squad.Outcomes)...)
	}
	total, succeeded, empty, failed, skipped := result.Totals()

	s := Summary{
		RunID:         GenerateRunID("league", leagueURL),
		Command:       "league",
		Target:        leagueURL,
		Created:       time.Now(),
		Players:       total,
		Success:       succeeded,
		Empty:         empty,
		Failed:        failed,
		Skipped:       skipped,
		Failures:      failures,
		SkippedSquads: result.SkippedSquads,
	}
	dir := finishRun(database, runID, outDir, s, logger)

	fmt.Printf("%s: %d squads, %d/%d players successful (%d empty, %d failed, %d skipped)\n",
		name, len(result.Squads), succeeded, total, empty, failed, skipped)
	if len(result.SkippedSquads) > 0 {
		fmt.Printf("Skipped squads: %s\n", strings.Join(result.SkippedSquads, ", "))
	}
	fmt.Printf("Results: %s\n", dir)

	exitForCounts(total, failed+empty, skipped)
	return nil
}

// LeaguesAction discovers leagues from the competitions catalog and
// prints them as YAML.
func LeaguesAction(c *cli.Context) error {
	logger := newLogger(c)
	cfg := loadConfig(c, logger)
	outDir := outputDir(c, cfg)

	database := openDatabase(c, logger)
	defer database.Close()

	runID, err := database.InsertRun("leagues", discovery.CompetitionsURL, outDir)
	if err != nil {
		logger.Error("failed to create run record", "error", err)
		os.Exit(2)
	}

	f := newFetcher(c, cfg, outDir, logger, database, runID)
	maxAge := time.Duration(cfg.CacheMaxAgeHours) * time.Hour
	cache := discovery.NewLeagueCache(filepath.Join(outDir, "leagues_cache.json"), maxAge)
	svc := discovery.NewService(f, cache, logger)

	tiers := splitTiers(c.String("tiers"))
	gender := c.String("gender")
	leagues, err := svc.DiscoverLeagues(context.Background(), tiers, gender, !c.Bool("no-cache"))
	if err != nil {
		logger.Error("league discovery failed", "error", err)
		os.Exit(2)
	}

	for _, league := range leagues {
		result := db.RunResult{
			EntityName: league.Name,
			EntityURL:  league.SeasonURL,
			Status:     string(models.OutcomeSuccess),
		}
		if err := database.InsertRunResult(runID, result); err != nil {
			logger.Warn("failed to record league", "league", league.Name, "error", err)
		}
	}
	if err := database.UpdateRunStats(runID, len(leagues), len(leagues), 0, 0, 0); err != nil {
		logger.Warn("failed to update run stats", "error", err)
	}

	output, err := yaml.Marshal(leagues)
	if err != nil {
		logger.Error("failed to marshal leagues", "error", err)
		os.Exit(2)
	}
	fmt.Print(string(output))
	fmt.Fprintf(os.Stderr, "%d leagues discovered\n", len(leagues))
	return nil
}

// DiagnoseAction fetches a page and prints a classification diagnostic
// for every table on it.
func DiagnoseAction(c *cli.Context) error {
	logger := newLogger(c)
	cfg := loadConfig(c, logger)
	outDir := outputDir(c, cfg)

	pageURL := targetURL(c)

	database := openDatabase(c, logger)
	defer database.Close()

	f := newFetcher(c, cfg, outDir, logger, database, 0)
	html, err := f.GetHTML(context.Background(), pageURL)
	if err != nil {
		logger.Error("fetch failed", "url", pageURL, "error", err)
		os.Exit(2)
	}

	tables, err := htmltable.Extract(html)
	if err != nil {
		logger.Error("table extraction failed", "url", pageURL, "error", err)
		os.Exit(2)
	}

	diagnostics := classify.Analyze(tables)
	fmt.Printf("%d tables on page, %d large enough to classify\n\n", len(tables), len(diagnostics))
	for _, d := range diagnostics {
		fmt.Println(d.String())
		fmt.Println()
	}
	return nil
}

// RunsAction lists past runs from the tracking database.
func RunsAction(c *cli.Context) error {
	logger := newLogger(c)

	database := openDatabase(c, logger)
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		logger.Error("failed to list runs", "error", err)
		os.Exit(2)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet")
		return nil
	}

	fmt.Printf("%-5s  %-16s  %-8s  %-7s  %-7s  %-6s  %-7s  %s\n",
		"ID", "CREATED", "COMMAND", "PLAYERS", "SUCCESS", "FAILED", "SKIPPED", "TARGET")
	for _, r := range runs {
		fmt.Printf("%-5d  %-16s  %-8s  %-7d  %-7d  %-6d  %-7d  %s\n",
			r.RunID, r.CreatedAt.Format("2006-01-02 15:04"), r.Command,
			r.PlayerCount, r.SuccessCount, r.FailedCount, r.SkippedCount, r.Target)
	}
	return nil
}

func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func loadConfig(c *cli.Context, logger *slog.Logger) models.ScrapeConfig {
	cfg, err := models.LoadScrapeConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "path", c.String("config"), "error", err)
		os.Exit(2)
	}
	return cfg
}

func outputDir(c *cli.Context, cfg models.ScrapeConfig) string {
	if c.IsSet("output-dir") {
		return c.String("output-dir")
	}
	return cfg.OutputDir
}

// targetURL sanitizes and validates the --url flag, exiting on garbage.
func targetURL(c *cli.Context) string {
	cleaned := common.SanitizeURL(c.String("url"))
	if !common.ValidateURL(cleaned) {
		fmt.Fprintf(os.Stderr, "Error: %q is not a usable URL\n", c.String("url"))
		fmt.Fprintln(os.Stderr, "Note: URLs are auto-cleaned (whitespace trimmed, trailing punctuation removed, markdown links extracted)")
		os.Exit(1)
	}
	return cleaned
}

func openDatabase(c *cli.Context, logger *slog.Logger) *db.DB {
	var (
		database *db.DB
		err      error
	)
	if c.IsSet("db") {
		database, err = db.OpenPath(c.String("db"))
	} else {
		database, err = db.Open()
	}
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	return database
}

func newStore(outDir string, cfg models.ScrapeConfig, logger *slog.Logger) *artifacts.Manager {
	store, err := artifacts.NewManager(outDir, cfg.Locations)
	if err != nil {
		logger.Error("failed to initialize artifact store", "error", err)
		os.Exit(2)
	}
	return store
}

func newFetcher(c *cli.Context, cfg models.ScrapeConfig, outDir string, logger *slog.Logger, database *db.DB, runID int64) *fetcher.Fetcher {
	rpm := cfg.RequestsPerMinute
	if c.IsSet("rpm") {
		rpm = c.Int("rpm")
	}

	opts := []fetcher.Option{
		fetcher.WithLogger(logger),
		fetcher.WithAccessFunc(accessRecorder(database, logger, runID)),
	}
	if !c.Bool("no-cache") {
		maxAge := time.Duration(cfg.CacheMaxAgeHours) * time.Hour
		cache, err := caching.New(filepath.Join(outDir, ".cache"), maxAge)
		if err != nil {
			logger.Warn("page cache unavailable, fetching everything", "error", err)
		} else {
			opts = append(opts, fetcher.WithCache(cache))
		}
	}
	return fetcher.New(rpm, opts...)
}

// accessRecorder feeds every network fetch into the audit table.
func accessRecorder(database *db.DB, logger *slog.Logger, runID int64) fetcher.AccessFunc {
	return func(url string, statusCode int, err error) {
		errorType := ""
		switch {
		case err == nil:
		case errors.Is(err, fetcher.ErrRateLimited):
			errorType = "rate_limited"
		case errors.Is(err, fetcher.ErrBlocked):
			errorType = "blocked"
		case statusCode == 0:
			errorType = "network_error"
		default:
			errorType = "http_error"
		}
		if dbErr := database.RecordFetch(runID, url, statusCode, errorType, err == nil); dbErr != nil {
			logger.Warn("failed to record fetch access", "url", url, "error", dbErr)
		}
	}
}

func squadOptions(c *cli.Context, cfg models.ScrapeConfig) pipeline.SquadOptions {
	skip := cfg.SkipExisting
	if c.IsSet("skip-existing") {
		skip = c.Bool("skip-existing")
	}
	delay := time.Duration(cfg.DelaySeconds) * time.Second
	if c.IsSet("delay") {
		delay = time.Duration(c.Int("delay")) * time.Second
	}
	return pipeline.SquadOptions{
		SkipExisting:    skip,
		Delay:           delay,
		GoalkeepersOnly: c.Bool("goalkeepers-only"),
		FieldOnly:       c.Bool("field-only"),
		Limit:           c.Int("limit"),
	}
}

// teamNameFromURL recovers a display name from a squad or league URL.
// "/en/squads/18bb7c10/Arsenal-Stats" yields "Arsenal".
func teamNameFromURL(squadURL string) string {
	parts := strings.Split(strings.TrimRight(squadURL, "/"), "/")
	last := parts[len(parts)-1]
	last = strings.TrimSuffix(last, "-Stats")
	return strings.ReplaceAll(last, "-", " ")
}

func splitTiers(raw string) []string {
	if raw == "" {
		return nil
	}
	var tiers []string
	for _, t := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tiers = append(tiers, trimmed)
		}
	}
	return tiers
}

func resultFromOutcome(po pipeline.PlayerOutcome) db.RunResult {
	r := db.RunResult{
		EntityName:  po.Name,
		EntityURL:   po.URL,
		Status:      string(po.Outcome.Kind),
		ErrorType:   po.Outcome.ErrorType,
		RowCount:    po.Outcome.Rows,
		ColumnCount: po.Outcome.Columns,
		FilePath:    po.Outcome.FilePath,
	}
	if po.Outcome.Err != nil {
		r.ErrorMessage = po.Outcome.Err.Error()
	}
	return r
}

func recordOutcomes(database *db.DB, runID int64, outcomes []pipeline.PlayerOutcome, logger *slog.Logger) {
	for _, po := range outcomes {
		if err := database.InsertRunResult(runID, resultFromOutcome(po)); err != nil {
			logger.Warn("failed to record player result", "player", po.Name, "error", err)
		}
	}
}

func collectFailures(outcomes []pipeline.PlayerOutcome) []Failure {
	var failures []Failure
	for _, po := range outcomes {
		if !po.Outcome.Failed() {
			continue
		}
		f := Failure{Name: po.Name, URL: po.URL, ErrorType: po.Outcome.ErrorType}
		if po.Outcome.Err != nil {
			f.Error = po.Outcome.Err.Error()
		}
		failures = append(failures, f)
	}
	return failures
}

func countOutcome(s *Summary, o models.ParseOutcome) {
	switch o.Kind {
	case models.OutcomeSuccess:
		s.Success++
	case models.OutcomeEmpty:
		s.Empty++
	case models.OutcomeSkipped:
		s.Skipped++
	default:
		s.Failed++
	}
}

// finishRun persists counters to the tracking database, writes the YAML
// summary and updates the runs index. Returns the run directory.
func finishRun(database *db.DB, runID int64, outDir string, s Summary, logger *slog.Logger) string {
	if err := database.UpdateRunStats(runID, s.Players, s.Success, s.Empty, s.Failed, s.Skipped); err != nil {
		logger.Warn("failed to update run stats", "error", err)
	}

	dir, err := WriteSummary(outDir, s)
	if err != nil {
		logger.Warn("failed to write run summary", "error", err)
		return outDir
	}
	info := Info{
		RunID:   s.RunID,
		Created: s.Created,
		Command: s.Command,
		Target:  s.Target,
		Players: s.Players,
		Success: s.Success,
		Failed:  s.Failed,
		Skipped: s.Skipped,
	}
	if err := UpdateIndex(outDir, info); err != nil {
		logger.Warn("failed to update runs index", "error", err)
	}
	return dir
}

// exitForCounts mirrors the binary's contract: everything attempted
// failed exits 2, a partial failure exits 1. Zero-yield parses count as
// failures here so schedulers retry them; skipped players never count
// against the run.
func exitForCounts(total, failed, skipped int) {
	attempted := total - skipped
	if attempted > 0 && failed == attempted {
		os.Exit(2)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
