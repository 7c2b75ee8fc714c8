package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Run represents one scrape invocation.
type Run struct {
	RunID        int64
	CreatedAt    time.Time
	Command      string
	Target       string
	PlayerCount  int
	SuccessCount int
	EmptyCount   int
	FailedCount  int
	SkippedCount int
	OutputDir    string
}

// RunResult represents one player outcome within a run.
type RunResult struct {
	EntityName   string
	EntityURL    string
	Status       string
	ErrorType    string
	ErrorMessage string
	RowCount     int
	ColumnCount  int
	FilePath     string
}

// InsertRun creates a new run record and returns its ID.
func (db *DB) InsertRun(command, target, outputDir string) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (command, target, output_dir)
		VALUES (?, ?, ?)
	`, command, target, outputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// UpdateRunStats sets the final counters once a run completes.
func (db *DB) UpdateRunStats(runID int64, playerCount, success, empty, failed, skipped int) error {
	_, err := db.Exec(`
		UPDATE runs
		SET player_count = ?, success_count = ?, empty_count = ?, failed_count = ?, skipped_count = ?
		WHERE run_id = ?
	`, playerCount, success, empty, failed, skipped, runID)
	if err != nil {
		return fmt.Errorf("failed to update run stats: %w", err)
	}
	return nil
}

// InsertRunResult records one player's outcome.
func (db *DB) InsertRunResult(runID int64, r RunResult) error {
	_, err := db.Exec(`
		INSERT INTO run_results (run_id, entity_name, entity_url, status, error_type, error_message, row_count, column_count, file_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, r.EntityName, r.EntityURL, r.Status, nullable(r.ErrorType), nullable(r.ErrorMessage), r.RowCount, r.ColumnCount, nullable(r.FilePath))
	if err != nil {
		return fmt.Errorf("failed to insert run result: %w", err)
	}
	return nil
}

// RecordFetch logs one page request. runID of 0 means the fetch happened
// outside any run, such as league discovery warming its cache.
func (db *DB) RecordFetch(runID int64, url string, statusCode int, errorType string, success bool) error {
	var run interface{}
	if runID > 0 {
		run = runID
	}
	_, err := db.Exec(`
		INSERT INTO fetch_accesses (run_id, url, status_code, error_type, success)
		VALUES (?, ?, ?, ?, ?)
	`, run, url, statusCode, nullable(errorType), success)
	if err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}
	return nil
}

// GetRunByID retrieves a run by its ID.
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	var (
		run       Run
		outputDir sql.NullString
	)
	err := db.QueryRow(`
		SELECT run_id, created_at, command, target, player_count, success_count, empty_count, failed_count, skipped_count, output_dir
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(
		&run.RunID,
		&run.CreatedAt,
		&run.Command,
		&run.Target,
		&run.PlayerCount,
		&run.SuccessCount,
		&run.EmptyCount,
		&run.FailedCount,
		&run.SkippedCount,
		&outputDir,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	run.OutputDir = outputDir.String
	return &run, nil
}

// ListRuns retrieves runs ordered by most recent first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, created_at, command, target, player_count, success_count, empty_count, failed_count, skipped_count, output_dir
		FROM runs
		ORDER BY created_at DESC, run_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			outputDir sql.NullString
		)
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.Command, &r.Target, &r.PlayerCount,
			&r.SuccessCount, &r.EmptyCount, &r.FailedCount, &r.SkippedCount, &outputDir); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.OutputDir = outputDir.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRunResults retrieves all player outcomes for a run.
func (db *DB) GetRunResults(runID int64) ([]RunResult, error) {
	rows, err := db.Query(`
		SELECT entity_name, entity_url, status, error_type, error_message, row_count, column_count, file_path
		FROM run_results
		WHERE run_id = ?
		ORDER BY result_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run results: %w", err)
	}
	defer rows.Close()

	var results []RunResult
	for rows.Next() {
		var (
			r                              RunResult
			entityURL, errType, errMsg, fp sql.NullString
		)
		if err := rows.Scan(&r.EntityName, &entityURL, &r.Status, &errType, &errMsg,
			&r.RowCount, &r.ColumnCount, &fp); err != nil {
			return nil, fmt.Errorf("failed to scan run result: %w", err)
		}
		r.EntityURL = entityURL.String
		r.ErrorType = errType.String
		r.ErrorMessage = errMsg.String
		r.FilePath = fp.String
		results = append(results, r)
	}
	return results, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
