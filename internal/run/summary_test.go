package run

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestGenerateRunID_Format(t *testing.T) {
	id := GenerateRunID("squad", "https://fbref.com/en/squads/18bb7c10/Arsenal-Stats")

	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		t.Fatalf("run ID = %q, want timestamp-hash form", id)
	}
	hash := parts[len(parts)-1]
	if len(hash) != 12 {
		t.Errorf("hash suffix = %q, want 12 hex chars", hash)
	}

	other := GenerateRunID("squad", "https://fbref.com/en/squads/b8fd03ef/Manchester-City-Stats")
	if id == other {
		t.Error("different targets produced identical run IDs")
	}
}

func TestWriteSummary_RoundTrip(t *testing.T) {
	base := t.TempDir()
	s := Summary{
		RunID:   "2026-01-02T15-04-abcdef123456",
		Command: "squad",
		Target:  "https://fbref.com/en/squads/18bb7c10/Arsenal-Stats",
		Created: time.Now(),
		Players: 25,
		Success: 22,
		Empty:   1,
		Failed:  1,
		Skipped: 1,
		Failures: []Failure{
			{Name: "Some Player", URL: "https://fbref.com/x", ErrorType: "rate_limited"},
		},
	}

	dir, err := WriteSummary(base, s)
	if err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if dir != RunDir(base, s.RunID) {
		t.Errorf("dir = %q, want %q", dir, RunDir(base, s.RunID))
	}

	data, err := os.ReadFile(filepath.Join(dir, "summary.yaml"))
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	var got Summary
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("parsing summary: %v", err)
	}
	if got.RunID != s.RunID || got.Success != 22 || got.Skipped != 1 {
		t.Errorf("round trip = %+v", got)
	}
	if len(got.Failures) != 1 || got.Failures[0].ErrorType != "rate_limited" {
		t.Errorf("failures = %+v", got.Failures)
	}
}

func TestUpdateIndex_NewestFirstAndUpdatesInPlace(t *testing.T) {
	base := t.TempDir()

	older := Info{RunID: "2026-01-01T10-00-aaaaaaaaaaaa", Command: "squad", Players: 20}
	newer := Info{RunID: "2026-01-02T10-00-bbbbbbbbbbbb", Command: "league", Players: 200}
	for _, info := range []Info{older, newer} {
		if err := UpdateIndex(base, info); err != nil {
			t.Fatalf("UpdateIndex: %v", err)
		}
	}

	// Re-updating an existing run must not duplicate its entry.
	older.Success = 18
	if err := UpdateIndex(base, older); err != nil {
		t.Fatalf("UpdateIndex (update): %v", err)
	}

	data, err := os.ReadFile(filepath.Join(base, "runs", "index.yaml"))
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}
	var index Index
	if err := yaml.Unmarshal(data, &index); err != nil {
		t.Fatalf("parsing index: %v", err)
	}

	if len(index.Runs) != 2 {
		t.Fatalf("entries = %d, want 2", len(index.Runs))
	}
	if index.Runs[0].RunID != newer.RunID {
		t.Errorf("first entry = %q, want newest run", index.Runs[0].RunID)
	}
	if index.Runs[1].Success != 18 {
		t.Errorf("updated entry success = %d, want 18", index.Runs[1].Success)
	}
}
