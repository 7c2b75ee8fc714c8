package run

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Summary is the YAML digest written into a run directory after a
// command finishes. Skipped entities are listed separately from
// failures so a rerun with --skip-existing reads honestly.
type Summary struct {
	RunID         string    `yaml:"run_id"`
	Command       string    `yaml:"command"`
	Target        string    `yaml:"target"`
	Created       time.Time `yaml:"created"`
	Players       int       `yaml:"players"`
	Success       int       `yaml:"success"`
	Empty         int       `yaml:"empty"`
	Failed        int       `yaml:"failed"`
	Skipped       int       `yaml:"skipped"`
	Failures      []Failure `yaml:"failures,omitempty"`
	SkippedSquads []string  `yaml:"skipped_squads,omitempty"`
}

// Failure records one entity that could not be scraped.
type Failure struct {
	Name      string `yaml:"name"`
	URL       string `yaml:"url"`
	ErrorType string `yaml:"error_type"`
	Error     string `yaml:"error,omitempty"`
}

// Info is one entry in the runs index file.
type Info struct {
	RunID   string    `yaml:"run_id"`
	Created time.Time `yaml:"created"`
	Command string    `yaml:"command"`
	Target  string    `yaml:"target"`
	Players int       `yaml:"players"`
	Success int       `yaml:"success"`
	Failed  int       `yaml:"failed"`
	Skipped int       `yaml:"skipped"`
}

// Index represents the runs/index.yaml file.
type Index struct {
	Runs []Info `yaml:"runs"`
}

// GenerateRunID creates a timestamp-first run ID.
// Format: YYYY-MM-DDTHH-MM-{hash}, hash derived from command and target
// so concurrent runs against different leagues never collide.
func GenerateRunID(command, target string) string {
	h := sha256.New()
	h.Write([]byte(command))
	h.Write([]byte("\n"))
	h.Write([]byte(target))
	shortHash := hex.EncodeToString(h.Sum(nil)[:6])

	timestamp := time.Now().Format("2006-01-02T15-04")
	return fmt.Sprintf("%s-%s", timestamp, shortHash)
}

// RunDir returns the full path to a run directory.
func RunDir(baseDir, runID string) string {
	return filepath.Join(baseDir, "runs", runID)
}

// indexPath returns the path to the runs index file (at the runs root).
func indexPath(baseDir string) string {
	return filepath.Join(baseDir, "runs", "index.yaml")
}

// WriteSummary writes summary.yaml into the run directory, creating it
// if needed, and returns the directory path.
func WriteSummary(baseDir string, s Summary) (string, error) {
	dir := RunDir(baseDir, s.RunID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal run summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "summary.yaml"), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write run summary: %w", err)
	}
	return dir, nil
}

// UpdateIndex adds or updates a run entry in runs/index.yaml.
func UpdateIndex(baseDir string, info Info) error {
	path := indexPath(baseDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create runs directory: %w", err)
	}

	var index Index
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read runs index: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &index); err != nil {
			return fmt.Errorf("failed to parse runs index: %w", err)
		}
	}

	found := false
	for i, r := range index.Runs {
		if r.RunID == info.RunID {
			index.Runs[i] = info
			found = true
			break
		}
	}
	if !found {
		index.Runs = append(index.Runs, info)
	}

	// Timestamp-first run IDs sort chronologically; newest first.
	sort.Slice(index.Runs, func(i, j int) bool {
		return index.Runs[i].RunID > index.Runs[j].RunID
	})

	output, err := yaml.Marshal(&index)
	if err != nil {
		return fmt.Errorf("failed to marshal runs index: %w", err)
	}
	if err := os.WriteFile(path, output, 0644); err != nil {
		return fmt.Errorf("failed to write runs index: %w", err)
	}
	return nil
}
