// Package artifacts manages the scraped CSV output tree.
package artifacts

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fbstats/fbrefscan/models"
	"github.com/fbstats/fbrefscan/pkg/stattable"
)

const DefaultBaseDir = "fbref-data"

var (
	nonWordChars  = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	separatorRuns = regexp.MustCompile(`[\s-]+`)
)

// NormalizeName turns a display name into a filesystem-safe slug:
// punctuation stripped, spaces and dashes collapsed to underscores,
// lowercased. "Kevin De Bruyne" becomes "kevin_de_bruyne".
func NormalizeName(name string) string {
	s := nonWordChars.ReplaceAllString(name, "")
	s = separatorRuns.ReplaceAllString(s, "_")
	return strings.ToLower(strings.Trim(s, "_"))
}

// Manager lays out and writes player CSVs under the output base
// directory, one subdirectory per player kind.
type Manager struct {
	baseDir   string
	locations models.OutputLocations
}

// NewManager ensures the base directory and both player subdirectories
// exist.
func NewManager(baseDir string, locations models.OutputLocations) (*Manager, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if locations.FieldPlayersDir == "" || locations.GoalkeepersDir == "" {
		locations = models.DefaultScrapeConfig().Locations
	}

	for _, dir := range []string{locations.FieldPlayersDir, locations.GoalkeepersDir} {
		if err := os.MkdirAll(filepath.Join(baseDir, dir), 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return &Manager{baseDir: baseDir, locations: locations}, nil
}

// FieldPlayerPath returns the CSV path for a field player.
func (m *Manager) FieldPlayerPath(playerName string) string {
	return filepath.Join(m.baseDir, m.locations.FieldPlayersDir, NormalizeName(playerName)+".csv")
}

// GoalkeeperPath returns the CSV path for a goalkeeper.
func (m *Manager) GoalkeeperPath(playerName string) string {
	return filepath.Join(m.baseDir, m.locations.GoalkeepersDir, NormalizeName(playerName)+".csv")
}

// Exists reports whether an artifact is already on disk, for the
// skip-existing mode.
func (m *Manager) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// WriteCSV writes the table with a header row of column names. The
// parent directory is created on demand so league and squad groupings
// can nest players deeper.
func (m *Manager) WriteCSV(path string, t stattable.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// BaseDir returns the output root, for run summaries.
func (m *Manager) BaseDir() string {
	return m.baseDir
}
