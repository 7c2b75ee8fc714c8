package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OutputLocations names the per-position output subdirectories. Threaded
// through pipeline constructors so nothing mutates a package-level path.
type OutputLocations struct {
	FieldPlayersDir string `yaml:"field_players_dir"`
	GoalkeepersDir  string `yaml:"goalkeepers_dir"`
}

// ScrapeConfig holds scrape defaults loaded from fbrefscan.yaml. CLI
// flags override individual fields.
type ScrapeConfig struct {
	OutputDir         string          `yaml:"output_dir"`
	Locations         OutputLocations `yaml:"locations"`
	RequestsPerMinute int             `yaml:"requests_per_minute"`
	DelaySeconds      int             `yaml:"delay_seconds"`
	CacheMaxAgeHours  int             `yaml:"cache_max_age_hours"`
	SkipExisting      bool            `yaml:"skip_existing"`
}

// DefaultScrapeConfig returns the built-in defaults used when no config
// file is present.
func DefaultScrapeConfig() ScrapeConfig {
	return ScrapeConfig{
		OutputDir: "fbref-data",
		Locations: OutputLocations{
			FieldPlayersDir: "field_players",
			GoalkeepersDir:  "goalkeepers",
		},
		RequestsPerMinute: 10,
		DelaySeconds:      4,
		CacheMaxAgeHours:  168,
		SkipExisting:      true,
	}
}

// LoadScrapeConfig reads a YAML config file on top of the defaults.
// A missing file is not an error; defaults are returned.
func LoadScrapeConfig(path string) (ScrapeConfig, error) {
	cfg := DefaultScrapeConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
