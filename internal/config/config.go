package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds costguardian configuration loaded from .costguardian.yaml.
// The analytics core never reads these directly; commands pass the relevant
// values down as arguments.
type Config struct {
	Profile                 string    `yaml:"profile"`
	Region                  string    `yaml:"region"`
	Format                  string    `yaml:"format"`
	Timeout                 string    `yaml:"timeout"`
	BudgetAlertThresholdPct float64   `yaml:"budget_alert_threshold_pct"`
	IdleThresholdDays       int       `yaml:"idle_threshold_days"`
	AutoCleanup             bool      `yaml:"auto_cleanup"`
	Reporting               Reporting `yaml:"reporting"`
}

// Reporting controls the summary cadence.
type Reporting struct {
	DailySummary  bool `yaml:"daily_summary"`
	WeeklySummary bool `yaml:"weekly_summary"`
}

// Default returns the configuration used when no file is present.
// IdleThresholdDays is recognized but currently not consulted by the idle
// classification rules; it is reserved for age-based filtering.
func Default() Config {
	return Config{
		BudgetAlertThresholdPct: 80,
		IdleThresholdDays:       7,
		Reporting:               Reporting{WeeklySummary: true},
	}
}

// TimeoutDuration parses the timeout string as a duration.
func (c Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Load searches for .costguardian.yaml or .costguardian.yml in the given
// directory and returns the parsed config over the defaults. A missing file
// is not an error and yields the defaults.
func Load(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".costguardian.yaml"),
		filepath.Join(dir, ".costguardian.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Default(), fmt.Errorf("read config %s: %w", path, err)
		}

		cfg := Default()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Default(), nil
}
