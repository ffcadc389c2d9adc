// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file and the environment.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"path/filepath"
	"time"
)

// Default file names as exported by the ufcstats scraper.
const (
	DefaultEventsFile   = "ufc_event_details.csv"
	DefaultResultsFile  = "ufc_fight_results.csv"
	DefaultStatsFile    = "ufc_fight_stats.csv"
	DefaultFightersFile = "ufc_fighter_details.csv"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir holds the CSV sources. Relative file names below resolve against it.
	DataDir string `koanf:"data_dir"`

	EventsFile   string `koanf:"events_file"`
	ResultsFile  string `koanf:"results_file"`
	StatsFile    string `koanf:"stats_file"`
	FightersFile string `koanf:"fighters_file"`

	// DefaultWindow is used when a radar request omits ?last.
	DefaultWindow int `koanf:"default_window"`

	// MaxWindow caps ?last. 0 means no cap.
	MaxWindow int `koanf:"max_window"`

	// WatchData enables the data directory watcher that drops cached indices on change.
	WatchData bool `koanf:"watch_data"`

	// WatchDebounceMS coalesces bursts of file events into one invalidation.
	WatchDebounceMS int `koanf:"watch_debounce_ms"`

	// WarmCache loads every source at startup instead of on first request.
	WarmCache bool `koanf:"warm_cache"`

	// ArchiveDB is the SQLite file radarctl imports events into.
	ArchiveDB string `koanf:"archive_db"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		DataDir:         filepath.Join("data", "ufcstats"),
		EventsFile:      DefaultEventsFile,
		ResultsFile:     DefaultResultsFile,
		StatsFile:       DefaultStatsFile,
		FightersFile:    DefaultFightersFile,
		DefaultWindow:   5,
		MaxWindow:       0,
		WatchData:       false,
		WatchDebounceMS: 500,
		WarmCache:       false,
		ArchiveDB:       filepath.Join("data", "ufcradar.db"),
	}
}

// Path resolves a configured file name against DataDir.
func (c *Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// WatchDebounce returns the watcher debounce as a duration.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMS) * time.Millisecond
}
