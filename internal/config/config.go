// Package config loads and validates the aocbuild configuration file.
//
// Configuration is optional: every field has a default, and a missing file
// resolves to Default(). Environment variables referenced as ${VAR} in the
// YAML are expanded before unmarshalling.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/aoc2020/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Root      string          `yaml:"root,omitempty"`
	Discovery DiscoveryConfig `yaml:"discovery,omitempty"`
	Build     BuildConfig     `yaml:"build,omitempty"`
	Fetch     FetchConfig     `yaml:"fetch,omitempty"`
	History   HistoryConfig   `yaml:"history,omitempty"`
	Events    EventsConfig    `yaml:"events,omitempty"`
	Daemon    DaemonConfig    `yaml:"daemon,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
}

// DiscoveryConfig tunes the day-unit matcher.
type DiscoveryConfig struct {
	// MaxDay is the highest two-digit day number treated as a build unit.
	// The directory name shape (day + exactly two digits) is fixed.
	MaxDay int `yaml:"max_day,omitempty"`
}

// BuildConfig holds build tuning knobs.
type BuildConfig struct {
	ArtifactsDir string `yaml:"artifacts_dir,omitempty"`
	Concurrency  int    `yaml:"concurrency,omitempty"`
	GoBinary     string `yaml:"go_binary,omitempty"`
	Timeout      string `yaml:"timeout,omitempty"`
}

// FetchConfig controls puzzle input downloads.
type FetchConfig struct {
	Year              int              `yaml:"year,omitempty"`
	BaseURL           string           `yaml:"base_url,omitempty"`
	SessionEnv        string           `yaml:"session_env,omitempty"`
	Timeout           string           `yaml:"timeout,omitempty"`
	MaxRetries        int              `yaml:"max_retries,omitempty"`
	RetryBackoff      RetryBackoffMode `yaml:"retry_backoff,omitempty"`
	RetryInitialDelay string           `yaml:"retry_initial_delay,omitempty"`
	RetryMaxDelay     string           `yaml:"retry_max_delay,omitempty"`
}

// HistoryConfig controls the persistent build-record store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// EventsConfig controls the NATS build-event publisher.
type EventsConfig struct {
	Enabled       bool   `yaml:"enabled,omitempty"`
	URL           string `yaml:"url,omitempty"`
	SubjectPrefix string `yaml:"subject_prefix,omitempty"`
}

// DaemonConfig holds long-running mode settings.
type DaemonConfig struct {
	Listen       string `yaml:"listen,omitempty"`
	Watch        *bool  `yaml:"watch,omitempty"`
	Workers      int    `yaml:"workers,omitempty"`
	QueueSize    int    `yaml:"queue_size,omitempty"`
	HistoryLimit int    `yaml:"history_limit,omitempty"`
	QuietWindow  string `yaml:"quiet_window,omitempty"`
	RebuildEvery string `yaml:"rebuild_every,omitempty"`
}

// WatchEnabled reports whether filesystem watching is on (default true).
func (d DaemonConfig) WatchEnabled() bool {
	return d.Watch == nil || *d.Watch
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// HistoryPath returns the history database location. A relative path is
// anchored at the repository root so it lands in the same place no matter
// where the process was started.
func (c *Config) HistoryPath() string {
	if filepath.IsAbs(c.History.Path) {
		return c.History.Path
	}
	return filepath.Join(c.Root, c.History.Path)
}

// Default returns a configuration with every field at its default value.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	loadEnvFile()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadOrDefault behaves like Load but resolves a missing file to Default().
// The .env file is still consulted so session cookies work without a config.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		loadEnvFile()
		return Default(), nil
	}
	return Load(configPath)
}

func (c *Config) applyDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if c.Discovery.MaxDay == 0 {
		c.Discovery.MaxDay = 29
	}
	if c.Build.ArtifactsDir == "" {
		c.Build.ArtifactsDir = "bin"
	}
	if c.Build.Concurrency == 0 {
		c.Build.Concurrency = 4
	}
	if c.Build.GoBinary == "" {
		c.Build.GoBinary = "go"
	}
	if c.Build.Timeout == "" {
		c.Build.Timeout = "2m"
	}
	if c.Fetch.Year == 0 {
		c.Fetch.Year = 2020
	}
	if c.Fetch.BaseURL == "" {
		c.Fetch.BaseURL = "https://adventofcode.com"
	}
	if c.Fetch.SessionEnv == "" {
		c.Fetch.SessionEnv = "AOC_SESSION"
	}
	if c.Fetch.Timeout == "" {
		c.Fetch.Timeout = "30s"
	}
	if c.Fetch.MaxRetries == 0 {
		c.Fetch.MaxRetries = 2
	}
	if c.Fetch.RetryBackoff == "" {
		c.Fetch.RetryBackoff = RetryBackoffLinear
	}
	if c.Fetch.RetryInitialDelay == "" {
		c.Fetch.RetryInitialDelay = "1s"
	}
	if c.Fetch.RetryMaxDelay == "" {
		c.Fetch.RetryMaxDelay = "30s"
	}
	if c.History.Path == "" {
		c.History.Path = ".aocbuild/history.db"
	}
	if c.Events.URL == "" {
		c.Events.URL = "nats://127.0.0.1:4222"
	}
	if c.Events.SubjectPrefix == "" {
		c.Events.SubjectPrefix = "aoc.builds"
	}
	if c.Daemon.Listen == "" {
		c.Daemon.Listen = "127.0.0.1:9753"
	}
	if c.Daemon.Workers == 0 {
		c.Daemon.Workers = 2
	}
	if c.Daemon.QueueSize == 0 {
		c.Daemon.QueueSize = 32
	}
	if c.Daemon.HistoryLimit == 0 {
		c.Daemon.HistoryLimit = 50
	}
	if c.Daemon.QuietWindow == "" {
		c.Daemon.QuietWindow = "2s"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Root: ".",
		Discovery: DiscoveryConfig{
			MaxDay: 29,
		},
		Build: BuildConfig{
			ArtifactsDir: "bin",
			Concurrency:  4,
			Timeout:      "2m",
		},
		Fetch: FetchConfig{
			Year:       2020,
			SessionEnv: "AOC_SESSION",
			Timeout:    "30s",
			MaxRetries: 2,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    ".aocbuild/history.db",
		},
		Events: EventsConfig{
			Enabled:       false,
			URL:           "nats://127.0.0.1:4222",
			SubjectPrefix: "aoc.builds",
		},
		Daemon: DaemonConfig{
			Listen:       "127.0.0.1:9753",
			Workers:      2,
			QuietWindow:  "2s",
			RebuildEvery: "1h",
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
