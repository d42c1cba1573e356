// Package config loads the sitebuilder YAML configuration: generation/build roots, logging,
// HTTP server, history ledger, metrics, event notification and watch settings.
package config

import (
	"path/filepath"
	"time"
)

// CurrentVersion is the only configuration version accepted by Load.
const CurrentVersion = "1.0"

// Default values applied when a key is absent.
const (
	DefaultOutputDir     = "output"
	DefaultBuildDir      = "build"
	DefaultServerAddr    = ":8080"
	DefaultNotifySubject = "sitebuilder.events"
	DefaultWatchDebounce = "500ms"
	DefaultNotifyBackoff = "linear"
	historyDir           = ".sitebuilder"
	historyFileName      = "history.db"
)

// Config is the root configuration document.
type Config struct {
	Version string        `yaml:"version"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	History HistoryConfig `yaml:"history"`
	Metrics MetricsConfig `yaml:"metrics"`
	Notify  NotifyConfig  `yaml:"notify"`
	Watch   WatchConfig   `yaml:"watch"`
}

// PathsConfig locates the generation root, the build input root and the build root.
type PathsConfig struct {
	Output     string `yaml:"output"`
	BuildInput string `yaml:"build_input,omitempty"`
	Build      string `yaml:"build"`
}

// LoggingConfig selects the slog level and handler format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// ServerConfig configures the HTTP API started by the serve command.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// RebuildInterval enables periodic rebuilds of every generated site when non-empty.
	RebuildInterval string `yaml:"rebuild_interval,omitempty"`
}

// HistoryConfig controls the SQLite operation ledger.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// MetricsConfig toggles Prometheus metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// NotifyConfig controls publication of site events to NATS.
type NotifyConfig struct {
	Enabled bool   `yaml:"enabled"`
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
	// MaxRetries is the number of publish retries after a failure; zero disables retrying.
	MaxRetries int `yaml:"max_retries,omitempty"`
	// Backoff is fixed, linear or exponential (default linear).
	Backoff string `yaml:"backoff,omitempty"`
}

// WatchConfig controls the descriptor watcher.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Paths.Output == "" {
		cfg.Paths.Output = DefaultOutputDir
	}
	if cfg.Paths.BuildInput == "" {
		cfg.Paths.BuildInput = cfg.Paths.Output
	}
	if cfg.Paths.Build == "" {
		cfg.Paths.Build = DefaultBuildDir
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if cfg.History.Path == "" {
		// Beside the build root, not inside it: site builds replace whole directories there.
		cfg.History.Path = filepath.Join(filepath.Dir(cfg.Paths.Build), historyDir, historyFileName)
	}
	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = DefaultNotifySubject
	}
	if cfg.Notify.Backoff == "" {
		cfg.Notify.Backoff = DefaultNotifyBackoff
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
}

// RebuildInterval returns the parsed server rebuild interval; zero means disabled.
func (c *Config) RebuildInterval() time.Duration {
	if c.Server.RebuildInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Server.RebuildInterval)
	if err != nil {
		return 0
	}
	return d
}

// WatchDebounce returns the parsed watch debounce window.
func (c *Config) WatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultWatchDebounce)
	}
	return d
}
