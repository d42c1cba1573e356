package config

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// Validate checks a loaded configuration for values the commands cannot work with.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Paths.Output) == "" {
		return errors.ConfigError("paths.output cannot be blank").Build()
	}
	if strings.TrimSpace(cfg.Paths.BuildInput) == "" {
		return errors.ConfigError("paths.build_input cannot be blank").Build()
	}
	if strings.TrimSpace(cfg.Paths.Build) == "" {
		return errors.ConfigError("paths.build cannot be blank").Build()
	}
	if cfg.Server.RebuildInterval != "" {
		d, err := time.ParseDuration(cfg.Server.RebuildInterval)
		if err != nil || d <= 0 {
			return errors.ConfigError("server.rebuild_interval must be a positive duration").
				WithContext("value", cfg.Server.RebuildInterval).
				Build()
		}
	}
	if d, err := time.ParseDuration(cfg.Watch.Debounce); err != nil || d <= 0 {
		return errors.ConfigError("watch.debounce must be a positive duration").
			WithContext("value", cfg.Watch.Debounce).
			Build()
	}
	if cfg.Notify.Enabled && strings.TrimSpace(cfg.Notify.NATSURL) == "" {
		return errors.ConfigError("notify.nats_url is required when notify is enabled").Build()
	}
	if cfg.Notify.MaxRetries < 0 {
		return errors.ConfigError("notify.max_retries cannot be negative").Build()
	}
	switch cfg.Notify.Backoff {
	case "fixed", "linear", "exponential":
	default:
		return errors.ConfigError("notify.backoff must be one of fixed, linear, exponential").
			WithContext("value", cfg.Notify.Backoff).
			Build()
	}
	return nil
}
