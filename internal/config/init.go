package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).
			WithContext("path", path).
			Build()
	}

	example := Config{
		Version: CurrentVersion,
		Paths: PathsConfig{
			Output: "./output",
			Build:  "./build",
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Server:  ServerConfig{Addr: DefaultServerAddr, RebuildInterval: "1h"},
		History: HistoryConfig{Enabled: true},
		Metrics: MetricsConfig{Enabled: true},
		Notify:  NotifyConfig{
			Enabled:    false,
			NATSURL:    "${NATS_URL}",
			Subject:    DefaultNotifySubject,
			MaxRetries: 2,
			Backoff:    DefaultNotifyBackoff,
		},
		Watch:   WatchConfig{Debounce: DefaultWatchDebounce},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example config").Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	return nil
}
