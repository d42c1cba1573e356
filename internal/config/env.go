package config

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override file values after loading.
const (
	EnvOutputPath     = "SITEBUILDER_OUTPUT_PATH"
	EnvBuildInputPath = "SITEBUILDER_BUILD_INPUT_PATH"
	EnvBuildPath      = "SITEBUILDER_BUILD_PATH"
	EnvLogLevel       = "SITEBUILDER_LOG_LEVEL"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env and .env.local when present. Existing process environment
// variables are never overwritten.
func loadEnvFiles() {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load env file", slog.String("file", name), slog.String("error", err.Error()))
			continue
		}
		slog.Debug("Loaded environment variables", slog.String("file", name))
	}
}

// applyEnvOverrides copies non-empty override variables onto cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvOutputPath); v != "" {
		cfg.Paths.Output = v
	}
	if v := os.Getenv(EnvBuildInputPath); v != "" {
		cfg.Paths.BuildInput = v
	}
	if v := os.Getenv(EnvBuildPath); v != "" {
		cfg.Paths.Build = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = LogLevel(v)
	}
}

func fileMissing(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
