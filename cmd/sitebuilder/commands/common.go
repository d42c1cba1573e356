// Package commands implements the sitebuilder CLI subcommands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
)

// Global carries state shared by all subcommands.
type Global struct {
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitebuilder.yaml" env:"SITEBUILDER_CONFIG"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Generate a site from a JSON or YAML descriptor"`
	Build    BuildCmd    `cmd:"" help:"Build a generated site into a deployable directory"`
	Status   StatusCmd   `cmd:"" help:"Show the build status of a site"`
	Sites    SitesCmd    `cmd:"" help:"List generated sites"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
	Serve    ServeCmd    `cmd:"" help:"Run the HTTP API"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate sites when their descriptors change"`
	History  HistoryCmd  `cmd:"" help:"Show recent generate and build operations"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// LoadConfig reads the configuration and reconfigures logging from it. The -v flag always wins
// over the configured level.
func LoadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(NewLogger(cfg, root.Verbose, os.Stderr))
	return cfg, nil
}

// NewLogger builds the slog logger described by the logging section of cfg.
func NewLogger(cfg *config.Config, verbose bool, w io.Writer) *slog.Logger {
	level := cfg.Logging.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Logging.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// printJSON writes v indented, for machine-readable command output.
func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
