package commands

import (
	stdErrors "errors"
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitebuilder/internal/build"
	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/events"
	"git.home.luguber.info/inful/sitebuilder/internal/generator"
	"git.home.luguber.info/inful/sitebuilder/internal/history"
	"git.home.luguber.info/inful/sitebuilder/internal/inventory"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/notify"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
	"git.home.luguber.info/inful/sitebuilder/internal/retry"
	"git.home.luguber.info/inful/sitebuilder/internal/sitelock"
)

// Runtime holds the services assembled from a configuration.
type Runtime struct {
	Config    *config.Config
	Generator *generator.Generator
	Builder   *build.Service
	Inventory *inventory.Inventory
	// BuildSources lists the sites the build service can build (paths.build_input).
	BuildSources *inventory.Inventory
	// Registry is nil when metrics are disabled.
	Registry *prom.Registry

	history  *history.Store
	notifier *notify.Notifier
}

// NewRuntime wires the generator and build service to a shared lock registry and to the
// configured metrics, history and notification backends.
func NewRuntime(cfg *config.Config) (*Runtime, error) {
	renderer, err := render.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	rt := &Runtime{Config: cfg}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.Enabled {
		rt.Registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(rt.Registry)
	}

	var sinks events.Multi
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		rt.history = store
		sinks = append(sinks, store)
	}
	if cfg.Notify.Enabled {
		n, err := notify.Connect(cfg.Notify.NATSURL, cfg.Notify.Subject)
		if err != nil {
			_ = rt.Close()
			return nil, err
		}
		rt.notifier = n.WithRetry(retry.NewPolicy(retry.BackoffMode(cfg.Notify.Backoff), 0, 0, cfg.Notify.MaxRetries))
		sinks = append(sinks, n)
	}

	locks := sitelock.NewRegistry()
	rt.Generator = generator.New(cfg.Paths.Output, renderer).
		WithLocks(locks).
		WithRecorder(recorder).
		WithSink(sinks)
	rt.Builder = build.NewService(cfg.Paths.BuildInput, cfg.Paths.Build).
		WithLocks(locks).
		WithRecorder(recorder).
		WithSink(sinks)
	rt.Inventory = inventory.New(cfg.Paths.Output, cfg.Paths.Build)
	rt.BuildSources = inventory.New(cfg.Paths.BuildInput, cfg.Paths.Build)

	slog.Debug("Runtime assembled",
		slog.String("output", cfg.Paths.Output),
		slog.String("build_input", cfg.Paths.BuildInput),
		slog.String("build", cfg.Paths.Build),
		slog.Bool("metrics", cfg.Metrics.Enabled),
		slog.Bool("history", cfg.History.Enabled),
		slog.Bool("notify", cfg.Notify.Enabled))
	return rt, nil
}

// History returns the operation ledger, or nil when history is disabled.
func (r *Runtime) History() *history.Store { return r.history }

// Close releases the history database and the NATS connection.
func (r *Runtime) Close() error {
	var errs []error
	if r.notifier != nil {
		r.notifier.Close()
	}
	if r.history != nil {
		errs = append(errs, r.history.Close())
	}
	return stdErrors.Join(errs...)
}
