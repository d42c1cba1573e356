package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Descriptors []string `arg:"" type:"existingfile" help:"Site descriptors to watch"`
	Build       bool     `short:"b" help:"Build each site after regenerating it"`
	Initial     bool     `help:"Generate every descriptor once before watching" default:"true" negatable:""`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	rt, err := NewRuntime(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunWatch(ctx, rt, w.Descriptors, w.Build, w.Initial)
}

// RunWatch regenerates (and optionally rebuilds) a site whenever its descriptor changes, until
// ctx is done. Failures are logged and watching continues.
func RunWatch(ctx context.Context, rt *Runtime, descriptors []string, andBuild, initial bool) error {
	handler := Regenerate(rt, andBuild)
	if initial {
		for _, d := range descriptors {
			handler(ctx, d)
		}
	}
	w, err := watch.New(descriptors, rt.Config.WatchDebounce(), handler)
	if err != nil {
		return err
	}
	slog.Info("Watching descriptors", logfields.Files(len(descriptors)))
	return w.Run(ctx)
}

// Regenerate returns a watch handler that reloads a descriptor and regenerates its site.
func Regenerate(rt *Runtime, andBuild bool) watch.Handler {
	return func(ctx context.Context, path string) {
		desc, err := content.Load(path)
		if err != nil {
			slog.Error("Failed to load descriptor", logfields.Path(path), logfields.Error(err))
			return
		}
		res, err := rt.Generator.Generate(ctx, desc)
		if err != nil {
			slog.Error("Regeneration failed", logfields.Path(path), logfields.Error(err))
			return
		}
		slog.Info("Site regenerated", logfields.Site(res.SiteName), logfields.Pages(res.PagesGenerated))
		if !andBuild {
			return
		}
		b, err := rt.Builder.Build(ctx, res.SiteName)
		if err != nil {
			slog.Error("Rebuild failed", logfields.Site(res.SiteName), logfields.Error(err))
			return
		}
		slog.Info("Site rebuilt", logfields.Site(b.SiteName), logfields.Files(b.FileCount), logfields.DurationMS(b.BuildTimeMs))
	}
}
