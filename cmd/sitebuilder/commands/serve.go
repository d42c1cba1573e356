package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/schedule"
	"git.home.luguber.info/inful/sitebuilder/internal/server/httpserver"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr string `short:"a" help:"Listen address (overrides server.addr)"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}
	rt, err := NewRuntime(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunServe(ctx, rt)
}

// RunServe starts the HTTP API and the optional periodic rebuild, then blocks until ctx is done.
func RunServe(ctx context.Context, rt *Runtime) error {
	opts := httpserver.Options{
		Generator: rt.Generator,
		Builder:   rt.Builder,
		Inventory: rt.Inventory,
	}
	if rt.Registry != nil {
		opts.PrometheusHandler = metrics.HTTPHandler(rt.Registry)
	}
	srv := httpserver.New(rt.Config.Server.Addr, opts)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	var sched *schedule.Scheduler
	if interval := rt.Config.RebuildInterval(); interval > 0 {
		s, err := schedule.New(rt.BuildSources, rt.Builder)
		if err != nil {
			return err
		}
		if _, err := s.ScheduleRebuild(ctx, interval); err != nil {
			return err
		}
		s.Start()
		sched = s
		slog.Info("Periodic rebuild enabled", slog.String("interval", interval.String()))
	}

	slog.Info("Server started, waiting for shutdown signal...", slog.String("addr", rt.Config.Server.Addr))
	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping server...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	var stopErr error
	if sched != nil {
		if err := sched.Stop(); err != nil {
			slog.Warn("Failed to stop scheduler", logfields.Error(err))
		}
	}
	if err := srv.Stop(stopCtx); err != nil {
		stopErr = fmt.Errorf("failed to stop server: %w", err)
	}
	slog.Info("Server stopped")
	return stopErr
}
