// Package schedule periodically rebuilds every generated site.
package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/sitebuilder/internal/build"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// SiteLister lists the sites available for building.
type SiteLister interface {
	ListAvailableSites() ([]string, error)
}

// Scheduler wraps a gocron scheduler running the rebuild job.
type Scheduler struct {
	scheduler gocron.Scheduler
	sites     SiteLister
	builder   build.Builder
}

// New creates a scheduler; call ScheduleRebuild and Start to activate it.
func New(sites SiteLister, builder build.Builder) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create gocron scheduler").Build()
	}
	return &Scheduler{scheduler: s, sites: sites, builder: builder}, nil
}

// ScheduleRebuild registers a job that rebuilds every available site each interval. Runs do
// not overlap; a run still in progress when the next is due is skipped.
func (s *Scheduler) ScheduleRebuild(ctx context.Context, interval time.Duration) (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.RebuildAll, ctx),
		gocron.WithName("rebuild-all"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryRuntime, "failed to create periodic rebuild job").
			WithContext("interval", interval.String()).
			Build()
	}
	return job.ID().String(), nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for running jobs.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// Summary counts the outcome of one RebuildAll pass.
type Summary struct {
	Built  int
	Failed int
}

// RebuildAll builds every available site in name order. A failing site is logged and does
// not stop the remaining builds.
func (s *Scheduler) RebuildAll(ctx context.Context) Summary {
	var sum Summary
	sites, err := s.sites.ListAvailableSites()
	if err != nil {
		slog.Error("Scheduled rebuild could not list sites", logfields.Error(err))
		return sum
	}
	slog.Info("Executing scheduled rebuild", slog.Int("sites", len(sites)))
	for _, name := range sites {
		if ctx.Err() != nil {
			break
		}
		if _, err := s.builder.Build(ctx, name); err != nil {
			sum.Failed++
			slog.Error("Scheduled build failed", logfields.Site(name), logfields.Error(err))
			continue
		}
		sum.Built++
	}
	return sum
}
