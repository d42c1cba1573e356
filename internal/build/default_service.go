package build

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/build/minify"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/deploy"
	"git.home.luguber.info/inful/sitebuilder/internal/events"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/observability"
	"git.home.luguber.info/inful/sitebuilder/internal/sitelock"
)

// Service builds sites from <inputRoot>/<name> into <buildRoot>/<name>.
type Service struct {
	inputRoot string
	buildRoot string
	locks     *sitelock.Registry
	recorder  metrics.Recorder
	sink      events.Sink
	emit      func(buildPath, siteName string) error
}

// NewService returns a Service with no metrics and no event sink.
func NewService(inputRoot, buildRoot string) *Service {
	return &Service{
		inputRoot: inputRoot,
		buildRoot: buildRoot,
		locks:     sitelock.NewRegistry(),
		recorder:  metrics.NoopRecorder{},
		sink:      events.NoopSink{},
		emit:      deploy.Emit,
	}
}

// WithLocks shares a lock registry, typically with the generator.
func (s *Service) WithLocks(locks *sitelock.Registry) *Service {
	s.locks = locks
	return s
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	s.recorder = r
	return s
}

// WithSink sets where finished-operation events are published.
func (s *Service) WithSink(sink events.Sink) *Service {
	s.sink = sink
	return s
}

// WithEmitter replaces the deployment manifest emitter (for testing).
func (s *Service) WithEmitter(emit func(buildPath, siteName string) error) *Service {
	s.emit = emit
	return s
}

// BuildRoot returns the build output root.
func (s *Service) BuildRoot() string { return s.buildRoot }

// Build runs a clean build of siteName. Once filesystem work has started it runs to completion
// or first failure; a failed build may leave a partial tree that the next build removes.
func (s *Service) Build(ctx context.Context, siteName string) (*Result, error) {
	start := time.Now()
	ctx = observability.WithOperation(ctx, metrics.OperationBuild, siteName)

	res, err := s.build(ctx, siteName, start)

	elapsed := time.Since(start)
	s.recorder.ObserveOperationDuration(metrics.OperationBuild, elapsed)
	s.recorder.IncOutcome(metrics.OperationBuild, metrics.ResultFor(err))
	s.publish(ctx, siteName, res, err, elapsed)
	if err != nil {
		observability.ErrorContext(ctx, "Site build failed", logfields.Error(err))
		return nil, err
	}
	s.recorder.ObserveFiles(metrics.OperationBuild, res.FileCount)
	observability.InfoContext(ctx, "Site built",
		logfields.Path(res.BuildPath),
		logfields.Files(res.FileCount),
		logfields.DurationMS(res.BuildTimeMs))
	return res, nil
}

func (s *Service) build(ctx context.Context, siteName string, start time.Time) (*Result, error) {
	if err := content.ValidateSiteName(siteName); err != nil {
		return nil, err
	}

	unlock, err := s.locks.Lock(ctx, siteName)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryBuild, "failed to acquire site lock").
			WithContext("site", siteName).
			Build()
	}
	defer unlock()

	sourcePath := filepath.Join(s.inputRoot, siteName)
	buildPath := filepath.Join(s.buildRoot, siteName)

	if err := s.stage(ctx, StageResolve, func() error { return requireDir(sourcePath, siteName) }); err != nil {
		return nil, err
	}
	if err := s.stage(ctx, StageClean, func() error { return removeTree(buildPath) }); err != nil {
		return nil, err
	}
	files := 0
	if err := s.stage(ctx, StageCopy, func() error {
		var err error
		files, err = mirror(ctx, sourcePath, buildPath)
		return err
	}); err != nil {
		return nil, err
	}
	if err := s.stage(ctx, StageDeploy, func() error {
		if err := s.emit(buildPath, siteName); err != nil {
			return errors.WrapError(err, errors.CategoryBuild, "failed to emit deployment manifests").
				WithContext("path", buildPath).
				Build()
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return &Result{
		SiteName:    siteName,
		BuildPath:   buildPath,
		Status:      StatusSuccess,
		Message:     SuccessMessage,
		BuildTimeMs: time.Since(start).Milliseconds(),
		FileCount:   files,
	}, nil
}

// stage runs fn under a stage-scoped log context and records its timing and result.
func (s *Service) stage(ctx context.Context, name string, fn func() error) error {
	started := time.Now()
	ctx = observability.WithStage(ctx, name)
	observability.DebugContext(ctx, "Stage started")
	err := fn()
	s.recorder.ObserveStageDuration(name, time.Since(started))
	s.recorder.IncStageResult(name, metrics.ResultFor(err))
	if ce, ok := errors.AsClassified(err); ok && ce.Category() == errors.CategoryBuild {
		return ce.WithContext("phase", name)
	}
	return err
}

func (s *Service) publish(ctx context.Context, site string, res *Result, err error, elapsed time.Duration) {
	e := events.Event{
		OpID:       observability.GetContext(ctx).OpID,
		Type:       events.TypeSiteBuilt,
		Site:       site,
		DurationMs: elapsed.Milliseconds(),
		Timestamp:  time.Now(),
	}
	if err != nil {
		e.Type = events.TypeSiteBuildFailed
		e.Message = errors.MessageOf(err)
	} else {
		e.Path = res.BuildPath
		e.Files = res.FileCount
		e.Message = res.Message
	}
	if perr := s.sink.Publish(ctx, e); perr != nil {
		observability.WarnContext(ctx, "Failed to publish build event", slog.String("error", perr.Error()))
	}
}

func requireDir(path, siteName string) error {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return nil
	}
	if err == nil || os.IsNotExist(err) {
		return errors.NotFoundError(fmt.Sprintf("site '%s' not found in input directory", siteName)).
			WithContext("path", path).
			Build()
	}
	return buildError(err, "failed to stat source directory", path)
}

// removeTree deletes path and everything below it, files before their directories.
func removeTree(path string) error {
	if _, err := os.Lstat(path); os.IsNotExist(err) {
		return nil
	}
	var dirs []string
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, p)
			return nil
		}
		return os.Remove(p)
	})
	if err != nil {
		return buildError(err, "failed to remove previous build", path)
	}
	// WalkDir visits parents first, so removing in reverse is post-order.
	for i := len(dirs) - 1; i >= 0; i-- {
		if err := os.Remove(dirs[i]); err != nil {
			return buildError(err, "failed to remove previous build", dirs[i])
		}
	}
	return nil
}

// mirror copies every file under src to the same relative path under dst, applying the
// extension transform after the copy. It returns the number of files copied.
func mirror(ctx context.Context, src, dst string) (int, error) {
	count := 0
	err := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return buildError(err, "failed to walk source directory", p)
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return buildError(err, "failed to resolve relative path", p)
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return buildError(err, "failed to create directory", target)
			}
			return nil
		}
		if err := copyFile(p, target); err != nil {
			return err
		}
		if transform, ok := minify.ForPath(p); ok {
			if err := rewrite(target, transform); err != nil {
				return err
			}
		}
		observability.DebugContext(ctx, "File copied", logfields.File(filepath.ToSlash(rel)))
		count++
		return nil
	})
	return count, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return buildError(err, "failed to open source file", src)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return buildError(err, "failed to stat source file", src)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return buildError(err, "failed to create build file", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return buildError(err, "failed to copy file", dst)
	}
	if err := out.Close(); err != nil {
		return buildError(err, "failed to close build file", dst)
	}
	return nil
}

func rewrite(path string, transform minify.Transform) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return buildError(err, "failed to read build file", path)
	}
	if err := os.WriteFile(path, []byte(transform(string(data))), 0o644); err != nil {
		return buildError(err, "failed to write optimized file", path)
	}
	return nil
}

func buildError(err error, msg, path string) error {
	if errors.IsClassified(err) {
		return err
	}
	return errors.WrapError(err, errors.CategoryBuild, msg).WithContext("path", path).Build()
}
