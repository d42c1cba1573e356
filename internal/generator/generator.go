// Package generator writes the generated tree of a site: one HTML file per page, the shared
// stylesheet and script under assets/, and a config.json summary.
package generator

import (
	"context"
	"embed"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/events"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/observability"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
	"git.home.luguber.info/inful/sitebuilder/internal/sitelock"
)

// Layout of a generated site.
const (
	AssetsDir      = "assets"
	StylesFile     = "styles.css"
	ScriptFile     = "script.js"
	ConfigFile     = "config.json"
	SuccessMessage = "Site generated successfully"
)

// Stage names used for logging and metrics.
const (
	StageValidate = "validate"
	StageLayout   = "layout"
	StagePages    = "pages"
	StageAssets   = "assets"
	StageConfig   = "config"
)

//go:embed assets/styles.css assets/script.js
var assetFS embed.FS

// Result summarizes a generate call.
type Result struct {
	SiteName       string `json:"siteName"`
	OutputPath     string `json:"outputPath"`
	PagesGenerated int    `json:"pagesGenerated"`
	Message        string `json:"message"`
}

// siteConfig is the content of config.json.
type siteConfig struct {
	SiteName    string `json:"siteName"`
	Pages       int    `json:"pages"`
	GeneratedAt int64  `json:"generatedAt"`
}

// Generator renders site descriptors into <outputRoot>/<siteName>.
type Generator struct {
	outputRoot string
	renderer   render.Renderer
	locks      *sitelock.Registry
	recorder   metrics.Recorder
	sink       events.Sink
	now        func() time.Time
}

// New returns a Generator writing below outputRoot with the given renderer.
func New(outputRoot string, renderer render.Renderer) *Generator {
	return &Generator{
		outputRoot: outputRoot,
		renderer:   renderer,
		locks:      sitelock.NewRegistry(),
		recorder:   metrics.NoopRecorder{},
		sink:       events.NoopSink{},
		now:        time.Now,
	}
}

// WithLocks shares a lock registry, typically with the build service.
func (g *Generator) WithLocks(locks *sitelock.Registry) *Generator {
	g.locks = locks
	return g
}

// WithRecorder sets the metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	g.recorder = r
	return g
}

// WithSink sets where finished-operation events are published.
func (g *Generator) WithSink(s events.Sink) *Generator {
	g.sink = s
	return g
}

// WithClock overrides the time source (for tests).
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// OutputRoot returns the generation root.
func (g *Generator) OutputRoot() string { return g.outputRoot }

// Generate validates desc and writes its generated tree. Nothing is written when validation
// fails. Existing directories are reused and files overwritten; files from earlier runs that
// are no longer produced are left in place.
func (g *Generator) Generate(ctx context.Context, desc *content.SiteDescriptor) (*Result, error) {
	start := g.now()
	name := ""
	if desc != nil {
		name = desc.SiteName
	}
	ctx = observability.WithOperation(ctx, metrics.OperationGenerate, name)

	res, err := g.generate(ctx, desc)

	elapsed := g.now().Sub(start)
	g.recorder.ObserveOperationDuration(metrics.OperationGenerate, elapsed)
	g.recorder.IncOutcome(metrics.OperationGenerate, metrics.ResultFor(err))
	g.publish(ctx, name, res, err, elapsed)
	if err != nil {
		observability.ErrorContext(ctx, "Site generation failed", logfields.Error(err))
		return nil, err
	}
	g.recorder.ObserveFiles(metrics.OperationGenerate, res.PagesGenerated)
	observability.InfoContext(ctx, "Site generated",
		logfields.Path(res.OutputPath),
		logfields.Pages(res.PagesGenerated),
		logfields.DurationMS(elapsed.Milliseconds()))
	return res, nil
}

func (g *Generator) generate(ctx context.Context, desc *content.SiteDescriptor) (*Result, error) {
	var site *content.Site
	if err := g.stage(ctx, StageValidate, func() error {
		var err error
		site, err = content.NewSite(desc)
		return err
	}); err != nil {
		return nil, err
	}

	unlock, err := g.locks.Lock(ctx, site.Name())
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGeneration, "failed to acquire site lock").
			WithContext("site", site.Name()).
			Build()
	}
	defer unlock()

	sitePath := filepath.Join(g.outputRoot, site.Name())
	assetsPath := filepath.Join(sitePath, AssetsDir)
	pages := 0

	if err := g.stage(ctx, StageLayout, func() error { return mkdir(assetsPath) }); err != nil {
		return nil, err
	}
	if err := g.stage(ctx, StagePages, func() error {
		var err error
		pages, err = g.writePages(ctx, site, sitePath)
		return err
	}); err != nil {
		return nil, err
	}
	if err := g.stage(ctx, StageAssets, func() error { return writeAssets(assetsPath) }); err != nil {
		return nil, err
	}
	if err := g.stage(ctx, StageConfig, func() error { return g.writeConfig(site, sitePath) }); err != nil {
		return nil, err
	}

	return &Result{
		SiteName:       site.Name(),
		OutputPath:     sitePath,
		PagesGenerated: pages,
		Message:        SuccessMessage,
	}, nil
}

// stage runs fn under a stage-scoped log context and records its timing and result.
// Generation errors are tagged with the phase they occurred in.
func (g *Generator) stage(ctx context.Context, name string, fn func() error) error {
	started := time.Now()
	ctx = observability.WithStage(ctx, name)
	observability.DebugContext(ctx, "Stage started")
	err := fn()
	g.recorder.ObserveStageDuration(name, time.Since(started))
	g.recorder.IncStageResult(name, metrics.ResultFor(err))
	if ce, ok := errors.AsClassified(err); ok && ce.Category() == errors.CategoryGeneration {
		return ce.WithContext("phase", name)
	}
	return err
}

// writePages renders every page in input order. The returned count is the number of page
// writes performed, so two pages mapping to the same file are counted twice.
func (g *Generator) writePages(ctx context.Context, site *content.Site, sitePath string) (int, error) {
	count := 0
	for _, page := range site.Pages() {
		html, err := g.renderer.Render(render.PageTemplate, render.PageContext(site, page))
		if err != nil {
			return count, errors.WrapError(err, errors.CategoryGeneration, "failed to render page").
				WithContext("slug", page.Slug()).
				Build()
		}
		path := filepath.Join(sitePath, page.FileName())
		if err := writeFile(path, []byte(html)); err != nil {
			return count, err
		}
		observability.DebugContext(ctx, "Page written", logfields.Slug(page.Slug()), logfields.File(path))
		count++
	}
	return count, nil
}

func writeAssets(assetsPath string) error {
	for _, name := range []string{StylesFile, ScriptFile} {
		data, err := assetFS.ReadFile(AssetsDir + "/" + name)
		if err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "embedded asset missing").
				WithContext("file", name).
				Build()
		}
		if err := writeFile(filepath.Join(assetsPath, name), data); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeConfig(site *content.Site, sitePath string) error {
	data, err := json.MarshalIndent(siteConfig{
		SiteName:    site.Name(),
		Pages:       site.PageCount(),
		GeneratedAt: g.now().UnixMilli(),
	}, "", "    ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode site config").Build()
	}
	return writeFile(filepath.Join(sitePath, ConfigFile), append(data, '\n'))
}

func (g *Generator) publish(ctx context.Context, site string, res *Result, err error, elapsed time.Duration) {
	e := events.Event{
		OpID:       observability.GetContext(ctx).OpID,
		Type:       events.TypeSiteGenerated,
		Site:       site,
		DurationMs: elapsed.Milliseconds(),
		Timestamp:  g.now(),
	}
	if err != nil {
		e.Type = events.TypeSiteGenerateFailed
		e.Message = errors.MessageOf(err)
	} else {
		e.Path = res.OutputPath
		e.Files = res.PagesGenerated
		e.Message = res.Message
	}
	if perr := g.sink.Publish(ctx, e); perr != nil {
		observability.WarnContext(ctx, "Failed to publish generate event", slog.String("error", perr.Error()))
	}
}

func mkdir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryGeneration, "failed to create output directory").
			WithContext("path", path).
			Build()
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryGeneration, "failed to write file").
			WithContext("path", path).
			Build()
	}
	return nil
}
