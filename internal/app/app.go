// Package app implements the application layer for archlint.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/archlint/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/archlint/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/archlint/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/archlint/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/archlint/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/archlint/internal/engine/depgraph"
	"go.trai.ch/archlint/internal/engine/scheduler"
	"go.trai.ch/archlint/internal/engine/scoring"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	extractor    ports.ImportExtractor
	resolver     ports.ImportResolver
	hasher       ports.Hasher
	walker       *fs.Walker
	caches       *cas.Provider
	scheduler    *scheduler.Scheduler
	watcher      ports.Watcher
	logger       ports.Logger
	tracer       ports.Tracer
	metrics      *telemetry.Metrics
	stdout       io.Writer
	detectMode   func() detector.OutputMode
}

// Dependencies groups the collaborators of an App.
type Dependencies struct {
	ConfigLoader ports.ConfigLoader
	Extractor    ports.ImportExtractor
	Resolver     ports.ImportResolver
	Hasher       ports.Hasher
	Walker       *fs.Walker
	Caches       *cas.Provider
	Scheduler    *scheduler.Scheduler
	Watcher      ports.Watcher
	Logger       ports.Logger
	Tracer       ports.Tracer
	Metrics      *telemetry.Metrics
}

// New creates a new App instance. Reports are written to stdout.
func New(deps Dependencies) *App {
	return &App{
		configLoader: deps.ConfigLoader,
		extractor:    deps.Extractor,
		resolver:     deps.Resolver,
		hasher:       deps.Hasher,
		walker:       deps.Walker,
		caches:       deps.Caches,
		scheduler:    deps.Scheduler,
		watcher:      deps.Watcher,
		logger:       deps.Logger,
		tracer:       deps.Tracer,
		metrics:      deps.Metrics,
		stdout:       os.Stdout,
		detectMode:   detector.DetectEnvironment,
	}
}

// WithOutput redirects reports to w.
// This is primarily used for testing.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// Close releases the file watcher.
func (a *App) Close() error {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Stop()
}

// AnalyzeOptions configuration for the Analyze method.
type AnalyzeOptions struct {
	Root       string
	NoCache    bool
	OutputMode string
}

// project is the state of one analyzed project root.
type project struct {
	root  string
	cfg   *domain.LintConfig
	files []string
	cache *cas.AnalysisCache
	graph *depgraph.Builder
}

// Analyze runs a full analysis of the project at opts.Root, writes the report
// and returns the result. Blocking findings are not an error here; callers
// decide how to treat them.
func (a *App) Analyze(ctx context.Context, opts AnalyzeOptions) (*domain.AnalysisResult, error) {
	renderer, err := a.renderer(opts.OutputMode)
	if err != nil {
		return nil, err
	}

	proj, err := a.open(opts.Root, opts.NoCache)
	if err != nil {
		return nil, err
	}

	result, err := a.analyze(ctx, proj)
	if err != nil {
		return nil, err
	}

	a.saveCache(proj)

	if err := renderer.Render(a.stdout, result); err != nil {
		return result, zerr.Wrap(err, "failed to render report")
	}
	return result, nil
}

// open loads the configuration, discovers source files and opens the analysis cache.
// A nil cache disables caching.
func (a *App) open(root string, noCache bool) (*project, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFailedToGetRoot.Error()), "root", root)
	}

	cfg, err := a.configLoader.Load(abs)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	files := slices.Collect(a.walker.SourceFiles(abs, cfg.IgnoredPaths, a.extractor.Extensions()))

	var cache *cas.AnalysisCache
	if !noCache {
		cache = a.caches.AnalysisCache(abs, a.hasher.HashConfig(cfg), cfg.Cache)
	}

	return &project{
		root:  abs,
		cfg:   cfg,
		files: files,
		cache: cache,
		graph: depgraph.NewBuilder(abs, a.extractor, a.resolver, a.logger),
	}, nil
}

// analyze runs the per-file analysis and the cycle detection and assembles the result.
func (a *App) analyze(ctx context.Context, proj *project) (*domain.AnalysisResult, error) {
	ctx, span := a.tracer.Start(ctx, "project", ports.WithAttribute("archlint.root", proj.root))
	defer span.End()

	agg, err := a.scheduler.AnalyzeAll(ctx, proj.files, proj.root, proj.cfg, proj.cache)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := proj.graph.Build(ctx, proj.files); err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, domain.ErrAnalysisFailed.Error())
	}
	cycles := proj.graph.DetectCycles()
	a.metrics.CyclesDetected(ctx, len(cycles))

	result := domain.NewAnalysisResult(filepath.Base(proj.root), proj.cfg.Pattern, proj.cfg.MaxLinesPerFunction)
	agg.ApplyTo(result)
	result.AddCircularDependencies(cycles)
	result.SortFindings()

	health := scoring.Calculate(result)
	result.Health = &health

	span.SetAttribute("archlint.files_analyzed", result.FilesAnalyzed)
	span.SetAttribute("archlint.cycles", len(cycles))

	if agg.Skipped > 0 {
		a.logger.Warn(fmt.Sprintf("%d files could not be analyzed", agg.Skipped))
	}
	return result, nil
}

// saveCache persists the analysis cache. Failures never fail a run.
func (a *App) saveCache(proj *project) {
	if proj.cache == nil || !proj.cfg.Cache.Enabled {
		return
	}
	if err := proj.cache.Save(proj.root); err != nil {
		a.logger.Warn("analysis cache was not saved: " + err.Error())
	}
}

func (a *App) renderer(flag string) (ports.Renderer, error) {
	mode, err := detector.ResolveMode(a.detectMode(), flag)
	if err != nil {
		return nil, err
	}

	switch mode {
	case detector.ModeJSON:
		return linear.NewJSONRenderer(), nil
	case detector.ModePretty:
		return linear.NewRenderer(), nil
	default:
		return linear.NewPlainRenderer(), nil
	}
}

// Clean removes the cache directory of the project at root.
func (a *App) Clean(_ context.Context, root string) error {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFailedToGetRoot.Error()), "root", root)
	}

	var errs error
	remove := func(path, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(domain.DefaultCachePath(abs), "analysis cache")

	return errs
}
