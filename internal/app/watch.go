package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.trai.ch/archlint/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/archlint/internal/engine/watch"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const metricsShutdownTimeout = 5 * time.Second

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	Root       string
	OutputMode string
	// MetricsAddr, when set, serves Prometheus metrics on /metrics at this address.
	MetricsAddr string
	// Window is the debounce window for file events. Zero uses the default.
	Window time.Duration
}

// Watch analyzes the project once, then re-analyzes changed files until ctx is cancelled.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	renderer, err := a.renderer(opts.OutputMode)
	if err != nil {
		return err
	}

	proj, err := a.open(opts.Root, false)
	if err != nil {
		return err
	}

	result, err := a.analyze(ctx, proj)
	if err != nil {
		return err
	}
	a.saveCache(proj)
	if err := renderer.Render(a.stdout, result); err != nil {
		return zerr.Wrap(err, "failed to render report")
	}

	hashes, err := a.caches.HashCache(proj.root, proj.cfg.Cache, proj.cache)
	if err != nil {
		return err
	}
	defer func() {
		if err := hashes.Close(); err != nil {
			a.logger.Warn("failed to close hash store: " + err.Error())
		}
	}()

	driver := watch.NewDriver(watch.Options{
		Root:       proj.root,
		Config:     proj.cfg,
		Scheduler:  a.scheduler,
		Graph:      proj.graph,
		Cache:      proj.cache,
		Hashes:     hashes,
		Hasher:     a.hasher,
		Extensions: a.extractor.Extensions(),
		Logger:     a.logger,
		Tracer:     a.tracer,
		Metrics:    a.metrics,
	})
	driver.Prime(proj.files)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.watcher.Ignore(proj.cfg.IgnoredPaths)
	if err := a.watcher.Start(ctx, proj.root); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	window := opts.Window
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}
	batches := watcher.Batches(ctx, a.watcher.Events(), window)

	a.logger.Info(fmt.Sprintf("watching %s for changes", proj.root))

	g, gctx := errgroup.WithContext(ctx)

	if opts.MetricsAddr != "" {
		a.serveMetrics(gctx, g, opts.MetricsAddr)
	}

	g.Go(func() error {
		defer cancel()
		return driver.Run(gctx, batches, a.reportBatch)
	})

	return g.Wait()
}

// serveMetrics runs the Prometheus endpoint until ctx is done.
func (a *App) serveMetrics(ctx context.Context, g *errgroup.Group, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsShutdownTimeout,
	}

	g.Go(func() error {
		a.logger.Info(fmt.Sprintf("serving metrics on %s/metrics", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.With(zerr.Wrap(err, "metrics server failed"), "addr", addr)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// reportBatch logs the findings of one watch batch.
func (a *App) reportBatch(res *watch.BatchResult) {
	agg := res.Aggregate
	a.logger.Info(fmt.Sprintf(
		"%d changed, %d deleted: %d violations, %d long functions, %d circular dependencies",
		len(res.Changed),
		len(res.Deleted),
		len(agg.Violations),
		len(agg.LongFunctions),
		len(res.Cycles),
	))

	for _, v := range agg.Violations {
		a.logger.Warn(fmt.Sprintf("%s:%d imports %q (%s, %s)", v.FilePath, v.Line, v.OffensiveImport, v.Rule, v.Category))
	}
	for _, f := range agg.LongFunctions {
		a.logger.Warn(fmt.Sprintf("%s:%d %s has %d lines (max %d)", f.FilePath, f.StartLine, f.Name, f.Lines, f.Threshold))
	}
	for _, c := range res.Cycles {
		a.logger.Warn(c.Description)
	}
}
