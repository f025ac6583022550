// Package scheduler runs the per-file analysis of a project on a bounded worker pool.
package scheduler

import (
	"context"
	"os"
	"runtime"
	"time"

	"go.trai.ch/archlint/internal/adapters/cas" //nolint:depguard // The analysis cache is shared by all workers
	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Scheduler analyzes files in parallel and merges their findings.
type Scheduler struct {
	analyzer    ports.FileAnalyzer
	hasher      ports.Hasher
	logger      ports.Logger
	tracer      ports.Tracer
	metrics     ports.Metrics
	parallelism int
}

// NewScheduler creates a new Scheduler with the given dependencies.
// The worker count defaults to the number of CPUs.
func NewScheduler(
	analyzer ports.FileAnalyzer,
	hasher ports.Hasher,
	logger ports.Logger,
	tracer ports.Tracer,
	metrics ports.Metrics,
) *Scheduler {
	return &Scheduler{
		analyzer:    analyzer,
		hasher:      hasher,
		logger:      logger,
		tracer:      tracer,
		metrics:     metrics,
		parallelism: runtime.NumCPU(),
	}
}

// WithParallelism sets the number of concurrent workers. Values below one are ignored.
func (s *Scheduler) WithParallelism(n int) *Scheduler {
	if n > 0 {
		s.parallelism = n
	}
	return s
}

// fileResult is what one worker reports about one file.
type fileResult struct {
	analysis domain.FileAnalysis
	cached   bool
	err      error
}

// AnalyzeAll analyzes files below root with cfg and returns the merged findings,
// sorted by file and line. Files are keyed in cache by their root-relative path;
// a nil cache disables caching. A file that cannot be read or analyzed is logged
// and counted as skipped. Cancelling ctx stops launching new files; analyses
// already running complete.
func (s *Scheduler) AnalyzeAll(
	ctx context.Context,
	files []string,
	root string,
	cfg *domain.LintConfig,
	cache *cas.AnalysisCache,
) (*domain.AggregateResult, error) {
	ctx, span := s.tracer.Start(ctx, "analyze", ports.WithAttribute("archlint.files", len(files)))
	defer span.End()

	results := make(chan fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	go func() {
		for _, file := range files {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				results <- s.analyzeFile(gctx, file, root, cfg, cache)
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	agg := &domain.AggregateResult{}
	for res := range results {
		if res.err != nil {
			s.logger.Error(res.err)
			s.metrics.FileSkipped(ctx)
			agg.Skipped++
			continue
		}
		agg.Merge(res.analysis)
		if res.cached {
			agg.CacheHits++
		}
	}
	agg.Sort()

	span.SetAttribute("archlint.cache_hits", agg.CacheHits)
	span.SetAttribute("archlint.skipped", agg.Skipped)

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return agg, zerr.Wrap(err, domain.ErrAnalysisFailed.Error())
	}
	return agg, nil
}

// analyzeFile runs one file through the cache and, on a miss, the analyzer.
// The cache locks internally; no lock is held while the analyzer runs.
func (s *Scheduler) analyzeFile(
	ctx context.Context,
	path, root string,
	cfg *domain.LintConfig,
	cache *cas.AnalysisCache,
) fileResult {
	start := time.Now()
	key := cas.NormalizeKey(root, path)

	ctx, span := s.tracer.Start(ctx, key)
	defer span.End()

	content, err := os.ReadFile(path) //nolint:gosec // Paths come from project discovery
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", path)
		span.RecordError(err)
		return fileResult{err: err}
	}

	hash := s.hasher.HashContent(content)

	if cache != nil {
		if entry, ok := cache.Get(key, hash); ok {
			span.SetAttribute("archlint.cached", true)
			s.metrics.FileAnalyzed(ctx, true, time.Since(start))
			return fileResult{analysis: entry.Analysis(), cached: true}
		}
	}

	analysis, err := s.analyzer.AnalyzeFile(ctx, cfg, key, content)
	if err != nil {
		err = zerr.With(err, "path", path)
		span.RecordError(err)
		return fileResult{err: err}
	}

	if cache != nil {
		cache.Insert(key, domain.NewFileCacheEntry(hash, analysis))
	}

	span.SetAttribute("archlint.cached", false)
	s.metrics.FileAnalyzed(ctx, false, time.Since(start))
	return fileResult{analysis: analysis}
}
