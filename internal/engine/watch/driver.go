// Package watch re-analyzes a project incrementally as batches of changed files arrive.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"slices"
	"time"

	"go.trai.ch/archlint/internal/adapters/cas" //nolint:depguard // Watch mode owns the project caches
	fsadapter "go.trai.ch/archlint/internal/adapters/fs" //nolint:depguard // Path filtering rules
	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/archlint/internal/engine/depgraph"
	"go.trai.ch/archlint/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// Options holds the collaborators of a Driver.
type Options struct {
	Root       string
	Config     *domain.LintConfig
	Scheduler  *scheduler.Scheduler
	Graph      *depgraph.Builder
	Cache      *cas.AnalysisCache
	Hashes     *cas.HybridCache
	Hasher     ports.Hasher
	Extensions []string
	Logger     ports.Logger
	Tracer     ports.Tracer
	Metrics    ports.Metrics
}

// BatchResult is the outcome of one processed batch.
type BatchResult struct {
	// Changed lists the files whose content changed, in batch order.
	Changed []string
	// Deleted lists the files that no longer exist.
	Deleted []string
	// Unchanged counts files that were reported but whose bytes did not change.
	Unchanged int
	// Aggregate holds the findings of the changed files.
	Aggregate *domain.AggregateResult
	// Cycles are the cycles in the connected components of the changed files.
	Cycles []domain.CircularDependency
}

// Empty reports whether the batch changed nothing.
func (r *BatchResult) Empty() bool {
	return len(r.Changed) == 0 && len(r.Deleted) == 0
}

// Driver applies batches of file changes to the analysis cache and the
// dependency graph. Batches are processed one at a time.
type Driver struct {
	opts Options
}

// NewDriver creates a Driver.
func NewDriver(opts Options) *Driver {
	return &Driver{opts: opts}
}

// Prime records the current content hash of files so that later events for
// untouched files are recognized as no-ops.
func (d *Driver) Prime(files []string) {
	for _, path := range files {
		hash, err := d.opts.Hasher.HashFile(path)
		if err != nil {
			continue
		}
		if err := d.opts.Hashes.Put(d.key(path), hash); err != nil {
			d.opts.Logger.Warn("failed to record content hash: " + err.Error())
		}
	}
}

// change is one file of a batch whose bytes differ from the last known hash.
type change struct {
	path string
	hash string
}

// ProcessBatch re-analyzes the changed files of paths, updates the graph and
// reports the cycles reachable from them.
func (d *Driver) ProcessBatch(ctx context.Context, paths []string) (*BatchResult, error) {
	ctx, span := d.opts.Tracer.Start(ctx, "watch batch", ports.WithAttribute("archlint.paths", len(paths)))
	defer span.End()

	res := &BatchResult{Aggregate: &domain.AggregateResult{}}

	changes, err := d.classify(d.relevant(paths), res)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if res.Empty() {
		return res, nil
	}

	for _, c := range changes {
		d.opts.Cache.Remove(d.key(c.path))
	}
	for _, path := range res.Deleted {
		d.opts.Cache.Remove(d.key(path))
	}

	agg, err := d.opts.Scheduler.AnalyzeAll(ctx, res.Changed, d.opts.Root, d.opts.Config, d.opts.Cache)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	res.Aggregate = agg

	for _, path := range res.Deleted {
		d.opts.Graph.RemoveFile(path)
		if err := d.opts.Hashes.Forget(d.key(path)); err != nil {
			d.opts.Logger.Warn("failed to forget content hash: " + err.Error())
		}
	}

	affected := make(map[string]struct{})
	graph := d.opts.Graph.Graph()
	for _, c := range changes {
		if err := d.opts.Graph.UpdateFile(ctx, c.path); err != nil {
			d.opts.Logger.Error(err)
			continue
		}
		if err := d.opts.Hashes.Put(d.key(c.path), c.hash); err != nil {
			d.opts.Logger.Warn("failed to record content hash: " + err.Error())
		}
		for node := range graph.AffectedNodes(d.opts.Graph.NormalizeFilePath(c.path)) {
			affected[node] = struct{}{}
		}
	}

	if len(affected) > 0 {
		res.Cycles = d.opts.Graph.Graph().DetectCyclesInSubgraph(affected)
	}
	d.opts.Metrics.CyclesDetected(ctx, len(res.Cycles))

	span.SetAttribute("archlint.changed", len(res.Changed))
	span.SetAttribute("archlint.deleted", len(res.Deleted))
	span.SetAttribute("archlint.cycles", len(res.Cycles))
	return res, nil
}

// relevant keeps the distinct analyzable paths of a batch, in order.
func (d *Driver) relevant(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if slices.Contains(out, path) {
			continue
		}
		if !fsadapter.HasExtension(path, d.opts.Extensions) {
			continue
		}
		if fsadapter.IsIgnored(d.opts.Root, path, d.opts.Config.IgnoredPaths) {
			continue
		}
		out = append(out, path)
	}
	return out
}

// classify splits paths into changed, deleted and unchanged files.
func (d *Driver) classify(paths []string, res *BatchResult) ([]change, error) {
	var changes []change
	for _, path := range paths {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			res.Deleted = append(res.Deleted, path)
			continue
		}
		if err != nil || info.IsDir() {
			continue
		}

		hash, err := d.opts.Hasher.HashFile(path)
		if err != nil {
			d.opts.Logger.Error(err)
			continue
		}

		known, ok, err := d.opts.Hashes.Get(d.key(path))
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
		if ok && known == hash {
			res.Unchanged++
			continue
		}

		changes = append(changes, change{path: path, hash: hash})
		res.Changed = append(res.Changed, path)
	}
	return changes, nil
}

func (d *Driver) key(path string) string {
	return cas.NormalizeKey(d.opts.Root, path)
}

// Run processes batches until the channel closes or ctx is cancelled. Each
// batch is fully applied before the next is read, and the analysis cache is
// saved after every batch that changed something.
func (d *Driver) Run(ctx context.Context, batches <-chan []string, onResult func(*BatchResult)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths, ok := <-batches:
			if !ok {
				return nil
			}

			start := time.Now()
			res, err := d.ProcessBatch(ctx, paths)
			if err != nil {
				d.opts.Logger.Error(err)
				continue
			}
			d.opts.Metrics.BatchProcessed(ctx, len(res.Changed)+len(res.Deleted), time.Since(start))

			if res.Empty() {
				continue
			}

			if d.opts.Config.Cache.Enabled {
				if err := d.opts.Cache.Save(d.opts.Root); err != nil {
					d.opts.Logger.Warn("analysis cache was not saved: " + err.Error())
				}
				if err := d.opts.Hashes.Save(d.opts.Root); err != nil {
					d.opts.Logger.Warn("content hashes were not saved: " + err.Error())
				}
			}

			if onResult != nil {
				onResult(res)
			}
		}
	}
}
