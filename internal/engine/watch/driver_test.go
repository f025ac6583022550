package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/archlint/internal/adapters/cas"
	"go.trai.ch/archlint/internal/adapters/extractor"
	"go.trai.ch/archlint/internal/adapters/fs"
	"go.trai.ch/archlint/internal/adapters/telemetry"
	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/core/ports/mocks"
	"go.trai.ch/archlint/internal/engine/analyzer"
	"go.trai.ch/archlint/internal/engine/depgraph"
	"go.trai.ch/archlint/internal/engine/scheduler"
	"go.trai.ch/archlint/internal/engine/watch"
	"go.uber.org/mock/gomock"
)

const configHash = "cfg"

type fixture struct {
	root   string
	driver *watch.Driver
	graph  *depgraph.Builder
	cache  *cas.AnalysisCache
}

func (f *fixture) path(rel string) string {
	return filepath.Join(f.root, filepath.FromSlash(rel))
}

func (f *fixture) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := f.path(rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

// newFixture analyzes a small project the way the initial watch run does and
// returns a driver primed with its state.
func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	f := &fixture{root: t.TempDir()}
	for rel, content := range files {
		f.write(t, rel, content)
	}

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	cfg := domain.NewLintConfig()
	cfg.ForbiddenImports = []domain.ForbiddenRule{{From: "src/domain", To: "src/infra", Severity: domain.SeverityError}}

	registry := extractor.NewDefaultRegistry()
	hasher := fs.NewHasher()
	sched := scheduler.NewScheduler(
		analyzer.New(registry), hasher, logger, telemetry.NewNoOpTracer(), telemetry.NewNoOpMetrics(),
	)
	f.graph = depgraph.NewBuilder(f.root, registry, fs.NewResolver(), logger)
	f.cache = cas.NewAnalysisCache(configHash)

	sources := slices.Collect(fs.NewWalker().SourceFiles(f.root, cfg.IgnoredPaths, registry.Extensions()))
	_, err := sched.AnalyzeAll(t.Context(), sources, f.root, cfg, f.cache)
	require.NoError(t, err)
	require.NoError(t, f.graph.Build(t.Context(), sources))

	f.driver = watch.NewDriver(watch.Options{
		Root:       f.root,
		Config:     cfg,
		Scheduler:  sched,
		Graph:      f.graph,
		Cache:      f.cache,
		Hashes:     cas.NewHybridCache(16, f.cache),
		Hasher:     hasher,
		Extensions: registry.Extensions(),
		Logger:     logger,
		Tracer:     telemetry.NewNoOpTracer(),
		Metrics:    telemetry.NewNoOpMetrics(),
	})
	f.driver.Prime(sources)
	return f
}

func baseProject() map[string]string {
	return map[string]string{
		"src/a.ts":            "import { b } from './b';\n",
		"src/b.ts":            "export const b = 1;\n",
		"src/domain/user.ts":  "export class User {}\n",
		"src/infra/db.ts":     "export const db = {};\n",
		"node_modules/x/x.ts": "export {};\n",
	}
}

func TestDriver_UnchangedFileIsSkipped(t *testing.T) {
	f := newFixture(t, baseProject())
	path := f.path("src/b.ts")
	now := mustStat(t, path).ModTime()
	require.NoError(t, os.Chtimes(path, now, now.Add(1)))

	res, err := f.driver.ProcessBatch(t.Context(), []string{path})
	require.NoError(t, err)

	assert.True(t, res.Empty())
	assert.Equal(t, 1, res.Unchanged)
	assert.Zero(t, res.Aggregate.FilesAnalyzed)
}

func TestDriver_EditClosesCycle(t *testing.T) {
	f := newFixture(t, baseProject())
	path := f.write(t, "src/b.ts", "import { a } from './a';\n")

	res, err := f.driver.ProcessBatch(t.Context(), []string{path})
	require.NoError(t, err)

	assert.Equal(t, []string{path}, res.Changed)
	assert.Equal(t, 1, res.Aggregate.FilesAnalyzed)
	require.Len(t, res.Cycles, 1)
	assert.True(t, res.Cycles[0].Contains("src/a.ts"))
	assert.True(t, res.Cycles[0].Contains("src/b.ts"))

	// Reverting the edit clears the cycle.
	f.write(t, "src/b.ts", "export const b = 1;\n")
	res, err = f.driver.ProcessBatch(t.Context(), []string{path})
	require.NoError(t, err)
	assert.Empty(t, res.Cycles)
	assert.Equal(t, []string{"src/b.ts"}, f.graph.Graph().Dependencies("src/a.ts"))
}

func TestDriver_EditAddsViolation(t *testing.T) {
	f := newFixture(t, baseProject())
	path := f.write(t, "src/domain/user.ts", "import { db } from '../infra/db';\nexport class User {}\n")

	res, err := f.driver.ProcessBatch(t.Context(), []string{path})
	require.NoError(t, err)

	require.Len(t, res.Aggregate.Violations, 1)
	v := res.Aggregate.Violations[0]
	assert.Equal(t, "src/domain/user.ts", v.FilePath)
	assert.Equal(t, domain.CategoryBlocked, v.Category)
	assert.Equal(t, 1, v.Line)

	entry, ok := f.cache.Get("src/domain/user.ts", fs.NewHasher().HashContent(mustRead(t, path)))
	require.True(t, ok, "the new analysis is cached under the new content hash")
	assert.Len(t, entry.Violations, 1)
}

func TestDriver_DeletedFile(t *testing.T) {
	f := newFixture(t, baseProject())
	path := f.path("src/b.ts")
	require.NoError(t, os.Remove(path))

	res, err := f.driver.ProcessBatch(t.Context(), []string{path})
	require.NoError(t, err)

	assert.Equal(t, []string{path}, res.Deleted)
	assert.Empty(t, res.Changed)
	assert.False(t, f.graph.Graph().HasNode("src/b.ts"))
	assert.Empty(t, f.graph.Graph().Dependencies("src/a.ts"))
	assert.NotContains(t, f.cache.Keys(), "src/b.ts")
}

func TestDriver_FiltersIrrelevantPaths(t *testing.T) {
	f := newFixture(t, baseProject())
	changed := f.write(t, "src/b.ts", "export const b = 2;\n")
	f.write(t, "node_modules/x/x.ts", "export const x = 2;\n")
	f.write(t, "README.md", "# readme\n")
	f.write(t, "src/types.d.ts", "declare const x: number;\n")

	res, err := f.driver.ProcessBatch(t.Context(), []string{
		changed,
		f.path("node_modules/x/x.ts"),
		f.path("README.md"),
		f.path("src/types.d.ts"),
		changed,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{changed}, res.Changed)
	assert.Equal(t, 1, res.Aggregate.FilesAnalyzed)
}

func TestDriver_Run(t *testing.T) {
	f := newFixture(t, baseProject())
	batches := make(chan []string, 3)

	batches <- []string{f.write(t, "src/b.ts", "import { a } from './a';\n")}
	batches <- []string{f.path("src/a.ts")}
	batches <- []string{f.write(t, "src/c.ts", "export const c = 1;\n")}
	close(batches)

	var results []*watch.BatchResult
	require.NoError(t, f.driver.Run(t.Context(), batches, func(r *watch.BatchResult) {
		results = append(results, r)
	}))

	require.Len(t, results, 2, "the no-op batch is not reported")
	assert.Len(t, results[0].Cycles, 1)
	assert.Equal(t, []string{f.path("src/c.ts")}, results[1].Changed)

	saved := cas.LoadAnalysisCache(f.root, configHash)
	require.NotNil(t, saved, "the cache is saved after each batch")
	assert.Contains(t, saved.Keys(), "src/c.ts")
}

func TestDriver_RunStopsOnCancel(t *testing.T) {
	f := newFixture(t, baseProject())
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	require.NoError(t, f.driver.Run(ctx, make(chan []string), nil))
}

func mustStat(t *testing.T, path string) os.FileInfo {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}
