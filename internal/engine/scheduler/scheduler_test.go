package scheduler_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/archlint/internal/adapters/cas"
	"go.trai.ch/archlint/internal/adapters/fs"
	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/archlint/internal/core/ports/mocks"
	"go.trai.ch/archlint/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type schedulerTestMocks struct {
	analyzer *mocks.MockFileAnalyzer
	logger   *mocks.MockLogger
	tracer   *mocks.MockTracer
	metrics  *mocks.MockMetrics
}

// setupSchedulerTest creates a scheduler with a real hasher and mocks for everything else.
func setupSchedulerTest(t *testing.T) (*scheduler.Scheduler, schedulerTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := schedulerTestMocks{
		analyzer: mocks.NewMockFileAnalyzer(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		tracer:   mocks.NewMockTracer(ctrl),
		metrics:  mocks.NewMockMetrics(ctrl),
	}

	mockSpan := mocks.NewMockSpan(ctrl)
	mockSpan.EXPECT().End().AnyTimes()
	mockSpan.EXPECT().RecordError(gomock.Any()).AnyTimes()
	mockSpan.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	// Start has variadic signature: Start(ctx, name, ...opts).
	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, mockSpan
		},
	).AnyTimes()

	m.metrics.EXPECT().FileAnalyzed(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	m.metrics.EXPECT().FileSkipped(gomock.Any()).AnyTimes()

	s := scheduler.NewScheduler(m.analyzer, fs.NewHasher(), m.logger, m.tracer, m.metrics)
	return s, m
}

// writeProject creates files below a temp root and returns the root and absolute paths.
func writeProject(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	root := t.TempDir()
	paths := make([]string, 0, len(files))
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
		paths = append(paths, path)
	}
	return root, paths
}

var forbidden = domain.ForbiddenRule{From: "src/domain", To: "src/infra", Severity: domain.SeverityError}

// fakeAnalysis returns one violation per file and a long function for files named long.ts.
func fakeAnalysis(_ context.Context, _ *domain.LintConfig, path string, content []byte) (domain.FileAnalysis, error) {
	analysis := domain.FileAnalysis{
		Violations: []domain.Violation{{
			FilePath:        path,
			OffensiveImport: string(content),
			Rule:            forbidden,
			Line:            1,
		}},
		ImportCount:   2,
		FunctionCount: 1,
	}
	if filepath.Base(path) == "long.ts" {
		analysis.LongFunctions = []domain.LongFunction{{FilePath: path, Name: "run", StartLine: 1, Lines: 50, Threshold: 40}}
	}
	return analysis, nil
}

func TestScheduler_AnalyzeAll_Merges(t *testing.T) {
	s, m := setupSchedulerTest(t)
	root, files := writeProject(t, map[string]string{
		"src/domain/b.ts":    "import b",
		"src/domain/a.ts":    "import a",
		"src/domain/long.ts": "import long",
	})
	cfg := domain.NewLintConfig()

	m.analyzer.EXPECT().AnalyzeFile(gomock.Any(), cfg, gomock.Any(), gomock.Any()).
		DoAndReturn(fakeAnalysis).Times(3)

	agg, err := s.AnalyzeAll(t.Context(), files, root, cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, agg.FilesAnalyzed)
	assert.Equal(t, 6, agg.ImportCount)
	assert.Equal(t, 3, agg.FunctionCount)
	assert.Zero(t, agg.CacheHits)
	assert.Zero(t, agg.Skipped)

	require.Len(t, agg.Violations, 3)
	assert.Equal(t, "src/domain/a.ts", agg.Violations[0].FilePath)
	assert.Equal(t, "src/domain/b.ts", agg.Violations[1].FilePath)
	assert.Equal(t, "src/domain/long.ts", agg.Violations[2].FilePath)
	for _, v := range agg.Violations {
		assert.Equal(t, domain.CategoryBlocked, v.Category)
	}

	require.Len(t, agg.LongFunctions, 1)
	assert.Equal(t, "src/domain/long.ts", agg.LongFunctions[0].FilePath)
}

func TestScheduler_AnalyzeAll_CacheHits(t *testing.T) {
	s, m := setupSchedulerTest(t)
	root, files := writeProject(t, map[string]string{
		"src/a.ts": "a",
		"src/b.ts": "b",
	})
	cfg := domain.NewLintConfig()
	cache := cas.NewAnalysisCache("cfg")

	m.analyzer.EXPECT().AnalyzeFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fakeAnalysis).Times(2)

	first, err := s.AnalyzeAll(t.Context(), files, root, cfg, cache)
	require.NoError(t, err)
	assert.Zero(t, first.CacheHits)
	assert.Equal(t, []string{"src/a.ts", "src/b.ts"}, cache.Keys())

	second, err := s.AnalyzeAll(t.Context(), files, root, cfg, cache)
	require.NoError(t, err)
	assert.Equal(t, 2, second.CacheHits)
	assert.Equal(t, first.Violations, second.Violations)
	assert.Equal(t, first.ImportCount, second.ImportCount)
}

func TestScheduler_AnalyzeAll_ChangedContentMisses(t *testing.T) {
	s, m := setupSchedulerTest(t)
	root, files := writeProject(t, map[string]string{"src/a.ts": "before"})
	cfg := domain.NewLintConfig()
	cache := cas.NewAnalysisCache("cfg")

	m.analyzer.EXPECT().AnalyzeFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fakeAnalysis).Times(2)

	_, err := s.AnalyzeAll(t.Context(), files, root, cfg, cache)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(files[0], []byte("after"), domain.FilePerm))

	agg, err := s.AnalyzeAll(t.Context(), files, root, cfg, cache)
	require.NoError(t, err)
	assert.Zero(t, agg.CacheHits)
	require.Len(t, agg.Violations, 1)
	assert.Equal(t, "after", agg.Violations[0].OffensiveImport)
}

func TestScheduler_AnalyzeAll_NilCacheAlwaysAnalyzes(t *testing.T) {
	s, m := setupSchedulerTest(t)
	root, files := writeProject(t, map[string]string{"src/a.ts": "a"})

	m.analyzer.EXPECT().AnalyzeFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fakeAnalysis).Times(2)

	for range 2 {
		agg, err := s.AnalyzeAll(t.Context(), files, root, domain.NewLintConfig(), nil)
		require.NoError(t, err)
		assert.Zero(t, agg.CacheHits)
	}
}

func TestScheduler_AnalyzeAll_SkipsFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m schedulerTestMocks)
		extra func(root string) string
	}{
		{
			name:  "unreadable file",
			setup: func(schedulerTestMocks) {},
			extra: func(root string) string { return filepath.Join(root, "src", "missing.ts") },
		},
		{
			name: "analyzer error",
			setup: func(m schedulerTestMocks) {
				m.analyzer.EXPECT().AnalyzeFile(gomock.Any(), gomock.Any(), "src/broken.ts", gomock.Any()).
					Return(domain.FileAnalysis{}, errors.New("parse error"))
			},
			extra: func(root string) string {
				path := filepath.Join(root, "src", "broken.ts")
				_ = os.WriteFile(path, []byte("broken"), domain.FilePerm)
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := setupSchedulerTest(t)
			root, files := writeProject(t, map[string]string{"src/a.ts": "a"})
			cache := cas.NewAnalysisCache("cfg")

			m.analyzer.EXPECT().AnalyzeFile(gomock.Any(), gomock.Any(), "src/a.ts", gomock.Any()).
				DoAndReturn(fakeAnalysis)
			tt.setup(m)
			m.logger.EXPECT().Error(gomock.Any()).Times(1)

			files = append(files, tt.extra(root))

			agg, err := s.AnalyzeAll(t.Context(), files, root, domain.NewLintConfig(), cache)
			require.NoError(t, err)
			assert.Equal(t, 1, agg.FilesAnalyzed)
			assert.Equal(t, 1, agg.Skipped)
			assert.Equal(t, []string{"src/a.ts"}, cache.Keys())
		})
	}
}

func TestScheduler_AnalyzeAll_Empty(t *testing.T) {
	s, _ := setupSchedulerTest(t)

	agg, err := s.AnalyzeAll(t.Context(), nil, t.TempDir(), domain.NewLintConfig(), nil)
	require.NoError(t, err)
	assert.Zero(t, agg.FilesAnalyzed)
	assert.Empty(t, agg.Violations)
}

func TestScheduler_AnalyzeAll_Cancelled(t *testing.T) {
	s, m := setupSchedulerTest(t)
	root, files := writeProject(t, map[string]string{"src/a.ts": "a"})
	m.analyzer.EXPECT().AnalyzeFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fakeAnalysis).AnyTimes()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := s.AnalyzeAll(ctx, files, root, domain.NewLintConfig(), nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrAnalysisFailed.Error())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScheduler_AnalyzeAll_ParallelMatchesSerial(t *testing.T) {
	contents := make(map[string]string)
	for i := range 40 {
		contents[fmt.Sprintf("src/mod%02d/file.ts", i)] = fmt.Sprintf("import %d", i)
	}
	contents["src/mod07/long.ts"] = "long"
	root, files := writeProject(t, contents)
	cfg := domain.NewLintConfig()

	run := func(parallelism int) *domain.AggregateResult {
		s, m := setupSchedulerTest(t)
		m.analyzer.EXPECT().AnalyzeFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(fakeAnalysis).AnyTimes()

		agg, err := s.WithParallelism(parallelism).AnalyzeAll(t.Context(), files, root, cfg, nil)
		require.NoError(t, err)
		return agg
	}

	assert.Equal(t, run(1), run(8))
}

func TestScheduler_AnalyzeAll_BoundsConcurrency(t *testing.T) {
	contents := make(map[string]string)
	for i := range 16 {
		contents[fmt.Sprintf("src/f%02d.ts", i)] = "x"
	}
	root, files := writeProject(t, contents)

	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)

		var inFlight, peak atomic.Int32
		m.analyzer.EXPECT().AnalyzeFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, cfg *domain.LintConfig, path string, content []byte) (domain.FileAnalysis, error) {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				inFlight.Add(-1)
				return fakeAnalysis(ctx, cfg, path, content)
			}).Times(16)

		agg, err := s.WithParallelism(3).AnalyzeAll(t.Context(), files, root, domain.NewLintConfig(), nil)
		require.NoError(t, err)
		assert.Equal(t, 16, agg.FilesAnalyzed)
		assert.LessOrEqual(t, peak.Load(), int32(3))
		assert.Equal(t, int32(3), peak.Load())
	})
}
