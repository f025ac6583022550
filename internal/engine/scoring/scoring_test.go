package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/engine/scoring"
)

func cleanResult() *domain.AnalysisResult {
	r := domain.NewAnalysisResult("test-project", "MVC", 100)
	r.FilesAnalyzed = 10
	r.LayerStats.TotalImports = 100
	r.ComplexityStats.TotalFunctions = 50
	return r
}

func blocked(file string) domain.CategorizedViolation {
	return domain.Categorize(domain.Violation{FilePath: file, Rule: domain.ForbiddenRule{From: "a", To: "b"}})
}

func warning(file string) domain.CategorizedViolation {
	return domain.Categorize(domain.Violation{FilePath: file, Rule: domain.ForbiddenRule{From: "a", To: "b", Severity: domain.SeverityWarning}})
}

func TestGrade(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{100, "A"}, {90, "A"},
		{89, "B"}, {80, "B"},
		{79, "C"}, {70, "C"},
		{69, "D"}, {60, "D"},
		{59, "F"}, {0, "F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, scoring.Grade(tt.total), "total %d", tt.total)
	}
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 100, scoring.Total(domain.ScoreComponents{LayerIsolation: 100, CircularDeps: 100, Complexity: 100, Violations: 100}))
	// 24 + 25 + 18 + 17.5 rounds up.
	assert.Equal(t, 85, scoring.Total(domain.ScoreComponents{LayerIsolation: 80, CircularDeps: 100, Complexity: 90, Violations: 70}))
	assert.Equal(t, 0, scoring.Total(domain.ScoreComponents{}))
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *domain.AnalysisResult)
		want   domain.ScoreComponents
		total  int
		grade  string
	}{
		{
			name:   "clean project",
			modify: func(*domain.AnalysisResult) {},
			want:   domain.ScoreComponents{LayerIsolation: 100, CircularDeps: 100, Complexity: 100, Violations: 100},
			total:  100,
			grade:  "A",
		},
		{
			name: "empty project",
			modify: func(r *domain.AnalysisResult) {
				r.FilesAnalyzed = 0
				r.LayerStats.TotalImports = 0
				r.ComplexityStats.TotalFunctions = 0
			},
			want:  domain.ScoreComponents{LayerIsolation: 100, CircularDeps: 100, Complexity: 100, Violations: 100},
			total: 100,
			grade: "A",
		},
		{
			name: "one cycle",
			modify: func(r *domain.AnalysisResult) {
				r.AddCircularDependencies([]domain.CircularDependency{domain.NewCircularDependency([]string{"a", "b", "a"})})
			},
			want:  domain.ScoreComponents{LayerIsolation: 100, CircularDeps: 0, Complexity: 100, Violations: 100},
			total: 75,
			grade: "C",
		},
		{
			name: "blocked and warning findings",
			modify: func(r *domain.AnalysisResult) {
				for range 5 {
					r.AddViolation(blocked("src/a.ts"))
				}
				r.AddViolation(warning("src/b.ts"))
			},
			// Isolation 100-5/100*100=95, violations 100-(10+1)/50*100=78.
			want:  domain.ScoreComponents{LayerIsolation: 95, CircularDeps: 100, Complexity: 100, Violations: 78},
			total: 93,
			grade: "A",
		},
		{
			name: "long functions",
			modify: func(r *domain.AnalysisResult) {
				for range 15 {
					r.AddLongFunction(domain.LongFunction{FilePath: "src/a.ts", Name: "f", Lines: 200, Threshold: 100})
				}
			},
			want:  domain.ScoreComponents{LayerIsolation: 100, CircularDeps: 100, Complexity: 70, Violations: 100},
			total: 94,
			grade: "A",
		},
		{
			name: "scores clamp at zero",
			modify: func(r *domain.AnalysisResult) {
				r.FilesAnalyzed = 1
				r.LayerStats.TotalImports = 2
				for range 4 {
					r.AddViolation(blocked("src/a.ts"))
				}
				r.AddCircularDependencies([]domain.CircularDependency{domain.NewCircularDependency([]string{"a", "b", "a"})})
				r.ComplexityStats.TotalFunctions = 1
				r.AddLongFunction(domain.LongFunction{FilePath: "src/a.ts", Name: "f"})
			},
			want:  domain.ScoreComponents{},
			total: 0,
			grade: "F",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := cleanResult()
			tt.modify(r)

			score := scoring.Calculate(r)

			assert.Equal(t, tt.want, score.Components)
			assert.Equal(t, tt.total, score.Total)
			assert.Equal(t, tt.grade, score.Grade)
		})
	}
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[==========]", scoring.ProgressBar(100, 10))
	assert.Equal(t, "[=====     ]", scoring.ProgressBar(50, 10))
	assert.Equal(t, "[          ]", scoring.ProgressBar(0, 10))
	assert.Equal(t, "[==========]", scoring.ProgressBar(150, 10))
}
