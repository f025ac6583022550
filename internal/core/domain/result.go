package domain

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// LayerStats counts imports and the imports that broke a blocking rule.
type LayerStats struct {
	TotalImports      int `json:"total_imports"`
	BlockedViolations int `json:"blocked_violations"`
}

// ComplexityStats counts functions and the functions over the threshold.
type ComplexityStats struct {
	TotalFunctions    int `json:"total_functions"`
	LongFunctions     int `json:"long_functions"`
	MaxLinesThreshold int `json:"max_lines_threshold"`
}

// ScoreComponents are the individual 0-100 scores that make up a HealthScore.
type ScoreComponents struct {
	LayerIsolation int `json:"layer_isolation"`
	CircularDeps   int `json:"circular_deps"`
	Complexity     int `json:"complexity"`
	Violations     int `json:"violations"`
}

// HealthScore is the weighted project score and its letter grade.
type HealthScore struct {
	Total      int             `json:"total"`
	Grade      string          `json:"grade"`
	Components ScoreComponents `json:"components"`
}

// AnalysisResult is the assembled outcome of a project run.
type AnalysisResult struct {
	ProjectName          string                 `json:"project_name"`
	Pattern              string                 `json:"pattern"`
	FilesAnalyzed        int                    `json:"files_analyzed"`
	Timestamp            time.Time              `json:"timestamp"`
	Violations           []CategorizedViolation `json:"violations"`
	CircularDependencies []CircularDependency   `json:"circular_dependencies"`
	LongFunctions        []LongFunction         `json:"long_functions"`
	LayerStats           LayerStats             `json:"layer_stats"`
	ComplexityStats      ComplexityStats        `json:"complexity_stats"`
	Health               *HealthScore           `json:"health_score,omitempty"`
}

// NewAnalysisResult creates an empty result for the named project.
func NewAnalysisResult(projectName, pattern string, maxLines int) *AnalysisResult {
	return &AnalysisResult{
		ProjectName: projectName,
		Pattern:     pattern,
		Timestamp:   time.Now().UTC(),
		ComplexityStats: ComplexityStats{
			MaxLinesThreshold: maxLines,
		},
	}
}

// AddViolation appends a categorized violation and keeps the blocked counter in sync.
func (r *AnalysisResult) AddViolation(v CategorizedViolation) {
	if v.Category == CategoryBlocked {
		r.LayerStats.BlockedViolations++
	}
	r.Violations = append(r.Violations, v)
}

// AddLongFunction appends a long function and keeps the complexity counter in sync.
func (r *AnalysisResult) AddLongFunction(f LongFunction) {
	r.ComplexityStats.LongFunctions++
	r.LongFunctions = append(r.LongFunctions, f)
}

// AddCircularDependencies appends detected cycles.
func (r *AnalysisResult) AddCircularDependencies(cycles []CircularDependency) {
	r.CircularDependencies = append(r.CircularDependencies, cycles...)
}

// BlockedCount returns the number of blocking violations.
func (r *AnalysisResult) BlockedCount() int {
	return r.countCategory(CategoryBlocked)
}

// WarningCount returns the number of warning violations.
func (r *AnalysisResult) WarningCount() int {
	return r.countCategory(CategoryWarning)
}

func (r *AnalysisResult) countCategory(c Category) int {
	n := 0
	for _, v := range r.Violations {
		if v.Category == c {
			n++
		}
	}
	return n
}

// HasBlockingIssues reports whether the run should fail.
func (r *AnalysisResult) HasBlockingIssues() bool {
	return r.BlockedCount() > 0 || len(r.CircularDependencies) > 0
}

// Summary renders a one-line summary of the result.
func (r *AnalysisResult) Summary() string {
	return fmt.Sprintf(
		"%d files analyzed: %d blocked, %d warnings, %d circular dependencies, %d long functions",
		r.FilesAnalyzed,
		r.BlockedCount(),
		r.WarningCount(),
		len(r.CircularDependencies),
		len(r.LongFunctions),
	)
}

// SortFindings orders violations and long functions by file, line and rule.
func (r *AnalysisResult) SortFindings() {
	SortViolations(r.Violations)
	SortLongFunctions(r.LongFunctions)
}

// AggregateResult is the merged output of a parallel analysis run.
type AggregateResult struct {
	Violations    []CategorizedViolation
	LongFunctions []LongFunction
	ImportCount   int
	FunctionCount int
	FilesAnalyzed int
	CacheHits     int
	Skipped       int
}

// Merge folds one file's analysis into the aggregate.
func (a *AggregateResult) Merge(analysis FileAnalysis) {
	for _, v := range analysis.Violations {
		a.Violations = append(a.Violations, Categorize(v))
	}
	a.LongFunctions = append(a.LongFunctions, analysis.LongFunctions...)
	a.ImportCount += analysis.ImportCount
	a.FunctionCount += analysis.FunctionCount
	a.FilesAnalyzed++
}

// Sort orders the aggregate findings deterministically.
func (a *AggregateResult) Sort() {
	SortViolations(a.Violations)
	SortLongFunctions(a.LongFunctions)
}

// ApplyTo folds the aggregate into r.
func (a *AggregateResult) ApplyTo(r *AnalysisResult) {
	for _, v := range a.Violations {
		r.AddViolation(v)
	}
	for _, f := range a.LongFunctions {
		r.AddLongFunction(f)
	}
	r.FilesAnalyzed += a.FilesAnalyzed
	r.LayerStats.TotalImports += a.ImportCount
	r.ComplexityStats.TotalFunctions += a.FunctionCount
}

// SortViolations sorts violations by file, line, rule and import text.
func SortViolations(vs []CategorizedViolation) {
	slices.SortFunc(vs, func(a, b CategorizedViolation) int {
		return cmp.Or(
			cmp.Compare(a.FilePath, b.FilePath),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Rule.From, b.Rule.From),
			cmp.Compare(a.Rule.To, b.Rule.To),
			cmp.Compare(a.OffensiveImport, b.OffensiveImport),
		)
	})
}

// SortLongFunctions sorts long functions by file, start line and name.
func SortLongFunctions(fs []LongFunction) {
	slices.SortFunc(fs, func(a, b LongFunction) int {
		return cmp.Or(
			cmp.Compare(a.FilePath, b.FilePath),
			cmp.Compare(a.StartLine, b.StartLine),
			cmp.Compare(a.Name, b.Name),
		)
	})
}
