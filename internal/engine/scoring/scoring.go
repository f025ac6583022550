// Package scoring turns an analysis result into a 0-100 health score and letter grade.
package scoring

import (
	"math"
	"strings"

	"go.trai.ch/archlint/internal/core/domain"
)

// Component weights of the total score.
const (
	weightLayerIsolation = 0.30
	weightCircularDeps   = 0.25
	weightComplexity     = 0.20
	weightViolations     = 0.25
)

// checksPerFile estimates how many rule checks one file contributes.
const checksPerFile = 5

// Calculate scores result.
func Calculate(result *domain.AnalysisResult) domain.HealthScore {
	c := domain.ScoreComponents{
		LayerIsolation: ratioScore(result.LayerStats.BlockedViolations, result.LayerStats.TotalImports),
		CircularDeps:   circularScore(len(result.CircularDependencies)),
		Complexity:     ratioScore(result.ComplexityStats.LongFunctions, result.ComplexityStats.TotalFunctions),
		Violations:     violationScore(result.BlockedCount(), result.WarningCount(), result.FilesAnalyzed),
	}
	total := Total(c)
	return domain.HealthScore{
		Total:      total,
		Grade:      Grade(total),
		Components: c,
	}
}

// Total weighs the components and rounds to the nearest integer.
func Total(c domain.ScoreComponents) int {
	t := float64(c.LayerIsolation)*weightLayerIsolation +
		float64(c.CircularDeps)*weightCircularDeps +
		float64(c.Complexity)*weightComplexity +
		float64(c.Violations)*weightViolations
	return int(math.Round(t))
}

// Grade maps a total score onto A to F.
func Grade(total int) string {
	switch {
	case total >= 90:
		return "A"
	case total >= 80:
		return "B"
	case total >= 70:
		return "C"
	case total >= 60:
		return "D"
	default:
		return "F"
	}
}

// ratioScore is 100 minus the percentage of bad items, truncated and clamped.
func ratioScore(bad, total int) int {
	if bad == 0 {
		return 100
	}
	return clamp(100 - float64(bad)/float64(max(total, 1))*100)
}

func circularScore(cycles int) int {
	if cycles == 0 {
		return 100
	}
	return 0
}

// violationScore penalizes blocked findings twice as much as warnings.
func violationScore(blocked, warnings, files int) int {
	if blocked == 0 && warnings == 0 {
		return 100
	}
	checks := max(files*checksPerFile, 1)
	penalty := float64(blocked*2 + warnings)
	return clamp(100 - penalty/float64(checks)*100)
}

func clamp(score float64) int {
	return int(math.Max(0, math.Min(100, score)))
}

// ProgressBar renders score as a bar of width cells, for example "[=====     ]".
func ProgressBar(score, width int) string {
	filled := min(max(score, 0), 100) * width / 100
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
