package linear_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/archlint/internal/adapters/linear"
	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/engine/scoring"
)

func fullResult() *domain.AnalysisResult {
	r := domain.NewAnalysisResult("shop", "Hexagonal", 40)
	r.FilesAnalyzed = 12
	r.LayerStats.TotalImports = 20
	r.ComplexityStats.TotalFunctions = 10

	r.AddViolation(domain.Categorize(domain.Violation{
		FilePath:        "src/domain/user.ts",
		OffensiveImport: "import { db } from '../infra/db';",
		Rule: domain.ForbiddenRule{
			From:     "src/domain",
			To:       "src/infra",
			Severity: domain.SeverityError,
			Reason:   "Domain must not depend on infrastructure",
		},
		Line: 3,
	}))
	r.AddViolation(domain.Categorize(domain.Violation{
		FilePath:        "src/ui/page.tsx",
		OffensiveImport: "import { User } from '../domain/user';",
		Rule:            domain.ForbiddenRule{From: "src/ui", To: "src/domain", Severity: domain.SeverityWarning},
		Line:            1,
	}))
	r.AddCircularDependencies([]domain.CircularDependency{
		domain.NewCircularDependency([]string{"src/a.ts", "src/b.ts", "src/a.ts"}),
	})
	r.AddLongFunction(domain.LongFunction{FilePath: "src/app.ts", Name: "run", StartLine: 10, Lines: 52, Threshold: 40})

	score := scoring.Calculate(r)
	r.Health = &score
	return r
}

func cleanResult() *domain.AnalysisResult {
	r := domain.NewAnalysisResult("tidy", domain.DefaultPattern, 40)
	r.FilesAnalyzed = 3
	score := scoring.Calculate(r)
	r.Health = &score
	return r
}

func TestRenderer_Render(t *testing.T) {
	tests := []struct {
		name       string
		result     *domain.AnalysisResult
		goldenName string
	}{
		{name: "full report", result: fullResult(), goldenName: "report_full"},
		{name: "clean report", result: cleanResult(), goldenName: "report_clean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			require.NoError(t, linear.NewPlainRenderer().Render(&buf, tt.result))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestRenderer_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer

	require.NoError(t, linear.NewRenderer().Render(&buf, cleanResult()))

	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestRenderer_Colors(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer

	require.NoError(t, linear.NewRenderer().Render(&buf, fullResult()))

	assert.Contains(t, buf.String(), "\x1b[")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderer_WriteError(t *testing.T) {
	err := linear.NewPlainRenderer().Render(failingWriter{}, cleanResult())
	assert.EqualError(t, err, "disk full")
}

func TestJSONRenderer_Render(t *testing.T) {
	result := fullResult()
	result.Timestamp = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var buf bytes.Buffer

	require.NoError(t, linear.NewJSONRenderer().Render(&buf, result))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "shop", decoded["project_name"])
	assert.Equal(t, "2026-01-02T03:04:05Z", decoded["timestamp"])
	assert.Contains(t, buf.String(), "import { db } from '../infra/db';")

	var back domain.AnalysisResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, result.Violations, back.Violations)
	assert.Equal(t, result.CircularDependencies, back.CircularDependencies)
	require.NotNil(t, back.Health)
	assert.Equal(t, "C", back.Health.Grade)
}
