package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/archlint/internal/core/domain"
)

func TestNewLintConfig_Defaults(t *testing.T) {
	cfg := domain.NewLintConfig()

	assert.Equal(t, 40, cfg.MaxLinesPerFunction)
	assert.Equal(t, "Custom", cfg.Pattern)
	assert.Empty(t, cfg.ForbiddenImports)
	assert.Contains(t, cfg.IgnoredPaths, "node_modules/")
	assert.Contains(t, cfg.IgnoredPaths, ".architect-cache/")
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, domain.CacheBackendJSON, cfg.Cache.Backend)
	assert.Equal(t, domain.DefaultMemoryCapacity, cfg.Cache.MemoryCapacity)
}

func TestLintConfig_CacheView(t *testing.T) {
	cfg := domain.NewLintConfig()
	cfg.ForbiddenImports = []domain.ForbiddenRule{
		{From: "src/domain", To: "src/infra"},
		{From: "src/ui", To: "src/db", Severity: domain.SeverityWarning, Reason: "use the api"},
	}

	assert.Equal(t, "max_lines=40;imports=src/domain:src/infra;src/ui:src/db;", cfg.CacheView())

	empty := domain.NewLintConfig()
	empty.MaxLinesPerFunction = 25
	assert.Equal(t, "max_lines=25;imports=", empty.CacheView())
}

func TestLintConfig_CacheView_IgnoresPresentationFields(t *testing.T) {
	a := domain.NewLintConfig()
	a.ForbiddenImports = []domain.ForbiddenRule{{From: "a", To: "b"}}

	b := domain.NewLintConfig()
	b.ForbiddenImports = []domain.ForbiddenRule{{From: "a", To: "b", Severity: domain.SeverityInfo, Reason: "why"}}
	b.Pattern = "Clean"
	b.IgnoredPaths = nil

	assert.Equal(t, a.CacheView(), b.CacheView())

	b.ForbiddenImports = append(b.ForbiddenImports, domain.ForbiddenRule{From: "c", To: "d"})
	assert.NotEqual(t, a.CacheView(), b.CacheView())
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Severity
		wantErr bool
	}{
		{in: "", want: domain.SeverityError},
		{in: "error", want: domain.SeverityError},
		{in: "warning", want: domain.SeverityWarning},
		{in: "info", want: domain.SeverityInfo},
		{in: "fatal", wantErr: true},
		{in: "Error", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseSeverity(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorContains(t, err, domain.ErrInvalidSeverity.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverityToCategory(t *testing.T) {
	assert.Equal(t, domain.CategoryBlocked, domain.SeverityToCategory(domain.SeverityError))
	assert.Equal(t, domain.CategoryBlocked, domain.SeverityToCategory(""))
	assert.Equal(t, domain.CategoryWarning, domain.SeverityToCategory(domain.SeverityWarning))
	assert.Equal(t, domain.CategoryInfo, domain.SeverityToCategory(domain.SeverityInfo))
}

func TestForbiddenRule_String(t *testing.T) {
	assert.Equal(t, "src/domain -> src/infra", domain.ForbiddenRule{From: "src/domain", To: "src/infra"}.String())
}

func TestNormalizeRulePattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{pattern: "src/Domain", want: "src/domain"},
		{pattern: `src\infra\**`, want: "src/infra/"},
		{pattern: "src/**/*.repository", want: "src//.repository"},
		{pattern: "**/*", want: "/"},
		{pattern: "*", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NormalizeRulePattern(tt.pattern))
		})
	}
}
