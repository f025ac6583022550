// Package analyzer evaluates forbidden-import rules and function length limits for single files.
package analyzer

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileAnalyzer = (*Analyzer)(nil)

// Built-in rule: controllers must not reach into repositories directly.
const (
	controllerPattern = "controller"
	repositoryPattern = ".repository"
)

// Analyzer implements ports.FileAnalyzer on top of an ImportExtractor.
type Analyzer struct {
	extractor ports.ImportExtractor
}

// New creates an Analyzer.
func New(extractor ports.ImportExtractor) *Analyzer {
	return &Analyzer{extractor: extractor}
}

// AnalyzeFile extracts imports and functions from content and evaluates cfg against them.
func (a *Analyzer) AnalyzeFile(_ context.Context, cfg *domain.LintConfig, path string, content []byte) (domain.FileAnalysis, error) {
	if !a.extractor.Supports(path) {
		return domain.FileAnalysis{}, zerr.With(domain.ErrUnsupportedLanguage, "path", path)
	}

	src, err := a.extractor.Extract(path, content)
	if err != nil {
		return domain.FileAnalysis{}, err
	}

	return Evaluate(cfg, path, src), nil
}

// Evaluate applies the forbidden import rules and the function length limit to src.
// Every matching rule yields its own violation, so one import can break several rules.
func Evaluate(cfg *domain.LintConfig, path string, src *domain.SourceFile) domain.FileAnalysis {
	analysis := domain.FileAnalysis{
		ImportCount:   len(src.Imports),
		FunctionCount: len(src.Functions),
	}

	match := matcherFor(path)
	lowerPath := strings.ToLower(filepath.ToSlash(path))

	for _, imp := range src.Imports {
		source := strings.ToLower(imp.Source)

		for _, rule := range cfg.ForbiddenImports {
			if match(lowerPath, rule.From) && match(source, rule.To) {
				analysis.Violations = append(analysis.Violations, newViolation(path, imp, rule))
			}
		}

		if strings.Contains(lowerPath, controllerPattern) && strings.Contains(source, repositoryPattern) {
			analysis.Violations = append(analysis.Violations, newViolation(path, imp, domain.ForbiddenRule{
				From:     controllerPattern,
				To:       repositoryPattern,
				Severity: domain.SeverityError,
			}))
		}
	}

	for _, fn := range src.Functions {
		if lines := fn.Lines(); lines > cfg.MaxLinesPerFunction {
			analysis.LongFunctions = append(analysis.LongFunctions, domain.LongFunction{
				FilePath:  path,
				Name:      fn.Name,
				StartLine: fn.StartLine,
				Lines:     lines,
				Threshold: cfg.MaxLinesPerFunction,
			})
		}
	}

	return analysis
}

func newViolation(path string, imp domain.ImportStatement, rule domain.ForbiddenRule) domain.Violation {
	if rule.Severity == "" {
		rule.Severity = domain.SeverityError
	}
	return domain.Violation{
		FilePath:        path,
		OffensiveImport: imp.Raw,
		Rule:            rule,
		Line:            imp.Line,
	}
}
