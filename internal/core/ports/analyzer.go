package ports

import (
	"context"

	"go.trai.ch/archlint/internal/core/domain"
)

// FileAnalyzer evaluates the configured rules against a single file.
//
//go:generate mockgen -source=analyzer.go -destination=mocks/mock_analyzer.go -package=mocks
type FileAnalyzer interface {
	// AnalyzeFile returns the findings of cfg for the file at path, whose bytes are content.
	// path is relative to the project root.
	AnalyzeFile(ctx context.Context, cfg *domain.LintConfig, path string, content []byte) (domain.FileAnalysis, error)
}
