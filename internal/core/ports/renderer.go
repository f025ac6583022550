package ports

import (
	"io"

	"go.trai.ch/archlint/internal/core/domain"
)

// Renderer writes an analysis result for humans or machines.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Render writes result to w.
	Render(w io.Writer, result *domain.AnalysisResult) error
}
