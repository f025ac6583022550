package ports

import "go.trai.ch/archlint/internal/core/domain"

// ImportExtractor parses source files into imports and function spans.
//
//go:generate mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type ImportExtractor interface {
	// Supports reports whether the file at path can be parsed.
	Supports(path string) bool

	// Extract parses content, the bytes of the file at path.
	Extract(path string, content []byte) (*domain.SourceFile, error)

	// Extensions lists the file extensions this extractor handles, with leading dots.
	Extensions() []string
}
