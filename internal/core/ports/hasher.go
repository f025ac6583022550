package ports

import "go.trai.ch/archlint/internal/core/domain"

// Hasher defines the interface for computing content digests.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// HashContent returns the digest of a file's bytes.
	HashContent(content []byte) string

	// HashConfig returns the digest of the configuration fields that affect per-file results.
	HashConfig(cfg *domain.LintConfig) string

	// HashFile streams the file at path through the content digest.
	HashFile(path string) (string, error)
}
