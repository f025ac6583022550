// Package extractor parses source files into the imports and function spans used by analysis.
package extractor

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ImportExtractor = (*Registry)(nil)

// Language extracts imports and functions for a fixed set of file extensions.
type Language interface {
	// Extensions lists the handled extensions, with leading dots.
	Extensions() []string
	// Extract parses the content of the file at path.
	Extract(path string, content []byte) (*domain.SourceFile, error)
}

// Registry dispatches files to the Language registered for their extension.
type Registry struct {
	languages map[string]Language
	exts      []string
}

// NewRegistry creates a registry over languages. A later language wins
// when two claim the same extension.
func NewRegistry(languages ...Language) *Registry {
	r := &Registry{languages: make(map[string]Language)}
	for _, lang := range languages {
		for _, ext := range lang.Extensions() {
			ext = strings.ToLower(ext)
			if _, ok := r.languages[ext]; !ok {
				r.exts = append(r.exts, ext)
			}
			r.languages[ext] = lang
		}
	}
	slices.Sort(r.exts)
	return r
}

// NewDefaultRegistry registers every built-in language.
func NewDefaultRegistry() *Registry {
	return NewRegistry(NewTypeScript(), NewGolang())
}

// Supports reports whether a language is registered for the extension of path.
func (r *Registry) Supports(path string) bool {
	_, ok := r.lookup(path)
	return ok
}

// Extract parses content with the language registered for path.
func (r *Registry) Extract(path string, content []byte) (*domain.SourceFile, error) {
	lang, ok := r.lookup(path)
	if !ok {
		return nil, zerr.With(domain.ErrUnsupportedLanguage, "path", path)
	}
	return lang.Extract(path, content)
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	return slices.Clone(r.exts)
}

func (r *Registry) lookup(path string) (Language, bool) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".d.ts") {
		return nil, false
	}
	lang, ok := r.languages[filepath.Ext(lower)]
	return lang, ok
}
