package fs

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/archlint/internal/core/ports"
)

var _ ports.ImportResolver = (*Resolver)(nil)

// resolveExtensions are appended, in order, to an import that does not name a file.
var resolveExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}

// indexFiles are tried, in order, when an import names a directory.
var indexFiles = []string{"index.ts", "index.tsx", "index.js", "index.jsx"}

// Resolver maps relative import specifiers onto project files.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the file that specifier refers to when imported from fromFile.
// Only relative and absolute specifiers are resolved. Bare packages, scoped packages
// and path aliases such as "@/x" are external and never resolve.
func (r *Resolver) Resolve(root, fromFile, specifier string) (string, bool) {
	if !isLocalSpecifier(specifier) {
		return "", false
	}

	base := filepath.FromSlash(specifier)
	if filepath.IsAbs(base) {
		base = filepath.Clean(base)
	} else {
		base = filepath.Join(filepath.Dir(fromFile), base)
	}

	resolved, ok := probe(base)
	if !ok {
		return "", false
	}
	if !insideProject(root, resolved) {
		return "", false
	}
	return resolved, true
}

func isLocalSpecifier(specifier string) bool {
	switch {
	case specifier == "":
		return false
	case strings.HasPrefix(specifier, "@"), strings.HasPrefix(specifier, "node_modules"):
		return false
	default:
		return strings.HasPrefix(specifier, ".") || strings.HasPrefix(specifier, "/")
	}
}

func probe(base string) (string, bool) {
	if isFile(base) {
		return base, true
	}

	for _, ext := range resolveExtensions {
		if candidate := base + ext; isFile(candidate) {
			return candidate, true
		}
	}

	if info, err := os.Stat(base); err == nil && info.IsDir() {
		for _, index := range indexFiles {
			if candidate := filepath.Join(base, index); isFile(candidate) {
				return candidate, true
			}
		}
	}

	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func insideProject(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}
	return !strings.HasPrefix(rel, "node_modules/") && !strings.Contains(rel, "/node_modules/")
}
