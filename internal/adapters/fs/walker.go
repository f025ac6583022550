// Package fs provides file system adapters for discovering, hashing and resolving source files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"
)

// declarationSuffix marks TypeScript declaration files, which carry no runtime imports.
const declarationSuffix = ".d.ts"

// Walker discovers analyzable source files below a project root.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// SourceFiles yields every file below root whose extension is in extensions,
// skipping ignored directories and TypeScript declaration files.
// Yielded paths start with root.
func (w *Walker) SourceFiles(root string, ignored, extensions []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are skipped.
				return nil //nolint:nilerr // Discovery is best effort
			}

			if path != root && IsIgnored(root, path, ignored) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() || !HasExtension(path, extensions) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// HasExtension reports whether path ends in one of extensions.
// TypeScript declaration files never match.
func HasExtension(path string, extensions []string) bool {
	if strings.HasSuffix(path, declarationSuffix) {
		return false
	}
	return slices.Contains(extensions, filepath.Ext(path))
}

// IsIgnored reports whether path matches one of the ignored patterns.
// A pattern matches when the root-relative path equals it, starts with it,
// or when the entry's own name equals the pattern without its trailing slash.
func IsIgnored(root, path string, ignored []string) bool {
	rel := relativeSlashPath(root, path)
	name := filepath.Base(path)

	for _, pattern := range ignored {
		p := strings.ReplaceAll(pattern, `\`, "/")
		trimmed := strings.TrimSuffix(p, "/")
		if trimmed == "" {
			continue
		}

		if rel == trimmed || strings.HasPrefix(rel, p) || strings.HasPrefix(rel, trimmed+"/") {
			return true
		}
		if name == trimmed {
			return true
		}
		if strings.Contains("/"+rel, "/"+trimmed+"/") {
			return true
		}
	}
	return false
}

func relativeSlashPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	return filepath.ToSlash(rel)
}
