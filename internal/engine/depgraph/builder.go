// Package depgraph builds and incrementally maintains the project import graph.
package depgraph

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Builder owns the dependency graph of one project root.
// It is not safe for concurrent use; callers serialize Build and UpdateFile.
type Builder struct {
	root      string
	normRoot  string
	extractor ports.ImportExtractor
	resolver  ports.ImportResolver
	logger    ports.Logger
	graph     *domain.DependencyGraph
}

// NewBuilder creates a Builder for the project at root.
func NewBuilder(root string, extractor ports.ImportExtractor, resolver ports.ImportResolver, logger ports.Logger) *Builder {
	return &Builder{
		root:      root,
		normRoot:  strings.TrimRight(domain.NormalizePathString(canonicalize(root)), "/"),
		extractor: extractor,
		resolver:  resolver,
		logger:    logger,
		graph:     domain.NewDependencyGraph(),
	}
}

// Graph returns the current graph.
func (b *Builder) Graph() *domain.DependencyGraph {
	return b.graph
}

// Build indexes files into a fresh graph. Files are parsed in parallel and
// inserted in input order. Unreadable and unsupported files are skipped.
func (b *Builder) Build(ctx context.Context, files []string) error {
	deps := make([][]string, len(files))
	ok := make([]bool, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, file := range files {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			resolved, err := b.resolveImports(file)
			if err != nil {
				b.logger.Error(err)
				return nil
			}
			deps[i], ok[i] = resolved, true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	b.graph = domain.NewDependencyGraph()
	for i, file := range files {
		if !ok[i] {
			continue
		}
		node := b.NormalizeFilePath(file)
		b.graph.AddNode(node)
		for _, dep := range deps[i] {
			b.graph.AddEdge(node, dep)
		}
	}
	return nil
}

// UpdateFile re-indexes one file after it changed on disk. A file that no
// longer exists is removed from the graph.
func (b *Builder) UpdateFile(_ context.Context, path string) error {
	deps, err := b.resolveImports(path)
	if errors.Is(err, fs.ErrNotExist) {
		b.RemoveFile(path)
		return nil
	}
	if err != nil {
		return err
	}

	b.graph.ReplaceEdges(b.NormalizeFilePath(path), deps)
	return nil
}

// RemoveFile drops the node for path and every edge touching it.
func (b *Builder) RemoveFile(path string) {
	b.graph.RemoveNode(b.NormalizeFilePath(path))
}

// DetectCycles reports every cycle in the graph.
func (b *Builder) DetectCycles() []domain.CircularDependency {
	return b.graph.DetectCycles()
}

// DetectCyclesForFile reports the cycles in the connected component of path.
func (b *Builder) DetectCyclesForFile(path string) []domain.CircularDependency {
	return b.graph.DetectCyclesInSubgraph(b.graph.AffectedNodes(b.NormalizeFilePath(path)))
}

// NormalizeFilePath converts path into a graph node name: the canonical path,
// normalized and made relative to the root. Paths outside the root keep their
// full normalized form.
func (b *Builder) NormalizeFilePath(path string) string {
	norm := domain.NormalizePathString(canonicalize(path))

	rel := norm
	if b.normRoot != "" && (norm == b.normRoot || strings.HasPrefix(norm, b.normRoot+"/")) {
		rel = strings.TrimPrefix(strings.TrimPrefix(norm, b.normRoot), "/")
	}
	if rel == "" {
		return "."
	}
	return rel
}

// resolveImports returns the normalized nodes that path imports.
// Unsupported files have no imports.
func (b *Builder) resolveImports(path string) ([]string, error) {
	content, err := os.ReadFile(path) //nolint:gosec // Paths come from project discovery
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", path)
	}
	if !b.extractor.Supports(path) {
		return nil, nil
	}

	src, err := b.extractor.Extract(path, content)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	deps := make([]string, 0, len(src.Imports))
	for _, imp := range src.Imports {
		target, ok := b.resolver.Resolve(b.root, path, imp.Source)
		if !ok {
			continue
		}
		deps = append(deps, b.NormalizeFilePath(target))
	}
	return deps, nil
}

// canonicalize makes path absolute and resolves symlinks. A path that does not
// exist, such as a deleted file, keeps its missing tail below the nearest
// existing ancestor, which is resolved.
func canonicalize(path string) string {
	if path == "" {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}

	dir := filepath.Dir(abs)
	if dir == abs {
		return abs
	}
	return filepath.Join(canonicalize(dir), filepath.Base(abs))
}
