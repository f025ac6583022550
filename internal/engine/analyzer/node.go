package analyzer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/archlint/internal/adapters/extractor" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/archlint/internal/core/ports"
)

// NodeID is the unique identifier for the file analyzer Graft node.
const NodeID graft.ID = "engine.analyzer"

func init() {
	graft.Register(graft.Node[ports.FileAnalyzer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{extractor.NodeID},
		Run: func(ctx context.Context) (ports.FileAnalyzer, error) {
			ext, err := graft.Dep[ports.ImportExtractor](ctx)
			if err != nil {
				return nil, err
			}
			return New(ext), nil
		},
	})
}
