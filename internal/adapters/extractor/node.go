package extractor

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/archlint/internal/core/ports"
)

// NodeID is the unique identifier for the import extractor Graft node.
const NodeID graft.ID = "adapter.extractor"

func init() {
	graft.Register(graft.Node[ports.ImportExtractor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ImportExtractor, error) {
			return NewDefaultRegistry(), nil
		},
	})
}
