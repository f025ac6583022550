package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/archlint/internal/adapters/logger"
	"go.trai.ch/archlint/internal/core/ports"
)

// NodeID is the unique identifier for the cache provider Graft node.
const NodeID graft.ID = "adapter.cas"

func init() {
	graft.Register(graft.Node[*Provider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Provider, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(log), nil
		},
	})
}
