package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/archlint/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/archlint/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/archlint/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/archlint/internal/engine/analyzer"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			analyzer.NodeID,
			fs.HasherNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			telemetry.MetricsNodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			fileAnalyzer, err := graft.Dep[ports.FileAnalyzer](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			metrics, err := graft.Dep[*telemetry.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(fileAnalyzer, hasher, log, tracer, metrics), nil
		},
	})
}
