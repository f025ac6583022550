package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/archlint/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/archlint/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/archlint/internal/adapters/extractor" //nolint:depguard // Wired in app layer
	"go.trai.ch/archlint/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/archlint/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/archlint/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/archlint/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/archlint/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			extractor.NodeID,
			fs.ResolverNodeID,
			fs.HasherNodeID,
			fs.WalkerNodeID,
			cas.NodeID,
			scheduler.NodeID,
			watcher.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			telemetry.MetricsNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	var (
		deps Dependencies
		err  error
	)

	if deps.ConfigLoader, err = graft.Dep[ports.ConfigLoader](ctx); err != nil {
		return nil, err
	}
	if deps.Extractor, err = graft.Dep[ports.ImportExtractor](ctx); err != nil {
		return nil, err
	}
	if deps.Resolver, err = graft.Dep[ports.ImportResolver](ctx); err != nil {
		return nil, err
	}
	if deps.Hasher, err = graft.Dep[ports.Hasher](ctx); err != nil {
		return nil, err
	}
	if deps.Walker, err = graft.Dep[*fs.Walker](ctx); err != nil {
		return nil, err
	}
	if deps.Caches, err = graft.Dep[*cas.Provider](ctx); err != nil {
		return nil, err
	}
	if deps.Scheduler, err = graft.Dep[*scheduler.Scheduler](ctx); err != nil {
		return nil, err
	}
	if deps.Watcher, err = graft.Dep[ports.Watcher](ctx); err != nil {
		return nil, err
	}
	if deps.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	if deps.Tracer, err = graft.Dep[ports.Tracer](ctx); err != nil {
		return nil, err
	}
	if deps.Metrics, err = graft.Dep[*telemetry.Metrics](ctx); err != nil {
		return nil, err
	}

	return New(deps), nil
}
