// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/archlint/internal/adapters/cas"
	_ "go.trai.ch/archlint/internal/adapters/config"
	_ "go.trai.ch/archlint/internal/adapters/extractor"
	_ "go.trai.ch/archlint/internal/adapters/fs"
	_ "go.trai.ch/archlint/internal/adapters/logger"
	_ "go.trai.ch/archlint/internal/adapters/telemetry"
	_ "go.trai.ch/archlint/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/archlint/internal/app"
	_ "go.trai.ch/archlint/internal/engine/analyzer"
	_ "go.trai.ch/archlint/internal/engine/scheduler"
)
