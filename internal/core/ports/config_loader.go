package ports

import "go.trai.ch/archlint/internal/core/domain"

// ConfigLoader defines the interface for loading the lint configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads architect.json or architect.yaml from root and returns the validated configuration.
	Load(root string) (*domain.LintConfig, error)
}
