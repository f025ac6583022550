package config

// ConfigFile represents the structure of architect.json and architect.yaml.
// Pointer fields distinguish an absent key from an explicit zero value.
type ConfigFile struct {
	MaxLinesPerFunction *int      `json:"max_lines_per_function" yaml:"max_lines_per_function"`
	ArchitecturePattern string    `json:"architecture_pattern" yaml:"architecture_pattern"`
	ForbiddenImports    []RuleDTO `json:"forbidden_imports" yaml:"forbidden_imports"`
	IgnoredPaths        []string  `json:"ignored_paths" yaml:"ignored_paths"`
	Cache               *CacheDTO `json:"cache" yaml:"cache"`
}

// RuleDTO represents a forbidden import rule in the configuration.
type RuleDTO struct {
	From     string `json:"from" yaml:"from"`
	To       string `json:"to" yaml:"to"`
	Severity string `json:"severity" yaml:"severity"`
	Reason   string `json:"reason" yaml:"reason"`
}

// CacheDTO represents the cache section of the configuration.
type CacheDTO struct {
	Enabled        *bool  `json:"enabled" yaml:"enabled"`
	MemoryCapacity *int   `json:"memory_capacity" yaml:"memory_capacity"`
	Backend        string `json:"backend" yaml:"backend"`
}
