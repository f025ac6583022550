// Package config provides the configuration loader for archlint.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader for architect.json and architect.yaml.
type Loader struct {
	Logger ports.Logger
	fs     FileSystem
}

// NewLoader creates a new Loader reading from the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(logger, NewOSFS())
}

// NewLoaderWithFS creates a new Loader reading from fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, fs: fsys}
}

// Format is the encoding of a configuration file.
type Format string

const (
	// FormatJSON is architect.json.
	FormatJSON Format = "json"
	// FormatYAML is architect.yaml.
	FormatYAML Format = "yaml"
)

// Load reads the configuration of the project at root and returns it with defaults applied.
func (l *Loader) Load(root string) (*domain.LintConfig, error) {
	configPath, format, err := l.findConfiguration(root)
	if err != nil {
		return nil, err
	}

	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	var file ConfigFile
	if err := decode(data, format, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	cfg, err := l.buildConfig(&file)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

// findConfiguration returns the configuration file in root.
// architect.json takes precedence over architect.yaml.
func (l *Loader) findConfiguration(root string) (string, Format, error) {
	jsonPath := filepath.Join(root, domain.ConfigFileName)
	yamlPath := filepath.Join(root, domain.ConfigYAMLFileName)

	_, jsonErr := l.fs.Stat(jsonPath)
	_, yamlErr := l.fs.Stat(yamlPath)

	switch {
	case jsonErr == nil && yamlErr == nil:
		l.Logger.Warn(fmt.Sprintf("both %s and %s found, using %s", domain.ConfigFileName, domain.ConfigYAMLFileName, domain.ConfigFileName))
		return jsonPath, FormatJSON, nil
	case jsonErr == nil:
		return jsonPath, FormatJSON, nil
	case yamlErr == nil:
		return yamlPath, FormatYAML, nil
	default:
		return "", "", zerr.With(domain.ErrConfigNotFound, "root", root)
	}
}

func decode(data []byte, format Format, target *ConfigFile) error {
	if format == FormatJSON {
		return json.Unmarshal(data, target)
	}
	return yaml.Unmarshal(data, target)
}

func (l *Loader) buildConfig(file *ConfigFile) (*domain.LintConfig, error) {
	cfg := domain.NewLintConfig()

	if file.MaxLinesPerFunction != nil {
		maxLines := *file.MaxLinesPerFunction
		if maxLines < 1 || maxLines > domain.MaxAllowedLinesPerFunction {
			return nil, zerr.With(domain.ErrInvalidMaxLines, "max_lines_per_function", maxLines)
		}
		cfg.MaxLinesPerFunction = maxLines
	}

	if file.ArchitecturePattern != "" {
		cfg.Pattern = canonicalPattern(file.ArchitecturePattern)
	}

	rules, err := buildRules(file.ForbiddenImports)
	if err != nil {
		return nil, err
	}
	cfg.ForbiddenImports = rules
	if len(rules) == 0 {
		l.Logger.Warn("no forbidden_imports rules configured, only function length is checked")
	}

	cfg.IgnoredPaths = mergeIgnoredPaths(cfg.IgnoredPaths, file.IgnoredPaths)

	if file.Cache != nil {
		if err := applyCache(&cfg.Cache, file.Cache); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// buildRules validates the forbidden import rules and keeps their declared order.
func buildRules(dtos []RuleDTO) ([]domain.ForbiddenRule, error) {
	if len(dtos) == 0 {
		return nil, nil
	}

	rules := make([]domain.ForbiddenRule, 0, len(dtos))
	seen := make(map[[2]string]int, len(dtos))

	for i, dto := range dtos {
		from := strings.TrimSpace(dto.From)
		to := strings.TrimSpace(dto.To)
		if from == "" || to == "" {
			return nil, zerr.With(domain.ErrEmptyRulePattern, "rule_index", i)
		}
		for _, pattern := range []string{from, to} {
			if strings.Trim(domain.NormalizeRulePattern(pattern), "/") == "" {
				err := zerr.With(domain.ErrWildcardOnlyPattern, "pattern", pattern)
				return nil, zerr.With(err, "rule_index", i)
			}
		}

		key := [2]string{from, to}
		if first, ok := seen[key]; ok {
			err := zerr.With(domain.ErrDuplicateRule, "from", from)
			err = zerr.With(err, "to", to)
			err = zerr.With(err, "first_occurrence", first)
			return nil, zerr.With(err, "duplicate_at", i)
		}
		seen[key] = i

		severity, err := domain.ParseSeverity(strings.ToLower(strings.TrimSpace(dto.Severity)))
		if err != nil {
			return nil, zerr.With(err, "rule_index", i)
		}

		rules = append(rules, domain.ForbiddenRule{
			From:     from,
			To:       to,
			Severity: severity,
			Reason:   dto.Reason,
		})
	}

	return rules, nil
}

func applyCache(settings *domain.CacheSettings, dto *CacheDTO) error {
	if dto.Enabled != nil {
		settings.Enabled = *dto.Enabled
	}
	if dto.MemoryCapacity != nil && *dto.MemoryCapacity > 0 {
		settings.MemoryCapacity = *dto.MemoryCapacity
	}

	switch backend := domain.CacheBackend(strings.ToLower(dto.Backend)); backend {
	case "":
	case domain.CacheBackendJSON, domain.CacheBackendBadger:
		settings.Backend = backend
	default:
		return zerr.With(domain.ErrInvalidCacheBackend, "backend", dto.Backend)
	}
	return nil
}

// mergeIgnoredPaths appends the configured paths to the defaults, dropping duplicates.
func mergeIgnoredPaths(defaults, configured []string) []string {
	merged := slices.Clone(defaults)
	for _, p := range configured {
		p = strings.TrimSpace(p)
		if p == "" || slices.Contains(merged, p) {
			continue
		}
		merged = append(merged, p)
	}
	return merged
}

// canonicalPattern normalizes the spelling of the well-known architecture patterns.
// Anything else is reported as written.
func canonicalPattern(pattern string) string {
	switch strings.ToLower(strings.TrimSpace(pattern)) {
	case "hexagonal":
		return "Hexagonal"
	case "clean":
		return "Clean"
	case "mvc":
		return "MVC"
	case "none", "ninguno":
		return "None"
	default:
		return pattern
	}
}
