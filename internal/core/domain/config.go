package domain

import (
	"fmt"
	"strings"
)

const (
	// DefaultMaxLinesPerFunction is the long-function threshold used when none is configured.
	DefaultMaxLinesPerFunction = 40

	// MaxAllowedLinesPerFunction is the upper bound accepted for max_lines_per_function.
	MaxAllowedLinesPerFunction = 1000

	// DefaultMemoryCapacity is the default number of entries kept in the in-memory hash cache.
	DefaultMemoryCapacity = 1024

	// DefaultPattern is the architecture pattern reported when none is configured.
	DefaultPattern = "Custom"
)

// CacheBackend selects the persistent store behind the hybrid hash cache.
type CacheBackend string

const (
	// CacheBackendJSON stores hashes inside the JSON analysis cache.
	CacheBackendJSON CacheBackend = "json"
	// CacheBackendBadger stores hashes in a badger key-value store.
	CacheBackendBadger CacheBackend = "badger"
)

// CacheSettings controls the on-disk and in-memory caches.
type CacheSettings struct {
	Enabled        bool
	MemoryCapacity int
	Backend        CacheBackend
}

// ForbiddenRule forbids files matching From from importing sources matching To.
type ForbiddenRule struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Severity Severity `json:"severity,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

// NormalizeRulePattern lower-cases pattern, converts backslashes and drops glob
// stars. Rule patterns are matched as substrings in this form.
func NormalizeRulePattern(pattern string) string {
	p := strings.ToLower(strings.ReplaceAll(pattern, `\`, "/"))
	p = strings.ReplaceAll(p, "**", "")
	return strings.ReplaceAll(p, "*", "")
}

// String renders the rule as "from -> to".
func (r ForbiddenRule) String() string {
	return r.From + " -> " + r.To
}

// LintConfig is the subset of project configuration that drives analysis.
type LintConfig struct {
	MaxLinesPerFunction int
	Pattern             string
	ForbiddenImports    []ForbiddenRule
	IgnoredPaths        []string
	Cache               CacheSettings
}

// NewLintConfig returns a configuration populated with defaults.
func NewLintConfig() *LintConfig {
	return &LintConfig{
		MaxLinesPerFunction: DefaultMaxLinesPerFunction,
		Pattern:             DefaultPattern,
		IgnoredPaths:        DefaultIgnoredPaths(),
		Cache: CacheSettings{
			Enabled:        true,
			MemoryCapacity: DefaultMemoryCapacity,
			Backend:        CacheBackendJSON,
		},
	}
}

// CacheView renders the fields that influence analysis results in a stable textual form.
// Two configurations with the same view produce identical per-file results.
func (c *LintConfig) CacheView() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "max_lines=%d;imports=", c.MaxLinesPerFunction)
	for _, rule := range c.ForbiddenImports {
		sb.WriteString(rule.From)
		sb.WriteByte(':')
		sb.WriteString(rule.To)
		sb.WriteByte(';')
	}
	return sb.String()
}

// DefaultIgnoredPaths returns the directories that are never analyzed.
func DefaultIgnoredPaths() []string {
	return []string{
		"node_modules/",
		"dist/",
		"build/",
		".git/",
		"coverage/",
		".next/",
		"out/",
		".nuxt/",
		".output/",
		".vite/",
		".turbo/",
		".parcel-cache/",
		".cache/",
		CacheDirName + "/",
		"target/",
		"__pycache__/",
		".vscode/",
		".idea/",
		"venv/",
		".venv/",
		"vendor/",
		".gradle/",
	}
}
