package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when no architect.json or architect.yaml exists in the project root.
	ErrConfigNotFound = zerr.New("could not find architect.json or architect.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidMaxLines is returned when max_lines_per_function is outside 1..1000.
	ErrInvalidMaxLines = zerr.New("max_lines_per_function must be between 1 and 1000")

	// ErrEmptyRulePattern is returned when a forbidden import rule has an empty from or to pattern.
	ErrEmptyRulePattern = zerr.New("forbidden import rule requires both 'from' and 'to'")

	// ErrWildcardOnlyPattern is returned when a rule pattern consists only of glob stars and would match every path.
	ErrWildcardOnlyPattern = zerr.New("forbidden import pattern must name a path, not only wildcards")

	// ErrDuplicateRule is returned when the same from/to pair is declared twice.
	ErrDuplicateRule = zerr.New("duplicate forbidden import rule")

	// ErrInvalidSeverity is returned when a rule declares an unknown severity.
	ErrInvalidSeverity = zerr.New("invalid severity, expected 'error', 'warning' or 'info'")

	// ErrInvalidCacheBackend is returned when the cache backend is not one of the known stores.
	ErrInvalidCacheBackend = zerr.New("invalid cache backend, expected 'json' or 'badger'")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrFileReadFailed is returned when a source file cannot be read.
	ErrFileReadFailed = zerr.New("failed to read source file")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrUnsupportedLanguage is returned when no extractor handles a file extension.
	ErrUnsupportedLanguage = zerr.New("unsupported source language")

	// ErrParseFailed is returned when an extractor cannot parse a source file.
	ErrParseFailed = zerr.New("failed to parse source file")

	// ErrCacheCreateFailed is returned when the cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheMarshalFailed is returned when the analysis cache cannot be marshaled.
	ErrCacheMarshalFailed = zerr.New("failed to marshal analysis cache")

	// ErrCacheWriteFailed is returned when the analysis cache cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write analysis cache")

	// ErrCacheOpenFailed is returned when the persistent hash store cannot be opened.
	ErrCacheOpenFailed = zerr.New("failed to open hash store")

	// ErrCacheMiss is returned when a requested item is not found in the cache.
	ErrCacheMiss = zerr.New("cache miss")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")

	// ErrAnalysisFailed is returned when an analysis run fails as a whole.
	ErrAnalysisFailed = zerr.New("analysis failed")

	// ErrInvalidOutputMode is returned when --output-mode names an unknown renderer.
	ErrInvalidOutputMode = zerr.New("invalid output mode, expected 'auto', 'pretty', 'plain' or 'json'")

	// ErrArchitectureViolations is returned by the analyze command when blocking findings exist.
	ErrArchitectureViolations = zerr.New("architecture violations found")
)
