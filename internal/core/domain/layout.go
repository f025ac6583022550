package domain

import "path/filepath"

const (
	// CacheDirName is the name of the per-project cache directory.
	CacheDirName = ".architect-cache"

	// CacheFileName is the name of the persisted analysis cache.
	CacheFileName = "cache.json"

	// BadgerDirName is the name of the badger hash store directory inside the cache directory.
	BadgerDirName = "badger"

	// CacheVersion is the schema version of the persisted analysis cache.
	// Bump it whenever FileCacheEntry changes shape.
	CacheVersion = 1

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "architect.json"

	// ConfigYAMLFileName is the YAML variant of the project configuration file.
	ConfigYAMLFileName = "architect.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the cache directory for the given project root.
func DefaultCachePath(root string) string {
	return filepath.Join(root, CacheDirName)
}

// DefaultCacheFilePath returns the persisted cache file for the given project root.
// It joins root, .architect-cache and cache.json.
func DefaultCacheFilePath(root string) string {
	return filepath.Join(root, CacheDirName, CacheFileName)
}

// DefaultBadgerPath returns the badger hash store directory for the given project root.
func DefaultBadgerPath(root string) string {
	return filepath.Join(root, CacheDirName, BadgerDirName)
}
