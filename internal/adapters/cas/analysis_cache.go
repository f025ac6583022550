// Package cas implements the content-addressed analysis cache and its hash stores.
package cas

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.HashStore = (*AnalysisCache)(nil)

// cacheFile is the on-disk layout of cache.json.
type cacheFile struct {
	Version    int                              `json:"version"`
	ConfigHash string                           `json:"config_hash"`
	Files      map[string]domain.FileCacheEntry `json:"files"`
	Hashes     map[string]string                `json:"hashes,omitempty"`
}

// AnalysisCache maps root-relative file keys to the analysis computed from a specific
// content hash. A single instance is shared by all workers of a run; every method is
// safe for concurrent use and holds the lock only for the map access itself.
//
// As a ports.HashStore it also records the last seen content hash of files,
// independently of whether an analysis exists for that hash.
type AnalysisCache struct {
	mu         sync.RWMutex
	configHash string
	files      map[string]domain.FileCacheEntry
	hashes     map[string]string
	dirty      bool
}

// NewAnalysisCache creates an empty cache bound to configHash.
func NewAnalysisCache(configHash string) *AnalysisCache {
	return &AnalysisCache{
		configHash: configHash,
		files:      make(map[string]domain.FileCacheEntry),
		hashes:     make(map[string]string),
		dirty:      true,
	}
}

// LoadAnalysisCache reads <root>/.architect-cache/cache.json.
// It returns nil when the file is missing or unparsable, or when its version or
// config hash differs from the expected values. None of these are errors: the
// caller starts from an empty cache.
func LoadAnalysisCache(root, expectedConfigHash string) *AnalysisCache {
	data, err := os.ReadFile(domain.DefaultCacheFilePath(root)) //nolint:gosec // Path is derived from the project root
	if err != nil {
		return nil
	}

	var file cacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil
	}

	if file.Version != domain.CacheVersion || file.ConfigHash != expectedConfigHash {
		return nil
	}

	if file.Files == nil {
		file.Files = make(map[string]domain.FileCacheEntry)
	}
	if file.Hashes == nil {
		file.Hashes = make(map[string]string)
	}

	return &AnalysisCache{
		configHash: file.ConfigHash,
		files:      file.Files,
		hashes:     file.Hashes,
	}
}

// LoadOrNew loads the persisted cache or falls back to an empty one.
func LoadOrNew(root, configHash string) *AnalysisCache {
	if c := LoadAnalysisCache(root, configHash); c != nil {
		return c
	}
	return NewAnalysisCache(configHash)
}

// ConfigHash returns the configuration digest the cache is bound to.
func (c *AnalysisCache) ConfigHash() string {
	return c.configHash
}

// Get returns the entry for key if it was computed from contentHash.
func (c *AnalysisCache) Get(key, contentHash string) (domain.FileCacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.files[key]
	if !ok || entry.ContentHash != contentHash {
		return domain.FileCacheEntry{}, false
	}
	return entry, true
}

// Insert stores entry under key, replacing any previous entry.
func (c *AnalysisCache) Insert(key string, entry domain.FileCacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.files[key] = entry
	c.dirty = true
}

// Remove drops the entry for key. Unknown keys are ignored.
func (c *AnalysisCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.files[key]; ok {
		delete(c.files, key)
		c.dirty = true
	}
}

// Len returns the number of entries.
func (c *AnalysisCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.files)
}

// Keys returns the cached keys in sorted order.
func (c *AnalysisCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Sorted(maps.Keys(c.files))
}

// GetHash returns the content hash recorded for key. Keys that were never
// recorded fall back to the hash of their cached analysis.
func (c *AnalysisCache) GetHash(key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if hash, ok := c.hashes[key]; ok {
		return hash, true, nil
	}
	entry, ok := c.files[key]
	if !ok {
		return "", false, nil
	}
	return entry.ContentHash, true, nil
}

// PutHash records that key now has hash. A cached analysis for another hash is
// kept; Get already misses on it.
func (c *AnalysisCache) PutHash(key, hash string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hashes[key] != hash {
		c.hashes[key] = hash
		c.dirty = true
	}
	return nil
}

// DeleteHash drops the recorded hash and the analysis of key.
func (c *AnalysisCache) DeleteHash(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, hashed := c.hashes[key]
	_, analyzed := c.files[key]
	if hashed || analyzed {
		delete(c.hashes, key)
		delete(c.files, key)
		c.dirty = true
	}
	return nil
}

// Save writes the cache to <root>/.architect-cache/cache.json.
// The file is written to a temporary sibling and renamed into place so readers
// never observe a partial cache. A loaded cache that has not changed since is
// not rewritten.
func (c *AnalysisCache) Save(root string) error {
	c.mu.Lock()
	if !c.dirty {
		c.mu.Unlock()
		return nil
	}
	data, err := json.MarshalIndent(cacheFile{
		Version:    domain.CacheVersion,
		ConfigHash: c.configHash,
		Files:      c.files,
		Hashes:     c.hashes,
	}, "", "  ")
	c.dirty = false
	c.mu.Unlock()
	if err != nil {
		c.markDirty()
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	if err := writeCacheFile(root, data); err != nil {
		c.markDirty()
		return err
	}
	return nil
}

func (c *AnalysisCache) markDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
}

func writeCacheFile(root string, data []byte) error {
	dir := domain.DefaultCachePath(root)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, domain.CacheFileName+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", dir)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Removing a renamed file is a no-op

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", tmpName)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", tmpName)
	}

	target := domain.DefaultCacheFilePath(root)
	if err := os.Rename(tmpName, target); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", target)
	}
	return nil
}

// NormalizeKey converts path into a cache key: the root prefix is removed,
// separators become forward slashes and leading slashes are trimmed.
func NormalizeKey(root, path string) string {
	key := path
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") && filepath.IsAbs(path) == filepath.IsAbs(root) {
		key = rel
	}
	key = strings.ReplaceAll(key, `\`, "/")
	return strings.TrimLeft(key, "/")
}
