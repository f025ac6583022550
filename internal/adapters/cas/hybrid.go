package cas

import (
	"io"

	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/zerr"
)

// saver is implemented by stores that persist on demand.
type saver interface {
	Save(root string) error
}

// HybridCache remembers the last known content hash of each file.
// Lookups go to an in-memory LRU first and fall back to a persistent HashStore;
// hits from the store are promoted into memory. Writes go to both layers.
type HybridCache struct {
	memory *MemoryCache[string, string]
	store  ports.HashStore
}

// NewHybridCache creates a hybrid cache with the given memory capacity over store.
func NewHybridCache(capacity int, store ports.HashStore) *HybridCache {
	return &HybridCache{
		memory: NewMemoryCache[string, string](capacity),
		store:  store,
	}
}

// Get returns the last recorded hash for key.
func (h *HybridCache) Get(key string) (string, bool, error) {
	if hash, ok := h.memory.Get(key); ok {
		return hash, true, nil
	}

	hash, ok, err := h.store.GetHash(key)
	if err != nil {
		return "", false, zerr.With(err, "key", key)
	}
	if !ok {
		return "", false, nil
	}

	h.memory.Put(key, hash)
	return hash, true, nil
}

// Put records hash for key in both layers.
func (h *HybridCache) Put(key, hash string) error {
	h.memory.Put(key, hash)
	if err := h.store.PutHash(key, hash); err != nil {
		return zerr.With(err, "key", key)
	}
	return nil
}

// Forget drops key from both layers.
func (h *HybridCache) Forget(key string) error {
	h.memory.Remove(key)
	if err := h.store.DeleteHash(key); err != nil {
		return zerr.With(err, "key", key)
	}
	return nil
}

// ClearMemory empties the memory layer. The persistent store is untouched.
func (h *HybridCache) ClearMemory() {
	h.memory.Clear()
}

// MemoryStats returns the counters of the memory layer.
func (h *HybridCache) MemoryStats() MemoryStats {
	return h.memory.Stats()
}

// MemoryLen returns the number of hashes held in memory.
func (h *HybridCache) MemoryLen() int {
	return h.memory.Len()
}

// Save persists the store layer for root. Stores that write through on every
// Put have nothing to do.
func (h *HybridCache) Save(root string) error {
	if s, ok := h.store.(saver); ok {
		return s.Save(root)
	}
	return nil
}

// Close releases the persistent store when it holds resources.
func (h *HybridCache) Close() error {
	if c, ok := h.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
