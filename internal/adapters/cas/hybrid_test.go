package cas_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/archlint/internal/adapters/cas"
	"go.trai.ch/archlint/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestHybridCache_PromotesStoreHits(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockHashStore(ctrl)

	store.EXPECT().GetHash("src/a.ts").Return("aaaa", true, nil).Times(1)

	h := cas.NewHybridCache(4, store)

	hash, ok, err := h.Get("src/a.ts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "aaaa", hash)

	// Served from memory, the store is not asked again.
	hash, ok, err = h.Get("src/a.ts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "aaaa", hash)
	assert.Equal(t, 1, h.MemoryLen())
}

func TestHybridCache_MissInBothLayers(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockHashStore(ctrl)

	store.EXPECT().GetHash("src/a.ts").Return("", false, nil)

	h := cas.NewHybridCache(4, store)

	_, ok, err := h.Get("src/a.ts")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, h.MemoryLen())
}

func TestHybridCache_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockHashStore(ctrl)

	store.EXPECT().GetHash("src/a.ts").Return("", false, errors.New("disk gone"))

	h := cas.NewHybridCache(4, store)

	_, ok, err := h.Get("src/a.ts")
	require.Error(t, err)
	assert.False(t, ok)
	assert.ErrorContains(t, err, "disk gone")
}

func TestHybridCache_PutWritesBothLayers(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockHashStore(ctrl)

	store.EXPECT().PutHash("src/a.ts", "aaaa").Return(nil)

	h := cas.NewHybridCache(4, store)
	require.NoError(t, h.Put("src/a.ts", "aaaa"))

	hash, ok, err := h.Get("src/a.ts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "aaaa", hash)
}

func TestHybridCache_ClearMemoryFallsBackToStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockHashStore(ctrl)

	gomock.InOrder(
		store.EXPECT().PutHash("src/a.ts", "aaaa").Return(nil),
		store.EXPECT().GetHash("src/a.ts").Return("aaaa", true, nil),
	)

	h := cas.NewHybridCache(4, store)
	require.NoError(t, h.Put("src/a.ts", "aaaa"))

	h.ClearMemory()
	assert.Equal(t, 0, h.MemoryLen())

	hash, ok, err := h.Get("src/a.ts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "aaaa", hash)
}

func TestHybridCache_Forget(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockHashStore(ctrl)

	store.EXPECT().PutHash("src/a.ts", "aaaa").Return(nil)
	store.EXPECT().DeleteHash("src/a.ts").Return(nil)
	store.EXPECT().GetHash("src/a.ts").Return("", false, nil)

	h := cas.NewHybridCache(4, store)
	require.NoError(t, h.Put("src/a.ts", "aaaa"))
	require.NoError(t, h.Forget("src/a.ts"))

	_, ok, err := h.Get("src/a.ts")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHybridCache_OverAnalysisCache(t *testing.T) {
	analysis := cas.NewAnalysisCache(testConfigHash)
	analysis.Insert("src/a.ts", sampleEntry("aaaa"))

	h := cas.NewHybridCache(1, analysis)

	hash, ok, err := h.Get("src/a.ts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "aaaa", hash)
	assert.Equal(t, cas.MemoryStats{Misses: 1}, h.MemoryStats())

	require.NoError(t, h.Close())
}

func TestHybridCache_EvictedValueComesBackFromAnalysisCache(t *testing.T) {
	analysis := cas.NewAnalysisCache(testConfigHash)
	h := cas.NewHybridCache(1, analysis)

	require.NoError(t, h.Put("src/a.ts", "aaaa"))

	stored, ok, err := analysis.GetHash("src/a.ts")
	require.NoError(t, err)
	require.True(t, ok, "Put writes through to the store")
	assert.Equal(t, "aaaa", stored)

	require.NoError(t, h.Put("src/b.ts", "bbbb"))
	assert.Equal(t, 1, h.MemoryLen())

	hash, ok, err := h.Get("src/a.ts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "aaaa", hash)
}

func TestHybridCache_Save(t *testing.T) {
	root := t.TempDir()
	analysis := cas.NewAnalysisCache(testConfigHash)
	h := cas.NewHybridCache(4, analysis)

	require.NoError(t, h.Put("src/a.ts", "aaaa"))
	require.NoError(t, h.Save(root))

	loaded := cas.LoadAnalysisCache(root, testConfigHash)
	require.NotNil(t, loaded)
	hash, ok, err := cas.NewHybridCache(4, loaded).Get("src/a.ts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "aaaa", hash)
}

func TestHybridCache_SaveWithoutPersistentStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockHashStore(ctrl)

	h := cas.NewHybridCache(4, store)
	require.NoError(t, h.Save(t.TempDir()))
}
