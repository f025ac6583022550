package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/archlint/internal/core/domain"
)

func TestLayoutPaths(t *testing.T) {
	root := filepath.Join("home", "dev", "proj")

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "DefaultCachePath",
			got:      domain.DefaultCachePath(root),
			expected: filepath.Join(root, ".architect-cache"),
		},
		{
			name:     "DefaultCacheFilePath",
			got:      domain.DefaultCacheFilePath(root),
			expected: filepath.Join(root, ".architect-cache", "cache.json"),
		},
		{
			name:     "DefaultBadgerPath",
			got:      domain.DefaultBadgerPath(root),
			expected: filepath.Join(root, ".architect-cache", "badger"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestLayoutConstants(t *testing.T) {
	assert.Equal(t, 1, domain.CacheVersion)
	assert.Equal(t, "architect.json", domain.ConfigFileName)
	assert.Equal(t, 0o750, domain.DirPerm)
	assert.Equal(t, 0o644, domain.FilePerm)
}
