package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes content and configuration digests.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashContent returns the xxhash of content as 16 lower-case hex digits.
func (h *Hasher) HashContent(content []byte) string {
	return formatDigest(xxhash.Sum64(content))
}

// HashConfig digests the configuration view that influences per-file results.
// Severity and reason do not take part, so editing them keeps the cache warm.
func (h *Hasher) HashConfig(cfg *domain.LintConfig) string {
	return formatDigest(xxhash.Sum64String(cfg.CacheView()))
}

// HashFile streams the file at path through xxhash.
// The digest equals HashContent of the file's bytes.
func (h *Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return formatDigest(digest.Sum64()), nil
}

func formatDigest(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
