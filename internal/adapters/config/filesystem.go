package config

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the read-only view of the disk the Loader needs.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the operating system.
type OSFS struct{}

// NewOSFS creates a new OSFS.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Stat implements FileSystem.
func (*OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile implements FileSystem.
func (*OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- the path is the project configuration file
	return os.ReadFile(path)
}

// MapFSAdapter serves an fs.FS, such as fstest.MapFS, as if it were mounted at Root.
type MapFSAdapter struct {
	FS   fs.FS
	Root string
}

// NewMapFSAdapter mounts fsys at root.
func NewMapFSAdapter(root string, fsys fs.FS) *MapFSAdapter {
	return &MapFSAdapter{FS: fsys, Root: root}
}

// Stat implements FileSystem.
func (m *MapFSAdapter) Stat(path string) (fs.FileInfo, error) {
	return fs.Stat(m.FS, m.name(path))
}

// ReadFile implements FileSystem.
func (m *MapFSAdapter) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(m.FS, m.name(path))
}

// name maps path onto an fs.FS name. Paths outside Root map to an invalid
// name, so lookups fail with fs.ErrNotExist or fs.ErrInvalid.
func (m *MapFSAdapter) name(path string) string {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(filepath.Clean(path))
	}
	rel, err := filepath.Rel(m.Root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
