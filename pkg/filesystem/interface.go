package filesystem

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// FileSystem defines the filesystem operations the patchers need, so file
// I/O can be substituted in tests.
type FileSystem interface {
	// ReadFile reads a file.
	ReadFile(name string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically (readers never see a
	// truncated file).
	WriteFileAtomic(name string, data []byte, perm os.FileMode) error

	// Stat returns file info.
	Stat(name string) (os.FileInfo, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// Glob returns the names matching pattern under root, sorted.
	Glob(root, pattern string) ([]string, error)
}

// OSFileSystem implements FileSystem using the operating system.
type OSFileSystem struct{}

// NewOSFileSystem creates a FileSystem backed by the OS.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (fs *OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (fs *OSFileSystem) WriteFileAtomic(name string, data []byte, perm os.FileMode) error {
	return writeFileAtomic(name, data, perm)
}

func (fs *OSFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *OSFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (fs *OSFileSystem) Glob(root, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, err
	}
	// doublestar returns paths relative to root; join them back.
	joined := make([]string, 0, len(matches))
	for _, m := range matches {
		joined = append(joined, filepath.Join(root, filepath.FromSlash(m)))
	}
	return joined, nil
}
