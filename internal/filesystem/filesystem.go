// Package filesystem wraps the os and unix syscall surface behind small
// provider interfaces, so that the packages mutating the inputdata and
// staging trees stay testable without touching a real disk.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

type osProvider interface {
	Stat(name string) (os.FileInfo, error)
	Readlink(name string) (string, error)
	ReadDir(name string) ([]os.DirEntry, error)
}

type unixProvider interface {
	Lstat(path string, stat *unix.Stat_t) error
}

type Handler struct {
	osHandler   osProvider
	unixHandler unixProvider
}

func NewHandler(osHandler osProvider, unixHandler unixProvider) *Handler {
	return &Handler{
		osHandler:   osHandler,
		unixHandler: unixHandler,
	}
}

// Exists reports whether path exists, following symlinks. A symlink whose
// target is gone therefore reports false.
func (f *Handler) Exists(path string) (bool, error) {
	if _, err := f.osHandler.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("(fs-exists) failed to stat: %w", err)
	}

	return true, nil
}

// GetMetadata returns the lstat view of path.
func (f *Handler) GetMetadata(path string) (*Metadata, error) {
	return getMetadata(path, f.osHandler, f.unixHandler)
}

func (f *Handler) ReadDir(name string) ([]os.DirEntry, error) {
	return f.osHandler.ReadDir(name)
}
