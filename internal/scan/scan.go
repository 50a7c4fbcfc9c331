// Package scan finds the plain files owned by a given user beneath a
// directory tree. Symlinks are never followed, neither for classification
// nor for descent, so a link hopping outside the tree can never contribute
// files to the result.
package scan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cseg-gdex/stagetools/internal/filesystem"
)

type fsProvider interface {
	GetMetadata(path string) (*filesystem.Metadata, error)
	ReadDir(name string) ([]os.DirEntry, error)
}

type Handler struct {
	fsHandler fsProvider
}

func NewHandler(fsHandler fsProvider) *Handler {
	return &Handler{
		fsHandler: fsHandler,
	}
}

// FindOwnedFiles walks item (a directory, or a single file given directly)
// and calls emit once per plain file owned by uid, with the file's absolute
// path and its lstat metadata. The walk is best-effort: entries that cannot
// be read are logged and skipped, siblings continue. The number of such
// skipped errors is returned.
func (s *Handler) FindOwnedFiles(item string, uid uint32, emit func(path string, metadata *filesystem.Metadata)) int {
	metadata, err := s.fsHandler.GetMetadata(item)
	if err != nil {
		slog.Error(fmt.Sprintf("Error accessing %s: %v. Skipping.", item, err))

		return 1
	}

	if metadata.IsDir {
		return s.scanDir(item, uid, emit)
	}

	if ownedPlainFile(item, metadata, uid) {
		emit(item, metadata)
	}

	return 0
}

func (s *Handler) scanDir(dir string, uid uint32, emit func(path string, metadata *filesystem.Metadata)) int {
	errCount := 0

	entries, err := s.fsHandler.ReadDir(dir)
	if err != nil {
		slog.Error(fmt.Sprintf("Error accessing %s: %v. Skipping.", dir, err))

		return 1
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// ReadDir does not follow symlinks, so a symlink to a directory
		// never reports IsDir and is never descended into.
		if entry.IsDir() {
			errCount += s.scanDir(path, uid, emit)

			continue
		}

		metadata, err := s.fsHandler.GetMetadata(path)
		if err != nil {
			slog.Error(fmt.Sprintf("Error accessing %s: %v. Skipping.", path, err))
			errCount++

			continue
		}

		if ownedPlainFile(path, metadata, uid) {
			emit(path, metadata)
		}
	}

	return errCount
}

// ownedPlainFile decides whether a non-directory path should be emitted,
// from its pre-fetched lstat triple (owner, symlink flag, regular flag).
func ownedPlainFile(path string, metadata *filesystem.Metadata, uid uint32) bool {
	if metadata.UID != uid {
		return false
	}

	if metadata.IsSymlink {
		slog.Debug("Skipping symlink", "path", path)

		return false
	}

	return metadata.IsRegular
}
