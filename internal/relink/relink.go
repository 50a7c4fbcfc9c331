// Package relink replaces a plain file with a symbolic link to its
// counterpart under a second tree. The replacement is crash-safe: the
// original is moved aside first and restored whenever the link cannot be
// created, so the path always holds either the file or the link.
package relink

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cseg-gdex/stagetools/internal/pathing"
)

const dirPerms = 0o755

type fsProvider interface {
	Exists(path string) (bool, error)
}

type osProvider interface {
	Rename(oldpath, newpath string) error
	Remove(name string) error
	MkdirAll(path string, perm os.FileMode) error
}

type unixProvider interface {
	Symlink(oldpath, newpath string) error
}

type Handler struct {
	fsHandler fsProvider
	osOps     osProvider
	unixOps   unixProvider
}

func NewHandler(fsHandler fsProvider, osOps osProvider, unixOps unixProvider) *Handler {
	return &Handler{
		fsHandler: fsHandler,
		osOps:     osOps,
		unixOps:   unixOps,
	}
}

// ReplaceWithSymlink replaces filePath with a symlink to the corresponding
// path under targetRoot. A missing counterpart is the expected steady state
// for files not yet staged: it logs a warning and changes nothing. Failures
// restore the original file and leave no temporary behind. The boolean
// reports whether a link was actually created (false for dry runs and for
// the missing-counterpart skip).
func (h *Handler) ReplaceWithSymlink(inputdataRoot string, targetRoot string, filePath string, dryRun bool) (bool, error) {
	slog.Info(fmt.Sprintf("'%s':", filePath))

	relPath, err := pathing.RelUnder(filePath, inputdataRoot)
	if err != nil {
		return false, fmt.Errorf("(relink) %w", err)
	}
	linkTarget := filepath.Join(targetRoot, relPath)

	exists, err := h.fsHandler.Exists(linkTarget)
	if err != nil {
		slog.Error(fmt.Sprintf("Error checking %s: %v. Skipping.", linkTarget, err))

		return false, fmt.Errorf("(relink) failed to check link target: %w", err)
	}
	if !exists {
		slog.Warn(fmt.Sprintf("Warning: Corresponding file '%s' not found. Skipping.", linkTarget))

		return false, nil
	}

	if dryRun {
		slog.Info(fmt.Sprintf("[DRY RUN] Would create symbolic link: %s -> %s", filePath, linkTarget))

		return false, nil
	}

	tmpPath := filePath + ".tmp"
	if err := h.osOps.Rename(filePath, tmpPath); err != nil {
		slog.Error(fmt.Sprintf("Error deleting file %s: %v. Skipping.", filePath, err))

		return false, fmt.Errorf("(relink) failed to move original aside: %w", err)
	}
	slog.Info(fmt.Sprintf("Deleted original file: %s", filePath))

	if err := h.createLink(linkTarget, filePath); err != nil {
		if rerr := h.osOps.Rename(tmpPath, filePath); rerr != nil {
			slog.Error(fmt.Sprintf("Error restoring original file %s: %v", filePath, rerr))
		}
		slog.Error(fmt.Sprintf("Error creating symlink for %s: %v. Skipping.", filePath, err))

		return false, fmt.Errorf("(relink) failed to create symlink: %w", err)
	}

	if err := h.osOps.Remove(tmpPath); err != nil {
		slog.Error(fmt.Sprintf("Error removing temporary file %s: %v", tmpPath, err))

		return true, fmt.Errorf("(relink) failed to remove temporary file: %w", err)
	}
	slog.Info(fmt.Sprintf("Created symbolic link: %s -> %s", filePath, linkTarget))

	return true, nil
}

func (h *Handler) createLink(linkTarget string, linkName string) error {
	// The parent directory necessarily exists, the file just lived there;
	// MkdirAll is idempotent and kept for the single-file CLI case.
	if err := h.osOps.MkdirAll(filepath.Dir(linkName), dirPerms); err != nil {
		return fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	if err := h.unixOps.Symlink(linkTarget, linkName); err != nil {
		return fmt.Errorf("failed to symlink: %w", err)
	}

	return nil
}
