// Package staging implements the rimport publication engine: it classifies
// the current publication state of an inputdata file and performs the
// minimal correct action (copy and link, link only, or nothing). The
// classification is recomputed fresh from the filesystem on every call, so
// re-running rimport over the same files is safe.
package staging

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cseg-gdex/stagetools/internal/filesystem"
	"github.com/cseg-gdex/stagetools/internal/pathing"
	"golang.org/x/sys/unix"
)

const dirPerms = 0o755

// Outcome tags what Stage actually did for a source path.
type Outcome int

const (
	// OutcomeStaged: the file was copied to staging and relinked.
	OutcomeStaged Outcome = iota

	// OutcomeAlreadyLinked: the source was already a symlink into staging,
	// nothing was changed.
	OutcomeAlreadyLinked

	// OutcomeLinkedExisting: a staged copy already existed (e.g. after an
	// interrupted prior run), only the relink was performed.
	OutcomeLinkedExisting

	// OutcomeCheckOnly: check mode stopped before any mutation.
	OutcomeCheckOnly
)

// Result describes a successful Stage call.
type Result struct {
	Outcome     Outcome
	StagedPath  string
	BytesCopied int64
}

type fsProvider interface {
	Exists(path string) (bool, error)
	GetMetadata(path string) (*filesystem.Metadata, error)
}

type osProvider interface {
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	MkdirAll(path string, perm os.FileMode) error
	Stat(name string) (os.FileInfo, error)
}

type unixProvider interface {
	Chmod(path string, mode uint32) error
	UtimesNano(path string, times []unix.Timespec) error
}

type relinkProvider interface {
	ReplaceWithSymlink(inputdataRoot string, targetRoot string, filePath string, dryRun bool) (bool, error)
}

type Handler struct {
	fsHandler     fsProvider
	relinkHandler relinkProvider
	osOps         osProvider
	unixOps       unixProvider
}

func NewHandler(fsHandler fsProvider, relinkHandler relinkProvider, osOps osProvider, unixOps unixProvider) *Handler {
	return &Handler{
		fsHandler:     fsHandler,
		relinkHandler: relinkHandler,
		osOps:         osOps,
		unixOps:       unixOps,
	}
}

// Stage publishes src (an absolute path) from the inputdata tree into the
// staging tree. In check mode it reports what would happen and never
// mutates either tree. Errors wrap the sentinel classification errors of
// this package; a copy that succeeded but could not be relinked reports
// ErrRelinkFailed with the staged data left in place.
func (h *Handler) Stage(src string, inputdataRoot string, stagingRoot string, check bool) (Result, error) {
	metadata, err := h.fsHandler.GetMetadata(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("(staging) %w: %s", ErrSourceNotFound, src)
		}

		return Result{}, fmt.Errorf("(staging) failed to inspect source: %w", err)
	}

	if metadata.IsSymlink {
		return h.stageSymlink(src, metadata, stagingRoot)
	}

	if pathing.IsUnder(src, stagingRoot) {
		return Result{}, fmt.Errorf("(staging) %w: %s", ErrAlreadyInStaging, src)
	}

	relPath, err := pathing.RelUnder(src, inputdataRoot)
	if err != nil {
		return Result{}, fmt.Errorf("(staging) %w: %s", ErrNotUnderInputdata, src)
	}

	if metadata.IsDir {
		return Result{}, fmt.Errorf("(staging) %w: %s", ErrSourceIsDir, src)
	}

	staged := filepath.Join(stagingRoot, relPath)

	stagedExists, err := h.fsHandler.Exists(staged)
	if err != nil {
		return Result{}, fmt.Errorf("(staging) failed to check staged copy: %w", err)
	}

	if stagedExists {
		return h.stagePublishedNotLinked(src, staged, inputdataRoot, stagingRoot, check)
	}

	if check {
		slog.Info("File is not already published", "path", src)

		return Result{Outcome: OutcomeCheckOnly, StagedPath: staged}, nil
	}

	copied, err := h.publish(src, staged, metadata)
	if err != nil {
		return Result{}, err
	}

	if err := h.relinkStaged(src, staged, inputdataRoot, stagingRoot); err != nil {
		return Result{}, err
	}

	return Result{Outcome: OutcomeStaged, StagedPath: staged, BytesCopied: copied}, nil
}

// stageSymlink handles a source that is itself a symlink: either it already
// points into staging (idempotent success) or something is wrong.
func (h *Handler) stageSymlink(src string, metadata *filesystem.Metadata, stagingRoot string) (Result, error) {
	alive, err := h.fsHandler.Exists(src)
	if err != nil {
		return Result{}, fmt.Errorf("(staging) failed to resolve symlink: %w", err)
	}
	if !alive {
		return Result{}, fmt.Errorf("(staging) %w: %s", ErrBrokenSymlink, src)
	}

	target := resolveLinkTarget(src, metadata.SymlinkTo)
	if !pathing.IsUnder(target, stagingRoot) {
		return Result{}, fmt.Errorf("(staging) %w: %s -> %s", ErrOutsideStaging, src, target)
	}

	slog.Info("File is already published and linked", "path", src)
	h.reportDownloadable(target, stagingRoot)

	return Result{Outcome: OutcomeAlreadyLinked, StagedPath: target}, nil
}

// stagePublishedNotLinked handles a plain file whose staged copy already
// exists, typically after a prior run failed between copy and relink. The
// data is never copied again, only the relink is (re)done.
func (h *Handler) stagePublishedNotLinked(src string, staged string, inputdataRoot string, stagingRoot string, check bool) (Result, error) {
	slog.Info("File is already published but NOT linked; linking", "path", src)
	h.reportDownloadable(staged, stagingRoot)

	if check {
		return Result{Outcome: OutcomeCheckOnly, StagedPath: staged}, nil
	}

	if err := h.relinkStaged(src, staged, inputdataRoot, stagingRoot); err != nil {
		return Result{}, err
	}

	return Result{Outcome: OutcomeLinkedExisting, StagedPath: staged}, nil
}

func (h *Handler) relinkStaged(src string, staged string, inputdataRoot string, stagingRoot string) error {
	// The staged copy is guaranteed to exist here, so the replacer's
	// "target not found" skip branch cannot trigger; if the link is still
	// missing afterwards that is a hard failure, since the copy already
	// happened and is not rolled back.
	if _, err := h.relinkHandler.ReplaceWithSymlink(inputdataRoot, stagingRoot, src, false); err != nil {
		return fmt.Errorf("(staging) %w: %s: %v", ErrRelinkFailed, src, err)
	}

	if err := h.CheckRelinkWorked(src, staged); err != nil {
		return err
	}

	return nil
}

// CheckRelinkWorked verifies that src is now a symlink resolving to dst.
func (h *Handler) CheckRelinkWorked(src string, dst string) error {
	metadata, err := h.fsHandler.GetMetadata(src)
	if err != nil {
		return fmt.Errorf("(staging) %w: %s: %v", ErrRelinkFailed, src, err)
	}

	if !metadata.IsSymlink {
		return fmt.Errorf("(staging) %w: %s is not a symlink", ErrRelinkFailed, src)
	}

	target := resolveLinkTarget(src, metadata.SymlinkTo)
	if target != filepath.Clean(dst) {
		return fmt.Errorf("(staging) %w: %s -> %s (expected %s)", ErrRelinkFailed, src, target, dst)
	}

	return nil
}

// CanFileBeDownloaded reports whether the staged copy of path is present
// under stagingRoot and could be served. Informational only: it decides an
// advisory log line, never control flow.
func (h *Handler) CanFileBeDownloaded(path string, stagingRoot string) bool {
	abs := pathing.Resolve(stagingRoot, path)

	exists, err := h.fsHandler.Exists(abs)
	if err != nil {
		return false
	}

	return exists
}

func (h *Handler) reportDownloadable(staged string, stagingRoot string) {
	if h.CanFileBeDownloaded(staged, stagingRoot) {
		slog.Info("File is available for download", "path", staged)
	} else {
		slog.Info("File is not (yet) available for download", "path", staged)
	}
}

// resolveLinkTarget makes a readlink result absolute relative to the link's
// own directory, without touching the filesystem again.
func resolveLinkTarget(linkPath string, target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}

	return filepath.Join(filepath.Dir(linkPath), target)
}
