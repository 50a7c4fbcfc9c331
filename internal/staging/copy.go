package staging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cseg-gdex/stagetools/internal/filesystem"
	"github.com/zeebo/blake3"
	"golang.org/x/sys/unix"
)

const tmpSuffix = ".rimport"

// publish copies src into the staging tree at staged, creating parent
// directories as needed and preserving permission bits and timestamps. The
// copy goes through an exclusively-created temporary which is renamed into
// place only after both sides checksum identically.
func (h *Handler) publish(src string, staged string, metadata *filesystem.Metadata) (int64, error) {
	if err := h.osOps.MkdirAll(filepath.Dir(staged), dirPerms); err != nil {
		return 0, fmt.Errorf("(staging-copy) failed to create staging directories: %w", err)
	}

	copied, err := h.copyFile(src, staged, metadata)
	if err != nil {
		return 0, fmt.Errorf("(staging-copy) failed to copy file: %w", err)
	}

	if err := h.ensureMetadata(staged, metadata); err != nil {
		return 0, fmt.Errorf("(staging-copy) %w", err)
	}

	slog.Info("Published file to staging", "path", src, "staged", staged)

	return copied, nil
}

func (h *Handler) copyFile(src string, dst string, metadata *filesystem.Metadata) (written int64, err error) {
	srcFile, err := h.osOps.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	tmpPath := dst + tmpSuffix
	defer func() {
		if err != nil {
			h.osOps.Remove(tmpPath)
		}
	}()

	dstFile, err := h.osOps.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, os.FileMode(metadata.Perms))
	if err != nil {
		return 0, fmt.Errorf("failed to open destination file %s: %w", tmpPath, err)
	}
	defer dstFile.Close()

	srcHasher := blake3.New()
	dstHasher := blake3.New()

	teeReader := io.TeeReader(srcFile, srcHasher)
	multiWriter := io.MultiWriter(dstFile, dstHasher)

	written, err = io.Copy(multiWriter, teeReader)
	if err != nil {
		return 0, fmt.Errorf("failed to copy file: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		return 0, fmt.Errorf("failed to sync destination fs: %w", err)
	}

	srcChecksum := fmt.Sprintf("%x", srcHasher.Sum(nil))
	dstChecksum := fmt.Sprintf("%x", dstHasher.Sum(nil))

	if srcChecksum != dstChecksum {
		return 0, fmt.Errorf("hash mismatch: %s (src) != %s (dst)", srcChecksum, dstChecksum)
	}

	if err := h.osOps.Rename(tmpPath, dst); err != nil {
		return 0, fmt.Errorf("failed to rename temporary file to destination file: %w", err)
	}

	return written, nil
}

func (h *Handler) ensureMetadata(path string, metadata *filesystem.Metadata) error {
	if err := h.unixOps.Chmod(path, metadata.Perms); err != nil {
		return fmt.Errorf("failed to chmod: %w", err)
	}

	ts := []unix.Timespec{metadata.AccessedAt, metadata.ModifiedAt}
	if err := h.unixOps.UtimesNano(path, ts); err != nil {
		return fmt.Errorf("failed to utimesnano: %w", err)
	}

	return nil
}
