package scan_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/cseg-gdex/stagetools/internal/filesystem"
	"github.com/cseg-gdex/stagetools/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler() *scan.Handler {
	return scan.NewHandler(filesystem.NewHandler(&filesystem.OS{}, &filesystem.Unix{}))
}

func collect(t *testing.T, scanHandler *scan.Handler, item string, uid uint32) ([]string, int) {
	t.Helper()

	var paths []string
	errCount := scanHandler.FindOwnedFiles(item, uid, func(path string, _ *filesystem.Metadata) {
		paths = append(paths, path)
	})
	sort.Strings(paths)

	return paths, errCount
}

func TestFindOwnedFiles_Recursive(t *testing.T) {
	t.Parallel()
	scanHandler := newHandler()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.nc"), []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "mid.nc"), []byte("2"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "b", "deep.nc"), []byte("3"), 0o644))

	paths, errCount := collect(t, scanHandler, dir, uint32(os.Getuid()))

	assert.Zero(t, errCount)
	assert.Equal(t, []string{
		filepath.Join(dir, "a", "b", "deep.nc"),
		filepath.Join(dir, "a", "mid.nc"),
		filepath.Join(dir, "top.nc"),
	}, paths)
}

func TestFindOwnedFiles_OtherUIDYieldsNothing(t *testing.T) {
	t.Parallel()
	scanHandler := newHandler()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.nc"), []byte("1"), 0o644))

	paths, errCount := collect(t, scanHandler, dir, uint32(os.Getuid())+1)

	assert.Zero(t, errCount)
	assert.Empty(t, paths)
}

func TestFindOwnedFiles_SkipsSymlinks(t *testing.T) {
	t.Parallel()
	scanHandler := newHandler()

	dir := t.TempDir()
	target := filepath.Join(dir, "target.nc")
	require.NoError(t, os.WriteFile(target, []byte("1"), 0o644))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link.nc")))

	paths, errCount := collect(t, scanHandler, dir, uint32(os.Getuid()))

	assert.Zero(t, errCount)
	assert.Equal(t, []string{target}, paths)
}

func TestFindOwnedFiles_NoDescentIntoSymlinkedDirs(t *testing.T) {
	t.Parallel()
	scanHandler := newHandler()

	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "external.nc"), []byte("1"), 0o644))

	dir := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "hop")))

	paths, errCount := collect(t, scanHandler, dir, uint32(os.Getuid()))

	assert.Zero(t, errCount)
	assert.Empty(t, paths)
}

func TestFindOwnedFiles_SingleFileItem(t *testing.T) {
	t.Parallel()
	scanHandler := newHandler()

	path := filepath.Join(t.TempDir(), "file.nc")
	require.NoError(t, os.WriteFile(path, []byte("1"), 0o644))

	paths, errCount := collect(t, scanHandler, path, uint32(os.Getuid()))

	assert.Zero(t, errCount)
	assert.Equal(t, []string{path}, paths)
}

func TestFindOwnedFiles_SingleSymlinkItem(t *testing.T) {
	t.Parallel()
	scanHandler := newHandler()

	dir := t.TempDir()
	target := filepath.Join(dir, "target.nc")
	link := filepath.Join(dir, "link.nc")
	require.NoError(t, os.WriteFile(target, []byte("1"), 0o644))
	require.NoError(t, os.Symlink(target, link))

	paths, errCount := collect(t, scanHandler, link, uint32(os.Getuid()))

	assert.Zero(t, errCount)
	assert.Empty(t, paths)
}

func TestFindOwnedFiles_NonexistentItem(t *testing.T) {
	t.Parallel()
	scanHandler := newHandler()

	paths, errCount := collect(t, scanHandler, filepath.Join(t.TempDir(), "missing"), uint32(os.Getuid()))

	assert.Equal(t, 1, errCount)
	assert.Empty(t, paths)
}

func TestFindOwnedFiles_EmptyDir(t *testing.T) {
	t.Parallel()
	scanHandler := newHandler()

	paths, errCount := collect(t, scanHandler, t.TempDir(), uint32(os.Getuid()))

	assert.Zero(t, errCount)
	assert.Empty(t, paths)
}
