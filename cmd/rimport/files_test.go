package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cseg-gdex/stagetools/internal/listfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesToProcess_FilesOnly(t *testing.T) {
	t.Parallel()

	names, err := filesToProcess([]string{"a.nc", "b.nc"}, "", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"a.nc", "b.nc"}, names)
}

func TestFilesToProcess_ListOnly(t *testing.T) {
	t.Parallel()

	list := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(list, []byte("file1.nc\nfile2.nc\n"), 0o644))

	names, err := filesToProcess(nil, list, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"file1.nc", "file2.nc"}, names)
}

func TestFilesToProcess_Order(t *testing.T) {
	t.Parallel()

	list := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(list, []byte("from-list.nc\n"), 0o644))

	names, err := filesToProcess([]string{"from-flag.nc"}, list, []string{"positional.nc"})

	require.NoError(t, err)
	assert.Equal(t, []string{"from-flag.nc", "from-list.nc", "positional.nc"}, names)
}

func TestFilesToProcess_PositionalOnly(t *testing.T) {
	t.Parallel()

	names, err := filesToProcess(nil, "", []string{"c.nc"})

	require.NoError(t, err)
	assert.Equal(t, []string{"c.nc"}, names)
}

func TestFilesToProcess_NoInput(t *testing.T) {
	t.Parallel()

	_, err := filesToProcess(nil, "", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, errNoInput)
}

func TestFilesToProcess_ListMissing(t *testing.T) {
	t.Parallel()

	_, err := filesToProcess(nil, filepath.Join(t.TempDir(), "missing.txt"), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list file not found")
}

func TestFilesToProcess_ListEmpty(t *testing.T) {
	t.Parallel()

	list := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(list, []byte("# nothing here\n"), 0o644))

	_, err := filesToProcess(nil, list, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, listfile.ErrEmptyList)
}
