package listfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cseg-gdex/stagetools/internal/listfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "files.txt")
	require.NoError(t, os.WriteFile(path, []byte("# note\nfile1.nc\n\nfile2.nc\n"), 0o644))

	names, err := listfile.Read(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"file1.nc", "file2.nc"}, names)
}

func TestRead_TrimsWhitespace(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "files.txt")
	require.NoError(t, os.WriteFile(path, []byte("  file1.nc  \n\t file2.nc\n   # indented comment\n"), 0o644))

	names, err := listfile.Read(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"file1.nc", "file2.nc"}, names)
}

func TestRead_OnlyCommentsAndBlanks(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "files.txt")
	require.NoError(t, os.WriteFile(path, []byte("# a\n\n# b\n\n"), 0o644))

	_, err := listfile.Read(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, listfile.ErrEmptyList)
}

func TestRead_EmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "files.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := listfile.Read(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, listfile.ErrEmptyList)
}

func TestRead_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := listfile.Read(filepath.Join(t.TempDir(), "missing.txt"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
