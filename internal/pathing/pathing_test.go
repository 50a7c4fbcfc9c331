package pathing_test

import (
	"testing"

	"github.com/cseg-gdex/stagetools/internal/pathing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUnder_Descendant(t *testing.T) {
	t.Parallel()

	assert.True(t, pathing.IsUnder("/in/a/file.nc", "/in"))
	assert.True(t, pathing.IsUnder("/in/a/b/c", "/in/a"))
}

func TestIsUnder_RootItself(t *testing.T) {
	t.Parallel()

	assert.True(t, pathing.IsUnder("/in", "/in"))
	assert.True(t, pathing.IsUnder("/in/", "/in"))
}

func TestIsUnder_Outside(t *testing.T) {
	t.Parallel()

	assert.False(t, pathing.IsUnder("/out/a/file.nc", "/in"))
	assert.False(t, pathing.IsUnder("/", "/in"))
}

func TestIsUnder_PrefixLookalike(t *testing.T) {
	t.Parallel()

	// Containment is an ancestor test, not a string-prefix test.
	assert.False(t, pathing.IsUnder("/in-evil/file.nc", "/in"))
	assert.False(t, pathing.IsUnder("/input/file.nc", "/in"))
}

func TestIsUnder_MarkerLookalike(t *testing.T) {
	t.Parallel()

	// A path merely containing a staging-root marker is not under it.
	assert.False(t, pathing.IsUnder("/outside/file_d651077.nc", "/glade/campaign/collections/gdex/data/d651077"))
}

func TestIsUnder_TrailingSlashes(t *testing.T) {
	t.Parallel()

	assert.True(t, pathing.IsUnder("/in//a/file.nc", "/in/"))
}

func TestRelUnder(t *testing.T) {
	t.Parallel()

	relPath, err := pathing.RelUnder("/in/a/b/file.nc", "/in")

	require.NoError(t, err)
	assert.Equal(t, "a/b/file.nc", relPath)
}

func TestRelUnder_NotUnder(t *testing.T) {
	t.Parallel()

	_, err := pathing.RelUnder("/elsewhere/file.nc", "/in")

	require.Error(t, err)
	assert.ErrorIs(t, err, pathing.ErrNotUnderRoot)
}

func TestResolve_Relative(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/in/a/file.nc", pathing.Resolve("/in", "a/file.nc"))
}

func TestResolve_Absolute(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/elsewhere/file.nc", pathing.Resolve("/in", "/elsewhere/file.nc"))
}

func TestNormalizeAll(t *testing.T) {
	t.Parallel()

	paths := pathing.NormalizeAll("/in", []string{
		"file1.nc",
		"/abs/file2.nc",
		"dir with spaces/file 3.nc",
	})

	require.Len(t, paths, 3)
	assert.Equal(t, "/in/file1.nc", paths[0])
	assert.Equal(t, "/abs/file2.nc", paths[1])
	assert.Equal(t, "/in/dir with spaces/file 3.nc", paths[2])
}

func TestNormalizeAll_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pathing.NormalizeAll("/in", nil))
}
