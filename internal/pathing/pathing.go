// Package pathing provides the path containment and normalization rules
// shared by relink and rimport. Containment is always a true ancestor test
// on cleaned absolute paths, never a substring match.
package pathing

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IsUnder reports whether path is root itself or a descendant of root.
func IsUnder(path string, root string) bool {
	path = filepath.Clean(path)
	root = filepath.Clean(root)

	if path == root {
		return true
	}

	return strings.HasPrefix(path, root+string(filepath.Separator))
}

// RelUnder returns path relative to root.
func RelUnder(path string, root string) (string, error) {
	if !IsUnder(path, root) {
		return "", fmt.Errorf("(pathing) %w: %s (root: %s)", ErrNotUnderRoot, path, root)
	}

	relPath, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("(pathing) failed to rel: %w", err)
	}

	return relPath, nil
}

// Resolve turns a possibly relative name into a cleaned absolute path.
// Relative names are joined onto root, absolute names are kept as given.
// The result is not required to exist and a trailing symlink is never
// followed, so the link's own path is preserved for callers that need it.
func Resolve(root string, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}

	return filepath.Join(root, name)
}

// NormalizeAll resolves a list of names against root, in order of appearance.
func NormalizeAll(root string, names []string) []string {
	paths := make([]string, 0, len(names))

	for _, name := range names {
		paths = append(paths, Resolve(root, name))
	}

	return paths
}
