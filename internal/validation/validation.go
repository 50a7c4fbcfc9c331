// Package validation holds the pre-flight checks both tools run before any
// filesystem mutation: roots exist and are directories, the target/staging
// root does not live inside the inputdata root, and every item to process
// lies under the inputdata root.
package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cseg-gdex/stagetools/internal/pathing"
)

type osProvider interface {
	Stat(name string) (os.FileInfo, error)
}

type Handler struct {
	osOps osProvider
}

func NewHandler(osOps osProvider) *Handler {
	return &Handler{
		osOps: osOps,
	}
}

func (v *Handler) Directory(path string) error {
	info, err := v.osOps.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("(validation) %w: %s", ErrRootMissing, path)
		}

		return fmt.Errorf("(validation) failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("(validation) %w: %s", ErrNotADirectory, path)
	}

	return nil
}

// Roots validates both trees and rejects a target root nested inside the
// inputdata root, which would stage the staging tree into itself.
func (v *Handler) Roots(inputdataRoot string, targetRoot string) error {
	if err := v.Directory(inputdataRoot); err != nil {
		return err
	}

	if err := v.Directory(targetRoot); err != nil {
		return err
	}

	if pathing.IsUnder(targetRoot, inputdataRoot) {
		return fmt.Errorf("(validation) %w: %s under %s", ErrRootOverlap, targetRoot, inputdataRoot)
	}

	return nil
}

// ItemsUnder rejects any item that is not the root itself or a descendant.
func (v *Handler) ItemsUnder(items []string, root string) error {
	for _, item := range items {
		if !pathing.IsUnder(item, root) {
			return fmt.Errorf("(validation) %w: item '%s' not under inputdata root '%s'", ErrItemOutsideRoot, item, root)
		}
	}

	return nil
}
