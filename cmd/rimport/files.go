package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/cseg-gdex/stagetools/internal/listfile"
)

var errNoInput = errors.New("at least one of --file or --list is required")

// filesToProcess assembles the ordered set of filenames for a run:
// --file arguments first, then the list file's entries, then positional
// arguments. Supplying no input at all is a pre-flight error, as is a
// missing or empty list file.
func filesToProcess(files []string, list string, items []string) ([]string, error) {
	var names []string

	names = append(names, files...)

	if list != "" {
		fromList, err := listfile.Read(list)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("list file not found: %s", list)
			}

			return nil, err
		}
		names = append(names, fromList...)
	}

	names = append(names, items...)

	if len(names) == 0 {
		return nil, errNoInput
	}

	return names, nil
}
