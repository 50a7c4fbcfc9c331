// Package listfile parses the newline-delimited filename lists accepted by
// rimport's --list flag.
package listfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var ErrEmptyList = errors.New("no filenames found in list")

// Read parses the list file at path into filenames in order of appearance.
// Blank lines and lines whose first non-whitespace character is '#' are
// skipped, every retained line is trimmed. An empty result is an error,
// not a silent no-op.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("(listfile) failed to open list: %w", err)
	}
	defer f.Close()

	names, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("(listfile) %w: %s", err, path)
	}

	return names, nil
}

func parse(r io.Reader) ([]string, error) {
	var names []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list: %w", err)
	}

	if len(names) == 0 {
		return nil, ErrEmptyList
	}

	return names, nil
}
