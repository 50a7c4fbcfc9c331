package validation

import "errors"

var (
	ErrRootMissing     = errors.New("directory does not exist")
	ErrNotADirectory   = errors.New("not a directory")
	ErrRootOverlap     = errors.New("target root must not be under inputdata root")
	ErrItemOutsideRoot = errors.New("item not under inputdata root")
)
