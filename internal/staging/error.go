package staging

import "errors"

var (
	ErrSourceNotFound    = errors.New("source not found")
	ErrSourceIsDir       = errors.New("source is a directory")
	ErrBrokenSymlink     = errors.New("source is a broken symlink")
	ErrOutsideStaging    = errors.New("target is outside staging directory")
	ErrAlreadyInStaging  = errors.New("already under staging directory")
	ErrNotUnderInputdata = errors.New("not under inputdata root")
	ErrRelinkFailed      = errors.New("error relinking during rimport")
)
