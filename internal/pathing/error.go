package pathing

import "errors"

var ErrNotUnderRoot = errors.New("not under root")
