package factory

import "errors"

// ErrInvalidRange indicates a degenerate generation range.
var ErrInvalidRange = errors.New("factory: invalid range")
