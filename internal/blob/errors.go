package blob

import "errors"

var (
	// ErrNegativeWidth indicates a space constructed with a width below zero.
	ErrNegativeWidth = errors.New("blob: space width must not be negative")
)
