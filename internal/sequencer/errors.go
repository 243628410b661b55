package sequencer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFrames indicates a negative frame count.
	ErrInvalidFrames = errors.New("sequencer: frame count must not be negative")

	// ErrInvalidNoise indicates a negative noise amount.
	ErrInvalidNoise = errors.New("sequencer: noise amount must not be negative")

	// ErrInvalidHeight indicates a video frame height below one.
	ErrInvalidHeight = errors.New("sequencer: frame height must be positive")
)

// FrameError ties an observer failure to the frame it happened on. The
// failed frame is not recorded and metrics have not seen it.
type FrameError struct {
	Frame   int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
