package blob

import "fmt"

// Space owns an ordered collection of blobs. Insertion order is the
// compositing priority: earlier blobs win.
type Space struct {
	Width      int
	Background Color

	blobs []*Blob
}

func NewSpace(width int, background Color) (*Space, error) {
	if width < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeWidth, width)
	}
	return &Space{Width: width, Background: background, blobs: make([]*Blob, 0)}, nil
}

func (s *Space) Add(b *Blob) { s.blobs = append(s.blobs, b) }

// Remove drops the first occurrence of b and reports whether it was found.
func (s *Space) Remove(b *Blob) bool {
	for i, cur := range s.blobs {
		if cur == b {
			s.blobs = append(s.blobs[:i], s.blobs[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Space) Len() int { return len(s.blobs) }

// Blobs returns the blobs in priority order. The slice is a copy; the
// blobs are shared.
func (s *Space) Blobs() []*Blob {
	out := make([]*Blob, len(s.blobs))
	copy(out, s.blobs)
	return out
}

// TimeStep advances every blob exactly once.
func (s *Space) TimeStep(src Source) {
	for _, b := range s.blobs {
		b.TimeStep(src)
	}
}

// Render composites the current state into a fresh row. The local offset
// is int(p - Position), so fractional positions shift the profile in whole
// pixels with no interpolation.
func (s *Space) Render() Row {
	row := make(Row, s.Width)
	for p := range row {
		row[p] = s.Background
		for _, b := range s.blobs {
			if b.Covers(p) {
				off := int(float64(p) - b.Position)
				if off >= b.Len() {
					// rounding at the right edge
					off = b.Len() - 1
				}
				row[p] = b.ColorAt(off)
				break
			}
		}
	}
	return row
}
