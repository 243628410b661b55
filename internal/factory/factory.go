// Package factory builds blobs with randomized kinematics and muted colors.
package factory

import (
	"fmt"
	"math"

	"github.com/san-kum/blobline/internal/blob"
)

// Base color channel bounds. They stay clear of the extremes so generated
// blobs read as mid-tones.
const (
	MinRed, MaxRed     = 10, 210
	MinGreen, MaxGreen = 10, 180
	MinBlue, MaxBlue   = 10, 160
)

// Ranges bounds every random draw made for a blob. Integral selects the
// integer variant, where position and velocity are whole numbers.
type Ranges struct {
	MinPos, MaxPos     float64
	MinSpeed, MaxSpeed float64
	MinWidth, MaxWidth int
	ColorVar           int
	SpeedVar           float64
	AccelVar           float64
	Integral           bool
}

func (r Ranges) Validate() error {
	if r.MinPos > r.MaxPos {
		return fmt.Errorf("%w: min_pos %g > max_pos %g", ErrInvalidRange, r.MinPos, r.MaxPos)
	}
	if r.MinSpeed > r.MaxSpeed {
		return fmt.Errorf("%w: min_speed %g > max_speed %g", ErrInvalidRange, r.MinSpeed, r.MaxSpeed)
	}
	if r.MinWidth < 0 {
		return fmt.Errorf("%w: min_width %d is negative", ErrInvalidRange, r.MinWidth)
	}
	if r.MinWidth > r.MaxWidth {
		return fmt.Errorf("%w: min_width %d > max_width %d", ErrInvalidRange, r.MinWidth, r.MaxWidth)
	}
	if r.ColorVar < 0 {
		return fmt.Errorf("%w: color_var %d is negative", ErrInvalidRange, r.ColorVar)
	}
	if r.SpeedVar < 0 || r.SpeedVar > 1 {
		return fmt.Errorf("%w: speed_var %g outside [0,1]", ErrInvalidRange, r.SpeedVar)
	}
	if r.AccelVar < 0 {
		return fmt.Errorf("%w: acc_var %g is negative", ErrInvalidRange, r.AccelVar)
	}
	return nil
}

// BaseColor draws a muted base color.
func BaseColor(src blob.Source) blob.Color {
	return blob.RGB(
		blob.UniformInt(src, MinRed, MaxRed),
		blob.UniformInt(src, MinGreen, MaxGreen),
		blob.UniformInt(src, MinBlue, MaxBlue),
	)
}

// NewBlob draws position, width, velocity, base color and then the
// per-pixel perturbations, in that order.
func NewBlob(src blob.Source, r Ranges) (*blob.Blob, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var pos, speed float64
	var width int
	if r.Integral {
		pos = float64(blob.UniformInt(src, int(math.Round(r.MinPos)), int(math.Round(r.MaxPos))))
		width = blob.UniformInt(src, r.MinWidth, r.MaxWidth)
		speed = float64(blob.UniformInt(src, int(math.Round(r.MinSpeed)), int(math.Round(r.MaxSpeed))))
	} else {
		pos = blob.Uniform(src, r.MinPos, r.MaxPos)
		width = blob.UniformInt(src, r.MinWidth, r.MaxWidth)
		speed = blob.Uniform(src, r.MinSpeed, r.MaxSpeed)
	}

	base := BaseColor(src)
	colors := make([]blob.Color, width)
	for i := range colors {
		colors[i] = base.Offset(
			blob.UniformInt(src, -r.ColorVar, r.ColorVar),
			blob.UniformInt(src, -r.ColorVar, r.ColorVar),
			blob.UniformInt(src, -r.ColorVar, r.ColorVar),
		)
	}

	return blob.New(pos, speed, colors, r.SpeedVar, r.AccelVar), nil
}

// Populate adds n random blobs to space.
func Populate(src blob.Source, space *blob.Space, n int, r Ranges) error {
	if n < 0 {
		return fmt.Errorf("%w: blob count %d is negative", ErrInvalidRange, n)
	}
	for i := 0; i < n; i++ {
		b, err := NewBlob(src, r)
		if err != nil {
			return err
		}
		space.Add(b)
	}
	return nil
}
