package blob

import "fmt"

// Color is an RGB triple with channels in [0,255].
type Color struct {
	R, G, B uint8
}

// Gray broadcasts a scalar to all three channels.
func Gray(v int) Color {
	c := Clamp(v)
	return Color{R: c, G: c, B: c}
}

// RGB builds a Color from ints, clamping each channel.
func RGB(r, g, b int) Color {
	return Color{R: Clamp(r), G: Clamp(g), B: Clamp(b)}
}

// Clamp limits v to [0,255].
func Clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Offset adds per-channel deltas and clamps the result.
func (c Color) Offset(dr, dg, db int) Color {
	return RGB(int(c.R)+dr, int(c.G)+dg, int(c.B)+db)
}

// Luminance returns the Rec. 601 luma in [0,255].
func (c Color) Luminance() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("[%d %d %d]", c.R, c.G, c.B)
}

// Row is one composited scanline.
type Row []Color

func (r Row) Clone() Row {
	c := make(Row, len(r))
	copy(c, r)
	return c
}
