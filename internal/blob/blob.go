package blob

import "fmt"

// Blob is a colored interval moving along the line. Position and Velocity
// change every tick; the color profile is fixed at construction.
type Blob struct {
	Position      float64
	Velocity      float64
	SpeedVariance float64
	AccelVariance float64

	colors []Color
}

// New copies colors, so later changes to the caller's slice are not seen.
func New(position, velocity float64, colors []Color, speedVar, accelVar float64) *Blob {
	c := make([]Color, len(colors))
	copy(c, colors)
	return &Blob{
		Position:      position,
		Velocity:      velocity,
		SpeedVariance: speedVar,
		AccelVariance: accelVar,
		colors:        c,
	}
}

// Len is the blob's width in pixels.
func (b *Blob) Len() int { return len(b.colors) }

// Colors returns a copy of the color profile.
func (b *Blob) Colors() []Color {
	c := make([]Color, len(b.colors))
	copy(c, b.colors)
	return c
}

// TimeStep advances the blob one tick. The acceleration draw always comes
// before the speed jitter draw, even when a variance is zero, so a seeded
// source replays identically.
func (b *Blob) TimeStep(src Source) {
	b.Velocity += Uniform(src, -b.AccelVariance, b.AccelVariance)
	b.Position += b.Velocity + b.Velocity*Uniform(src, -b.SpeedVariance, b.SpeedVariance)
}

// Covers reports whether pixel p lies in [Position, Position+Len).
func (b *Blob) Covers(p int) bool {
	x := float64(p)
	return x >= b.Position && x < b.Position+float64(len(b.colors))
}

// ColorAt returns the color at a local offset. Callers must check Covers
// first; an offset outside [0, Len) panics.
func (b *Blob) ColorAt(offset int) Color {
	return b.colors[offset]
}

func (b *Blob) String() string {
	return fmt.Sprintf("<blob at %.2f v=%.2f len=%d>", b.Position, b.Velocity, len(b.colors))
}
