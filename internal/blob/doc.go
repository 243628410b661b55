// Package blob provides the scanline primitives: moving colored intervals
// and the 1D surface that composites them.
//
//   - [Blob]: a colored interval with a real-valued position and velocity
//   - [Space]: an ordered set of blobs over a background color
//   - [Row]: one composited scanline
//
// # Compositing
//
// [Space.Render] uses first-match-wins: at every pixel the earliest added
// blob that covers it supplies the color. There is no blending.
//
// # Randomness
//
// Nothing in this package touches a global generator. Every stochastic
// operation takes a [Source], normally a *rand.Rand seeded by the caller:
//
//	src := rand.New(rand.NewSource(seed))
//	space.TimeStep(src)
//
// # Thread Safety
//
// Space and Blob are NOT safe for concurrent use.
package blob
