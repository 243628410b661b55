// Package sink writes generated scanlines out as images.
//
//   - [Raster] stacks rows into a still image, one row per frame.
//   - [GIFWriter] and [FrameDir] accept video frames one at a time.
//
// Both frame writers implement sequencer.FrameSink and io.Closer.
package sink
