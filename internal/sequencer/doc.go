// Package sequencer drives a [blob.Space] through time and turns each
// composited row into an output frame.
//
// Every frame is rendered, noised, recorded and only then stepped, so the
// first row always shows the initial configuration:
//
//	seq := sequencer.New(space, rand.New(rand.NewSource(seed)))
//	result, err := seq.Generate(200, 20)
//
// [Sequencer.Stream] is the video variant. It expands each row to a fixed
// height and hands frames to a [FrameSink] one at a time instead of
// collecting them.
package sequencer
