package sequencer

import (
	"fmt"
	"image"

	"github.com/san-kum/blobline/internal/blob"
	"github.com/san-kum/blobline/internal/metrics"
)

// Observer sees every recorded row, after noise.
type Observer interface {
	OnFrame(row blob.Row, frame int) error
}

// FrameSink accepts video frames one at a time.
type FrameSink interface {
	WriteFrame(img *image.RGBA) error
}

type Result struct {
	Rows    []blob.Row
	Metrics map[string]float64
}

type Sequencer struct {
	space     *blob.Space
	src       blob.Source
	metrics   []metrics.Metric
	observers []Observer
	frame     int
}

func New(space *blob.Space, src blob.Source) *Sequencer {
	return &Sequencer{
		space:     space,
		src:       src,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Sequencer) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }
func (s *Sequencer) AddObserver(o Observer)     { s.observers = append(s.observers, o) }
func (s *Sequencer) Space() *blob.Space         { return s.space }

// Frame is the number of rows produced so far.
func (s *Sequencer) Frame() int { return s.frame }

// Next renders, noises and records one row, then advances the space.
func (s *Sequencer) Next(noise int) (blob.Row, error) {
	if noise < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidNoise, noise)
	}

	row := s.space.Render()
	AddNoise(s.src, row, noise)

	// observers run first so a rejected row never reaches the metrics
	for _, o := range s.observers {
		if err := o.OnFrame(row, s.frame); err != nil {
			return nil, &FrameError{Frame: s.frame, Wrapped: err}
		}
	}
	for _, m := range s.metrics {
		m.Observe(row, s.frame)
	}

	s.space.TimeStep(s.src)
	s.frame++
	return row, nil
}

// Generate produces frames rows and collects them in order.
func (s *Sequencer) Generate(frames, noise int) (*Result, error) {
	if err := validate(frames, noise); err != nil {
		return nil, err
	}

	result := &Result{
		Rows:    make([]blob.Row, 0, frames),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < frames; i++ {
		row, err := s.Next(noise)
		if err != nil {
			return result, err
		}
		result.Rows = append(result.Rows, row)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// Stream runs the same loop as Generate but expands each row to height
// scanlines and writes it to sink immediately. Sink errors are returned
// as-is.
func (s *Sequencer) Stream(frames, noise, height int, sink FrameSink) (map[string]float64, error) {
	if err := validate(frames, noise); err != nil {
		return nil, err
	}
	if height < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHeight, height)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < frames; i++ {
		row, err := s.Next(noise)
		if err != nil {
			return nil, err
		}
		if err := sink.WriteFrame(Expand(row, height)); err != nil {
			return nil, err
		}
	}

	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out, nil
}

func validate(frames, noise int) error {
	if frames < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidFrames, frames)
	}
	if noise < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidNoise, noise)
	}
	return nil
}

// Expand broadcasts row across height identical scanlines.
func Expand(row blob.Row, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, len(row), height))
	line := img.Pix[:len(row)*4]
	for x, c := range row {
		line[x*4] = c.R
		line[x*4+1] = c.G
		line[x*4+2] = c.B
		line[x*4+3] = 0xff
	}
	for y := 1; y < height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+len(line)], line)
	}
	return img
}
