package sequencer

import (
	"errors"
	"image"
	"math/rand"
	"testing"

	"github.com/san-kum/blobline/internal/blob"
	"github.com/san-kum/blobline/internal/metrics"
)

func stationarySpace(t *testing.T) *blob.Space {
	t.Helper()
	space, err := blob.NewSpace(10, blob.Gray(0))
	if err != nil {
		t.Fatal(err)
	}
	space.Add(blob.New(5, 0, []blob.Color{{R: 1, G: 2, B: 3}}, 0, 0))
	return space
}

func TestGenerateTickOrdering(t *testing.T) {
	seq := New(stationarySpace(t), rand.New(rand.NewSource(1)))

	result, err := seq.Generate(3, 0)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if len(result.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(result.Rows))
	}

	for i, row := range result.Rows {
		if len(row) != 10 {
			t.Fatalf("row %d: expected width 10, got %d", i, len(row))
		}
		for p, c := range row {
			want := blob.Color{}
			if p == 5 {
				want = blob.Color{R: 1, G: 2, B: 3}
			}
			if c != want {
				t.Errorf("row %d pixel %d = %v, want %v", i, p, c, want)
			}
		}
	}
}

func TestGenerateFirstRowIsInitialState(t *testing.T) {
	space, _ := blob.NewSpace(10, blob.Gray(0))
	space.Add(blob.New(0, 2, []blob.Color{{R: 9, G: 9, B: 9}}, 0, 0))
	seq := New(space, rand.New(rand.NewSource(1)))

	result, err := seq.Generate(3, 0)
	if err != nil {
		t.Fatal(err)
	}

	for i, want := range []int{0, 2, 4} {
		if result.Rows[i][want] != (blob.Color{R: 9, G: 9, B: 9}) {
			t.Errorf("row %d: blob not at pixel %d", i, want)
		}
	}
}

func TestGenerateRowsAreIndependent(t *testing.T) {
	seq := New(stationarySpace(t), rand.New(rand.NewSource(1)))
	result, err := seq.Generate(2, 0)
	if err != nil {
		t.Fatal(err)
	}

	result.Rows[0][5] = blob.Color{R: 200}
	if result.Rows[1][5] != (blob.Color{R: 1, G: 2, B: 3}) {
		t.Error("rows share backing storage")
	}
}

func TestGenerateReproducible(t *testing.T) {
	run := func() []blob.Row {
		space, _ := blob.NewSpace(30, blob.Gray(30))
		space.Add(blob.New(3, 1.2, []blob.Color{{R: 100}, {G: 100}, {B: 100}}, 0.5, 0.2))
		res, err := New(space, rand.New(rand.NewSource(99))).Generate(20, 15)
		if err != nil {
			t.Fatal(err)
		}
		return res.Rows
	}

	a, b := run(), run()
	for i := range a {
		for p := range a[i] {
			if a[i][p] != b[i][p] {
				t.Fatalf("frame %d pixel %d differs", i, p)
			}
		}
	}
}

func TestZeroNoiseIdempotent(t *testing.T) {
	src := rand.New(rand.NewSource(3))
	row := blob.Row{{R: 0, G: 128, B: 255}, {R: 7, G: 8, B: 9}}
	before := row.Clone()

	AddNoise(src, row, 0)

	for i := range row {
		if row[i] != before[i] {
			t.Errorf("pixel %d changed: %v -> %v", i, before[i], row[i])
		}
	}
}

func TestNoiseClamps(t *testing.T) {
	src := rand.New(rand.NewSource(4))
	hitLow, hitHigh := false, false
	for i := 0; i < 200; i++ {
		row := blob.Row{blob.Gray(0)}
		AddNoise(src, row, 300)
		if row[0].R == 0 {
			hitLow = true
		}
		if row[0].R == 255 {
			hitHigh = true
		}
	}
	if !hitLow || !hitHigh {
		t.Errorf("expected clamping at both ends, low=%v high=%v", hitLow, hitHigh)
	}
}

func TestGenerateInvalid(t *testing.T) {
	seq := New(stationarySpace(t), rand.New(rand.NewSource(1)))

	if _, err := seq.Generate(-1, 0); !errors.Is(err, ErrInvalidFrames) {
		t.Errorf("expected ErrInvalidFrames, got %v", err)
	}
	if _, err := seq.Generate(1, -1); !errors.Is(err, ErrInvalidNoise) {
		t.Errorf("expected ErrInvalidNoise, got %v", err)
	}

	res, err := seq.Generate(0, 0)
	if err != nil || len(res.Rows) != 0 {
		t.Errorf("zero frames should give empty result, got %v %v", res, err)
	}
}

func TestGenerateMetrics(t *testing.T) {
	seq := New(stationarySpace(t), rand.New(rand.NewSource(1)))
	seq.AddMetric(metrics.NewClipped())

	result, err := seq.Generate(4, 0)
	if err != nil {
		t.Fatal(err)
	}
	// 9 of 10 pixels are black background.
	if got := result.Metrics["clipped"]; got < 0.89 || got > 0.91 {
		t.Errorf("expected clipped ~0.9, got %f", got)
	}
}

type failingObserver struct{ at int }

func (f failingObserver) OnFrame(row blob.Row, frame int) error {
	if frame == f.at {
		return errors.New("boom")
	}
	return nil
}

func TestObserverError(t *testing.T) {
	seq := New(stationarySpace(t), rand.New(rand.NewSource(1)))
	seq.AddObserver(failingObserver{at: 2})

	_, err := seq.Generate(5, 0)
	var fe *FrameError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FrameError, got %v", err)
	}
	if fe.Frame != 2 {
		t.Errorf("expected frame 2, got %d", fe.Frame)
	}
}

type countingMetric struct{ frames []int }

func (c *countingMetric) Name() string                    { return "frames" }
func (c *countingMetric) Observe(row blob.Row, frame int) { c.frames = append(c.frames, frame) }
func (c *countingMetric) Value() float64                  { return float64(len(c.frames)) }
func (c *countingMetric) Reset()                          { c.frames = nil }

func TestObserverErrorSkipsMetrics(t *testing.T) {
	seq := New(stationarySpace(t), rand.New(rand.NewSource(1)))
	counter := &countingMetric{}
	seq.AddMetric(counter)
	seq.AddObserver(failingObserver{at: 2})

	result, err := seq.Generate(5, 0)
	if err == nil {
		t.Fatal("expected observer error")
	}
	if len(result.Rows) != 2 {
		t.Errorf("expected 2 recorded rows, got %d", len(result.Rows))
	}
	if len(counter.frames) != 2 || counter.frames[1] != 1 {
		t.Errorf("metric saw frames %v, want [0 1]", counter.frames)
	}
	if seq.Frame() != 2 {
		t.Errorf("sequencer advanced past the failed frame: %d", seq.Frame())
	}
}

type memorySink struct {
	frames []*image.RGBA
	failAt int
	err    error
}

func (m *memorySink) WriteFrame(img *image.RGBA) error {
	if m.err != nil && len(m.frames) == m.failAt {
		return m.err
	}
	m.frames = append(m.frames, img)
	return nil
}

func TestStream(t *testing.T) {
	seq := New(stationarySpace(t), rand.New(rand.NewSource(1)))
	sink := &memorySink{}

	if _, err := seq.Stream(3, 0, 4, sink); err != nil {
		t.Fatalf("stream failed: %v", err)
	}

	if len(sink.frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(sink.frames))
	}
	for _, f := range sink.frames {
		if f.Bounds().Dx() != 10 || f.Bounds().Dy() != 4 {
			t.Fatalf("unexpected frame bounds %v", f.Bounds())
		}
		for y := 0; y < 4; y++ {
			c := f.RGBAAt(5, y)
			if c.R != 1 || c.G != 2 || c.B != 3 || c.A != 255 {
				t.Errorf("scanline %d pixel 5 = %v", y, c)
			}
			if f.RGBAAt(4, y).R != 0 {
				t.Errorf("scanline %d pixel 4 should be background", y)
			}
		}
	}
}

func TestStreamSinkErrorUnmodified(t *testing.T) {
	sentinel := errors.New("disk full")
	seq := New(stationarySpace(t), rand.New(rand.NewSource(1)))

	_, err := seq.Stream(5, 0, 1, &memorySink{failAt: 1, err: sentinel})
	if err != sentinel {
		t.Errorf("expected sink error unchanged, got %v", err)
	}
}

func TestStreamInvalidHeight(t *testing.T) {
	seq := New(stationarySpace(t), rand.New(rand.NewSource(1)))
	if _, err := seq.Stream(1, 0, 0, &memorySink{}); !errors.Is(err, ErrInvalidHeight) {
		t.Errorf("expected ErrInvalidHeight, got %v", err)
	}
}
