package sink

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
)

// FrameWriter is a video sink: frames go in one at a time, Close finishes
// the output. Frames counts what has been accepted so far.
type FrameWriter interface {
	WriteFrame(img *image.RGBA) error
	Frames() int
	Close() error
}

// Open picks a frame writer by format name: "gif" writes a single
// animated file at path, "frames" writes numbered PNGs into the
// directory at path.
//
// A gif holds every frame in memory until Close, so its footprint grows
// with the frame count. "frames" writes each frame as it arrives and keeps
// memory flat; use it for long runs.
func Open(format, path string, fps int) (FrameWriter, error) {
	switch format {
	case "gif":
		return NewGIFWriter(path, fps), nil
	case "frames":
		return NewFrameDir(path)
	}
	return nil, fmt.Errorf("unknown video format: %s (available: gif, frames)", format)
}

// GIFWriter quantizes frames to the Plan 9 palette and encodes them on
// Close. Paletted frames are a quarter the size of RGBA ones, but all of
// them are retained until then.
type GIFWriter struct {
	path  string
	delay int
	anim  gif.GIF
}

func NewGIFWriter(path string, fps int) *GIFWriter {
	delay := 100 / max(fps, 1)
	return &GIFWriter{path: path, delay: max(delay, 1), anim: gif.GIF{LoopCount: 0}}
}

func (w *GIFWriter) WriteFrame(img *image.RGBA) error {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	w.anim.Image = append(w.anim.Image, p)
	w.anim.Delay = append(w.anim.Delay, w.delay)
	return nil
}

func (w *GIFWriter) Frames() int { return len(w.anim.Image) }

func (w *GIFWriter) Close() error {
	if len(w.anim.Image) == 0 {
		return nil
	}
	f, err := os.Create(w.path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &w.anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FrameDir writes each frame to its own PNG as soon as it arrives.
type FrameDir struct {
	dir   string
	count int
}

func NewFrameDir(dir string) (*FrameDir, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FrameDir{dir: dir}, nil
}

func (d *FrameDir) WriteFrame(img *image.RGBA) error {
	path := filepath.Join(d.dir, fmt.Sprintf("frame_%05d.png", d.count))
	if err := SavePNG(path, img); err != nil {
		return err
	}
	d.count++
	return nil
}

func (d *FrameDir) Frames() int { return d.count }

func (d *FrameDir) Close() error { return nil }
