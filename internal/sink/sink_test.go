package sink

import (
	"fmt"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/blobline/internal/blob"
)

func testRows() []blob.Row {
	return []blob.Row{
		{{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6}},
		{{R: 7, G: 8, B: 9}, {R: 10, G: 11, B: 12}},
		{{R: 13, G: 14, B: 15}, {R: 16, G: 17, B: 18}},
	}
}

func TestRaster(t *testing.T) {
	img := Raster(testRows())

	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 3 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	c := img.RGBAAt(1, 2)
	if c.R != 16 || c.G != 17 || c.B != 18 || c.A != 255 {
		t.Errorf("pixel (1,2) = %v", c)
	}
}

func TestRasterEmpty(t *testing.T) {
	img := Raster(nil)
	if !img.Bounds().Empty() {
		t.Errorf("expected empty image, got %v", img.Bounds())
	}
}

func TestScale(t *testing.T) {
	img := Scale(Raster(testRows()), 3)

	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 9 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	for y := 3; y < 6; y++ {
		for x := 0; x < 3; x++ {
			if c := img.RGBAAt(x, y); c.R != 7 {
				t.Errorf("(%d,%d) = %v, want R=7", x, y, c)
			}
		}
	}
}

func TestPNGRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raster.png")
	if err := SavePNG(path, Raster(testRows())); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	img, err := LoadPNG(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	rows := Rows(img)
	want := testRows()
	for y := range want {
		for x := range want[y] {
			if rows[y][x] != want[y][x] {
				t.Errorf("(%d,%d) = %v, want %v", x, y, rows[y][x], want[y][x])
			}
		}
	}
}

func frame(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestGIFWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	w, err := Open("gif", path, 25)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if err := w.WriteFrame(frame(8, 2)); err != nil {
			t.Fatal(err)
		}
	}
	if w.Frames() != 4 {
		t.Errorf("Frames() = %d, want 4", w.Frames())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("gif should not be written before Close")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(anim.Image) != 4 {
		t.Errorf("expected 4 frames, got %d", len(anim.Image))
	}
	if anim.Delay[0] != 4 {
		t.Errorf("expected delay 4 at 25fps, got %d", anim.Delay[0])
	}
}

func TestFrameDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	w, err := Open("frames", dir, 30)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := w.WriteFrame(frame(4, 4)); err != nil {
			t.Fatal(err)
		}
		// each frame is on disk as soon as it is written
		if _, err := os.Stat(filepath.Join(dir, fmt.Sprintf("frame_%05d.png", i))); err != nil {
			t.Fatalf("frame %d not written immediately: %v", i, err)
		}
	}
	if w.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", w.Frames())
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 files, got %d", len(entries))
	}
	if entries[0].Name() != "frame_00000.png" {
		t.Errorf("unexpected first file %s", entries[0].Name())
	}
}

func TestOpenUnknown(t *testing.T) {
	if _, err := Open("mkv", "x", 30); err == nil {
		t.Error("expected error for unknown format")
	}
}
