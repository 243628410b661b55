package sink

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/san-kum/blobline/internal/blob"
	"golang.org/x/image/draw"
)

// Raster stacks rows vertically: frame i becomes image row i. Rows shorter
// than the first are padded with black.
func Raster(rows []blob.Row) *image.RGBA {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	img := image.NewRGBA(image.Rect(0, 0, width, len(rows)))
	for y, row := range rows {
		off := y * img.Stride
		for x := 0; x < width && x < len(row); x++ {
			c := row[x]
			img.Pix[off+x*4] = c.R
			img.Pix[off+x*4+1] = c.G
			img.Pix[off+x*4+2] = c.B
			img.Pix[off+x*4+3] = 0xff
		}
		for x := len(row); x < width; x++ {
			img.Pix[off+x*4+3] = 0xff
		}
	}
	return img
}

// Rows is the inverse of Raster.
func Rows(img image.Image) []blob.Row {
	b := img.Bounds()
	rows := make([]blob.Row, b.Dy())
	for y := range rows {
		row := make(blob.Row, b.Dx())
		for x := range row {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			row[x] = blob.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}
		}
		rows[y] = row
	}
	return rows
}

// Scale enlarges img by an integer factor with nearest-neighbor sampling,
// keeping pixel edges hard.
func Scale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
