package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/blobline/internal/blob"
)

// Data is the JSON shape of a run: Frames[frame][pixel] = [r, g, b].
type Data struct {
	ID      string             `json:"id,omitempty"`
	Seed    int64              `json:"seed"`
	Frames  int                `json:"frames"`
	Width   int                `json:"width"`
	Pixels  [][][3]uint8       `json:"pixels"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

func NewData(id string, seed int64, rows []blob.Row, metrics map[string]float64) Data {
	d := Data{
		ID:      id,
		Seed:    seed,
		Frames:  len(rows),
		Pixels:  make([][][3]uint8, len(rows)),
		Metrics: metrics,
	}
	if len(rows) > 0 {
		d.Width = len(rows[0])
	}
	for i, row := range rows {
		px := make([][3]uint8, len(row))
		for j, c := range row {
			px[j] = [3]uint8{c.R, c.G, c.B}
		}
		d.Pixels[i] = px
	}
	return d
}

func WriteJSON(w io.Writer, d Data) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(d)
}

// WriteCSV writes one line per pixel: frame, pixel, r, g, b.
func WriteCSV(w io.Writer, rows []blob.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"frame", "pixel", "r", "g", "b"}); err != nil {
		return err
	}

	for f, row := range rows {
		for p, c := range row {
			record := []string{
				strconv.Itoa(f),
				strconv.Itoa(p),
				strconv.Itoa(int(c.R)),
				strconv.Itoa(int(c.G)),
				strconv.Itoa(int(c.B)),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
