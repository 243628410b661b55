package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/blobline/internal/blob"
)

func TestWriteJSON(t *testing.T) {
	rows := []blob.Row{{{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6}}}
	var buf bytes.Buffer

	if err := WriteJSON(&buf, NewData("run_1", 7, rows, nil)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var got Data
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Frames != 1 || got.Width != 2 || got.Seed != 7 {
		t.Errorf("unexpected header %+v", got)
	}
	if got.Pixels[0][1] != [3]uint8{4, 5, 6} {
		t.Errorf("unexpected pixel %v", got.Pixels[0][1])
	}
}

func TestWriteCSV(t *testing.T) {
	rows := []blob.Row{
		{blob.Gray(1), blob.Gray(2)},
		{blob.Gray(3), blob.Gray(4)},
	}
	var buf bytes.Buffer

	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 lines, got %d", len(lines))
	}
	if lines[4] != "1,1,4,4,4" {
		t.Errorf("unexpected last line %q", lines[4])
	}
}
