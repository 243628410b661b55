package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/blobline/internal/blob"
)

const halfBlock = "▀"

// Hex converts a pixel to a lipgloss-ready hex string.
func Hex(c blob.Color) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// Sample picks cols pixels from row by nearest index.
func Sample(row blob.Row, cols int) blob.Row {
	if cols <= 0 || len(row) == 0 {
		return blob.Row{}
	}
	if cols >= len(row) {
		return row
	}
	out := make(blob.Row, cols)
	for i := range out {
		out[i] = row[i*len(row)/cols]
	}
	return out
}

// RenderPair draws two rows in one terminal line. A nil bottom row leaves
// the lower half unset.
func RenderPair(top, bottom blob.Row, cols int) string {
	top = Sample(top, cols)
	if bottom != nil {
		bottom = Sample(bottom, cols)
	}

	var sb strings.Builder
	for i, c := range top {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(Hex(c)))
		if i < len(bottom) {
			style = style.Background(lipgloss.Color(Hex(bottom[i])))
		}
		sb.WriteString(style.Render(halfBlock))
	}
	return sb.String()
}

// RenderRows stacks rows two per line.
func RenderRows(rows []blob.Row, cols int) string {
	lines := make([]string, 0, (len(rows)+1)/2)
	for i := 0; i < len(rows); i += 2 {
		var bottom blob.Row
		if i+1 < len(rows) {
			bottom = rows[i+1]
		}
		lines = append(lines, RenderPair(rows[i], bottom, cols))
	}
	return strings.Join(lines, "\n")
}
