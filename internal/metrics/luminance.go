package metrics

import (
	"math"

	"github.com/san-kum/blobline/internal/blob"
)

type MeanLuminance struct {
	name    string
	sum     float64
	samples int
}

func NewMeanLuminance() *MeanLuminance {
	return &MeanLuminance{name: "mean_luminance"}
}

func (m *MeanLuminance) Name() string { return m.name }

func (m *MeanLuminance) Observe(row blob.Row, frame int) {
	for _, c := range row {
		m.sum += c.Luminance()
		m.samples++
	}
}

func (m *MeanLuminance) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanLuminance) Reset() {
	m.sum = 0
	m.samples = 0
}

// Contrast is the standard deviation of pixel luminance over the run.
type Contrast struct {
	name    string
	sum     float64
	sumSq   float64
	samples int
}

func NewContrast() *Contrast {
	return &Contrast{name: "contrast"}
}

func (c *Contrast) Name() string { return c.name }

func (c *Contrast) Observe(row blob.Row, frame int) {
	for _, px := range row {
		l := px.Luminance()
		c.sum += l
		c.sumSq += l * l
		c.samples++
	}
}

func (c *Contrast) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	n := float64(c.samples)
	mean := c.sum / n
	variance := c.sumSq/n - mean*mean
	if variance < 0 {
		return 0
	}
	return math.Sqrt(variance)
}

func (c *Contrast) Reset() {
	c.sum = 0
	c.sumSq = 0
	c.samples = 0
}

// LuminanceSeries keeps the mean luminance of every row, for plotting.
// Value reports the most recent row.
type LuminanceSeries struct {
	name   string
	series []float64
}

func NewLuminanceSeries() *LuminanceSeries {
	return &LuminanceSeries{name: "luminance", series: make([]float64, 0)}
}

func (l *LuminanceSeries) Name() string { return l.name }

func (l *LuminanceSeries) Observe(row blob.Row, frame int) {
	l.series = append(l.series, rowLuminance(row))
}

func (l *LuminanceSeries) Value() float64 {
	if len(l.series) == 0 {
		return 0
	}
	return l.series[len(l.series)-1]
}

func (l *LuminanceSeries) Series() []float64 {
	out := make([]float64, len(l.series))
	copy(out, l.series)
	return out
}

func (l *LuminanceSeries) Reset() { l.series = l.series[:0] }

// SeriesOf returns the mean luminance per row.
func SeriesOf(rows []blob.Row) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = rowLuminance(r)
	}
	return out
}
