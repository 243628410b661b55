package metrics

import "github.com/san-kum/blobline/internal/blob"

// Metric accumulates a statistic over the rows of a run.
type Metric interface {
	Name() string
	Observe(row blob.Row, frame int)
	Value() float64
	Reset()
}

// Defaults is the set recorded with every stored run.
func Defaults() []Metric {
	return []Metric{
		NewMeanLuminance(),
		NewContrast(),
		NewClipped(),
	}
}

func rowLuminance(row blob.Row) float64 {
	if len(row) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range row {
		sum += c.Luminance()
	}
	return sum / float64(len(row))
}
