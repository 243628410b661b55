package metrics

import "github.com/san-kum/blobline/internal/blob"

// Clipped is the fraction of channel values sitting at 0 or 255, which is
// where noise clamping lands.
type Clipped struct {
	name     string
	clipped  int
	channels int
}

func NewClipped() *Clipped {
	return &Clipped{name: "clipped"}
}

func (c *Clipped) Name() string { return c.name }

func (c *Clipped) Observe(row blob.Row, frame int) {
	for _, px := range row {
		for _, v := range [3]uint8{px.R, px.G, px.B} {
			if v == 0 || v == 255 {
				c.clipped++
			}
		}
		c.channels += 3
	}
}

func (c *Clipped) Value() float64 {
	if c.channels == 0 {
		return 0
	}
	return float64(c.clipped) / float64(c.channels)
}

func (c *Clipped) Reset() {
	c.clipped = 0
	c.channels = 0
}
