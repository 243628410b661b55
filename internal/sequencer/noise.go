package sequencer

import "github.com/san-kum/blobline/internal/blob"

// AddNoise perturbs every channel of every pixel by an independent draw in
// [-amount, amount] and clamps. An amount of zero draws nothing.
func AddNoise(src blob.Source, row blob.Row, amount int) {
	if amount < 0 {
		amount = -amount
	}
	if amount == 0 {
		return
	}
	for i, c := range row {
		row[i] = c.Offset(
			blob.UniformInt(src, -amount, amount),
			blob.UniformInt(src, -amount, amount),
			blob.UniformInt(src, -amount, amount),
		)
	}
}
