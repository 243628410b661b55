package blob

// Source is the subset of *rand.Rand used by the simulation.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Uniform draws a real value in [a, b). Reversed bounds are accepted.
func Uniform(src Source, a, b float64) float64 {
	return a + (b-a)*src.Float64()
}

// UniformInt draws an integer in [a, b], inclusive on both ends.
func UniformInt(src Source, a, b int) int {
	if b < a {
		a, b = b, a
	}
	return a + src.Intn(b-a+1)
}
