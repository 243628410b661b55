package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT returns the discrete Fourier transform of a real series. Any length
// is accepted; PowerSpectrum pads to a power of two so bins line up with
// frame periods.
func FFT(data []float64) []complex128 {
	if len(data) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(data)
}

// PadPow2 copies data into a zero-padded slice whose length is a power of two.
func PadPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum subtracts the mean, pads, and returns the magnitudes of the
// first half of the transform. Bin k corresponds to k cycles per len(result)*2 frames.
func PowerSpectrum(series []float64) []float64 {
	if len(series) == 0 {
		return []float64{}
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	fft := FFT(PadPow2(centered))
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantPeriod returns the period in frames of the strongest non-DC bin,
// or 0 when the series is flat or too short.
func DominantPeriod(series []float64) float64 {
	ps := PowerSpectrum(series)
	if len(ps) < 2 {
		return 0
	}

	maxIdx, maxPower := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 || maxPower < 1e-9 {
		return 0
	}

	return float64(len(ps)*2) / float64(maxIdx)
}
