// Package analysis looks for periodicity in per-frame series such as mean
// row luminance.
//
//   - [FFT]: discrete Fourier transform of a real series
//   - [PowerSpectrum]: magnitude spectrum with the mean removed
//   - [DominantPeriod]: period, in frames, of the strongest component
package analysis
