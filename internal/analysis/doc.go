// Package analysis provides spectral and chaos diagnostics for n-body runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: periodicity of a sampled signal
//   - [LyapunovExponent]: sensitivity of a configuration to a small nudge
//
// # Orbital period
//
// Sample a coordinate every tick and read off its dominant frequency:
//
//	freq, period := analysis.DominantFrequency(xs, dt)
package analysis
