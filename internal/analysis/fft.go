package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the DFT of data.
// Any length is accepted; the mean is removed first so bin 0 does not swamp
// the periodic content.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-zero frequency of data sampled
// every dt seconds and its period. Both are zero for a flat signal.
func DominantFrequency(data []float64, dt float64) (freq, period float64) {
	ps := PowerSpectrum(data)
	best := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if best == 0 || dt <= 0 {
		return 0, 0
	}
	freq = float64(best) / (float64(len(data)) * dt)
	return freq, 1 / freq
}
