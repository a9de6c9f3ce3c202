// Package analysis extracts periodicity from sampled trajectories.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X[k]| for k in [0, n/2] of the mean-removed series.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, len(spectrum)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period of the strongest non-constant
// component of data sampled every interval seconds. ok is false when the
// series is too short or flat.
func DominantPeriod(data []float64, interval float64) (period float64, ok bool) {
	if len(data) < 4 || interval <= 0 {
		return 0, false
	}

	ps := PowerSpectrum(data)
	maxIdx, maxPower := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > maxPower {
			maxPower, maxIdx = ps[k], k
		}
	}
	if maxIdx == 0 || maxPower < 1e-12 {
		return 0, false
	}

	return float64(len(data)) * interval / float64(maxIdx), true
}
