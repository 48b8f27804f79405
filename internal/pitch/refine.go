// SPDX-License-Identifier: MIT
package pitch

// RefinePeak converts a selected peak bin into a frequency in hertz using
// parabolic interpolation over the three power values centred on the peak:
//
//	p = 0.5*(α-γ) / (α-2β+γ)
//
// where α, β, γ are the powers at peakBin-1, peakBin, peakBin+1. Peaks on
// either spectral boundary have no second neighbor and degrade to the
// bin-center frequency, as does a three-point fit whose denominator
// vanishes. Neither case is an error.
func RefinePeak(power []float64, peakBin int, sampleRate float64, fftSize int) float64 {
	binWidth := sampleRate / float64(fftSize)

	if peakBin <= 0 || peakBin >= len(power)-1 {
		return float64(peakBin) * binWidth
	}

	alpha := power[peakBin-1]
	beta := power[peakBin]
	gamma := power[peakBin+1]

	denom := alpha - 2*beta + gamma
	if denom == 0 {
		return float64(peakBin) * binWidth
	}

	p := 0.5 * (alpha - gamma) / denom
	return (float64(peakBin) + p) * binWidth
}
