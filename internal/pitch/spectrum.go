// SPDX-License-Identifier: MIT
package pitch

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"tuner/pkg/bitint"
)

// spectrumAnalyzer computes a squared-magnitude spectrum from a windowed
// buffer. It owns a reusable gonum FFT plan plus complex scratch; cycles
// must not overlap, which the engine's process-or-drop policy guarantees.
type spectrumAnalyzer struct {
	fftSize int
	plan    *fourier.FFT
	coeffs  []complex128 // fftSize/2+1 coefficients from the real FFT
}

func newSpectrumAnalyzer(fftSize int) (*spectrumAnalyzer, error) {
	if !bitint.IsPowerOfTwo(fftSize) {
		return nil, fmt.Errorf("fft size must be a power of 2, got %d", fftSize)
	}
	return &spectrumAnalyzer{
		fftSize: fftSize,
		plan:    fourier.NewFFT(fftSize),
		coeffs:  make([]complex128, fftSize/2+1),
	}, nil
}

// transform fills power with the squared magnitude of the fftSize/2 lowest
// bins of the windowed buffer; bin k corresponds to k*sampleRate/fftSize Hz.
// No square root is taken, so downstream thresholding sees power values.
// len(windowed) must be fftSize and len(power) must be fftSize/2.
func (s *spectrumAnalyzer) transform(power, windowed []float64) {
	s.plan.Coefficients(s.coeffs, windowed)
	for i := range power {
		re := real(s.coeffs[i])
		im := imag(s.coeffs[i])
		power[i] = re*re + im*im
	}
}
