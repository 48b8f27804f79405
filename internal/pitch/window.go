// SPDX-License-Identifier: MIT

// Package pitch implements the fundamental-frequency estimation pipeline:
// windowing, spectral transform, banded peak selection, sub-bin refinement.
package pitch

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/dsp/window"
)

// WindowFunc selects the taper applied before the spectral transform.
type WindowFunc int

const (
	Hann WindowFunc = iota
	Hamming
	Blackman
	BlackmanNuttall
	BartlettHann
	Lanczos
	Nuttall
)

// ParseWindowFunc converts a window name (case-insensitive) to a
// WindowFunc. The empty string selects Hann.
func ParseWindowFunc(name string) (WindowFunc, error) {
	switch strings.ToLower(name) {
	case "", "hann", "hanning":
		return Hann, nil
	case "hamming":
		return Hamming, nil
	case "blackman":
		return Blackman, nil
	case "blackmannuttall":
		return BlackmanNuttall, nil
	case "bartletthann":
		return BartlettHann, nil
	case "lanczos":
		return Lanczos, nil
	case "nuttall":
		return Nuttall, nil
	default:
		return Hann, fmt.Errorf("unknown window function name: %q", name)
	}
}

// Window holds precomputed symmetric taper coefficients for a fixed
// buffer length. Coefficients are computed once at construction and never
// mutated.
type Window struct {
	coeffs []float64
}

// NewWindow precomputes coefficients for buffers of length n.
func NewWindow(n int, fn WindowFunc) *Window {
	coeffs := make([]float64, n)

	if fn == Hann {
		// Symmetric Hann: 0.5*(1 - cos(2πi/(N-1))).
		for i := range coeffs {
			coeffs[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		}
		return &Window{coeffs: coeffs}
	}

	// The gonum window functions scale a sequence in place, so seed with
	// ones to extract the raw coefficients.
	for i := range coeffs {
		coeffs[i] = 1.0
	}
	switch fn {
	case Hamming:
		window.Hamming(coeffs)
	case Blackman:
		window.Blackman(coeffs)
	case BlackmanNuttall:
		window.BlackmanNuttall(coeffs)
	case BartlettHann:
		window.BartlettHann(coeffs)
	case Lanczos:
		window.Lanczos(coeffs)
	case Nuttall:
		window.Nuttall(coeffs)
	default:
		window.Hann(coeffs)
	}
	return &Window{coeffs: coeffs}
}

// Len returns the window length.
func (w *Window) Len() int {
	return len(w.coeffs)
}

// Coeff returns coefficient i.
func (w *Window) Coeff(i int) float64 {
	return w.coeffs[i]
}

// Apply writes the elementwise product of src and the coefficients into
// dst, which must have the window's length. A src shorter than the window
// is zero-padded: a capture underrun is not an error. Pure function of
// src and the fixed coefficient table.
func (w *Window) Apply(dst, src []float64) {
	for i := range w.coeffs {
		if i < len(src) {
			dst[i] = src[i] * w.coeffs[i]
		} else {
			dst[i] = 0
		}
	}
}
