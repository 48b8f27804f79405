// SPDX-License-Identifier: MIT
package pitch

import (
	"fmt"
	"math"
	"testing"
)

func TestRefinePeakParabolaRecovery(t *testing.T) {
	// sampleRate == fftSize, so the refined frequency in Hz equals the
	// refined bin position and the recovered offset is freq - peakBin.
	const (
		rate    = 8192.0
		size    = 8192
		peakBin = 110
	)

	offsets := []float64{-0.49, -0.4, -0.25, -0.1, 0.0, 0.1, 0.33, 0.49}
	for _, p0 := range offsets {
		t.Run(fmt.Sprintf("p0=%+.2f", p0), func(t *testing.T) {
			// Ideal parabola y(x) = 1 - 0.3*(x-p0)^2 sampled at the three
			// bins around the peak.
			power := make([]float64, size/2)
			for dx := -1; dx <= 1; dx++ {
				x := float64(dx)
				power[peakBin+dx] = 1 - 0.3*(x-p0)*(x-p0)
			}

			freq := RefinePeak(power, peakBin, rate, size)
			got := freq - peakBin
			if math.Abs(got-p0) > 1e-3 {
				t.Errorf("recovered offset %.6f, expected %.6f", got, p0)
			}
		})
	}
}

func TestRefinePeakBoundaryFallback(t *testing.T) {
	const (
		rate = 8192.0
		size = 8192
	)
	power := make([]float64, size/2)
	power[0] = 10
	power[len(power)-1] = 10

	if got := RefinePeak(power, 0, rate, size); got != 0 {
		t.Errorf("bin 0 refined to %.4f Hz, expected the bin center 0", got)
	}

	last := len(power) - 1
	want := float64(last) * rate / size
	if got := RefinePeak(power, last, rate, size); got != want {
		t.Errorf("boundary bin refined to %.4f Hz, expected bin center %.4f", got, want)
	}
}

func TestRefinePeakDegenerateDenominator(t *testing.T) {
	const (
		rate    = 8192.0
		size    = 8192
		peakBin = 110
	)
	// α == β == γ makes α-2β+γ vanish; the refiner must not divide.
	power := make([]float64, size/2)
	power[peakBin-1] = 4
	power[peakBin] = 4
	power[peakBin+1] = 4

	want := float64(peakBin) * rate / size
	if got := RefinePeak(power, peakBin, rate, size); got != want {
		t.Errorf("degenerate fit refined to %.4f Hz, expected bin center %.4f", got, want)
	}
}
