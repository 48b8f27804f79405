// SPDX-License-Identifier: MIT
package pitch

import "testing"

// Spectra below use sampleRate == fftSize so every bin is exactly 1 Hz
// wide and bin indices read directly as frequencies.
const (
	peakTestRate = 8192.0
	peakTestSize = 8192
)

func flatSpectrum(peaks map[int]float64) []float64 {
	power := make([]float64, peakTestSize/2)
	for bin, v := range peaks {
		power[bin] = v
	}
	return power
}

func TestSelectPeakSilence(t *testing.T) {
	power := flatSpectrum(nil)
	if _, ok := SelectPeak(power, peakTestRate, peakTestSize, 0.001, DefaultBand); ok {
		t.Error("expected no peak in an all-zero spectrum")
	}
}

func TestSelectPeakGlobalMaxBelowThreshold(t *testing.T) {
	power := flatSpectrum(map[int]float64{110: 0.0009})
	if _, ok := SelectPeak(power, peakTestRate, peakTestSize, 0.001, DefaultBand); ok {
		t.Error("expected silence when the global maximum does not exceed the threshold")
	}
}

func TestSelectPeakFirstQualifyingWins(t *testing.T) {
	// Weak fundamental at 110 Hz, far stronger harmonic at 220 Hz. Both
	// are in-band strict local maxima above threshold; the scan must stop
	// at the lower-frequency one.
	power := flatSpectrum(map[int]float64{110: 5.0, 220: 50.0})
	bin, ok := SelectPeak(power, peakTestRate, peakTestSize, 1.0, DefaultBand)
	if !ok {
		t.Fatal("expected a peak")
	}
	if bin != 110 {
		t.Errorf("selected bin %d, expected the 110 Hz fundamental over the louder 220 Hz harmonic", bin)
	}
}

func TestSelectPeakBandExclusion(t *testing.T) {
	// Strong tone outside [65, 1000] with nothing in band: the silence
	// check passes but the banded scan must come up empty.
	power := flatSpectrum(map[int]float64{2000: 50.0})
	if _, ok := SelectPeak(power, peakTestRate, peakTestSize, 0.001, DefaultBand); ok {
		t.Error("expected no in-band peak for a 2000 Hz tone")
	}
}

func TestSelectPeakInBandBelowThreshold(t *testing.T) {
	// Out-of-band energy clears the global threshold but the only in-band
	// local maximum does not.
	power := flatSpectrum(map[int]float64{110: 0.5, 2000: 50.0})
	if _, ok := SelectPeak(power, peakTestRate, peakTestSize, 1.0, DefaultBand); ok {
		t.Error("expected no peak when the in-band maximum stays under the threshold")
	}
}

func TestSelectPeakBandEdges(t *testing.T) {
	// A peak sitting exactly on minBin qualifies even with a larger
	// neighbor just outside the band: the missing-neighbor side of the
	// local-maximum test is treated as satisfied at band edges.
	power := flatSpectrum(map[int]float64{64: 80.0, 65: 10.0})
	bin, ok := SelectPeak(power, peakTestRate, peakTestSize, 1.0, DefaultBand)
	if !ok || bin != 65 {
		t.Errorf("expected the band-edge bin 65, got %d (ok=%v)", bin, ok)
	}

	power = flatSpectrum(map[int]float64{1000: 10.0, 1001: 80.0})
	bin, ok = SelectPeak(power, peakTestRate, peakTestSize, 1.0, DefaultBand)
	if !ok || bin != 1000 {
		t.Errorf("expected the band-edge bin 1000, got %d (ok=%v)", bin, ok)
	}
}

func TestSelectPeakRejectsNonLocalMaxima(t *testing.T) {
	// Rising slope: every bin above threshold has a larger right
	// neighbor until the true peak at 300.
	power := flatSpectrum(nil)
	for bin := 100; bin <= 300; bin++ {
		power[bin] = float64(bin)
	}
	bin, ok := SelectPeak(power, peakTestRate, peakTestSize, 1.0, DefaultBand)
	if !ok {
		t.Fatal("expected a peak")
	}
	if bin != 300 {
		t.Errorf("selected bin %d, expected the slope crest at 300", bin)
	}
}

func TestSelectPeakHotPathAllocs(t *testing.T) {
	power := flatSpectrum(map[int]float64{110: 5.0, 220: 50.0})
	allocs := testing.AllocsPerRun(100, func() {
		SelectPeak(power, peakTestRate, peakTestSize, 1.0, DefaultBand)
	})
	if allocs > 0 {
		t.Errorf("expected zero allocations in SelectPeak, got %.1f", allocs)
	}
}
