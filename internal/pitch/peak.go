// SPDX-License-Identifier: MIT
package pitch

// Band bounds the fundamental search in hertz.
type Band struct {
	MinHz float64
	MaxHz float64
}

// DefaultBand covers guitar-range fundamentals, E2 and below through well
// past the high E string.
var DefaultBand = Band{MinHz: 65, MaxHz: 1000}

// SelectPeak returns the index of the first in-band strict local maximum
// whose power exceeds threshold, scanning from low to high frequency. It
// reports false when the whole spectrum stays at or under the threshold
// (silence) or when no in-band bin qualifies.
//
// Returning the first qualifying bin rather than the loudest one is the
// defining policy of this selector: plucked and bowed string fundamentals
// are frequently weaker than their second harmonic, so the low-to-high scan
// stops at the fundamental instead of the strongest partial.
//
// Band edges treat the missing neighbor as already satisfied, so a peak
// sitting exactly on minBin or maxBin can still qualify.
//
// threshold derives from a decibel setting via 10^(dB/20) yet is compared
// against squared magnitudes; the shipped tuner behaves this way and the
// comparison is kept untouched (see DESIGN.md).
func SelectPeak(power []float64, sampleRate float64, fftSize int, threshold float64, band Band) (int, bool) {
	// Silence check over the full spectrum, before any banded search.
	max := 0.0
	for _, v := range power {
		if v > max {
			max = v
		}
	}
	if max <= threshold {
		return 0, false
	}

	minBin := int(band.MinHz * float64(fftSize) / sampleRate)
	maxBin := int(band.MaxHz * float64(fftSize) / sampleRate)
	if minBin < 0 {
		minBin = 0
	}
	if maxBin > len(power)-1 {
		maxBin = len(power) - 1
	}

	for k := minBin; k <= maxBin; k++ {
		if power[k] <= threshold {
			continue
		}
		if k > minBin && power[k-1] >= power[k] {
			continue
		}
		if k < maxBin && power[k+1] >= power[k] {
			continue
		}
		return k, true
	}
	return 0, false
}
