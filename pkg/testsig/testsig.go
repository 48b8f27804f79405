// SPDX-License-Identifier: MIT

// Package testsig generates synthetic mono sample buffers for tests.
package testsig

import "math"

// Sine returns size samples of a pure tone at the given frequency and
// peak amplitude.
func Sine(size int, sampleRate, frequency, amplitude float64) []float64 {
	buffer := make([]float64, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		buffer[i] = amplitude * math.Sin(2*math.Pi*frequency*t)
	}
	return buffer
}

// Harmonics returns size samples of a tone built from a fundamental and
// its integer harmonics. amplitudes[k] is the peak amplitude of the
// (k+1)-th partial, so Harmonics(n, r, 110, 0.2, 0.8) produces a weak
// 110 Hz fundamental under a stronger 220 Hz second harmonic.
func Harmonics(size int, sampleRate, fundamental float64, amplitudes ...float64) []float64 {
	buffer := make([]float64, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		for k, amp := range amplitudes {
			buffer[i] += amp * math.Sin(2*math.Pi*fundamental*float64(k+1)*t)
		}
	}
	return buffer
}

// Silence returns size zero samples.
func Silence(size int) []float64 {
	return make([]float64, size)
}
