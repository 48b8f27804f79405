// SPDX-License-Identifier: MIT
package pitch

import (
	"fmt"
	"math"
)

// Settings fixes the detector configuration. Validation happens once in
// NewDetector; there are no per-cycle configuration errors.
type Settings struct {
	SampleRate  float64    // capture rate in Hz, positive
	FFTSize     int        // buffer length N, power of two
	ThresholdDB float64    // loudness floor in decibels
	Band        Band       // fundamental search range in Hz
	Window      WindowFunc // taper; Hann unless overridden
}

// Detector estimates the fundamental frequency of one fixed-size mono
// sample buffer. All scratch buffers and the FFT plan are allocated at
// construction and owned by this instance for its whole life; Detect must
// not run concurrently with itself on the same instance.
type Detector struct {
	settings  Settings
	threshold float64 // linear conversion of ThresholdDB: 10^(dB/20)
	window    *Window
	analyzer  *spectrumAnalyzer

	// Per-cycle scratch, reused across cycles.
	windowed []float64
	power    []float64
}

// NewDetector validates the settings and pre-allocates every buffer the
// hot path needs.
func NewDetector(s Settings) (*Detector, error) {
	if s.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %v", s.SampleRate)
	}
	analyzer, err := newSpectrumAnalyzer(s.FFTSize)
	if err != nil {
		return nil, err
	}
	if s.Band.MinHz <= 0 || s.Band.MaxHz <= s.Band.MinHz {
		return nil, fmt.Errorf("invalid search band [%v, %v] Hz", s.Band.MinHz, s.Band.MaxHz)
	}

	return &Detector{
		settings:  s,
		threshold: math.Pow(10, s.ThresholdDB/20),
		window:    NewWindow(s.FFTSize, s.Window),
		analyzer:  analyzer,
		windowed:  make([]float64, s.FFTSize),
		power:     make([]float64, s.FFTSize/2),
	}, nil
}

// Detect runs one full cycle: window, transform, peak selection, sub-bin
// refinement. It returns false when nothing in the search band clears the
// loudness threshold; silence is a valid result, not an error. Samples
// shorter than the FFT size are zero-padded. Identical inputs produce
// bit-identical outputs, and the hot path performs no allocations.
func (d *Detector) Detect(samples []float64) (float64, bool) {
	d.window.Apply(d.windowed, samples)
	d.analyzer.transform(d.power, d.windowed)

	bin, ok := SelectPeak(d.power, d.settings.SampleRate, d.settings.FFTSize, d.threshold, d.settings.Band)
	if !ok {
		return 0, false
	}
	return RefinePeak(d.power, bin, d.settings.SampleRate, d.settings.FFTSize), true
}

// SampleRate returns the configured capture rate in Hz.
func (d *Detector) SampleRate() float64 {
	return d.settings.SampleRate
}

// FFTSize returns the configured buffer length.
func (d *Detector) FFTSize() int {
	return d.settings.FFTSize
}

// BinWidth returns the spectral resolution in Hz per bin.
func (d *Detector) BinWidth() float64 {
	return d.settings.SampleRate / float64(d.settings.FFTSize)
}
