// SPDX-License-Identifier: MIT

// Package tuner drives the pitch pipeline once per capture buffer and
// publishes the result to the presentation layer.
package tuner

import (
	"sync/atomic"

	applog "tuner/internal/log"
	"tuner/internal/notes"
	"tuner/internal/transport"
)

// Estimator produces a fundamental-frequency estimate for one sample
// buffer. ok is false when nothing above the loudness threshold was
// found. pitch.Detector is the production implementation.
type Estimator interface {
	Detect(samples []float64) (hz float64, ok bool)
}

// Reading is one cycle's published result. The estimate and its note
// match always come from the same cycle: the pair is stored and handed
// out as a single immutable value, never mixed across cycles.
type Reading struct {
	Detected  bool       `json:"detected"`
	Frequency float64    `json:"frequency"` // Hz, zero when not detected
	Note      notes.Note `json:"note"`      // zero value when not detected
	Cents     float64    `json:"cents"`
}

// Engine runs one detection cycle per buffer with a process-or-drop
// policy: a buffer arriving while the previous cycle is still running is
// discarded rather than queued, because a live tuner only cares about the
// freshest estimate. A started cycle always runs to completion.
type Engine struct {
	estimator Estimator
	matcher   notes.Matcher
	sink      transport.Transport // optional fanout, may be nil

	busy    atomic.Bool // single-flight guard over the shared scratch state
	latest  atomic.Pointer[Reading]
	dropped atomic.Uint64
	updates chan Reading
}

// NewEngine wires an estimator and a matching strategy. sink may be nil;
// when set, every published reading is also handed to it (non-blocking,
// per the Transport contract).
func NewEngine(estimator Estimator, matcher notes.Matcher, sink transport.Transport) *Engine {
	e := &Engine{
		estimator: estimator,
		matcher:   matcher,
		sink:      sink,
		updates:   make(chan Reading, 8),
	}
	e.latest.Store(&Reading{})
	return e
}

// Process runs one cycle over samples and reports whether the buffer was
// accepted. false means a previous cycle was still in flight and this
// buffer was dropped. Safe to call from the capture callback: nothing in
// here blocks on a consumer.
func (e *Engine) Process(samples []float64) bool {
	if !e.busy.CompareAndSwap(false, true) {
		e.dropped.Add(1)
		return false
	}
	defer e.busy.Store(false)

	var reading Reading
	if hz, ok := e.estimator.Detect(samples); ok {
		m := e.matcher.Match(hz)
		reading = Reading{Detected: true, Frequency: hz, Note: m.Note, Cents: m.Cents}
	}
	e.publish(reading)
	return true
}

func (e *Engine) publish(r Reading) {
	e.latest.Store(&r)

	// Lossy notify: a consumer that falls behind reads Latest instead.
	select {
	case e.updates <- r:
	default:
	}

	if e.sink != nil {
		if err := e.sink.Send(r); err != nil {
			applog.Debugf("Tuner: transport send failed: %v", err)
		}
	}
}

// Latest returns the most recently published reading. The zero Reading is
// returned before the first cycle completes.
func (e *Engine) Latest() Reading {
	return *e.latest.Load()
}

// Updates returns the lossy notification channel. Readings are dropped,
// not queued, when the consumer lags.
func (e *Engine) Updates() <-chan Reading {
	return e.updates
}

// Dropped returns how many buffers were discarded by the
// process-or-drop policy.
func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}
